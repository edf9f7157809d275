package commands

import (
	"bytes"
	"testing"

	"github.com/josephlewis42/minishell/core/config"
	"github.com/josephlewis42/minishell/core/vos/vostest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func addProcesses(testOS *vostest.TestOS) {
	testOS.AddProcess("/proc", 1, vostest.RootUID, "/sbin/init\x00splash\x00")
	testOS.AddProcess("/proc", 42, vostest.UserUID, "bash\x00")
	testOS.AddProcess("/proc", 7, vostest.RootUID, "")
	testOS.AddProcess("/proc", 100, vostest.UserUID, "vim\x00notes.txt\x00\x00")

	// No command line record.
	testOS.AddProcess("/proc", 77, vostest.UserUID, "")
	if err := testOS.Fs.Remove("/proc/77/cmdline"); err != nil {
		panic(err)
	}

	// No status record.
	testOS.AddProcess("/proc", 88, "", "sleep\x0060\x00")

	// Owner missing from the user database.
	testOS.AddProcess("/proc", 555, "4242", "ghost\x00")

	// Entries that aren't processes.
	for _, dir := range []string{"/proc/self", "/proc/sys", "/proc/12abc"} {
		if err := testOS.Fs.MkdirAll(dir, 0555); err != nil {
			panic(err)
		}
	}
	if err := afero.WriteFile(testOS.Fs, "/proc/99", []byte("not a directory"), 0444); err != nil {
		panic(err)
	}
}

func TestLp(t *testing.T) {
	cases := goldenTestSuite{
		"lp-process-owner": {
			Args: []string{"lp"},
			Setup: func(env *Env, testOS *vostest.TestOS) {
				addProcesses(testOS)
			},
		},
		"lp-caller-owner": {
			Args: []string{"lp"},
			Setup: func(env *Env, testOS *vostest.TestOS) {
				env.Config.ProcessOwner = config.ProcessOwnerCaller
				testOS.AddProcess("/proc", 2, vostest.RootUID, "kthreadd\x00")
				testOS.AddProcess("/proc", 1, vostest.RootUID, "/sbin/init\x00")
				testOS.AddProcess("/proc", 88, "", "")
			},
		},
		"lp-custom-root": {
			Args: []string{"lp", "ignored"},
			Setup: func(env *Env, testOS *vostest.TestOS) {
				env.Config.ProcRoot = "/host/proc"
				testOS.AddProcess("/host/proc", 300, vostest.UserUID, "top\x00")
				testOS.AddProcess("/proc", 1, vostest.RootUID, "/sbin/init\x00")
			},
		},
		"lp-empty-registry": {
			Args: []string{"lp"},
			Setup: func(env *Env, testOS *vostest.TestOS) {
				if err := testOS.Fs.MkdirAll("/proc", 0555); err != nil {
					panic(err)
				}
			},
		},
	}

	cases.Run(t, Lp)
}

func TestLpMissingRegistry(t *testing.T) {
	out := &bytes.Buffer{}
	env, _ := newTestEnv(out, out)

	err := Lp(env, []string{"lp"})

	assert.True(t, IsFatal(err))
	assert.Equal(t, "Cannot open process registry /proc. File does not exist.", err.Error())
	assert.Empty(t, out.String())
}

func TestLpCallerUnknown(t *testing.T) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env, testOS := newTestEnv(stdout, stderr)
	env.Config.ProcessOwner = config.ProcessOwnerCaller
	testOS.AddProcess("/proc", 1, vostest.RootUID, "/sbin/init\x00")
	testOS.Self = "31337"

	assert.NoError(t, Lp(env, []string{"lp"}))
	assert.Empty(t, stdout.String())
	assert.Equal(t, "Warning: Cannot resolve user of process 1. User: unknown userid 31337.\n", stderr.String())
}

func TestIsNumeric(t *testing.T) {
	cases := map[string]bool{
		"":      false,
		"0":     true,
		"1234":  true,
		"12abc": false,
		"self":  false,
		"-1":    false,
		"١٢":    false,
	}

	for name, expected := range cases {
		assert.Equal(t, expected, isNumeric(name), name)
	}
}

func TestReadCmdline(t *testing.T) {
	fs := afero.NewMemMapFs()
	cases := map[string]struct {
		raw      string
		expected string
	}{
		"empty":            {"", ""},
		"single":           {"bash\x00", "bash"},
		"args":             {"ls\x00-la\x00/tmp\x00", "ls -la /tmp"},
		"trailing padding": {"a\x00\x00\x00", "a"},
		"unterminated":     {"sh\x00-c", "sh -c"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.NoError(t, afero.WriteFile(fs, "/cmdline", []byte(tc.raw), 0444))

			actual, err := readCmdline(fs, "/cmdline")
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestReadRealUID(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, "/status", []byte("Name:\tsh\nUid:\t1000\t0\t0\t0\nGid:\t5\n"), 0444))
	assert.NoError(t, afero.WriteFile(fs, "/nouid", []byte("Name:\tsh\n"), 0444))

	uid, err := readRealUID(fs, "/status")
	assert.NoError(t, err)
	assert.Equal(t, "1000", uid)

	_, err = readRealUID(fs, "/nouid")
	assert.Error(t, err)

	_, err = readRealUID(fs, "/missing")
	assert.Error(t, err)
}
