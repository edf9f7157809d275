package commands

import (
	"bytes"
	"testing"

	"github.com/josephlewis42/minishell/core/vos/vostest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestCd(t *testing.T) {
	cases := map[string]struct {
		args        []string
		setup       func(testOS *vostest.TestOS)
		expectedCwd string
		expectedErr string
	}{
		"no args goes home": {
			args:        []string{"cd"},
			setup:       func(testOS *vostest.TestOS) { testOS.Cwd = "/tmp" },
			expectedCwd: vostest.UserHome,
		},
		"tilde": {
			args:        []string{"cd", "~"},
			setup:       func(testOS *vostest.TestOS) { testOS.Cwd = "/" },
			expectedCwd: vostest.UserHome,
		},
		"tilde prefix": {
			args:        []string{"cd", "~/src"},
			expectedCwd: vostest.UserHome + "/src",
		},
		"absolute": {
			args:        []string{"cd", "/tmp"},
			expectedCwd: "/tmp",
		},
		"relative": {
			args:        []string{"cd", "src"},
			expectedCwd: vostest.UserHome + "/src",
		},
		"parent": {
			args:        []string{"cd", ".."},
			expectedCwd: "/home",
		},
		"missing": {
			args:        []string{"cd", "/nope"},
			expectedCwd: vostest.UserHome,
			expectedErr: "Error: Cannot change directory to /nope. No such file or directory.\n",
		},
		"not a directory": {
			args:        []string{"cd", "notes.txt"},
			expectedCwd: vostest.UserHome,
			expectedErr: "Error: Cannot change directory to notes.txt. Not a directory.\n",
		},
		"missing under home": {
			args:        []string{"cd", "~/nope"},
			expectedCwd: vostest.UserHome,
			expectedErr: "Error: Cannot change directory to /home/alice/nope. No such file or directory.\n",
		},
		"too many args": {
			args:        []string{"cd", "/tmp", "/root"},
			expectedCwd: vostest.UserHome,
			expectedErr: "Error: Too many arguments to cd.\n",
		},
		"unknown user needs no home": {
			args:        []string{"cd", "/tmp"},
			setup:       func(testOS *vostest.TestOS) { testOS.Self = "31337" },
			expectedCwd: "/tmp",
		},
		"unknown user home": {
			args:        []string{"cd"},
			setup:       func(testOS *vostest.TestOS) { testOS.Self = "31337" },
			expectedCwd: vostest.UserHome,
			expectedErr: "Error: Cannot resolve home directory. User: unknown userid 31337.\n",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
			env, testOS := newTestEnv(stdout, stderr)
			assert.NoError(t, testOS.Fs.MkdirAll(vostest.UserHome+"/src", 0755))
			assert.NoError(t, afero.WriteFile(testOS.Fs, vostest.UserHome+"/notes.txt", nil, 0644))
			if tc.setup != nil {
				tc.setup(testOS)
			}

			assert.NoError(t, Cd(env, tc.args))
			assert.Equal(t, tc.expectedCwd, testOS.Cwd)
			assert.Equal(t, tc.expectedErr, stderr.String())
			assert.Empty(t, stdout.String())
		})
	}
}
