package vostest

import (
	"fmt"
	"io"
	"io/fs"
	"os/user"
	"path"
	"syscall"

	"github.com/josephlewis42/minishell/core/vos"
	"github.com/spf13/afero"
)

const (
	// RootUID is the ID of the superuser in every TestOS.
	RootUID = "0"
	// UserUID is the ID of the regular user a TestOS runs as.
	UserUID = "1000"
	// UserHome is the home directory of the regular user.
	UserHome = "/home/alice"
)

// TestOS is a deterministic VOS backed by an in-memory filesystem.
type TestOS struct {
	*vos.Streams

	Fs afero.Fs
	// Cwd is the working directory; Chdir only moves to directories in Fs.
	Cwd string
	// GetwdErr, if set, is returned by Getwd.
	GetwdErr error
	// Users holds the user database keyed by UID.
	Users map[string]*user.User
	// Self is the UID of the user the shell runs as.
	Self string
}

var _ vos.VOS = (*TestOS)(nil)

// NewDeterministicOS creates a TestOS with two users, root and alice, running
// as alice from her home directory.
func NewDeterministicOS(stdin io.Reader, stdout, stderr io.Writer) *TestOS {
	memFs := afero.NewMemMapFs()
	for _, dir := range []string{"/root", UserHome, "/tmp"} {
		if err := memFs.MkdirAll(dir, 0755); err != nil {
			panic(err)
		}
	}

	return &TestOS{
		Streams: vos.NewStreams(stdin, stdout, stderr),
		Fs:      memFs,
		Cwd:     UserHome,
		Users: map[string]*user.User{
			RootUID: {Uid: RootUID, Gid: RootUID, Username: "root", HomeDir: "/root"},
			UserUID: {Uid: UserUID, Gid: UserUID, Username: "alice", HomeDir: UserHome},
		},
		Self: UserUID,
	}
}

func (t *TestOS) Getwd() (string, error) {
	if t.GetwdErr != nil {
		return "", t.GetwdErr
	}
	return t.Cwd, nil
}

func (t *TestOS) Chdir(dir string) error {
	target := dir
	if !path.IsAbs(target) {
		target = path.Join(t.Cwd, target)
	}
	target = path.Clean(target)

	info, err := t.Fs.Stat(target)
	switch {
	case err != nil:
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOENT}
	case !info.IsDir():
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOTDIR}
	}

	t.Cwd = target
	return nil
}

func (t *TestOS) CurrentUser() (*user.User, error) {
	return t.LookupUID(t.Self)
}

func (t *TestOS) LookupUID(uid string) (*user.User, error) {
	if u, ok := t.Users[uid]; ok {
		return u, nil
	}
	return nil, user.UnknownUserIdError(mustAtoi(uid))
}

func (t *TestOS) FS() vos.VFS {
	return t.Fs
}

// AddProcess writes a /proc style entry for pid under root. The cmdline is
// written verbatim, so arguments should already be NUL separated. An empty
// uid omits the status record.
func (t *TestOS) AddProcess(root string, pid int, uid string, cmdline string) {
	dir := path.Join(root, fmt.Sprint(pid))
	if err := t.Fs.MkdirAll(dir, 0555); err != nil {
		panic(err)
	}
	if uid != "" {
		status := fmt.Sprintf("Name:\tproc%d\nState:\tS (sleeping)\nPid:\t%d\nUid:\t%s\t%s\t%s\t%s\n", pid, pid, uid, uid, uid, uid)
		if err := afero.WriteFile(t.Fs, path.Join(dir, "status"), []byte(status), 0444); err != nil {
			panic(err)
		}
	}
	if err := afero.WriteFile(t.Fs, path.Join(dir, "cmdline"), []byte(cmdline), 0444); err != nil {
		panic(err)
	}
}

func mustAtoi(s string) int {
	var n int
	if _, err := fmt.Sscan(s, &n); err != nil {
		return -1
	}
	return n
}
