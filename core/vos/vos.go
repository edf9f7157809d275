package vos

import (
	"io"
	"os/user"

	"github.com/spf13/afero"
)

// VIO holds the standard streams of the shell.
type VIO interface {
	Stdin() io.ReadCloser
	Stdout() io.WriteCloser
	Stderr() io.WriteCloser
}

// VDir exposes the process working directory. The directory is owned by the
// OS and is never cached; every call re-queries it.
type VDir interface {
	Getwd() (string, error)
	Chdir(dir string) error
}

// VUsers exposes the user database.
type VUsers interface {
	// CurrentUser returns the user the shell runs as.
	CurrentUser() (*user.User, error)
	// LookupUID resolves a numeric user ID.
	LookupUID(uid string) (*user.User, error)
}

// VFS is the filesystem builtins read from.
type VFS = afero.Fs

// VOS provides a virtual OS interface.
type VOS interface {
	VIO
	VDir
	VUsers

	// FS returns the filesystem rooted at the real "/".
	FS() VFS
}

// HomeDir returns the home directory of the user the shell runs as.
func HomeDir(virtOS VOS) (string, error) {
	u, err := virtOS.CurrentUser()
	if err != nil {
		return "", err
	}
	return u.HomeDir, nil
}
