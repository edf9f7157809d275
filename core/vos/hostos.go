package vos

import (
	"errors"
	"os"
	"os/user"

	"github.com/spf13/afero"
)

// HostOS is a VOS backed by the real process and filesystem.
type HostOS struct {
	VIO
	fs afero.Fs
}

var _ VOS = (*HostOS)(nil)

// NewHostOS creates a VOS for the running process with the given streams.
func NewHostOS(streams VIO) *HostOS {
	return &HostOS{
		VIO: streams,
		fs:  afero.NewOsFs(),
	}
}

func (h *HostOS) Getwd() (string, error) {
	return os.Getwd()
}

func (h *HostOS) Chdir(dir string) error {
	return os.Chdir(dir)
}

// CurrentUser resolves the real user ID of the process. If the user database
// has no entry, $HOME is used for the home directory.
func (h *HostOS) CurrentUser() (*user.User, error) {
	u, err := user.Current()
	if err == nil {
		return u, nil
	}

	home, homeErr := os.UserHomeDir()
	if homeErr != nil {
		return nil, errors.Join(err, homeErr)
	}
	return &user.User{
		Uid:      "",
		Username: os.Getenv("USER"),
		HomeDir:  home,
	}, nil
}

func (h *HostOS) LookupUID(uid string) (*user.User, error) {
	return user.LookupId(uid)
}

func (h *HostOS) FS() VFS {
	return h.fs
}
