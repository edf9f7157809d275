package core

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/josephlewis42/minishell/commands"
	"github.com/josephlewis42/minishell/core/logger"
	"golang.org/x/sys/unix"
)

// wait4 is swapped out in tests to simulate interrupted waits.
var wait4 = unix.Wait4

// Executor runs external programs in the foreground, one at a time.
type Executor struct {
	// Files are handed to the child as its stdin, stdout and stderr.
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File

	// Errors receives failure reports.
	Errors io.Writer
	Events *logger.SessionLogger
}

// NewExecutor creates an Executor that shares the given files with every
// child.
func NewExecutor(stdin, stdout, stderr *os.File, events *logger.SessionLogger) *Executor {
	return &Executor{
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Errors: stderr,
		Events: events,
	}
}

// Run starts argv[0], searched for in $PATH, and blocks until it has been
// reaped. Failures are reported and never returned: a missing program or a
// failed wait leaves the shell running. The child's exit status is dropped.
func (e *Executor) Run(argv []string) {
	if len(argv) == 0 {
		return
	}

	path, err := exec.LookPath(argv[0])
	if errors.Is(err, exec.ErrDot) {
		// Found through a relative $PATH entry, which execvp would run.
		err = nil
	}
	if err != nil {
		commands.PrintError(e.Errors, "exec() failed", lookPathCause(err))
		return
	}

	proc, err := os.StartProcess(path, argv, &os.ProcAttr{
		Files: []*os.File{e.Stdin, e.Stdout, e.Stderr},
	})
	if err != nil {
		if isExecFailure(err) {
			commands.PrintError(e.Errors, "exec() failed", err)
		} else {
			commands.PrintError(e.Errors, "fork() failed", err)
		}
		return
	}
	defer proc.Release()

	e.record(&logger.Spawn{Pid: proc.Pid, Argv: argv})

	status, err := waitFor(proc.Pid)
	if err != nil {
		commands.PrintError(e.Errors, "wait() failed", err)
		return
	}
	e.record(&logger.Reap{Pid: proc.Pid, ExitCode: exitCode(status)})
}

func (e *Executor) record(event logger.Event) {
	if e.Events != nil {
		_ = e.Events.Record(event)
	}
}

// waitFor blocks until pid changes state, retrying waits cut short by a
// signal.
func waitFor(pid int) (unix.WaitStatus, error) {
	for {
		var status unix.WaitStatus
		_, err := wait4(pid, &status, 0, nil)
		switch {
		case err == unix.EINTR:
			continue
		case err != nil:
			return 0, err
		default:
			return status, nil
		}
	}
}

func exitCode(status unix.WaitStatus) int {
	switch {
	case status.Exited():
		return status.ExitStatus()
	case status.Signaled():
		return 128 + int(status.Signal())
	default:
		return -1
	}
}

// lookPathCause drops the exec.Error wrapper so the report carries the OS
// level reason.
func lookPathCause(err error) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		if errors.Is(execErr.Err, exec.ErrNotFound) {
			return syscall.ENOENT
		}
		return execErr.Err
	}
	return err
}

// isExecFailure reports whether creating the child failed while loading the
// program rather than while creating the process.
func isExecFailure(err error) bool {
	for _, errno := range []syscall.Errno{
		syscall.ENOENT,
		syscall.EACCES,
		syscall.ENOEXEC,
		syscall.ENOTDIR,
		syscall.ELOOP,
		syscall.ETXTBSY,
		syscall.E2BIG,
	} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
