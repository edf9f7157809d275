package commands

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/josephlewis42/minishell/core/config"
	"github.com/spf13/afero"
)

// Lp lists every process in the process registry as "<pid> <user> <command>".
//
// Processes whose owner can't be resolved, or whose command line record
// can't be opened, are skipped. Not being able to open the registry at all
// ends the shell.
func Lp(env *Env, args []string) error {
	root := env.Config.ProcRoot

	fd, err := env.FS().Open(root)
	if err != nil {
		return Fatal("Cannot open process registry "+root, err)
	}
	entries, err := fd.Readdir(-1)
	fd.Close()
	if err != nil {
		return Fatal("Cannot read process registry "+root, err)
	}

	var pids []uint64
	for _, entry := range entries {
		if !entry.IsDir() || !isNumeric(entry.Name()) {
			continue
		}
		pid, err := strconv.ParseUint(entry.Name(), 10, 64)
		if err != nil {
			continue
		}
		pids = append(pids, pid)
	}
	sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })

	ownerOf := ownerResolver(env)
	w := env.Stdout()
	for _, pid := range pids {
		pidStr := strconv.FormatUint(pid, 10)
		procDir := filepath.Join(root, pidStr)

		owner, err := ownerOf(procDir)
		if err != nil {
			PrintWarning(env.Stderr(), "Cannot resolve user of process "+pidStr, err)
			continue
		}

		cmdline, err := readCmdline(env.FS(), filepath.Join(procDir, "cmdline"))
		if err != nil {
			PrintError(env.Stderr(), "Cannot open command line of process "+pidStr, err)
			continue
		}

		if cmdline == "" {
			fmt.Fprintf(w, "%s %s \n", pidStr, owner)
		} else {
			fmt.Fprintf(w, "%s %s %s\n", pidStr, owner, cmdline)
		}
	}

	return nil
}

var _ BuiltinFunc = Lp

func isNumeric(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ownerResolver picks how process owners are named based on the configured
// process_owner mode.
func ownerResolver(env *Env) func(procDir string) (string, error) {
	if env.Config.ProcessOwner == config.ProcessOwnerCaller {
		return func(string) (string, error) {
			u, err := env.CurrentUser()
			if err != nil {
				return "", err
			}
			return u.Username, nil
		}
	}

	return func(procDir string) (string, error) {
		uid, err := readRealUID(env.FS(), filepath.Join(procDir, "status"))
		if err != nil {
			return "", err
		}
		u, err := env.LookupUID(uid)
		if err != nil {
			return "", err
		}
		return u.Username, nil
	}
}

// readRealUID reads the real user ID from a status record's "Uid:" line.
func readRealUID(fs afero.Fs, name string) (string, error) {
	fd, err := fs.Open(name)
	if err != nil {
		return "", err
	}
	defer fd.Close()

	scanner := bufio.NewScanner(fd)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && fields[0] == "Uid:" {
			return fields[1], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("no Uid line in %s", name)
}

// readCmdline returns the NUL separated command line record joined with
// spaces. Only failing to open the record is an error; a record that can't
// be read is reported as empty.
func readCmdline(fs afero.Fs, name string) (string, error) {
	fd, err := fs.Open(name)
	if err != nil {
		return "", err
	}
	defer fd.Close()

	raw, err := io.ReadAll(fd)
	if err != nil {
		return "", nil
	}

	cmdline := strings.TrimRight(string(raw), "\x00")
	return strings.ReplaceAll(cmdline, "\x00", " "), nil
}

func init() {
	addBuiltin("lp", "List running processes as <pid> <user> <command>.", Lp)
}
