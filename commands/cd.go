package commands

import (
	"strings"

	"github.com/josephlewis42/minishell/core/vos"
)

// Cd changes the working directory. With no argument it moves to the home
// directory; a leading ~ in the argument is expanded.
func Cd(env *Env, args []string) error {
	var target string
	switch len(args) {
	case 1:
	case 2:
		target = args[1]
	default:
		PrintError(env.Stderr(), "Too many arguments to cd", nil)
		return nil
	}

	path := target
	if path == "" || strings.HasPrefix(path, vos.HomeMarker) {
		home, err := vos.HomeDir(env)
		if err != nil {
			PrintError(env.Stderr(), "Cannot resolve home directory", err)
			return nil
		}
		path = vos.ExpandHome(target, home)
	}

	if err := env.Chdir(path); err != nil {
		PrintError(env.Stderr(), "Cannot change directory to "+path, err)
	}
	return nil
}

var _ BuiltinFunc = Cd

func init() {
	addBuiltin("cd", "Change the working directory, defaults to home.", Cd)
}
