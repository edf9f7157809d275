package commands

import (
	"fmt"
)

// Pwd prints the working directory. Extra arguments are ignored.
//
// Unlike every other builtin, failing to query the directory ends the shell.
func Pwd(env *Env, args []string) error {
	pwd, err := env.Getwd()
	if err != nil {
		return Fatal("Cannot get current working directory", err)
	}

	fmt.Fprintln(env.Stdout(), pwd)
	return nil
}

var _ BuiltinFunc = Pwd

func init() {
	addBuiltin("pwd", "Print the name of the current working directory.", Pwd)
}
