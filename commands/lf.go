package commands

import (
	"fmt"
	"sort"
)

// Lf lists the names in the working directory, one per line. Extra arguments
// are ignored.
func Lf(env *Env, args []string) error {
	dir, err := env.Getwd()
	if err != nil {
		PrintError(env.Stderr(), "Cannot get current working directory", err)
		return nil
	}

	fd, err := env.FS().Open(dir)
	if err != nil {
		PrintError(env.Stderr(), "Cannot open "+dir, err)
		return nil
	}
	defer fd.Close()

	names, err := fd.Readdirnames(-1)
	if err != nil {
		PrintError(env.Stderr(), "Cannot read "+dir, err)
		return nil
	}
	sort.Strings(names)

	w := env.Stdout()
	for _, name := range names {
		if name == "." || name == ".." {
			continue
		}
		fmt.Fprintln(w, name)
	}
	return nil
}

var _ BuiltinFunc = Lf

func init() {
	addBuiltin("lf", "List the files in the current directory.", Lf)
}
