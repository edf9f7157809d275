package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/josephlewis42/minishell/core/config"
	"github.com/josephlewis42/minishell/core/vos"
	"github.com/mattn/go-isatty"
)

// Env is handed to every builtin invocation.
type Env struct {
	vos.VOS
	Config *config.Configuration
}

// BuiltinFunc runs a builtin. args[0] holds the name the builtin was invoked
// with. Recoverable failures are reported by the builtin itself or returned
// as plain errors; a *FatalError ends the shell.
type BuiltinFunc func(env *Env, args []string) error

// Builtin is a registered shell builtin.
type Builtin struct {
	Name  string
	Short string
	Main  BuiltinFunc
}

// AllBuiltins holds all registered builtins keyed by name.
var AllBuiltins = make(map[string]*Builtin)

func addBuiltin(name, short string, main BuiltinFunc) {
	if _, ok := AllBuiltins[name]; ok {
		panic(fmt.Sprintf("builtin %q registered twice", name))
	}
	AllBuiltins[name] = &Builtin{Name: name, Short: short, Main: main}
}

// ListBuiltins returns the registered builtins sorted by name.
func ListBuiltins() []*Builtin {
	var out []*Builtin
	for _, b := range AllBuiltins {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// FatalError is a failure that terminates the shell.
type FatalError struct {
	What string
	Err  error
}

func (f *FatalError) Error() string {
	return Describe(f.What, f.Err)
}

func (f *FatalError) Unwrap() error {
	return f.Err
}

// Fatal wraps err so the shell exits after reporting it.
func Fatal(what string, err error) error {
	return &FatalError{What: what, Err: err}
}

// IsFatal reports whether err must terminate the shell.
func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}

// Describe formats a failure as "<what>. <os-error>." with the OS error text
// written the way strerror(3) does.
func Describe(what string, err error) string {
	if err == nil {
		return what + "."
	}
	return fmt.Sprintf("%s. %s.", what, ErrorText(err))
}

// PrintError writes a single "Error: ..." line.
func PrintError(w io.Writer, what string, err error) {
	fmt.Fprintf(w, "Error: %s\n", Describe(what, err))
}

// PrintWarning writes a single "Warning: ..." line.
func PrintWarning(w io.Writer, what string, err error) {
	fmt.Fprintf(w, "Warning: %s\n", Describe(what, err))
}

// ErrorText extracts the OS level description from err.
func ErrorText(err error) string {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return capitalize(errno.Error())
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return capitalize(pathErr.Err.Error())
	}

	var syscallErr *os.SyscallError
	if errors.As(err, &syscallErr) {
		return capitalize(syscallErr.Err.Error())
	}

	return capitalize(err.Error())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var (
	ColorBoldBlue = color.New(color.FgBlue, color.Bold)
)

// ColorPrinter decides whether output to a stream is colored.
type ColorPrinter struct {
	mode string
	out  io.Writer
}

// NewColorPrinter creates a printer for mode (always|auto|never) writing to
// out. In auto mode color is used only when out is a terminal.
func NewColorPrinter(mode string, out io.Writer) *ColorPrinter {
	return &ColorPrinter{mode: mode, out: out}
}

func (c *ColorPrinter) ShouldColor() bool {
	switch c.mode {
	case config.ColorNever:
		return false
	case config.ColorAlways:
		return true
	default:
		f, ok := c.out.(*os.File)
		return ok && isatty.IsTerminal(f.Fd())
	}
}

func (c *ColorPrinter) Sprintf(col *color.Color, format string, a ...interface{}) string {
	if !c.ShouldColor() {
		return fmt.Sprintf(format, a...)
	}

	// Copy so the shared color's state isn't modified.
	forced := *col
	forced.EnableColor()
	return forced.Sprintf(format, a...)
}
