package core

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/josephlewis42/minishell/commands"
	"github.com/josephlewis42/minishell/core/logger"
)

// Runner runs an external program in the foreground.
type Runner interface {
	Run(argv []string)
}

var _ Runner = (*Executor)(nil)

// Shell is the read-dispatch-execute loop.
type Shell struct {
	Env    *commands.Env
	Lines  LineReader
	Runner Runner
	Intr   *Interrupt
	Events *logger.SessionLogger

	colors *commands.ColorPrinter
}

// NewShell wires a shell together. The interrupt flag is shared with
// whatever raises it, normally WatchInterrupts.
func NewShell(env *commands.Env, lines LineReader, runner Runner, intr *Interrupt, events *logger.SessionLogger) *Shell {
	if events == nil {
		events = logger.NewNopLogger().NewSession()
	}

	return &Shell{
		Env:    env,
		Lines:  lines,
		Runner: runner,
		Intr:   intr,
		Events: events,
		colors: commands.NewColorPrinter(env.Config.Color, env.Stdout()),
	}
}

func (s *Shell) prompt() string {
	cwd, err := s.Env.Getwd()
	if err != nil {
		commands.PrintError(s.Env.Stderr(), "Cannot get current working directory", err)
		return s.colors.Sprintf(commands.ColorBoldBlue, "> ")
	}
	return s.colors.Sprintf(commands.ColorBoldBlue, "[%s]> ", cwd)
}

// Run prompts for and executes lines until end of input or exit. It returns
// nil on a normal exit and the error of a builtin that failed fatally.
func (s *Shell) Run() error {
	for {
		if s.Intr.Clear() {
			s.interrupted()
			continue
		}

		line, err := s.Lines.ReadLine(s.prompt(), s.Intr)
		switch {
		case errors.Is(err, ErrInterrupted):
			// The partial line is dropped either way.
			if s.Intr.Clear() {
				s.interrupted()
			}
			continue

		case errors.Is(err, ErrLineTooLong):
			commands.PrintError(s.Env.Stderr(), "Input line too long",
				fmt.Errorf("limit is %d bytes", s.Env.Config.MaxLineLength))
			continue

		case errors.Is(err, io.EOF):
			if s.Intr.Clear() {
				s.interrupted()
				continue
			}
			return nil

		case err != nil:
			commands.PrintError(s.Env.Stderr(), "Cannot read input", err)
			return nil
		}

		quit, err := s.Execute(line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (s *Shell) interrupted() {
	fmt.Fprintln(s.Env.Stdout())
	_ = s.Events.Record(&logger.Interrupt{})
}

// Execute runs a single input line and reports whether the shell should
// quit. Only fatal builtin failures are returned.
func (s *Shell) Execute(line string) (quit bool, err error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false, nil
	}
	if trimmed == commands.ExitKeyword {
		return true, nil
	}

	args := strings.Fields(trimmed)
	builtin, isBuiltin := commands.AllBuiltins[args[0]]
	_ = s.Events.Record(&logger.Command{Line: trimmed, Builtin: isBuiltin})

	if !isBuiltin {
		s.Runner.Run(args)
		return false, nil
	}

	switch err := builtin.Main(s.Env, args); {
	case commands.IsFatal(err):
		return true, err
	case err != nil:
		commands.PrintError(s.Env.Stderr(), builtin.Name+" failed", err)
	}
	return false, nil
}
