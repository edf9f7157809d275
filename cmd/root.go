package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/josephlewis42/minishell/commands"
	"github.com/josephlewis42/minishell/core"
	"github.com/josephlewis42/minishell/core/config"
	"github.com/josephlewis42/minishell/core/logger"
	"github.com/josephlewis42/minishell/core/vos"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "minishell",
		Short: "A minimal interactive shell",
		Long: `A minimal interactive shell with the builtins cd, pwd, lf (list files),
lp (list processes) and help. Anything else runs as an external program.

The configuration file is read from $` + config.EnvConfigPath + `.`,

		// Every argument, including what looks like a flag, is a usage error.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("no arguments expected. Found: %d", len(args))
			}
			return nil
		},
		RunE: runShell,
	}
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

// Execute runs the shell and exits with a non-zero status on failure.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func runShell(cmd *cobra.Command, args []string) error {
	diag := log.New(cmd.ErrOrStderr(), "[minishell] ", 0)
	hostFs := afero.NewOsFs()

	cfg, err := config.Load(hostFs, os.Getenv(config.EnvConfigPath))
	if err != nil {
		return err
	}

	eventLogger := logger.NewNopLogger()
	logFd, err := cfg.OpenEventLog(hostFs)
	switch {
	case err != nil:
		diag.Printf("Couldn't open event log, continuing without it: %v", err)
	case logFd != nil:
		defer logFd.Close()
		eventLogger = logger.NewJsonLinesLogRecorder(logFd)
	}
	session := eventLogger.NewSession()

	stdin, stdout, stderr := cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()
	virtOS := vos.NewHostOS(vos.NewStreams(stdin, stdout, stderr))
	env := &commands.Env{VOS: virtOS, Config: cfg}

	lines, interactive := newLineReader(cfg, stdin, stdout, stderr, diag)
	defer lines.Close()

	intr, stop := core.WatchInterrupts()
	defer stop()

	executor := core.NewExecutor(fileOr(stdin, os.Stdin), fileOr(stdout, os.Stdout), fileOr(stderr, os.Stderr), session)
	executor.Errors = stderr

	startEvent := &logger.SessionStart{Pid: os.Getpid(), Interactive: interactive}
	if u, err := virtOS.CurrentUser(); err == nil {
		startEvent.User = u.Username
	}
	if err := session.Record(startEvent); err != nil {
		diag.Printf("Couldn't record event: %v", err)
	}

	shellErr := core.NewShell(env, lines, executor, intr, session).Run()

	endEvent := &logger.SessionEnd{}
	if shellErr != nil {
		endEvent.Error = shellErr.Error()
	}
	if err := session.Record(endEvent); err != nil {
		diag.Printf("Couldn't record event: %v", err)
	}

	return shellErr
}

// newLineReader uses line editing when both ends are a terminal, and plain
// line reads otherwise.
func newLineReader(cfg *config.Configuration, stdin io.Reader, stdout, stderr io.Writer, diag *log.Logger) (core.LineReader, bool) {
	if cfg.LineEditing == config.LineEditingAuto && isTerminal(stdin) && isTerminal(stdout) {
		rl, err := core.NewReadlineReader(stdin, stdout, stderr, cfg.MaxLineLength)
		if err == nil {
			return rl, true
		}
		diag.Printf("Couldn't start line editing, falling back to plain input: %v", err)
	}
	return core.NewPipeReader(stdin, stdout, cfg.MaxLineLength), false
}

func isTerminal(stream interface{}) bool {
	f, ok := stream.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// fileOr returns stream if it is backed by a file descriptor that can be
// passed to a child, and fallback otherwise.
func fileOr(stream interface{}, fallback *os.File) *os.File {
	if f, ok := stream.(*os.File); ok {
		return f
	}
	return fallback
}
