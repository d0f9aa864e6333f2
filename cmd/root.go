package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"syscli/internal/config"
	"syscli/internal/dispatch"
	"syscli/internal/hooks"
	"syscli/internal/logger"
	"syscli/internal/version"
)

// Process exit codes.
const (
	ExitOK      = 0 // dispatch succeeded, or help/version was printed
	ExitFailure = 1 // a handler failed or the configuration could not be loaded
	ExitUsage   = 2 // the arguments did not select an operation
)

// App bundles what one invocation needs: the diagnostic sink, the dispatcher
// and the streams that help, version and usage text are written to.
type App struct {
	Log        *logger.Logger
	Dispatcher *dispatch.Dispatcher
	Stdout     io.Writer
	Stderr     io.Writer
}

// newRootCmd builds the `syscli` command tree.
//
// The tree only parses: each operation subcommand records its Operation into
// *selected and returns. Dispatch happens after cobra is done, so parsing and
// running stay separate steps.
func newRootCmd(selected **dispatch.InvocationArguments) *cobra.Command {
	root := &cobra.Command{
		Use:     "syscli",
		Short:   "System management CLI",
		Version: version.String(),

		// Errors and usage are reported by Run, which also picks the exit code.
		SilenceErrors: true,
		SilenceUsage:  true,

		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},

		// Any positional argument reaching the root is not a known subcommand.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := strings.Join(dispatch.OperationNames(), ", ")
			if len(args) == 0 {
				return &dispatch.UsageError{Msg: "missing subcommand (expected one of: " + names + ")"}
			}
			_, err := dispatch.ParseOperation(args[0])
			var ue *dispatch.UsageError
			if errors.As(err, &ue) {
				if suggestions := cmd.SuggestionsFor(args[0]); len(suggestions) > 0 {
					ue.Msg += "; did you mean " + strings.Join(suggestions, " or ") + "?"
				}
			}
			return err
		},
	}

	// -V instead of cobra's default -v. Declaring the flag ourselves stops cobra adding its own.
	root.Flags().BoolP("version", "V", false, "Print version information and exit")

	// Flag parse errors are usage errors like any other bad input.
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &dispatch.UsageError{Msg: err.Error()}
	})

	for _, op := range dispatch.Operations() {
		root.AddCommand(newOperationCmd(op, selected))
	}
	return root
}

// Parse maps argv (program name first) onto the operation to run.
//
// Help and version requests are written to stdout and yield nil arguments with
// a nil error. Every other failure is a *dispatch.UsageError carrying the usage
// text of the command that rejected the input.
func Parse(argv []string, stdout, stderr io.Writer) (*dispatch.InvocationArguments, error) {
	var selected *dispatch.InvocationArguments
	root := newRootCmd(&selected)
	root.SetOut(stdout)
	root.SetErr(stderr)

	// A non-nil slice keeps cobra from falling back to os.Args.
	args := []string{}
	if len(argv) > 1 {
		args = argv[1:]
	}
	root.SetArgs(args)

	failed, err := root.ExecuteC()
	if err != nil {
		var ue *dispatch.UsageError
		if !errors.As(err, &ue) {
			ue = &dispatch.UsageError{Msg: err.Error()}
		}
		if failed != nil {
			ue.Usage = failed.UsageString()
		}
		return nil, ue
	}
	return selected, nil
}

// Run performs one invocation: parse argv, then dispatch the selected operation.
// It returns the process exit code.
func Run(ctx context.Context, argv []string, app *App) int {
	app.Log.Trace("Starting system CLI...")

	inv, err := Parse(argv, app.Stdout, app.Stderr)
	if err != nil {
		reportUsage(app.Stderr, err)
		return ExitUsage
	}
	if inv == nil {
		return ExitOK
	}

	if err := app.Dispatcher.Dispatch(ctx, inv.Op); err != nil {
		app.Log.Error("%v", err)
		return exitCode(err)
	}
	return ExitOK
}

// reportUsage prints a usage error and the generated usage text.
func reportUsage(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	var ue *dispatch.UsageError
	if errors.As(err, &ue) && ue.Usage != "" {
		fmt.Fprint(w, ue.Usage)
	}
}

// exitCode maps a dispatch error onto a process exit code.
func exitCode(err error) int {
	var ue *dispatch.UsageError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &ue):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// Execute wires the process together and runs it. The returned value is the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return execute(ctx, os.Args, os.Getenv, os.Stdout, os.Stderr)
}

// execute reads the configuration, creates the logger and runs argv.
//
// The configuration is read first (silently) so the logger can be created with
// the right level, and the logger exists before any argument is parsed. A broken
// configuration does not stop help, version or usage output: the logger falls back
// to defaults and the error surfaces only if an operation is dispatched.
func execute(ctx context.Context, argv []string, getenv func(string) string, stdout, stderr io.Writer) int {
	cfg, cfgErr := config.Resolve(getenv)
	if cfgErr != nil {
		cfg = config.Default()
	}
	log := logger.New(stderr, cfg.Level(), cfg.ColorMode())

	handlers := hooks.NewRunner(log, stdout, stderr).Handlers(cfg)
	if cfgErr != nil {
		handlers = failingHandlers(cfgErr)
	}

	app := &App{
		Log:        log,
		Dispatcher: dispatch.New(log, handlers),
		Stdout:     stdout,
		Stderr:     stderr,
	}
	return Run(ctx, argv, app)
}

// failingHandlers returns a table in which every operation fails with err.
func failingHandlers(err error) dispatch.Handlers {
	handlers := dispatch.Handlers{}
	for _, op := range dispatch.Operations() {
		handlers[op] = func(context.Context) error { return err }
	}
	return handlers
}
