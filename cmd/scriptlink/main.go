package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/goliatone/go-scriptlink/internal/config"
	"github.com/goliatone/go-scriptlink/internal/state"
	"github.com/goliatone/go-scriptlink/pkg/orchestrator"
)

const appName = "scriptlink"

// version is set at build time.
var version = "dev"

// initializeAppContext prepares application context before command execution
// but after the command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.ConsoleLogger.Level = "debug"
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", version), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()
	return nil
}

// Subcommands return regular errors; they are logged here before the
// application context is destroyed.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)
	if env.Cfg != nil && env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = env.Cfg.Logging.ConsoleLogger.Level != "none"
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func ioFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Value: "-", Usage: "read the Option document from `FILE` (JSON or YAML), - for STDIN"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the result to `FILE` instead of STDOUT"},
	}
}

func formFlags(required bool) []cli.Flag {
	return append(ioFlags(),
		&cli.StringFlag{Name: "form", Aliases: []string{"f"}, Required: required, Usage: "target form `ID`"},
		&cli.StringFlag{Name: "row", Aliases: []string{"r"}, Usage: "target row `ID` (defaults to the current row)"},
	)
}

func mutateFlags(required bool) []cli.Flag {
	return append(formFlags(required),
		&cli.StringFlag{Name: "format", Usage: "output `FORMAT` (json or yaml), defaults to the input format"},
	)
}

func flagCommands() []*cli.Command {
	usages := map[orchestrator.OperationKind]string{
		orchestrator.OpEnable:   "Enables fields of the current row",
		orchestrator.OpDisable:  "Disables fields of the current row, or every field of every row when none are given",
		orchestrator.OpRequire:  "Marks fields of the current row as required",
		orchestrator.OpOptional: "Marks fields of the current row as optional",
		orchestrator.OpLock:     "Locks fields of the current row",
		orchestrator.OpUnlock:   "Unlocks fields of the current row",
	}
	var out []*cli.Command
	for _, kind := range orchestrator.OperationKinds() {
		usage, ok := usages[kind]
		if !ok {
			continue
		}
		out = append(out, &cli.Command{
			Name:         string(kind),
			Usage:        usage,
			OnUsageError: usageErrorHandler,
			Action:       runFlagOperation(kind),
			Flags:        mutateFlags(false),
			ArgsUsage:    "FIELD...",
		})
	}
	return out
}

func newApp() *cli.Command {
	commands := []*cli.Command{
		{
			Name:         "get",
			Usage:        "Prints field values of the current row (or --row)",
			OnUsageError: usageErrorHandler,
			Action:       runGet,
			Flags: append(formFlags(true),
				&cli.BoolFlag{Name: "details", Usage: "print enabled, required and locked state next to each value"},
			),
			ArgsUsage: "FIELD...",
		},
		{
			Name:         "values",
			Usage:        "Prints every value a field holds across the rows of a form",
			OnUsageError: usageErrorHandler,
			Action:       runValues,
			Flags:        formFlags(true),
			ArgsUsage:    "FIELD",
		},
		{
			Name:         "set",
			Usage:        "Sets field values and writes the revised Option",
			OnUsageError: usageErrorHandler,
			Action:       runSet,
			Flags:        mutateFlags(true),
			ArgsUsage:    "FIELD VALUE [FIELD VALUE...]",
		},
		{
			Name:         "apply",
			Usage:        "Applies the operations listed in a preset file",
			OnUsageError: usageErrorHandler,
			Action:       runApply,
			Flags: append(mutateFlags(false),
				&cli.StringFlag{Name: "preset", Aliases: []string{"p"}, Required: true, Usage: "read operations from `FILE` (YAML or JSON)"},
			),
		},
		{
			Name:         "render",
			Usage:        "Renders the Option as HTML",
			OnUsageError: usageErrorHandler,
			Action:       runRender,
			Flags: append(ioFlags(),
				&cli.StringFlag{Name: "renderer", Usage: "renderer `NAME` (markup or page), defaults to configuration"},
				&cli.StringFlag{Name: "title", Usage: "override the document title"},
				&cli.BoolFlag{Name: "fragment", Usage: "omit the html/head/body wrapper"},
			),
		},
		{
			Name:         "validate",
			Usage:        "Checks the Option document and lists problems",
			OnUsageError: usageErrorHandler,
			Action:       runValidate,
			Flags:        ioFlags(),
		},
		{
			Name:         "edit",
			Usage:        "Edits field values interactively",
			OnUsageError: usageErrorHandler,
			Action:       runEdit,
			Flags: append(mutateFlags(false),
				&cli.BoolFlag{Name: "confirm", Value: true, Usage: "ask before applying edits"},
			),
			CustomHelpTemplate: fmt.Sprintf(`%s
The Option document must come from --input FILE, STDIN is used for prompts.
`, cli.CommandHelpTemplate),
		},
		{
			Name:         "dumpconfig",
			Usage:        "Dumps either default or actual configuration (YAML)",
			OnUsageError: usageErrorHandler,
			Action:       outputConfiguration,
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
			},
			ArgsUsage: "DESTINATION",
		},
	}
	commands = append(commands, flagCommands()...)

	kinds := make([]string, 0, len(orchestrator.OperationKinds()))
	for _, kind := range orchestrator.OperationKinds() {
		kinds = append(kinds, string(kind))
	}

	return &cli.Command{
		Name:            appName,
		Usage:           "reads, changes and renders ScriptLink Option documents (operations: " + strings.Join(kinds, ", ") + ")",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log debug messages to the console"},
			&cli.BoolFlag{Name: "legacy", Usage: "treat documents as the legacy Option generation (no SessionToken)"},
		},
		Commands: commands,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	var err error
	// os.Exit is called at the end of main to set the exit code, no deferred
	// functions may follow
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = newApp().Run(ctx, os.Args)
}
