package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"l14lite/pkg/config"
	"l14lite/pkg/state"
)

const (
	appName    = "louis14"
	appVersion = "0.14.0"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
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

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", appVersion), zap.String("runtime", runtime.Version()))
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

var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)
	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            appName,
		Usage:           "renders a small subset of HTML and CSS",
		Version:         appVersion + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log at debug level"},
		},
		Commands: []*cli.Command{
			{
				Name:         "render",
				Usage:        "Renders a page to a PNG image",
				OnUsageError: usageErrorHandler,
				Action:       renderPage,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "output.png", Usage: "write image to `FILE`"},
					&cli.IntFlag{Name: "width", Usage: "viewport width in pixels, overrides configuration"},
					&cli.IntFlag{Name: "height", Usage: "image height in pixels, overrides configuration"},
					&cli.BoolFlag{Name: "full", Usage: "make the image as tall as the whole document"},
					&cli.FloatFlag{Name: "scroll", Usage: "scroll offset of the image top edge in pixels"},
					&cli.StringFlag{Name: "expect", Usage: "compare the image with reference PNG `FILE` and fail on mismatch"},
					&cli.IntFlag{Name: "tolerance", Value: 2, Usage: "largest per-channel difference still counted as equal"},
					&cli.StringFlag{Name: "diff", Usage: "on mismatch write a diff image to `FILE`"},
				},
				ArgsUsage: "SOURCE",
				CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    http, https, file or data URL, or a path to a local HTML file
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "dump",
				Usage:        "Prints the DOM, the layout tree or the display list of a page",
				OnUsageError: usageErrorHandler,
				Action:       dumpPage,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "what", Value: dumpBoxes, Usage: "what to print: `KIND` is one of dom, boxes, display-list"},
					&cli.IntFlag{Name: "width", Usage: "viewport width in pixels, overrides configuration"},
				},
				ArgsUsage: "SOURCE",
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}
