package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rxtech-lab/leaps/internal/logger"
	"github.com/rxtech-lab/leaps/internal/version"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

// newApp builds the root command. Split from main so the commands can be run from tests.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "leaps",
		Usage:   "Technical indicators and breakout signals for OHLCV series",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log at debug level",
			},
		},
		Commands: []*cli.Command{
			analyzeCommand(),
			fetchCommand(),
			sampleCommand(),
			schemaCommand(),
			serveCommand(),
			viewCommand(),
			versionCommand(),
		},
	}
}

// newLogger creates the command logger on stderr. Without --verbose only warnings and errors are
// logged.
func newLogger(cmd *cli.Command) (*logger.Logger, error) {
	level := zapcore.WarnLevel
	if cmd.Bool("verbose") {
		level = zapcore.DebugLevel
	}

	log, err := logger.NewLoggerWithOutput(level, "stderr")
	if err != nil {
		return nil, err
	}

	return log.Named(cmd.Name), nil
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the version",
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintln(cmd.Root().Writer, version.GetVersion())

			return err
		},
	}
}
