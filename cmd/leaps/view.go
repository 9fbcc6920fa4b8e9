package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/leaps/internal/analysis"
	"github.com/rxtech-lab/leaps/internal/config"
	"github.com/rxtech-lab/leaps/internal/datasource"
	"github.com/rxtech-lab/leaps/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func viewCommand() *cli.Command {
	return &cli.Command{
		Name:  "view",
		Usage: "Browse the bars and breakout signals of a data file in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "data",
				Aliases:  []string{"d"},
				Usage:    "Parquet or csv `FILE` holding the bars",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "period",
				Aliases: []string{"p"},
				Usage:   "Breakout period (1mo, 3mo, 6mo, 1y)",
				Value:   "1mo",
			},
		},
		Action: viewAction,
	}
}

func viewAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	window, err := config.SignalWindowForPeriod(cmd.String("period"))
	if err != nil {
		return err
	}

	ds, err := datasource.NewDataSource("", log)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := ds.Close(); cerr != nil {
			log.Warn("Failed to close data source", zap.Error(cerr))
		}
	}()

	if err := ds.Initialize(cmd.String("data")); err != nil {
		return err
	}

	symbols, err := ds.GetAllSymbols(ctx)
	if err != nil {
		return err
	}

	if len(symbols) == 0 {
		return errors.Newf(errors.ErrCodeNoDataFound, "no symbols in %s", cmd.String("data"))
	}

	analyzer := analysis.NewAnalyzer(ds, log)
	loader := func(symbol string) (*analysis.Result, error) {
		return analyzer.Analyze(ctx, analysis.Request{
			Symbol: symbol,
			Start:  optional.None[time.Time](),
			End:    optional.None[time.Time](),
			Window: window,
		})
	}

	_, err = tea.NewProgram(NewModel(symbols, window, loader), tea.WithAltScreen(), tea.WithContext(ctx)).Run()

	return err
}
