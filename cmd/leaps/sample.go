package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rxtech-lab/leaps/internal/sample"
	"github.com/rxtech-lab/leaps/pkg/errors"
	"github.com/rxtech-lab/leaps/pkg/marketdata/writer"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func sampleCommand() *cli.Command {
	return &cli.Command{
		Name:  "sample",
		Usage: "Generate a deterministic synthetic data file for demos and tests",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "symbols",
				Usage: "Comma-separated symbols",
				Value: "AAPL",
			},
			&cli.IntFlag{
				Name:  "days",
				Usage: "Calendar days to cover",
				Value: 365,
			},
			&cli.TimestampFlag{
				Name:   "end",
				Usage:  "Last calendar day in `YYYY-MM-DD` format. Defaults to today",
				Config: dateLayouts,
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Random seed. Defaults to a seed derived from each symbol",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output `FILE` (.parquet or .csv)",
				Value:   filepath.Join("data", "sample.parquet"),
			},
		},
		Action: sampleAction,
	}
}

func sampleAction(_ context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	symbols := ParseSymbols(cmd.String("symbols"))
	if len(symbols) == 0 {
		return errors.New(errors.ErrCodeMissingParameter, "at least one symbol is required")
	}

	days := int(cmd.Int("days"))
	if days <= 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "days must be positive, got %d", days)
	}

	end := time.Now().UTC()
	if cmd.IsSet("end") {
		end = cmd.Timestamp("end")
	}

	output := cmd.String("output")
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to create %s", filepath.Dir(output))
	}

	w := writer.NewDuckDBWriter(output, log)
	defer func() {
		if cerr := w.Close(); cerr != nil {
			log.Warn("Failed to close writer", zap.Error(cerr))
		}
	}()

	if err := w.Initialize(); err != nil {
		return err
	}

	total := 0

	for _, symbol := range symbols {
		generator := sample.NewGeneratorForSymbol(symbol)
		if cmd.IsSet("seed") {
			generator = sample.NewGenerator(int64(cmd.Int("seed")))
		}

		bars := generator.Generate(sample.DefaultConfig(symbol, end, days))
		for _, bar := range bars {
			if err := w.Write(symbol, bar); err != nil {
				return err
			}
		}

		total += bars.Len()
		log.Debug("Generated sample bars", zap.String("symbol", symbol), zap.Int("bars", bars.Len()))
	}

	path, err := w.Finalize()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Root().Writer, "Wrote %d bars for %s to %s\n", total, strings.Join(symbols, ", "), path)

	return nil
}

// ParseSymbols parses comma-separated symbols into a slice.
func ParseSymbols(input string) []string {
	parts := strings.Split(input, ",")
	symbols := make([]string, 0, len(parts))

	for _, p := range parts {
		s := strings.TrimSpace(strings.ToUpper(p))
		if s != "" {
			symbols = append(symbols, s)
		}
	}

	return symbols
}
