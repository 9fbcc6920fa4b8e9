package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rxtech-lab/leaps/internal/config"
	"github.com/rxtech-lab/leaps/internal/datasource"
	"github.com/rxtech-lab/leaps/pkg/errors"
	"github.com/rxtech-lab/leaps/pkg/marketdata"
	"github.com/urfave/cli/v3"
)

// polygonAPIKeyEnv names the environment variable holding the Polygon.io API key.
const polygonAPIKeyEnv = "POLYGON_API_KEY"

func fetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Download historical bars from Polygon.io (API key from " + polygonAPIKeyEnv + ")",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "JSON download config `FILE`. Replaces ticker, dates, interval and format",
			},
			&cli.StringFlag{
				Name:    "ticker",
				Aliases: []string{"t"},
				Usage:   "Stock ticker symbol",
			},
			&cli.TimestampFlag{
				Name:    "start",
				Aliases: []string{"s"},
				Usage:   "Start date in `YYYY-MM-DD` format. Defaults to end minus --period",
				Config:  dateLayouts,
			},
			&cli.TimestampFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "End date in `YYYY-MM-DD` format. Defaults to today",
				Config:  dateLayouts,
			},
			&cli.StringFlag{
				Name:    "period",
				Aliases: []string{"p"},
				Usage:   "Look-back period when --start is not set (1mo, 3mo, 6mo, 1y, 2y, 5y, 10y, ytd, max)",
				Value:   "1y",
			},
			&cli.StringFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Bar interval (1m, 5m, 15m, 30m, 1h, 4h, 1d, 1w, 1M)",
				Value:   string(marketdata.TimespanOneDay),
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to the data output directory",
				Value:   "data",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format (parquet, csv)",
				Value: string(datasource.FormatParquet),
			},
		},
		Action: fetchAction,
	}
}

func fetchAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	downloadConfig, err := fetchConfig(cmd, time.Now().UTC())
	if err != nil {
		return err
	}

	params, err := downloadConfig.ToDownloadParams()
	if err != nil {
		return err
	}

	client, err := marketdata.NewClient(downloadConfig.ToClientConfig(cmd.String("data"), os.Getenv(polygonAPIKeyEnv)), nil, log)
	if err != nil {
		return err
	}

	path, err := client.Download(ctx, params)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Root().Writer, "Downloaded %s to %s\n", params.Ticker, path)

	return nil
}

// fetchConfig reads --config or builds a download config from flags relative to now.
func fetchConfig(cmd *cli.Command, now time.Time) (*marketdata.DownloadConfig, error) {
	if path := cmd.String("config"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read download config %s", path)
		}

		return marketdata.ParseDownloadConfig(string(data))
	}

	end := now
	if cmd.IsSet("end") {
		end = cmd.Timestamp("end")
	}

	start, err := fetchStart(cmd.String("period"), end)
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("start") {
		start = cmd.Timestamp("start")
	}

	downloadConfig := &marketdata.DownloadConfig{
		Ticker:    strings.ToUpper(cmd.String("ticker")),
		StartDate: start.Format(time.RFC3339),
		EndDate:   end.Format(time.RFC3339),
		Interval:  cmd.String("interval"),
		Format:    cmd.String("format"),
	}

	if err := downloadConfig.Validate(); err != nil {
		return nil, err
	}

	return downloadConfig, nil
}

// fetchStart resolves a look-back period to a start date. ytd starts on January 1st of end's year.
func fetchStart(period string, end time.Time) (time.Time, error) {
	if period == "ytd" {
		return time.Date(end.Year(), 1, 1, 0, 0, 0, 0, end.Location()), nil
	}

	days, err := config.LookbackDays(period)
	if err != nil {
		return time.Time{}, err
	}

	return end.AddDate(0, 0, -days), nil
}
