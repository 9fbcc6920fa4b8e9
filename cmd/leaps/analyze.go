package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/leaps/internal/analysis"
	"github.com/rxtech-lab/leaps/internal/config"
	"github.com/rxtech-lab/leaps/internal/datasource"
	"github.com/rxtech-lab/leaps/internal/export"
	"github.com/rxtech-lab/leaps/internal/indicator"
	"github.com/rxtech-lab/leaps/internal/logger"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var dateLayouts = cli.TimestampConfig{
	Layouts: []string{"2006-01-02", time.RFC3339},
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Compute indicators, breakout signals and statistics for a symbol",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Analysis config `FILE` (YAML). Other flags are ignored when set",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Parquet or csv `FILE` holding the bars",
			},
			&cli.StringFlag{
				Name:    "symbol",
				Aliases: []string{"s"},
				Usage:   "Symbol to analyze",
			},
			&cli.TimestampFlag{
				Name:   "start",
				Usage:  "Inclusive start date in `YYYY-MM-DD` format",
				Config: dateLayouts,
			},
			&cli.TimestampFlag{
				Name:   "end",
				Usage:  "Inclusive end date in `YYYY-MM-DD` format",
				Config: dateLayouts,
			},
			&cli.IntFlag{
				Name:    "window",
				Aliases: []string{"w"},
				Usage:   "Breakout window in bars",
			},
			&cli.StringFlag{
				Name:    "period",
				Aliases: []string{"p"},
				Usage:   "Breakout period (1mo, 3mo, 6mo, 1y) used instead of --window",
			},
			&cli.StringFlag{
				Name:    "export",
				Aliases: []string{"o"},
				Usage:   "Write bars, indicators and signals to `FILE` (.parquet or .csv)",
			},
			&cli.IntFlag{
				Name:  "recent",
				Usage: "Number of most recent signals to print",
				Value: 10,
			},
		},
		Action: analyzeAction,
	}
}

func analyzeAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	cfg, err := analysisConfig(cmd)
	if err != nil {
		return err
	}

	result, window, err := runAnalysis(ctx, cfg, log)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.Root().Writer, renderReport(result, window, int(cmd.Int("recent"))))

	if cfg.Export.Path == "" {
		return nil
	}

	exported, err := export.NewExporter(log).Export(cfg.Export.Path, result.Symbol, result.Series, result.Indicators, result.Signals)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Root().Writer, "\nExported %s and %s\n", exported.BarsPath, exported.SignalsPath)

	return nil
}

// analysisConfig loads --config or assembles the same configuration from flags.
func analysisConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		return config.Load(path)
	}

	cfg := &config.Config{
		DataPath: cmd.String("data"),
		Symbol:   strings.ToUpper(cmd.String("symbol")),
		Start:    optional.None[time.Time](),
		End:      optional.None[time.Time](),
		Signal: config.SignalConfig{
			Window: int(cmd.Int("window")),
			Period: cmd.String("period"),
		},
	}

	if cmd.IsSet("start") {
		cfg.Start = optional.Some(cmd.Timestamp("start"))
	}

	if cmd.IsSet("end") {
		cfg.End = optional.Some(cmd.Timestamp("end"))
	}

	if path := cmd.String("export"); path != "" {
		format, err := datasource.FormatFromPath(path)
		if err != nil {
			return nil, err
		}

		cfg.Export = config.ExportConfig{Format: string(format), Path: path}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// runAnalysis opens the data file of cfg and analyzes its symbol.
func runAnalysis(ctx context.Context, cfg *config.Config, log *logger.Logger) (*analysis.Result, int, error) {
	ds, err := datasource.NewDataSource("", log)
	if err != nil {
		return nil, 0, err
	}

	defer func() {
		if cerr := ds.Close(); cerr != nil {
			log.Warn("Failed to close data source", zap.Error(cerr))
		}
	}()

	if err := ds.Initialize(cfg.DataPath); err != nil {
		return nil, 0, err
	}

	req, err := analysis.RequestFromConfig(cfg, indicator.NewDefaultRegistry())
	if err != nil {
		return nil, 0, err
	}

	result, err := analysis.NewAnalyzer(ds, log).Analyze(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	return result, req.Window, nil
}

// renderReport formats the summary, the latest indicator values, the most recent signals and
// the yearly performance. Prices are rounded to 2 decimals.
func renderReport(result *analysis.Result, window int, recent int) string {
	var s strings.Builder

	summary := result.Summary

	s.WriteString(TitleStyle.Render(fmt.Sprintf("%s analysis (breakout window %d)", result.Symbol, window)))
	s.WriteString("\n\n")

	rows := [][2]string{
		{"Period", fmt.Sprintf("%s to %s", summary.Start.Format("2006-01-02"), summary.End.Format("2006-01-02"))},
		{"Bars", fmt.Sprintf("%d (%d dropped)", summary.Bars, result.Dropped)},
		{"Last close", FormatPrice(summary.LastClose)},
		{"Period high", FormatPrice(summary.High)},
		{"Period low", FormatPrice(summary.Low)},
		{"Return", FormatPercent(summary.ReturnPct)},
		{"Average volume", FormatVolume(int64(summary.AverageVolume))},
		{"Max / min volume", FormatVolume(summary.MaxVolume) + " / " + FormatVolume(summary.MinVolume)},
		{"Mean daily return", FormatPercent(summary.MeanDailyReturn * 100)},
		{"Best / worst day", FormatPercent(summary.MaxDailyReturn*100) + " / " + FormatPercent(summary.MinDailyReturn*100)},
		{"Annualized volatility", FormatPercent(summary.AnnualizedVolatility * 100)},
	}

	for _, row := range rows {
		s.WriteString(LabelStyle.Render(row[0]))
		s.WriteString(row[1])
		s.WriteString("\n")
	}

	if last := result.Series.Len() - 1; last >= 0 {
		s.WriteString("\n")
		s.WriteString(TitleStyle.Render("Latest indicators"))
		s.WriteString("\n")

		for _, name := range result.Indicators.Names() {
			line, _ := result.Indicators.Get(name)
			s.WriteString(LabelStyle.Render(name))
			s.WriteString(FormatOptional(line, last))
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(TitleStyle.Render(fmt.Sprintf("Signals (%d)", len(result.Signals))))
	s.WriteString("\n")

	if len(result.Signals) == 0 {
		s.WriteString(HelpStyle.Render("No breakout signals in this period"))
		s.WriteString("\n")
	}

	start := max(len(result.Marks)-recent, 0)
	for _, mark := range result.Marks[start:] {
		s.WriteString(fmt.Sprintf("%s  %s  %s\n",
			mark.Signal.Time.Format("2006-01-02"),
			RenderMark(mark),
			FormatPrice(mark.Signal.Price)))
	}

	if len(result.Yearly) > 0 {
		s.WriteString("\n")
		s.WriteString(TitleStyle.Render("Yearly performance"))
		s.WriteString("\n")
		s.WriteString(fmt.Sprintf("%-6s %10s %10s %10s %10s %9s %16s\n", "Year", "First", "Last", "Max", "Min", "Change", "Volume"))

		for _, year := range result.Yearly {
			s.WriteString(fmt.Sprintf("%-6d %10s %10s %10s %10s %9s %16s\n",
				year.Year,
				FormatPrice(year.FirstClose),
				FormatPrice(year.LastClose),
				FormatPrice(year.MaxClose),
				FormatPrice(year.MinClose),
				FormatPercent(year.ChangePct),
				FormatVolume(year.TotalVolume)))
		}
	}

	return s.String()
}
