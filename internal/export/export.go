// Package export writes an analysis result (bars, indicator lines and signals) to parquet or csv.
package export

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/leaps/internal/datasource"
	"github.com/rxtech-lab/leaps/internal/logger"
	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/pkg/errors"
	"go.uber.org/zap"
)

// Result lists the files written by Export.
type Result struct {
	BarsPath    string
	SignalsPath string
}

// Exporter stages results in an in-memory DuckDB database and writes them with COPY.
type Exporter struct {
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewExporter creates an exporter. A nil logger discards output.
func NewExporter(log *logger.Logger) *Exporter {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Exporter{
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// SignalsPath derives the signal file path from the bars path: out/AAPL.csv becomes out/AAPL_signals.csv.
func SignalsPath(barsPath string) string {
	ext := filepath.Ext(barsPath)

	return strings.TrimSuffix(barsPath, ext) + "_signals" + ext
}

// Export writes one row per bar with a column per indicator line to path, and the signals
// to SignalsPath(path). Undefined indicator values are written as NULL. The format follows
// the extension of path.
func (e *Exporter) Export(path string, symbol string, series types.Series, set types.IndicatorSet, signals []types.SignalEvent) (Result, error) {
	format, err := datasource.FormatFromPath(path)
	if err != nil {
		return Result{}, err
	}

	if set.Len() != series.Len() {
		return Result{}, errors.Newf(errors.ErrCodeExportFailed, "indicator set has %d positions but series has %d bars", set.Len(), series.Len())
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeExportFailed, "failed to open DuckDB connection", err)
	}
	defer db.Close()

	names := set.Names()

	if err := e.createTables(db, names); err != nil {
		return Result{}, err
	}

	if err := e.insertBars(db, symbol, series, set, names); err != nil {
		return Result{}, err
	}

	if err := e.insertSignals(db, symbol, signals); err != nil {
		return Result{}, err
	}

	result := Result{BarsPath: path, SignalsPath: SignalsPath(path)}

	if err := copyTo(db, "SELECT * FROM bars ORDER BY time", result.BarsPath, format); err != nil {
		return Result{}, err
	}

	if err := copyTo(db, "SELECT * FROM signals ORDER BY time", result.SignalsPath, format); err != nil {
		return Result{}, err
	}

	e.logger.Info("Exported analysis",
		zap.String("symbol", symbol),
		zap.String("bars", result.BarsPath),
		zap.String("signals", result.SignalsPath),
		zap.Int("indicators", len(names)),
		zap.Int("signalCount", len(signals)),
	)

	return result, nil
}

func (e *Exporter) createTables(db *sql.DB, names []string) error {
	columns := []string{
		"time TIMESTAMP",
		"symbol VARCHAR",
		"open DOUBLE",
		"high DOUBLE",
		"low DOUBLE",
		"close DOUBLE",
		"volume BIGINT",
	}
	for _, name := range names {
		columns = append(columns, quoteIdent(name)+" DOUBLE")
	}

	if _, err := db.Exec(fmt.Sprintf("CREATE TABLE bars (%s)", strings.Join(columns, ", "))); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to create bars table", err)
	}

	_, err := db.Exec(`
		CREATE TABLE signals (
			id VARCHAR,
			time TIMESTAMP,
			symbol VARCHAR,
			kind VARCHAR,
			price DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to create signals table", err)
	}

	return nil
}

func (e *Exporter) insertBars(db *sql.DB, symbol string, series types.Series, set types.IndicatorSet, names []string) error {
	if series.Len() == 0 {
		return nil
	}

	columns := []string{"time", "symbol", "open", "high", "low", "close", "volume"}
	for _, name := range names {
		columns = append(columns, quoteIdent(name))
	}

	insert := e.sq.Insert("bars").Columns(columns...)

	for i, bar := range series {
		values := []any{bar.Time, symbol, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume}

		for _, name := range names {
			line, _ := set.Get(name)
			values = append(values, nullable(line, i))
		}

		insert = insert.Values(values...)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to build bars insert", err)
	}

	if _, err := db.Exec(query, args...); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to insert bars", err)
	}

	return nil
}

func (e *Exporter) insertSignals(db *sql.DB, symbol string, signals []types.SignalEvent) error {
	if len(signals) == 0 {
		return nil
	}

	insert := e.sq.Insert("signals").Columns("id", "time", "symbol", "kind", "price")
	for _, signal := range signals {
		insert = insert.Values(uuid.New().String(), signal.Time, symbol, string(signal.Kind), signal.Price)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to build signals insert", err)
	}

	if _, err := db.Exec(query, args...); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to insert signals", err)
	}

	return nil
}

func copyTo(db *sql.DB, query string, path string, format datasource.Format) error {
	options := "FORMAT PARQUET"
	if format == datasource.FormatCSV {
		options = "FORMAT CSV, HEADER"
	}

	_, err := db.Exec(fmt.Sprintf("COPY (%s) TO '%s' (%s)", query, strings.ReplaceAll(path, "'", "''"), options))
	if err != nil {
		return errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to export to %s", path)
	}

	return nil
}

// nullable returns the value at i or nil for undefined and missing positions.
func nullable(line types.Line, i int) any {
	if i >= len(line) || line[i].IsNone() {
		return nil
	}

	return line[i].Unwrap()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
