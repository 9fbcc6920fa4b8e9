// Package datasource reads bar series out of local parquet or CSV files through DuckDB.
package datasource

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/leaps/internal/types"
)

// Format is the on-disk layout of a market data file.
type Format string

const (
	FormatParquet Format = "parquet"
	FormatCSV     Format = "csv"
)

// DataSource provides time-ascending bar series for a symbol.
type DataSource interface {
	// Initialize points the data source at a parquet or csv file. The format is taken from the extension.
	Initialize(path string) error
	// ReadSeries reads every bar of symbol within the optional inclusive time range, oldest first
	ReadSeries(ctx context.Context, symbol string, start optional.Option[time.Time], end optional.Option[time.Time]) (types.Series, error)
	// ReadLastBars reads the most recent count bars of symbol, oldest first
	ReadLastBars(ctx context.Context, symbol string, count int) (types.Series, error)
	// GetAllSymbols returns the distinct symbols in lexical order
	GetAllSymbols(ctx context.Context) ([]string, error)
	// Count returns the number of bars of symbol within the optional inclusive time range
	Count(ctx context.Context, symbol string, start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close closes the data source and releases any resources
	Close() error
}
