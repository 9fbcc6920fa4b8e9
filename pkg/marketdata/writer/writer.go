// Package writer persists downloaded or generated bars to parquet or csv files.
package writer

import (
	"github.com/rxtech-lab/leaps/internal/types"
)

// MarketDataWriter defines the interface for writing market data to a destination.
type MarketDataWriter interface {
	// Initialize sets up the writer, potentially creating tables or files.
	Initialize() error
	// Write persists a single bar of symbol.
	Write(symbol string, bar types.Bar) error
	// Finalize completes the writing process (e.g., commits transactions, exports files).
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}

// WriteSeries initializes w, writes every bar of series and finalizes. The caller still closes w.
func WriteSeries(w MarketDataWriter, symbol string, series types.Series) (string, error) {
	if err := w.Initialize(); err != nil {
		return "", err
	}

	for _, bar := range series {
		if err := w.Write(symbol, bar); err != nil {
			return "", err
		}
	}

	return w.Finalize()
}
