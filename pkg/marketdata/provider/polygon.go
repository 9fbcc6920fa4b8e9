package provider

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/rxtech-lab/leaps/internal/logger"
	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/pkg/errors"
	"github.com/rxtech-lab/leaps/pkg/marketdata/writer"
)

// PolygonAggsIterator is the part of the polygon aggregates iterator the client consumes.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient lists aggregates. It is satisfied by polygonRestClient and by test doubles.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
}

type polygonRestClient struct {
	client *polygon.Client
}

func (p *polygonRestClient) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return p.client.ListAggs(ctx, params, options...)
}

type PolygonClient struct {
	apiClient      PolygonAPIClient
	writer         writer.MarketDataWriter
	logger         *logger.Logger
	progressOutput io.Writer
}

// NewPolygonClient creates a provider backed by the Polygon.io REST API.
func NewPolygonClient(apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "apiKey is required")
	}

	return &PolygonClient{
		apiClient:      &polygonRestClient{client: polygon.New(apiKey)},
		writer:         nil,
		logger:         logger.NewNopLogger(),
		progressOutput: os.Stderr,
	}, nil
}

// NewPolygonClientWithAPI creates a client over any PolygonAPIClient. The progress bar is discarded.
func NewPolygonClientWithAPI(api PolygonAPIClient) *PolygonClient {
	return &PolygonClient{
		apiClient:      api,
		writer:         nil,
		logger:         logger.NewNopLogger(),
		progressOutput: io.Discard,
	}
}

// WithLogger sets the logger used to report download results.
func (c *PolygonClient) WithLogger(log *logger.Logger) *PolygonClient {
	if log != nil {
		c.logger = log
	}

	return c
}

func (c *PolygonClient) ConfigWriter(w writer.MarketDataWriter) {
	c.writer = w
}

func (c *PolygonClient) Download(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, multiplier int, timespan models.Timespan, onProgress OnDownloadProgress) (path string, err error) {
	if c.writer == nil {
		return "", errors.New(errors.ErrCodeMarketDataFetchFailed, "no writer configured for PolygonClient. Call ConfigWriter first")
	}

	err = c.writer.Initialize()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to initialize writer", err)
	}

	defer func() {
		if cerr := c.writer.Close(); cerr != nil {
			if err == nil {
				err = errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "error closing writer", cerr)
			} else {
				c.logger.Warn("Error closing writer after another error", zap.Error(cerr))
			}
		}
	}()

	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	message := fmt.Sprintf("Downloading %s", ticker)

	bar := progressbar.NewOptions(totalDays,
		progressbar.OptionSetDescription(message),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(c.progressOutput))

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: multiplier,
		Timespan:   timespan,
		From:       models.Millis(startDate),
		To:         models.Millis(endDate),
	}.WithLimit(50000)

	iter := c.apiClient.ListAggs(ctx, params)

	processedCount := 0

	for iter.Next() {
		agg := iter.Item()
		barTime := time.Time(agg.Timestamp).UTC()

		err = c.writer.Write(ticker, types.Bar{
			Time:   barTime,
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: int64(math.Round(agg.Volume)),
		})
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to write data", err)
		}

		processedCount++

		// progress is measured in days so minute bars cannot push it past 100%
		daysElapsed := min(max(int(barTime.Sub(startDate).Hours()/24), 0), totalDays)
		_ = bar.Set(daysElapsed)

		if onProgress != nil {
			onProgress(float64(daysElapsed), float64(totalDays), message)
		}
	}

	if iter.Err() != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "error iterating polygon aggregates", iter.Err())
	}

	_ = bar.Finish()

	c.logger.Info("Finished downloading", zap.String("ticker", ticker), zap.Int("bars", processedCount))

	outputPath, err := c.writer.Finalize()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to finalize writer", err)
	}

	return outputPath, nil
}
