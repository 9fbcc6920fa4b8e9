// Package marketdata downloads historical bars from Polygon.io into local parquet or csv files.
package marketdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/leaps/internal/datasource"
	"github.com/rxtech-lab/leaps/internal/logger"
	"github.com/rxtech-lab/leaps/pkg/errors"
	"github.com/rxtech-lab/leaps/pkg/marketdata/provider"
	"github.com/rxtech-lab/leaps/pkg/marketdata/writer"
	"go.uber.org/zap"
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	DataPath      string            `validate:"required"`
	PolygonApiKey string            `validate:"required"`
	Format        datasource.Format `validate:"omitempty,oneof=parquet csv"`
}

// DownloadParams holds the parameters for a market data download request.
type DownloadParams struct {
	Ticker     string          `validate:"required"`
	StartDate  time.Time       `validate:"required"`
	EndDate    time.Time       `validate:"required,gtfield=StartDate"`
	Multiplier int             `validate:"required,min=1"`
	Timespan   models.Timespan `validate:"required"`
}

// Client downloads bars through a provider and stores them in DataPath.
type Client struct {
	provider   provider.Provider
	config     ClientConfig
	validate   *validator.Validate
	onProgress provider.OnDownloadProgress
	logger     *logger.Logger
}

// NewClient creates a market data client backed by Polygon.io.
func NewClient(config ClientConfig, onProgress provider.OnDownloadProgress, log *logger.Logger) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	polygonClient, err := provider.NewPolygonClient(config.PolygonApiKey)
	if err != nil {
		return nil, err
	}

	return newClient(config, polygonClient, validate, onProgress, log), nil
}

// NewClientWithProvider creates a client around an existing provider. The API key is not required.
func NewClientWithProvider(config ClientConfig, marketProvider provider.Provider, onProgress provider.OnDownloadProgress, log *logger.Logger) (*Client, error) {
	if config.DataPath == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "data path is required")
	}

	if marketProvider == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "provider is required")
	}

	return newClient(config, marketProvider, validator.New(), onProgress, log), nil
}

func newClient(config ClientConfig, marketProvider provider.Provider, validate *validator.Validate, onProgress provider.OnDownloadProgress, log *logger.Logger) *Client {
	if config.Format == "" {
		config.Format = datasource.FormatParquet
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Client{
		provider:   marketProvider,
		config:     config,
		validate:   validate,
		onProgress: onProgress,
		logger:     log,
	}
}

// Download fetches the requested bars and returns the path of the written file.
// The context can be used to cancel the download operation.
func (c *Client) Download(ctx context.Context, params DownloadParams) (string, error) {
	if err := c.validate.Struct(params); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidParameter, "invalid download parameters", err)
	}

	if err := os.MkdirAll(c.config.DataPath, 0o755); err != nil {
		return "", errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to create data path %s", c.config.DataPath)
	}

	outputPath := filepath.Join(c.config.DataPath, OutputFileName(params, c.config.Format))
	c.provider.ConfigWriter(writer.NewDuckDBWriter(outputPath, c.logger))

	c.logger.Info("Downloading market data",
		zap.String("ticker", params.Ticker),
		zap.Time("start", params.StartDate),
		zap.Time("end", params.EndDate),
		zap.String("output", outputPath),
	)

	path, err := c.provider.Download(
		ctx,
		params.Ticker,
		params.StartDate,
		params.EndDate,
		params.Multiplier,
		params.Timespan,
		c.onProgress,
	)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "download failed", err)
	}

	return path, nil
}

// OutputFileName names a download file TICKER_START_END_MULTIPLIER_TIMESPAN.<format>.
func OutputFileName(params DownloadParams, format datasource.Format) string {
	if format == "" {
		format = datasource.FormatParquet
	}

	return fmt.Sprintf("%s_%s_%s_%d_%s.%s",
		params.Ticker,
		params.StartDate.Format("2006-01-02"),
		params.EndDate.Format("2006-01-02"),
		params.Multiplier,
		params.Timespan,
		format)
}
