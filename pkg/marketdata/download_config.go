package marketdata

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/leaps/internal/config"
	"github.com/rxtech-lab/leaps/internal/datasource"
	"github.com/rxtech-lab/leaps/pkg/errors"
)

// DownloadConfig is the JSON form of a fetch request, used by the fetch command's --config flag.
type DownloadConfig struct {
	Ticker    string `json:"ticker" jsonschema:"title=Ticker,description=The symbol to download (e.g. SPY),required" validate:"required"`
	StartDate string `json:"startDate" jsonschema:"title=Start Date,description=RFC3339 start date,format=date-time,required" validate:"required"`
	EndDate   string `json:"endDate" jsonschema:"title=End Date,description=RFC3339 end date,format=date-time,required" validate:"required"`
	Interval  string `json:"interval" jsonschema:"title=Interval,description=Bar interval,required,enum=1m,enum=5m,enum=15m,enum=30m,enum=1h,enum=4h,enum=1d,enum=1w,enum=1M" validate:"required,oneof=1m 5m 15m 30m 1h 4h 1d 1w 1M"`
	Format    string `json:"format,omitempty" jsonschema:"title=Format,description=Output file format,enum=parquet,enum=csv" validate:"omitempty,oneof=parquet csv"`
}

// Validate checks required fields and the date formats.
func (c *DownloadConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if _, err := time.Parse(time.RFC3339, c.StartDate); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid startDate format, expected RFC3339", err)
	}

	if _, err := time.Parse(time.RFC3339, c.EndDate); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid endDate format, expected RFC3339", err)
	}

	return nil
}

// ToDownloadParams converts the config to DownloadParams.
func (c *DownloadConfig) ToDownloadParams() (DownloadParams, error) {
	startDate, err := time.Parse(time.RFC3339, c.StartDate)
	if err != nil {
		return DownloadParams{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse startDate", err)
	}

	endDate, err := time.Parse(time.RFC3339, c.EndDate)
	if err != nil {
		return DownloadParams{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse endDate", err)
	}

	timespan, err := ParseTimespan(c.Interval)
	if err != nil {
		return DownloadParams{}, err
	}

	return DownloadParams{
		Ticker:     c.Ticker,
		StartDate:  startDate,
		EndDate:    endDate,
		Multiplier: timespan.Multiplier(),
		Timespan:   timespan.Timespan(),
	}, nil
}

// ToClientConfig builds the client configuration for dataPath and apiKey.
func (c *DownloadConfig) ToClientConfig(dataPath string, apiKey string) ClientConfig {
	format := datasource.FormatParquet
	if c.Format != "" {
		format = datasource.Format(c.Format)
	}

	return ClientConfig{
		DataPath:      dataPath,
		PolygonApiKey: apiKey,
		Format:        format,
	}
}

// ParseDownloadConfig parses and validates a JSON download config.
func ParseDownloadConfig(jsonConfig string) (*DownloadConfig, error) {
	var downloadConfig DownloadConfig
	if err := json.Unmarshal([]byte(jsonConfig), &downloadConfig); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse JSON config", err)
	}

	if err := downloadConfig.Validate(); err != nil {
		return nil, err
	}

	return &downloadConfig, nil
}

// GetDownloadConfigSchema returns the JSON schema of DownloadConfig.
func GetDownloadConfigSchema() (string, error) {
	return config.ToJSONSchema(DownloadConfig{})
}
