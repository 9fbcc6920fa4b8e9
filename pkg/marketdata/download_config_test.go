package marketdata

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/leaps/internal/datasource"
	"github.com/rxtech-lab/leaps/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DownloadConfigTestSuite struct {
	suite.Suite
}

func TestDownloadConfigTestSuite(t *testing.T) {
	suite.Run(t, new(DownloadConfigTestSuite))
}

func validConfig() DownloadConfig {
	return DownloadConfig{
		Ticker:    "SPY",
		StartDate: "2024-01-01T00:00:00Z",
		EndDate:   "2024-12-31T23:59:59Z",
		Interval:  "1d",
	}
}

func (suite *DownloadConfigTestSuite) TestValidate() {
	config := validConfig()
	suite.NoError(config.Validate())
}

func (suite *DownloadConfigTestSuite) TestValidateErrors() {
	tests := []struct {
		name     string
		modify   func(c *DownloadConfig)
		contains string
	}{
		{name: "missing ticker", modify: func(c *DownloadConfig) { c.Ticker = "" }, contains: "Ticker"},
		{name: "bad interval", modify: func(c *DownloadConfig) { c.Interval = "2d" }, contains: "Interval"},
		{name: "bad format", modify: func(c *DownloadConfig) { c.Format = "json" }, contains: "Format"},
		{name: "bad start date", modify: func(c *DownloadConfig) { c.StartDate = "2024-01-01" }, contains: "startDate"},
		{name: "bad end date", modify: func(c *DownloadConfig) { c.EndDate = "yesterday" }, contains: "endDate"},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			config := validConfig()
			tc.modify(&config)

			err := config.Validate()
			suite.Require().Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
			suite.Contains(err.Error(), tc.contains)
		})
	}
}

func (suite *DownloadConfigTestSuite) TestToDownloadParams() {
	config := validConfig()
	config.Interval = "15m"

	params, err := config.ToDownloadParams()
	suite.Require().NoError(err)
	suite.Equal("SPY", params.Ticker)
	suite.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), params.StartDate)
	suite.Equal(15, params.Multiplier)
	suite.Equal(models.Minute, params.Timespan)
}

func (suite *DownloadConfigTestSuite) TestToClientConfig() {
	config := validConfig()
	suite.Equal(ClientConfig{DataPath: "data", PolygonApiKey: "key", Format: datasource.FormatParquet}, config.ToClientConfig("data", "key"))

	config.Format = "csv"
	suite.Equal(datasource.FormatCSV, config.ToClientConfig("data", "key").Format)
}

func (suite *DownloadConfigTestSuite) TestParseDownloadConfig() {
	config, err := ParseDownloadConfig(`{"ticker":"AAPL","startDate":"2024-01-01T00:00:00Z","endDate":"2024-02-01T00:00:00Z","interval":"1h","format":"csv"}`)
	suite.Require().NoError(err)
	suite.Equal("AAPL", config.Ticker)
	suite.Equal("csv", config.Format)

	_, err = ParseDownloadConfig(`{"ticker":`)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))

	_, err = ParseDownloadConfig(`{"ticker":"AAPL"}`)
	suite.Require().Error(err)
}

func (suite *DownloadConfigTestSuite) TestSchema() {
	schema, err := GetDownloadConfigSchema()
	suite.Require().NoError(err)

	var decoded map[string]any
	suite.Require().NoError(json.Unmarshal([]byte(schema), &decoded))

	properties, ok := decoded["properties"].(map[string]any)
	suite.Require().True(ok)
	suite.Contains(properties, "ticker")
	suite.Contains(properties, "interval")
}
