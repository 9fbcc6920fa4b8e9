package marketdata

import (
	"testing"

	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/leaps/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type TimespanTestSuite struct {
	suite.Suite
}

func TestTimespanSuite(t *testing.T) {
	suite.Run(t, new(TimespanTestSuite))
}

func (suite *TimespanTestSuite) TestMapping() {
	tests := []struct {
		timespan   Timespan
		multiplier int
		polygon    models.Timespan
	}{
		{TimespanOneMinute, 1, models.Minute},
		{TimespanFiveMinutes, 5, models.Minute},
		{TimespanFifteenMinutes, 15, models.Minute},
		{TimespanThirtyMinutes, 30, models.Minute},
		{TimespanOneHour, 1, models.Hour},
		{TimespanFourHours, 4, models.Hour},
		{TimespanOneDay, 1, models.Day},
		{TimespanOneWeek, 1, models.Week},
		{TimespanOneMonth, 1, models.Month},
	}

	for _, tc := range tests {
		suite.Run(string(tc.timespan), func() {
			suite.Equal(tc.multiplier, tc.timespan.Multiplier())
			suite.Equal(tc.polygon, tc.timespan.Timespan())
		})
	}
}

func (suite *TimespanTestSuite) TestUnknownFallsBackToDay() {
	suite.Equal(1, Timespan("7d").Multiplier())
	suite.Equal(models.Day, Timespan("7d").Timespan())
}

func (suite *TimespanTestSuite) TestParseTimespan() {
	t, err := ParseTimespan("15m")
	suite.Require().NoError(err)
	suite.Equal(TimespanFifteenMinutes, t)

	_, err = ParseTimespan("2h")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidTimespan))
}
