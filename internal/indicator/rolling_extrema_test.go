package indicator

import (
	"testing"

	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type RollingExtremaTestSuite struct {
	suite.Suite
}

func TestRollingExtremaSuite(t *testing.T) {
	suite.Run(t, new(RollingExtremaTestSuite))
}

func naiveExtremum(values []float64, window, i int, isMax bool) float64 {
	best := values[i-window+1]
	for _, v := range values[i-window+1 : i+1] {
		if (isMax && v > best) || (!isMax && v < best) {
			best = v
		}
	}

	return best
}

func (suite *RollingExtremaTestSuite) TestKeysFollowWindow() {
	r := NewRollingExtrema()
	suite.Equal(types.IndicatorTypeRollingExtrema, r.Name())
	suite.Equal([]string{"rolling_high_20", "rolling_low_20"}, r.Keys())

	suite.NoError(r.Config(5))
	suite.Equal([]string{"rolling_high_5", "rolling_low_5"}, r.Keys())

	err := r.Config()
	suite.Contains(err.Error(), "expects 1 parameter")

	err = r.Config(0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidWindow))
}

func (suite *RollingExtremaTestSuite) TestMatchesNaiveWindow() {
	series := seriesFromCloses(zigzag(80)...)
	highs := series.Highs()
	lows := series.Lows()

	for _, window := range []int{1, 2, 5, 20} {
		high, err := CalculateRollingExtrema(series, window, FieldHigh)
		suite.Require().NoError(err)
		low, err := CalculateRollingExtrema(series, window, FieldLow)
		suite.Require().NoError(err)

		suite.Equal(window-1, high.FirstDefined())
		suite.Equal(window-1, low.FirstDefined())

		for i := window - 1; i < len(series); i++ {
			h, ok := high.At(i)
			suite.True(ok)
			suite.Equal(naiveExtremum(highs, window, i, true), h, "high window %d at %d", window, i)

			l, ok := low.At(i)
			suite.True(ok)
			suite.Equal(naiveExtremum(lows, window, i, false), l, "low window %d at %d", window, i)
		}
	}
}

func (suite *RollingExtremaTestSuite) TestBoundsBars() {
	series := seriesFromCloses(zigzag(40)...)

	high, err := CalculateRollingExtrema(series, 10, FieldHigh)
	suite.Require().NoError(err)
	low, err := CalculateRollingExtrema(series, 10, FieldLow)
	suite.Require().NoError(err)

	for i := 9; i < len(series); i++ {
		h, _ := high.At(i)
		l, _ := low.At(i)
		suite.GreaterOrEqual(h, series[i].High)
		suite.LessOrEqual(l, series[i].Low)
	}
}

func (suite *RollingExtremaTestSuite) TestRepeatedValues() {
	series := types.Series{
		{Time: testStart, Open: 5, High: 7, Low: 3, Close: 5},
		{Time: testStart.AddDate(0, 0, 1), Open: 5, High: 7, Low: 3, Close: 5},
		{Time: testStart.AddDate(0, 0, 2), Open: 5, High: 6, Low: 4, Close: 5},
		{Time: testStart.AddDate(0, 0, 3), Open: 5, High: 6, Low: 4, Close: 5},
	}

	high, err := CalculateRollingExtrema(series, 2, FieldHigh)
	suite.Require().NoError(err)

	expected := []float64{7, 7, 6}
	for i, want := range expected {
		got, ok := high.At(i + 1)
		suite.True(ok)
		suite.Equal(want, got)
	}
}

func (suite *RollingExtremaTestSuite) TestWindowLongerThanSeries() {
	high, err := CalculateRollingExtrema(seriesFromCloses(1, 2, 3), 5, FieldHigh)
	suite.Require().NoError(err)
	suite.Len(high, 3)
	suite.Equal(-1, high.FirstDefined())

	low, err := CalculateRollingExtrema(seriesFromCloses(1, 2, 3, 4, 5), 1<<50, FieldLow)
	suite.Require().NoError(err)
	suite.Len(low, 5)
	suite.Equal(-1, low.FirstDefined())

	high, err = CalculateRollingExtrema(seriesFromCloses(1, 2, 3, 4, 5), 1<<50, FieldHigh)
	suite.Require().NoError(err)
	suite.Equal(-1, high.FirstDefined())
}

func (suite *RollingExtremaTestSuite) TestInvalidInput() {
	_, err := CalculateRollingExtrema(seriesFromCloses(1, 2, 3), 2, Field("close"))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidField))

	_, err = CalculateRollingExtrema(seriesFromCloses(1, 2, 3), 0, FieldLow)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidWindow))
}
