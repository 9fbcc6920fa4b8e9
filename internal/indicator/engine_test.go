package indicator

import (
	"testing"

	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type EngineTestSuite struct {
	suite.Suite
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

// failingIndicator always errors on Compute.
type failingIndicator struct {
	MA
}

func (f *failingIndicator) Compute(types.Series) (map[string]types.Line, error) {
	return nil, errors.New(errors.ErrCodeInvalidWindow, "boom")
}

func (suite *EngineTestSuite) TestComputeDefaultSet() {
	indicators, err := DefaultIndicators(20)
	suite.Require().NoError(err)
	suite.Len(indicators, 8)

	series := seriesFromCloses(zigzag(250)...)
	set, err := NewEngine(indicators...).Compute(series)
	suite.Require().NoError(err)

	suite.Equal(len(series), set.Len())
	suite.Equal(series.Times(), set.Times)
	suite.ElementsMatch([]string{
		"sma_20", "sma_50", "sma_200",
		"ema_12", "ema_26",
		"macd", "macd_signal", "macd_histogram",
		"bollinger_upper", "bollinger_middle", "bollinger_lower",
		"rolling_high_20", "rolling_low_20",
	}, set.Names())

	for _, name := range set.Names() {
		line, ok := set.Get(name)
		suite.True(ok)
		suite.Len(line, len(series), "line %s", name)
	}

	sma200, _ := set.Get(types.SMAKey(200))
	suite.Equal(199, sma200.FirstDefined())

	ema12, _ := set.Get(types.EMAKey(12))
	suite.Equal(0, ema12.FirstDefined())
}

func (suite *EngineTestSuite) TestMatchesDirectCalculation() {
	series := seriesFromCloses(zigzag(60)...)

	sma := NewMA()
	suite.Require().NoError(sma.Config(10))

	set, err := NewEngine(sma, NewMACD()).Compute(series)
	suite.Require().NoError(err)

	direct, err := CalculateSMA(series, 10)
	suite.Require().NoError(err)

	line, ok := set.Get("sma_10")
	suite.True(ok)
	suite.Equal(direct, line)

	macd, err := CalculateMACD(series)
	suite.Require().NoError(err)

	line, ok = set.Get(types.KeyMACDHistogram)
	suite.True(ok)
	suite.Equal(macd.Histogram, line)
}

func (suite *EngineTestSuite) TestEmptySeries() {
	indicators, err := DefaultIndicators(20)
	suite.Require().NoError(err)

	set, err := NewEngine(indicators...).Compute(types.Series{})
	suite.Require().NoError(err)
	suite.Equal(0, set.Len())

	for _, name := range set.Names() {
		line, _ := set.Get(name)
		suite.Empty(line)
	}
}

func (suite *EngineTestSuite) TestWrapsIndicatorFailure() {
	engine := NewEngine(NewEMA(), &failingIndicator{MA: MA{period: 5}})

	_, err := engine.Compute(seriesFromCloses(1, 2, 3))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorCalculation))
	suite.Contains(err.Error(), "failed to calculate ma")
	suite.Contains(err.Error(), "boom")
}

func (suite *EngineTestSuite) TestDefaultIndicatorsRejectsBadWindow() {
	_, err := DefaultIndicators(0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidWindow))
}

func (suite *EngineTestSuite) TestIndicatorsAccessor() {
	ema := NewEMA()
	engine := NewEngine(ema)
	suite.Equal([]Indicator{ema}, engine.Indicators())
}
