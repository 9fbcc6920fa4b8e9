package export

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rxtech-lab/leaps/internal/indicator"
	"github.com/rxtech-lab/leaps/internal/sample"
	"github.com/rxtech-lab/leaps/internal/signal"
	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ExportTestSuite struct {
	suite.Suite
	series  types.Series
	set     types.IndicatorSet
	signals []types.SignalEvent
}

func TestExportSuite(t *testing.T) {
	suite.Run(t, new(ExportTestSuite))
}

func (suite *ExportTestSuite) SetupSuite() {
	generator := sample.NewGenerator(42)
	series := generator.Generate(sample.DefaultConfig("AAPL", time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), 120))
	suite.Require().Greater(series.Len(), 50)
	suite.series = series

	indicators, err := indicator.DefaultIndicators(10)
	suite.Require().NoError(err)

	suite.set, err = indicator.NewEngine(indicators...).Compute(series)
	suite.Require().NoError(err)

	generatorSignals, err := signal.NewBreakoutGenerator(10)
	suite.Require().NoError(err)

	suite.signals, err = generatorSignals.GenerateFromSet(series, suite.set)
	suite.Require().NoError(err)
}

func (suite *ExportTestSuite) query(sqlText string, args ...any) *sql.Row {
	db, err := sql.Open("duckdb", "")
	suite.Require().NoError(err)
	suite.T().Cleanup(func() { db.Close() })

	return db.QueryRow(sqlText, args...)
}

func (suite *ExportTestSuite) TestSignalsPath() {
	suite.Equal("out/AAPL_signals.csv", SignalsPath("out/AAPL.csv"))
	suite.Equal("AAPL_signals.parquet", SignalsPath("AAPL.parquet"))
}

func (suite *ExportTestSuite) TestExportFormats() {
	for _, reader := range []struct {
		ext  string
		read string
	}{
		{ext: "parquet", read: "read_parquet"},
		{ext: "csv", read: "read_csv_auto"},
	} {
		suite.Run(reader.ext, func() {
			path := filepath.Join(suite.T().TempDir(), "AAPL."+reader.ext)

			result, err := NewExporter(nil).Export(path, "AAPL", suite.series, suite.set, suite.signals)
			suite.Require().NoError(err)
			suite.Equal(path, result.BarsPath)
			suite.FileExists(result.BarsPath)
			suite.FileExists(result.SignalsPath)

			var rows, defined int
			err = suite.query(fmt.Sprintf(`SELECT count(*), count("sma_50") FROM %s('%s')`, reader.read, path)).Scan(&rows, &defined)
			suite.Require().NoError(err)
			suite.Equal(suite.series.Len(), rows)

			sma, _ := suite.set.Get(types.SMAKey(50))
			suite.Equal(len(sma)-sma.FirstDefined(), defined)

			var firstClose float64
			err = suite.query(fmt.Sprintf(`SELECT close FROM %s('%s') ORDER BY time LIMIT 1`, reader.read, path)).Scan(&firstClose)
			suite.Require().NoError(err)
			suite.InDelta(suite.series[0].Close, firstClose, 1e-9)

			var signalRows int
			err = suite.query(fmt.Sprintf(`SELECT count(*) FROM %s('%s')`, reader.read, result.SignalsPath)).Scan(&signalRows)
			suite.Require().NoError(err)
			suite.Equal(len(suite.signals), signalRows)
		})
	}
}

func (suite *ExportTestSuite) TestExportWithoutSignals() {
	path := filepath.Join(suite.T().TempDir(), "AAPL.parquet")

	result, err := NewExporter(nil).Export(path, "AAPL", suite.series, suite.set, nil)
	suite.Require().NoError(err)

	var signalRows int
	err = suite.query(fmt.Sprintf(`SELECT count(*) FROM read_parquet('%s')`, result.SignalsPath)).Scan(&signalRows)
	suite.Require().NoError(err)
	suite.Zero(signalRows)
}

func (suite *ExportTestSuite) TestRejectsUnknownExtension() {
	_, err := NewExporter(nil).Export(filepath.Join(suite.T().TempDir(), "AAPL.xlsx"), "AAPL", suite.series, suite.set, suite.signals)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *ExportTestSuite) TestRejectsMisalignedSet() {
	path := filepath.Join(suite.T().TempDir(), "AAPL.csv")

	_, err := NewExporter(nil).Export(path, "AAPL", suite.series[:5], suite.set, nil)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeExportFailed))
}

func (suite *ExportTestSuite) TestQuoteIdent() {
	suite.Equal(`"sma_20"`, quoteIdent("sma_20"))
	suite.True(strings.HasPrefix(quoteIdent(`a"b`), `"a""b`))
}

func (suite *ExportTestSuite) TestNullable() {
	line := types.Line{}
	suite.Nil(nullable(line, 0))

	sma, _ := suite.set.Get(types.SMAKey(20))
	suite.Nil(nullable(sma, 0))
	suite.NotNil(nullable(sma, 19))
}
