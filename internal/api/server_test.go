package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rxtech-lab/leaps/internal/indicator"
	"github.com/rxtech-lab/leaps/internal/sample"
	"github.com/rxtech-lab/leaps/internal/signal"
	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ServerTestSuite struct {
	suite.Suite
	server *httptest.Server
	series types.Series
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (suite *ServerTestSuite) SetupTest() {
	suite.server = httptest.NewServer(NewServer(nil).Handler())
	suite.series = sample.NewGenerator(7).Generate(sample.DefaultConfig("MSFT", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 400))
}

func (suite *ServerTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *ServerTestSuite) post(path string, body any) (*http.Response, []byte) {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	resp, err := http.Post(suite.server.URL+path, "application/json", bytes.NewReader(payload))
	suite.Require().NoError(err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)

	return resp, data
}

func (suite *ServerTestSuite) get(path string) (*http.Response, []byte) {
	resp, err := http.Get(suite.server.URL + path)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	suite.Require().NoError(err)

	return resp, data
}

func (suite *ServerTestSuite) TestHealth() {
	resp, body := suite.get("/healthz")
	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.JSONEq(`{"status":"ok"}`, string(body))
}

func (suite *ServerTestSuite) TestIndicatorsUseNullForUndefined() {
	resp, body := suite.post("/api/v1/indicators", map[string]any{
		"bars": suite.series[:10],
		"indicators": []map[string]any{
			{"name": "ma", "params": []any{3}},
		},
	})
	suite.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	var decoded struct {
		Times []time.Time           `json:"times"`
		Lines map[string][]*float64 `json:"lines"`
	}
	suite.Require().NoError(json.Unmarshal(body, &decoded))
	suite.Len(decoded.Times, 10)

	sma := decoded.Lines["sma_3"]
	suite.Require().Len(sma, 10)
	suite.Nil(sma[0])
	suite.Nil(sma[1])
	suite.Require().NotNil(sma[2])

	expected := (suite.series[0].Close + suite.series[1].Close + suite.series[2].Close) / 3
	suite.InDelta(expected, *sma[2], 1e-9)
}

func (suite *ServerTestSuite) TestIndicatorsDefaultSet() {
	resp, body := suite.post("/api/v1/indicators", map[string]any{
		"bars":   suite.series,
		"signal": map[string]any{"period": "3mo"},
	})
	suite.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	var decoded IndicatorResponse
	suite.Require().NoError(json.Unmarshal(body, &decoded))
	suite.Contains(decoded.Lines, types.SMAKey(200))
	suite.Contains(decoded.Lines, types.KeyMACDSignal)
	suite.Contains(decoded.Lines, types.RollingHighKey(60))
	suite.Contains(decoded.Lines, types.RollingLowKey(60))
}

func (suite *ServerTestSuite) TestSignals() {
	resp, body := suite.post("/api/v1/signals", map[string]any{
		"bars":   suite.series,
		"signal": map[string]any{"window": 15},
	})
	suite.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	var decoded SignalResponse
	suite.Require().NoError(json.Unmarshal(body, &decoded))
	suite.Equal(15, decoded.Window)

	generator, err := signal.NewBreakoutGenerator(15)
	suite.Require().NoError(err)

	expected, err := generator.Generate(suite.series)
	suite.Require().NoError(err)
	suite.Require().Len(decoded.Signals, len(expected))

	for i := range expected {
		suite.True(expected[i].Time.Equal(decoded.Signals[i].Time))
		suite.Equal(expected[i].Kind, decoded.Signals[i].Kind)
		suite.InDelta(expected[i].Price, decoded.Signals[i].Price, 1e-9)
	}
}

func (suite *ServerTestSuite) TestSignalsEmptySeries() {
	resp, body := suite.post("/api/v1/signals", map[string]any{"bars": []types.Bar{}})
	suite.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	suite.JSONEq(`{"window":20,"signals":[]}`, string(body))
}

func (suite *ServerTestSuite) TestAnalyze() {
	resp, body := suite.post("/api/v1/analyze", map[string]any{
		"symbol": "MSFT",
		"bars":   suite.series,
		"signal": map[string]any{"period": "1mo"},
	})
	suite.Require().Equal(http.StatusOK, resp.StatusCode, string(body))

	var decoded AnalyzeResponse
	suite.Require().NoError(json.Unmarshal(body, &decoded))
	suite.Equal("MSFT", decoded.Symbol)
	suite.Equal(20, decoded.Window)
	suite.Equal(suite.series.Len(), decoded.Bars)
	suite.Zero(decoded.Dropped)
	suite.Len(decoded.Marks, len(decoded.Signals))
	suite.Equal(suite.series.Len(), decoded.Summary.Bars)
	suite.NotEmpty(decoded.Yearly)

	for i, mark := range decoded.Marks {
		if decoded.Signals[i].Kind == types.SignalKindBuy {
			suite.Equal("B", mark.Title)
			suite.Equal(types.MarkColorGreen, mark.Color)
		} else {
			suite.Equal("S", mark.Title)
			suite.Equal(types.MarkShapeTriangleDown, mark.Shape)
		}
	}
}

func (suite *ServerTestSuite) TestBadRequests() {
	unsorted := append(types.Series{}, suite.series[:5]...)
	unsorted[1], unsorted[2] = unsorted[2], unsorted[1]

	tests := []struct {
		name string
		path string
		body any
		code errors.ErrorCode
	}{
		{name: "missing bars", path: "/api/v1/signals", body: map[string]any{}, code: errors.ErrCodeInvalidParameter},
		{name: "unknown indicator", path: "/api/v1/indicators", body: map[string]any{"bars": suite.series[:3], "indicators": []map[string]any{{"name": "rsi"}}}, code: errors.ErrCodeInvalidParameter},
		{name: "bad period", path: "/api/v1/analyze", body: map[string]any{"bars": suite.series[:3], "signal": map[string]any{"period": "2y"}}, code: errors.ErrCodeInvalidParameter},
		{name: "unsorted bars", path: "/api/v1/signals", body: map[string]any{"bars": unsorted}, code: errors.ErrCodeUnsortedSeries},
		{name: "bad params", path: "/api/v1/indicators", body: map[string]any{"bars": suite.series[:3], "indicators": []map[string]any{{"name": "ma", "params": []any{2.5}}}}, code: errors.ErrCodeInvalidType},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			resp, body := suite.post(tc.path, tc.body)
			suite.Equal(http.StatusBadRequest, resp.StatusCode, string(body))

			var decoded ErrorResponse
			suite.Require().NoError(json.Unmarshal(body, &decoded))
			suite.Equal(int(tc.code), decoded.Code, decoded.Message)
			suite.Equal(string(tc.code.Category()), decoded.Category)
		})
	}
}

func (suite *ServerTestSuite) TestMalformedJSON() {
	resp, err := http.Post(suite.server.URL+"/api/v1/analyze", "application/json", bytes.NewBufferString("{"))
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (suite *ServerTestSuite) TestMethodNotAllowed() {
	resp, _ := suite.get("/api/v1/signals")
	suite.Equal(http.StatusMethodNotAllowed, resp.StatusCode)
}

func (suite *ServerTestSuite) TestMetrics() {
	suite.post("/api/v1/signals", map[string]any{"bars": suite.series})
	suite.get("/healthz")

	resp, body := suite.get("/metrics")
	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Contains(string(body), `leaps_http_requests_total{route="/api/v1/signals",status="200"} 1`)
	suite.Contains(string(body), `leaps_http_requests_total{route="/healthz",status="200"} 1`)
	suite.Contains(string(body), "leaps_compute_duration_seconds_bucket")
}

func TestStatusForCode(t *testing.T) {
	cases := map[errors.ErrorCode]int{
		errors.ErrCodeInvalidWindow:        http.StatusBadRequest,
		errors.ErrCodeUnsortedSeries:       http.StatusBadRequest,
		errors.ErrCodeIndicatorNotFound:    http.StatusBadRequest,
		errors.ErrCodeIndicatorCalculation: http.StatusInternalServerError,
		errors.ErrCodeUnknown:              http.StatusInternalServerError,
	}

	for code, status := range cases {
		if got := statusForCode(code); got != status {
			t.Errorf("statusForCode(%d) = %d, want %d", code, got, status)
		}
	}
}

func TestDefaultRegistryListsEveryIndicator(t *testing.T) {
	if got := len(indicator.NewDefaultRegistry().ListIndicators()); got != 5 {
		t.Fatalf("expected 5 registered indicators, got %d", got)
	}
}
