package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidWindow, "window must be positive")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidWindow, err.Code)
	suite.Equal("window must be positive", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeInvalidSpan, "span must be a positive integer, got %d", -3)
	suite.Equal(ErrCodeInvalidSpan, err.Code)
	suite.Equal("span must be a positive integer, got -3", err.Message)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeQueryFailed, "query failed", cause)
	suite.Equal(ErrCodeQueryFailed, err.Code)
	suite.Equal(cause, err.Cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeDataNotFound, cause, "data not found for symbol: %s", "ADBE")
	suite.Equal("data not found for symbol: ADBE", err.Message)
	suite.Equal("[200] data not found for symbol: ADBE: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal("[100] invalid parameter", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrapNil() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Nil(err.Unwrap())
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	cause := New(ErrCodeDataNotFound, "data not found")
	err := Wrap(ErrCodeIndicatorCalculation, "calculation failed", cause)
	// outermost code wins
	suite.Equal(ErrCodeIndicatorCalculation, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeThroughFmtWrap() {
	inner := New(ErrCodeUnsortedSeries, "timestamps out of order")
	err := fmtWrap(inner)
	suite.Equal(ErrCodeUnsortedSeries, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromPlainError() {
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("standard error")))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeInvalidStdDev, "k must be positive")
	suite.True(HasCode(err, ErrCodeInvalidStdDev))
	suite.False(HasCode(err, ErrCodeInvalidWindow))
}

func (suite *ErrorTestSuite) TestIsAndAs() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeExportFailed, "export failed", cause)
	suite.True(Is(err, cause))

	var coded *Error
	suite.True(As(err, &coded))
	suite.Equal(ErrCodeExportFailed, coded.Code)
}

func (suite *ErrorTestSuite) TestErrorCodeRanges() {
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeInvalidParameter)
	suite.Equal(ErrorCode(200), ErrCodeDataNotFound)
	suite.Equal(ErrorCode(300), ErrCodeIndicatorNotFound)
	suite.Equal(ErrorCode(400), ErrCodeSignalGeneration)
	suite.Equal(ErrorCode(700), ErrCodeMarketDataFetchFailed)
	suite.Equal(ErrorCode(800), ErrCodeExportFailed)
}

func (suite *ErrorTestSuite) TestCategory() {
	tests := map[ErrorCode]Category{
		ErrCodeUnknown:              CategoryGeneral,
		ErrCodeInvalidWindow:        CategoryValidation,
		ErrCodeUnsortedSeries:       CategoryValidation,
		ErrCodeNoDataFound:          CategoryData,
		ErrCodeIndicatorCalculation: CategoryIndicator,
		ErrCodeSignalGeneration:     CategorySignal,
		ErrCodeInvalidPeriod:        CategoryMarketData,
		ErrCodeExportFailed:         CategoryExport,
		ErrorCode(650):              CategoryGeneral,
	}

	for code, category := range tests {
		suite.Equal(category, code.Category(), "code %d", code)
	}
}

func (suite *ErrorTestSuite) TestIsValidation() {
	suite.True(IsValidation(New(ErrCodeInvalidSpan, "span must be positive")))
	suite.True(IsValidation(fmtWrap(New(ErrCodeInvalidType, "bad type"))))
	suite.False(IsValidation(New(ErrCodeQueryFailed, "query failed")))
	suite.False(IsValidation(errors.New("plain")))
}

func fmtWrap(err error) error {
	return &wrapper{err: err}
}

type wrapper struct{ err error }

func (w *wrapper) Error() string { return "wrapped: " + w.err.Error() }
func (w *wrapper) Unwrap() error { return w.err }
