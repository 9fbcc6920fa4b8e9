package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidType          ErrorCode = 102
	ErrCodeMissingParameter     ErrorCode = 103
	ErrCodeInvalidWindow        ErrorCode = 104
	ErrCodeInvalidSpan          ErrorCode = 105
	ErrCodeInvalidStdDev        ErrorCode = 106
	ErrCodeInvalidVersion       ErrorCode = 107
	ErrCodeUnsortedSeries       ErrorCode = 108
	ErrCodeInvalidField         ErrorCode = 109

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeNoDataFound           ErrorCode = 203

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302

	// Signal errors (400-499)
	ErrCodeSignalGeneration ErrorCode = 400

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeMarketDataWriteFailed ErrorCode = 701
	ErrCodeMarketDataParseFailed ErrorCode = 702
	ErrCodeInvalidTimespan       ErrorCode = 703
	ErrCodeInvalidPeriod         ErrorCode = 704

	// Export errors (800-899)
	ErrCodeExportFailed ErrorCode = 800
)

// Category groups error codes by their hundreds range.
type Category string

const (
	CategoryGeneral    Category = "general"
	CategoryValidation Category = "validation"
	CategoryData       Category = "data"
	CategoryIndicator  Category = "indicator"
	CategorySignal     Category = "signal"
	CategoryMarketData Category = "market_data"
	CategoryExport     Category = "export"
)

// Category returns the category of the code. Codes outside every known range are general.
func (c ErrorCode) Category() Category {
	switch c / 100 {
	case 1:
		return CategoryValidation
	case 2:
		return CategoryData
	case 3:
		return CategoryIndicator
	case 4:
		return CategorySignal
	case 7:
		return CategoryMarketData
	case 8:
		return CategoryExport
	default:
		return CategoryGeneral
	}
}

// IsValidation reports whether err carries a code from the validation range.
func IsValidation(err error) bool {
	return GetCode(err).Category() == CategoryValidation
}
