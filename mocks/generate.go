package mocks

//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/leaps/internal/datasource DataSource
//go:generate mockgen -destination=./mock_indicator.go -package=mocks github.com/rxtech-lab/leaps/internal/indicator Indicator
//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/leaps/pkg/marketdata/provider Provider
