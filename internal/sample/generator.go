// Package sample generates deterministic synthetic daily series for demo mode and tests.
package sample

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/leaps/internal/series"
	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/shopspring/decimal"
)

// BasePrices are the starting closes of well-known symbols; anything else starts at DefaultInitialPrice.
var BasePrices = map[string]float64{
	"AAPL":  180.0,
	"GOOGL": 140.0,
	"MSFT":  380.0,
	"AMZN":  170.0,
	"TSLA":  240.0,
	"META":  480.0,
	"NVDA":  880.0,
	"NFLX":  550.0,
	"ADBE":  550.0,
	"INTC":  45.0,
}

const DefaultInitialPrice = 100.0

// Generator produces geometric random-walk bars on business days.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewGeneratorForSymbol seeds the generator from the symbol so each symbol always gets the same path.
func NewGeneratorForSymbol(symbol string) *Generator {
	return NewGenerator(SeedForSymbol(symbol))
}

// SeedForSymbol hashes symbol into a seed in [0, 10000).
func SeedForSymbol(symbol string) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))

	return int64(h.Sum32() % 10000)
}

// Config configures how a sample series is generated.
type Config struct {
	// Start is rolled forward to the first business day
	Start time.Time
	// Count is the number of business days to generate before validation
	Count        int
	InitialPrice float64
	// MeanReturn and Volatility parameterize the normal daily return
	MeanReturn float64
	Volatility float64
	VolumeMin  int64
	VolumeMax  int64
}

// DefaultConfig returns the demo configuration for symbol looking back days calendar days from end.
// Roughly 70% of calendar days are business days.
func DefaultConfig(symbol string, end time.Time, days int) Config {
	initialPrice, ok := BasePrices[symbol]
	if !ok {
		initialPrice = DefaultInitialPrice
	}

	start := end.AddDate(0, 0, -days)

	return Config{
		Start:        time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		Count:        int(float64(days) * 0.7),
		InitialPrice: initialPrice,
		MeanReturn:   0.0005,
		Volatility:   0.02,
		VolumeMin:    1_000_000,
		VolumeMax:    5_000_000,
	}
}

// Generate creates a series following the configuration. The result is passed through the
// series validator like any other source.
func (g *Generator) Generate(config Config) types.Series {
	if config.Count <= 0 {
		return types.Series{}
	}

	out := make(types.Series, 0, config.Count)
	price := config.InitialPrice
	day := nextBusinessDay(config.Start)

	for i := 0; i < config.Count; i++ {
		if i > 0 {
			price *= 1 + config.MeanReturn + config.Volatility*g.normal()
			day = nextBusinessDay(day.AddDate(0, 0, 1))
		}

		open := price * (1 + g.uniform(-0.01, 0.01))
		// high and low extend the open-close range
		high := math.Max(open, price) * (1 + g.uniform(0, 0.02))
		low := math.Min(open, price) * (1 - g.uniform(0, 0.02))
		volume := config.VolumeMin + g.rng.Int63n(max(config.VolumeMax-config.VolumeMin, 1))

		out = append(out, types.Bar{
			Time:   day,
			Open:   roundToDecimals(open, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(low, 4),
			Close:  roundToDecimals(price, 4),
			Volume: volume,
		})
	}

	return series.Validate(out)
}

// normal draws a standard normal value using the Box-Muller transform.
func (g *Generator) normal() float64 {
	u1 := 1 - g.rng.Float64() // (0, 1], keeps the log finite
	u2 := g.rng.Float64()

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func nextBusinessDay(t time.Time) time.Time {
	for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		t = t.AddDate(0, 0, 1)
	}

	return t
}

func roundToDecimals(value float64, places int32) float64 {
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}
