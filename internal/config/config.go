// Package config loads and validates analysis configuration files.
package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/leaps/internal/indicator"
	"github.com/rxtech-lab/leaps/internal/types"
	"github.com/rxtech-lab/leaps/internal/version"
	"github.com/rxtech-lab/leaps/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultSignalWindow is the one-month breakout window used when neither window nor period is set.
const DefaultSignalWindow = 20

// Config describes one analysis run.
type Config struct {
	Version    string                     `yaml:"version" json:"version,omitempty" jsonschema:"title=Version,description=Tool version the config was written for. Major and minor must match the running tool"`
	DataPath   string                     `yaml:"data_path" json:"data_path" jsonschema:"title=Data Path,description=Parquet or CSV file holding the bars,required" validate:"required"`
	Symbol     string                     `yaml:"symbol" json:"symbol" jsonschema:"title=Symbol,description=Symbol to analyze,required" validate:"required"`
	Start      optional.Option[time.Time] `yaml:"start" json:"start,omitempty" jsonschema:"title=Start,description=Optional inclusive start of the period"`
	End        optional.Option[time.Time] `yaml:"end" json:"end,omitempty" jsonschema:"title=End,description=Optional inclusive end of the period"`
	Signal     SignalConfig               `yaml:"signal" json:"signal" jsonschema:"title=Signal,description=Breakout signal settings"`
	Indicators []IndicatorConfig          `yaml:"indicators" json:"indicators,omitempty" jsonschema:"title=Indicators,description=Indicators to compute. Empty selects the default chart set" validate:"dive"`
	Export     ExportConfig               `yaml:"export" json:"export,omitempty" jsonschema:"title=Export,description=Optional result export"`
}

// SignalConfig selects the breakout window either as an explicit bar count or as a symbolic period.
type SignalConfig struct {
	Window int    `yaml:"window" json:"window,omitempty" jsonschema:"title=Window,description=Breakout look-back in bars,minimum=1" validate:"omitempty,min=1"`
	Period string `yaml:"period" json:"period,omitempty" jsonschema:"title=Period,description=Symbolic period mapped to a window,enum=1mo,enum=3mo,enum=6mo,enum=1y" validate:"omitempty,oneof=1mo 3mo 6mo 1y"`
}

// IndicatorConfig names a registered indicator and its Config parameters.
type IndicatorConfig struct {
	Name   types.IndicatorType `yaml:"name" json:"name" jsonschema:"title=Name,enum=ma,enum=ema,enum=macd,enum=bollinger_bands,enum=rolling_extrema,required" validate:"required,oneof=ma ema macd bollinger_bands rolling_extrema"`
	Params []any               `yaml:"params" json:"params,omitempty" jsonschema:"title=Params,description=Positional parameters passed to the indicator"`
}

// ExportConfig writes the bars, indicator lines and signals next to each other.
type ExportConfig struct {
	Format string `yaml:"format" json:"format,omitempty" jsonschema:"title=Format,enum=parquet,enum=csv" validate:"omitempty,oneof=parquet csv"`
	Path   string `yaml:"path" json:"path,omitempty" jsonschema:"title=Path,description=Output file. Empty disables export" validate:"required_with=Format"`
}

// UnmarshalYAML decodes optional start and end times.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type plain struct {
		Version    string            `yaml:"version"`
		DataPath   string            `yaml:"data_path"`
		Symbol     string            `yaml:"symbol"`
		Start      *time.Time        `yaml:"start"`
		End        *time.Time        `yaml:"end"`
		Signal     SignalConfig      `yaml:"signal"`
		Indicators []IndicatorConfig `yaml:"indicators"`
		Export     ExportConfig      `yaml:"export"`
	}

	var raw plain
	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.Version = raw.Version
	c.DataPath = raw.DataPath
	c.Symbol = raw.Symbol
	c.Signal = raw.Signal
	c.Indicators = raw.Indicators
	c.Export = raw.Export
	c.Start = optional.None[time.Time]()
	c.End = optional.None[time.Time]()

	if raw.Start != nil {
		c.Start = optional.Some(*raw.Start)
	}

	if raw.End != nil {
		c.End = optional.Some(*raw.End)
	}

	return nil
}

// Load reads, parses and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	return Parse(data)
}

// Parse parses and validates a YAML config.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks field constraints, the time range and version compatibility.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	if c.Start.IsSome() && c.End.IsSome() && c.End.Unwrap().Before(c.Start.Unwrap()) {
		return errors.New(errors.ErrCodeInvalidConfiguration, "end must not be before start")
	}

	if c.Signal.Window > 0 && c.Signal.Period != "" {
		return errors.New(errors.ErrCodeInvalidConfiguration, "signal.window and signal.period are mutually exclusive")
	}

	return version.CheckCompatibility(version.GetVersion(), c.Version)
}

// SignalWindow resolves the breakout window in bars.
func (c *Config) SignalWindow() (int, error) {
	return c.Signal.ResolveWindow()
}

// ResolveWindow returns the explicit window, the window of the period, or DefaultSignalWindow.
func (s SignalConfig) ResolveWindow() (int, error) {
	if s.Window > 0 {
		return s.Window, nil
	}

	if s.Period != "" {
		return SignalWindowForPeriod(s.Period)
	}

	return DefaultSignalWindow, nil
}

// BuildIndicators resolves the configured indicators through registry. An empty list yields
// indicator.DefaultIndicators for the signal window.
func (c *Config) BuildIndicators(registry indicator.IndicatorRegistry) ([]indicator.Indicator, error) {
	window, err := c.SignalWindow()
	if err != nil {
		return nil, err
	}

	return BuildIndicators(registry, c.Indicators, window)
}

// BuildIndicators creates one indicator per config entry. Without entries it returns the default chart set
// for window.
func BuildIndicators(registry indicator.IndicatorRegistry, specs []IndicatorConfig, window int) ([]indicator.Indicator, error) {
	if len(specs) == 0 {
		return indicator.DefaultIndicators(window)
	}

	indicators := make([]indicator.Indicator, 0, len(specs))

	for _, spec := range specs {
		ind, err := registry.GetIndicator(spec.Name, spec.Params...)
		if err != nil {
			return nil, err
		}

		indicators = append(indicators, ind)
	}

	return indicators, nil
}
