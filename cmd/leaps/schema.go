package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/leaps/internal/config"
	"github.com/rxtech-lab/leaps/internal/version"
	"github.com/rxtech-lab/leaps/pkg/errors"
	"github.com/rxtech-lab/leaps/pkg/marketdata"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	configSchemaName   = "leaps-config.schema.json"
	downloadSchemaName = "leaps-download.schema.json"
	sampleConfigName   = "leaps-config.yaml"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Write the JSON schemas of the config files and a sample analysis config",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output `DIR`",
				Value:   "config",
			},
		},
		Action: schemaAction,
	}
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	dir := cmd.String("output")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidParameter, err, "failed to create %s", dir)
	}

	configSchema, err := config.GenerateSchemaJSON()
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnknown, "failed to generate config schema", err)
	}

	downloadSchema, err := marketdata.GetDownloadConfigSchema()
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnknown, "failed to generate download schema", err)
	}

	files := map[string]string{
		configSchemaName:   configSchema,
		downloadSchemaName: downloadSchema,
	}

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return errors.Wrapf(errors.ErrCodeUnknown, err, "failed to write %s", name)
		}
	}

	// the sample config is never overwritten
	samplePath := filepath.Join(dir, sampleConfigName)
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		sample, err := sampleConfigYAML()
		if err != nil {
			return err
		}

		if err := os.WriteFile(samplePath, sample, 0o644); err != nil {
			return errors.Wrapf(errors.ErrCodeUnknown, err, "failed to write %s", samplePath)
		}
	}

	fmt.Fprintf(cmd.Root().Writer, "Schemas written to %s\n", dir)

	return nil
}

// sampleConfig mirrors config.Config with plain YAML types so it can be marshalled.
type sampleConfig struct {
	Version    string                   `yaml:"version"`
	DataPath   string                   `yaml:"data_path"`
	Symbol     string                   `yaml:"symbol"`
	Signal     config.SignalConfig      `yaml:"signal"`
	Indicators []config.IndicatorConfig `yaml:"indicators,omitempty"`
	Export     config.ExportConfig      `yaml:"export"`
}

func sampleConfigYAML() ([]byte, error) {
	sample := sampleConfig{
		Version:  version.GetVersion(),
		DataPath: "data/sample.parquet",
		Symbol:   "AAPL",
		Signal:   config.SignalConfig{Period: "1mo"},
		Indicators: []config.IndicatorConfig{
			{Name: "ma", Params: []any{20}},
			{Name: "ma", Params: []any{50}},
			{Name: "macd", Params: []any{12, 26, 9}},
			{Name: "bollinger_bands", Params: []any{20, 2.0}},
			{Name: "rolling_extrema", Params: []any{20}},
		},
		Export: config.ExportConfig{Format: "csv", Path: "out/AAPL.csv"},
	}

	body, err := yaml.Marshal(sample)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnknown, "failed to marshal sample config", err)
	}

	return append([]byte("# yaml-language-server: $schema="+configSchemaName+"\n"), body...), nil
}
