package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/leaps/pkg/errors"
)

// CheckCompatibility checks whether an analysis config written for configVersion can be run
// by a tool at toolVersion.
//
// Compatibility Rules:
//   - If either version is "main" (development build), the check is skipped
//   - Major and minor versions must match exactly
//   - Patch versions can differ (e.g., a 1.2.5 tool runs a 1.2.0 config)
//
// An empty configVersion is treated as the tool's own version.
func CheckCompatibility(toolVersion, configVersion string) error {
	toolVersion = strings.TrimPrefix(toolVersion, "v")
	configVersion = strings.TrimPrefix(configVersion, "v")

	if configVersion == "" {
		configVersion = toolVersion
	}

	if toolVersion == "main" || configVersion == "main" {
		return nil
	}

	tool, err := semver.NewVersion(toolVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid tool version '%s'", toolVersion)
	}

	config, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid config version '%s'", configVersion)
	}

	if tool.Major() != config.Major() {
		return errors.Newf(errors.ErrCodeInvalidVersion, "major version mismatch: tool is %d.x.x but config requires %d.x.x",
			tool.Major(), config.Major())
	}

	if tool.Minor() != config.Minor() {
		return errors.Newf(errors.ErrCodeInvalidVersion, "minor version mismatch: tool is %d.%d.x but config requires %d.%d.x",
			tool.Major(), tool.Minor(), config.Major(), config.Minor())
	}

	return nil
}
