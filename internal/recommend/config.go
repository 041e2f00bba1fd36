package recommend

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// CalibrationConfig represents the JSON structure of the calibration file.
type CalibrationConfig struct {
	Version string  `json:"version"` // Config version for future compatibility
	Weights Weights `json:"weights"` // Weight overrides
}

// LoadCalibration loads scoring weights from a JSON calibration file.
// Partial configurations are merged with defaults so a file only needs the
// weights it wants to change. On any error the defaults are returned along
// with the error, keeping the engine usable.
func LoadCalibration(filePath string) (*Weights, error) {
	if filePath == "" {
		return DefaultWeights(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		slog.Warn("failed to read calibration file, using defaults",
			"path", filePath,
			"error", err)
		return DefaultWeights(), fmt.Errorf("failed to read calibration file: %w", err)
	}

	var config CalibrationConfig
	if err := json.Unmarshal(data, &config); err != nil {
		slog.Warn("failed to parse calibration file, using defaults",
			"path", filePath,
			"error", err)
		return DefaultWeights(), fmt.Errorf("failed to parse calibration file: %w", err)
	}

	defaults := DefaultWeights()
	merged := MergeCalibration(defaults, &config.Weights)
	logCalibrationOverrides(defaults, merged)

	return merged, nil
}

// MergeCalibration merges override weights with base weights. Only non-zero
// override values are applied, allowing partial calibration files.
func MergeCalibration(base *Weights, override *Weights) *Weights {
	if base == nil {
		return DefaultWeights()
	}
	if override == nil {
		result := *base
		return &result
	}

	result := *base

	if override.RoleMatch != 0 {
		result.RoleMatch = override.RoleMatch
	}
	if override.BroadMatch != 0 {
		result.BroadMatch = override.BroadMatch
	}
	if override.RatingBaseline != 0 {
		result.RatingBaseline = override.RatingBaseline
	}
	if override.RatingFactor != 0 {
		result.RatingFactor = override.RatingFactor
	}
	if override.LargeBonus != 0 {
		result.LargeBonus = override.LargeBonus
	}
	if override.MediumBonus != 0 {
		result.MediumBonus = override.MediumBonus
	}
	if override.SmallBonus != 0 {
		result.SmallBonus = override.SmallBonus
	}
	if override.FeaturePoints != 0 {
		result.FeaturePoints = override.FeaturePoints
	}
	if override.FeatureCap != 0 {
		result.FeatureCap = override.FeatureCap
	}
	if override.FeaturedBonus != 0 {
		result.FeaturedBonus = override.FeaturedBonus
	}
	if override.TrendingBonus != 0 {
		result.TrendingBonus = override.TrendingBonus
	}

	return &result
}

// logCalibrationOverrides logs which weights were overridden from defaults.
func logCalibrationOverrides(defaults *Weights, loaded *Weights) {
	var overrides []string

	check := func(name string, def, got float64) {
		if got != def {
			overrides = append(overrides, fmt.Sprintf("%s: %.2f -> %.2f", name, def, got))
		}
	}

	check("role_match", defaults.RoleMatch, loaded.RoleMatch)
	check("broad_match", defaults.BroadMatch, loaded.BroadMatch)
	check("rating_baseline", defaults.RatingBaseline, loaded.RatingBaseline)
	check("rating_factor", defaults.RatingFactor, loaded.RatingFactor)
	check("large_bonus", defaults.LargeBonus, loaded.LargeBonus)
	check("medium_bonus", defaults.MediumBonus, loaded.MediumBonus)
	check("small_bonus", defaults.SmallBonus, loaded.SmallBonus)
	check("feature_points", defaults.FeaturePoints, loaded.FeaturePoints)
	check("feature_cap", defaults.FeatureCap, loaded.FeatureCap)
	check("featured_bonus", defaults.FeaturedBonus, loaded.FeaturedBonus)
	check("trending_bonus", defaults.TrendingBonus, loaded.TrendingBonus)

	if len(overrides) > 0 {
		slog.Info("loaded scoring calibration with overrides",
			"overrides", overrides)
	} else {
		slog.Info("loaded scoring calibration (using all defaults)")
	}
}
