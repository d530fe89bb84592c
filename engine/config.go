package engine

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ashwinpai/goephemeris/frames"
	"github.com/ashwinpai/goephemeris/xerr"
)

// fileConfig is the YAML-facing shape of EngineConfig: paths are plain
// strings and the precession model is a name rather than an enum value,
// so config files stay human-editable.
type fileConfig struct {
	SPKPaths         []string `yaml:"spk_paths"`
	LSKPath          string   `yaml:"lsk_path"`
	EOPPath          string   `yaml:"eop_path"`
	CacheCapacity    int      `yaml:"cache_capacity"`
	StrictValidation bool     `yaml:"strict_validation"`
	PrecessionModel  string   `yaml:"precession_model"`
}

// LoadConfig reads a YAML engine configuration file from path and
// resolves it into an EngineConfig. An absent precession_model defaults to
// frames.DefaultPrecessionModel; an unrecognized one fails with
// InvalidConfig.
func LoadConfig(path string) (EngineConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, xerr.Wrapf(xerr.InvalidConfig, err, "reading engine config %q", path)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return EngineConfig{}, xerr.Wrapf(xerr.InvalidConfig, err, "parsing engine config %q", path)
	}

	model, err := parsePrecessionModel(fc.PrecessionModel)
	if err != nil {
		return EngineConfig{}, err
	}

	return EngineConfig{
		SPKPaths:         fc.SPKPaths,
		LSKPath:          fc.LSKPath,
		EOPPath:          fc.EOPPath,
		CacheCapacity:    fc.CacheCapacity,
		StrictValidation: fc.StrictValidation,
		PrecessionModel:  model,
	}, nil
}

func parsePrecessionModel(name string) (frames.PrecessionModel, error) {
	switch name {
	case "":
		return frames.DefaultPrecessionModel, nil
	case "iau2006":
		return frames.IAU2006, nil
	case "vondrak2011":
		return frames.Vondrak2011, nil
	case "linear":
		return frames.Linear, nil
	default:
		return 0, xerr.Newf(xerr.InvalidConfig, "unknown precession_model %q (want iau2006, vondrak2011, or linear)", name)
	}
}
