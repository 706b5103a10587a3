package cli

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/webforce/webforce/pkg/errors"
	"github.com/webforce/webforce/pkg/layout"
)

// fileConfig mirrors the optional webforce.toml file. Every field is
// optional; zero values fall back to the engine defaults, so a partial
// file only overrides what it names.
//
//	[node]
//	mass = 1.0
//	charge = 0.5
//	spring_constant = 10.0
//	rest_length = 0.5
//	damping_ratio = 0.5
//
//	[simulation]
//	min_separation = 0.05
//	attract = false
//	seed = 0
//	frame_rate = 60
//	max_step_ms = 250
type fileConfig struct {
	Node struct {
		Mass float64 `toml:"mass"`
		// Pointer so an explicit charge = 0.0 (a valid, chargeless
		// node) is distinguishable from the field being absent.
		Charge         *float64 `toml:"charge"`
		SpringConstant float64 `toml:"spring_constant"`
		RestLength     float64 `toml:"rest_length"`
		DampingRatio   float64 `toml:"damping_ratio"`
	} `toml:"node"`
	Simulation struct {
		MinSeparation float64 `toml:"min_separation"`
		Attract       bool    `toml:"attract"`
		Seed          int64   `toml:"seed"`
		FrameRate     float64 `toml:"frame_rate"`
		MaxStepMS     int     `toml:"max_step_ms"`
	} `toml:"simulation"`
}

// loadEngineConfig builds a layout.Config from an optional TOML file.
// With an empty path, webforce.toml in the working directory is used if
// present; a missing default file is not an error. An explicit path
// that does not exist is.
func loadEngineConfig(path string) (layout.Config, error) {
	cfg := layout.DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if fc.Node.Mass != 0 {
		cfg.NodeMass = fc.Node.Mass
	}
	if fc.Node.Charge != nil {
		cfg.NodeCharge = *fc.Node.Charge
	}
	if fc.Node.SpringConstant != 0 {
		cfg.SpringConstant = fc.Node.SpringConstant
	}
	if fc.Node.RestLength != 0 {
		cfg.RestLength = fc.Node.RestLength
	}
	if fc.Node.DampingRatio != 0 {
		cfg.DampingRatio = fc.Node.DampingRatio
	}
	if fc.Simulation.MinSeparation != 0 {
		cfg.MinSeparation = fc.Simulation.MinSeparation
	}
	cfg.Attract = fc.Simulation.Attract
	cfg.Seed = fc.Simulation.Seed
	if fc.Simulation.FrameRate > 0 {
		cfg.FramePeriod = time.Duration(float64(time.Second) / fc.Simulation.FrameRate)
	}
	if fc.Simulation.MaxStepMS > 0 {
		cfg.MaxStep = time.Duration(fc.Simulation.MaxStepMS) * time.Millisecond
	}

	return cfg, nil
}
