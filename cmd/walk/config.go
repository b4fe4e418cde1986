package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Config holds the various parameters required for running a simulation.
type Config struct {
	// Output is either a filename (path) for the HDF5 output file,
	// or the empty string to print the ensemble summary.
	Output string `toml:"output"`

	Particles int    `toml:"particles" validate:"gte=1"` // number of particles
	Frames    int    `toml:"frames" validate:"gte=1"`    // number of frames per particle
	Seed      uint64 `toml:"seed"`                       // seed of the random streams
	Workers   int    `toml:"workers" validate:"gte=0"`   // concurrent particles, 0 for no limit

	// Step parameters
	Base     float64 `toml:"base" validate:"gt=0"` // unit: length
	Variance float64 `toml:"variance"`             // unit: length (no effect yet)

	Start [3]float64 `toml:"start"` // unit: length

	// Boundary parameters: zero, one or two planes
	Planes []PlaneConfig `toml:"planes" validate:"max=2,dive"`

	// Print every n-th frame of the summary
	Every int `toml:"every" validate:"gte=1"`
}

// PlaneConfig defines a plane by its normal and a point on it.
type PlaneConfig struct {
	Normal [3]float64 `toml:"normal"`
	Anchor [3]float64 `toml:"anchor"`
}

// DefaultConf are the default parameters.
var DefaultConf = &Config{
	Output:    "",
	Particles: 10,
	Frames:    1000,
	Seed:      1,
	Workers:   0,
	Base:      1.0,
	Variance:  0.0,
	Planes: []PlaneConfig{
		{Normal: [3]float64{1, 0, 0}},
	},
	Every: 100,
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseConfig parses the TOML config file whose path is provided.
func ParseConfig(path string) (*Config, error) {
	// config file overwrites default parameters
	conf := *DefaultConf
	conf.Planes = append([]PlaneConfig(nil), DefaultConf.Planes...)
	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return nil, err
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		s := make([]string, len(keys))
		for i, k := range keys {
			s[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(s, ", "))
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Validate checks the ranges of the parameters.
func (c *Config) Validate() error {
	return validate.Struct(c)
}
