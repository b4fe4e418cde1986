//go:build nohdf5

package hdf5

import (
	"fmt"
	"os"

	"github.com/jrfilteau/brain-diffusion"
)

// Save returns an error explaining that HDF5 support is disabled.
func Save(conf *Config, records []diffusion.Record) error {
	return fmt.Errorf("%s was built without HDF5 support", os.Args[0])
}

// Load returns an error explaining that HDF5 support is disabled.
func Load(path string) ([]diffusion.Record, error) {
	return nil, fmt.Errorf("%s was built without HDF5 support", os.Args[0])
}
