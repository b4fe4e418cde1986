//go:build !nohdf5

package hdf5

import (
	"fmt"

	"github.com/jrfilteau/brain-diffusion"
	"gonum.org/v1/hdf5"
)

// Load reads back the records saved in an HDF5 file by Save.
func Load(path string) (rs []diffusion.Record, err error) {
	file, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	defer checkClose(&err, file)

	dset, err := file.OpenDataset("records")
	if err != nil {
		return nil, err
	}
	defer checkClose(&err, dset)

	fspace := dset.Space()
	defer checkClose(&err, fspace)

	dims, _, err := fspace.SimpleExtentDims()
	if err != nil {
		return nil, err
	}
	if len(dims) != 1 {
		return nil, fmt.Errorf("loader: expected 1 dimension, got %d", len(dims))
	}

	rows := make([]record, dims[0])
	if err := dset.Read(&rows); err != nil {
		return nil, err
	}
	return fromRecords(rows), nil
}
