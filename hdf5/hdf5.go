//go:build !nohdf5

package hdf5

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/jrfilteau/brain-diffusion"
	"gonum.org/v1/hdf5"
)

// Save writes analyzed records, their ensemble means and the run
// configuration to a new HDF5 file, truncating any existing one.
func Save(conf *Config, records []diffusion.Record) (err error) {
	if len(records) == 0 {
		return fmt.Errorf("hdf5: no records to save")
	}
	if err := os.MkdirAll(filepath.Dir(conf.Output), 0755); err != nil {
		return err
	}

	file, err := hdf5.CreateFile(conf.Output, hdf5.F_ACC_TRUNC)
	if err != nil {
		return err
	}
	defer checkClose(&err, file)

	if err := saveConfig(file, conf); err != nil {
		return err
	}

	rows := toRecords(records)
	if err := writeTable(file, "records", record{}, &rows, len(rows)); err != nil {
		return err
	}

	ens := toSummaries(diffusion.Ensemble(records))
	if err := writeTable(file, "ensemble", summary{}, &ens, len(ens)); err != nil {
		return err
	}

	if len(conf.Planes) > 0 {
		planes := conf.Planes
		if err := writeTable(file, "planes", diffusion.Plane{}, &planes, len(planes)); err != nil {
			return err
		}
	}
	return nil
}

// writeTable creates a one-dimensional dataset of n compound values
// shaped like val and writes data, a pointer to a slice, into it.
func writeTable(file *hdf5.File, name string, val, data interface{}, n int) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(val)
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	dspace, err := hdf5.CreateSimpleDataspace([]uint{uint(n)}, nil)
	if err != nil {
		return err
	}
	defer checkClose(&err, dspace)

	dset, err := file.CreateDataset(name, dtype, dspace)
	if err != nil {
		return err
	}
	defer checkClose(&err, dset)

	return dset.Write(data)
}

// saveConfig creates a "config" dataset with a null dataspace whose attributes
// reflect the whole configuration plus some other appropriate metadata.
func saveConfig(file *hdf5.File, conf *Config) (err error) {
	null, err := hdf5.CreateDataspace(hdf5.S_NULL)
	if err != nil {
		return err
	}
	defer checkClose(&err, null)

	anytype, err := hdf5.NewDatatypeFromValue(0)
	if err != nil {
		return err
	}
	defer checkClose(&err, anytype)

	dset, err := file.CreateDataset("config", anytype, null)
	if err != nil {
		return err
	}
	defer checkClose(&err, dset)

	now := time.Now().String()
	if err := writeAttr(dset, "Time", &now); err != nil {
		return err
	}
	if conf.RunID != "" {
		id := conf.RunID
		if err := writeAttr(dset, "RunID", &id); err != nil {
			return err
		}
	}

	if conf.Meta == nil {
		return nil
	}
	v := reflect.Indirect(reflect.ValueOf(conf.Meta))
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("hdf5: metadata must be a struct, got %s", v.Kind())
	}
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if !v.Type().Field(i).IsExported() || !scalar(f.Kind()) {
			continue
		}
		p := reflect.New(f.Type())
		p.Elem().Set(f)
		if err := writeAttr(dset, v.Type().Field(i).Name, p.Interface()); err != nil {
			return err
		}
	}
	return nil
}

// writeAttr writes the value pointed to by ptr as a scalar attribute.
func writeAttr(dset *hdf5.Dataset, name string, ptr interface{}) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(reflect.ValueOf(ptr).Elem().Interface())
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	space, err := hdf5.CreateDataspace(hdf5.S_SCALAR)
	if err != nil {
		return err
	}
	defer checkClose(&err, space)

	attr, err := dset.CreateAttribute(name, dtype, space)
	if err != nil {
		return err
	}
	defer checkClose(&err, attr)

	return attr.Write(ptr, dtype)
}

// scalar reports whether values of kind k can be stored as attributes.
func scalar(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.String:
		return true
	}
	return false
}

// checkClose checks for errors in deferred calls.
func checkClose(err *error, c io.Closer) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}
