// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package h5data implements reading of the HDF5 files
// produced by the linear tropical wave model,
// and writing of the post-processing results.
//
// Complex values are stored as a compound type
// with the fields "r" and "i",
// which is the convention used by h5py.
package h5data

import (
	"fmt"

	"gonum.org/v1/hdf5"
)

// complexPair is the memory layout
// of an HDF5 complex value.
type complexPair struct {
	R float64 `hdf5:"r"`
	I float64 `hdf5:"i"`
}

// dims returns the dimensions of a dataset.
func dims(d *hdf5.Dataset) ([]int, int, error) {
	sp := d.Space()
	defer sp.Close()

	ds, _, err := sp.SimpleExtentDims()
	if err != nil {
		return nil, 0, err
	}
	n := 1
	dd := make([]int, len(ds))
	for i, v := range ds {
		dd[i] = int(v)
		n *= int(v)
	}
	return dd, n, nil
}

// readFloats reads a real dataset.
func readFloats(f *hdf5.File, name string) ([]float64, []int, error) {
	d, err := f.OpenDataset(name)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset %q: %v", name, err)
	}
	defer d.Close()

	ds, n, err := dims(d)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset %q: %v", name, err)
	}
	data := make([]float64, n)
	if n == 0 {
		return data, ds, nil
	}
	if err := d.Read(&data); err != nil {
		return nil, nil, fmt.Errorf("dataset %q: %v", name, err)
	}
	return data, ds, nil
}

// readComplex reads a complex dataset.
// If the dataset is real,
// the values are read as complex values
// with a zero imaginary part.
func readComplex(f *hdf5.File, name string) ([]complex128, []int, error) {
	d, err := f.OpenDataset(name)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset %q: %v", name, err)
	}
	defer d.Close()

	ds, n, err := dims(d)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset %q: %v", name, err)
	}
	data := make([]complex128, n)
	if n == 0 {
		return data, ds, nil
	}

	pairs := make([]complexPair, n)
	if err := d.Read(&pairs); err == nil {
		for i, p := range pairs {
			data[i] = complex(p.R, p.I)
		}
		return data, ds, nil
	}

	re := make([]float64, n)
	if err := d.Read(&re); err != nil {
		return nil, nil, fmt.Errorf("dataset %q: %v", name, err)
	}
	for i, v := range re {
		data[i] = complex(v, 0)
	}
	return data, ds, nil
}

// hasDataset returns true if a dataset is defined in a file.
func hasDataset(f *hdf5.File, name string) bool {
	return f.LinkExists(name)
}

// writeFloats writes a real dataset.
func writeFloats(f *hdf5.File, name string, data []float64, shape ...int) error {
	ds := make([]uint, len(shape))
	n := 1
	for i, v := range shape {
		ds[i] = uint(v)
		n *= v
	}
	if n != len(data) {
		return fmt.Errorf("dataset %q: got %d values, want %d", name, len(data), n)
	}

	sp, err := hdf5.CreateSimpleDataspace(ds, nil)
	if err != nil {
		return fmt.Errorf("dataset %q: %v", name, err)
	}
	defer sp.Close()

	d, err := f.CreateDataset(name, hdf5.T_NATIVE_DOUBLE, sp)
	if err != nil {
		return fmt.Errorf("dataset %q: %v", name, err)
	}
	defer d.Close()

	if len(data) == 0 {
		return nil
	}
	if err := d.Write(&data); err != nil {
		return fmt.Errorf("dataset %q: %v", name, err)
	}
	return nil
}

// writeComplex writes a complex dataset
// using the h5py compound convention.
func writeComplex(f *hdf5.File, name string, data []complex128, shape ...int) error {
	ds := make([]uint, len(shape))
	n := 1
	for i, v := range shape {
		ds[i] = uint(v)
		n *= v
	}
	if n != len(data) {
		return fmt.Errorf("dataset %q: got %d values, want %d", name, len(data), n)
	}

	tp, err := hdf5.NewDatatypeFromValue(complexPair{})
	if err != nil {
		return fmt.Errorf("dataset %q: %v", name, err)
	}
	defer tp.Close()

	sp, err := hdf5.CreateSimpleDataspace(ds, nil)
	if err != nil {
		return fmt.Errorf("dataset %q: %v", name, err)
	}
	defer sp.Close()

	d, err := f.CreateDataset(name, tp, sp)
	if err != nil {
		return fmt.Errorf("dataset %q: %v", name, err)
	}
	defer d.Close()

	pairs := make([]complexPair, len(data))
	for i, c := range data {
		pairs[i] = complexPair{R: real(c), I: imag(c)}
	}
	if len(pairs) == 0 {
		return nil
	}
	if err := d.Write(&pairs); err != nil {
		return fmt.Errorf("dataset %q: %v", name, err)
	}
	return nil
}
