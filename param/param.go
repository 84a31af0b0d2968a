// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package param implements reading and writing
// of the kwave analysis parameters.
package param

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/js-arias/kwave/diag"
	"github.com/js-arias/kwave/h5data"
)

// Param is a keyword to identify
// the type of parameter in a parameter file.
type Param string

// Valid parameters
const (
	// Bound is the half length of the horizontal domain
	// used for the reconstruction,
	// in meters.
	Bound Param = "bound"

	// Heating indicates if the heating variables
	// should be appended to the state
	// before the reconstruction.
	Heating Param = "heating"

	// KScale is the length scale used to define
	// the non-dimensional wavenumber
	// from a wavelength,
	// in kilometers.
	KScale Param = "kscale"

	// Length is the length scale of the phase speed,
	// in meters.
	Length Param = "length"

	// Names are the names of the state variables,
	// separated by commas.
	Names Param = "names"

	// Order is the order of the axes
	// in the state file.
	Order Param = "order"

	// Select are the indices of the state variables
	// used in the reconstruction,
	// separated by commas.
	Select Param = "select"

	// Steps is the maximum number of time steps
	// read from the state file.
	Steps Param = "steps"

	// Time is the time scale of the phase speed,
	// in seconds.
	Time Param = "time"

	// TScale is the scale of the vertical basis
	// of the temperature and heating variables.
	TScale Param = "tscale"

	// Wavelength is the target wavelength
	// of the reconstruction,
	// in kilometers.
	Wavelength Param = "wavelength"
)

var params = []Param{
	Bound,
	Heating,
	KScale,
	Length,
	Names,
	Order,
	Select,
	Steps,
	Time,
	TScale,
	Wavelength,
}

// Params is a collection of analysis parameters.
type Params struct {
	name string // file name

	wavelength float64
	kScale     float64
	scale      diag.Scale
	bound      float64
	steps      int
	order      h5data.Order
	sel        []int
	tScale     float64
	heating    bool
	names      []string
}

// New creates a new parameter collection
// with the default values.
func New(name string) *Params {
	return &Params{
		name:       name,
		wavelength: 8640,
		kScale:     4320,
		scale:      diag.DefaultScale,
		bound:      4_320_000,
		steps:      300,
		order:      h5data.KVT,
		tScale:     0.0033,
	}
}

var header = []string{
	"parameter",
	"value",
}

// Read reads a parameter file from a TSV file.
//
// The TSV must contains the following fields:
//
//   - parameter, the name of the parameter
//   - value, the value of the parameter
//
// Parameters not defined in the file
// keep their default values.
//
// Here is an example file:
//
//	# kwave parameters
//	parameter	value
//	wavelength	8640
//	steps	300
//	select	0,1,2,3,5,6
func Read(name string) (*Params, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tsv := csv.NewReader(f)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("on file %q: header: %v", name, err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("on file %q: expecting field %q", name, h)
		}
	}

	p := New(name)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: %v", name, ln, err)
		}

		f := "parameter"
		pm := Param(strings.ToLower(strings.TrimSpace(row[fields[f]])))

		f = "value"
		if err := p.Set(pm, row[fields[f]]); err != nil {
			return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
		}
	}
	return p, nil
}

// Set sets the value of a parameter
// from a string.
func (p *Params) Set(pm Param, value string) error {
	value = strings.TrimSpace(value)
	switch pm {
	case Bound:
		v, err := positive(value)
		if err != nil {
			return err
		}
		p.bound = v
	case Heating:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		p.heating = v
	case KScale:
		v, err := positive(value)
		if err != nil {
			return err
		}
		p.kScale = v
	case Length:
		v, err := positive(value)
		if err != nil {
			return err
		}
		p.scale.Length = v
	case Names:
		var names []string
		for _, n := range strings.Split(value, ",") {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			names = append(names, n)
		}
		p.names = names
	case Order:
		o := h5data.Order(strings.ToLower(value))
		if o != h5data.KVT && o != h5data.VKT {
			return fmt.Errorf("unknown axis order %q", value)
		}
		p.order = o
	case Select:
		var sel []int
		for _, s := range strings.Split(value, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			v, err := strconv.Atoi(s)
			if err != nil {
				return err
			}
			if v < 0 {
				return fmt.Errorf("invalid variable index %d", v)
			}
			sel = append(sel, v)
		}
		if len(sel) == 0 {
			return fmt.Errorf("empty variable selection")
		}
		p.sel = sel
	case Steps:
		v, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("invalid steps value: %d", v)
		}
		p.steps = v
	case Time:
		v, err := positive(value)
		if err != nil {
			return err
		}
		p.scale.Time = v
	case TScale:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		p.tScale = v
	case Wavelength:
		v, err := positive(value)
		if err != nil {
			return err
		}
		p.wavelength = v
	default:
		return fmt.Errorf("unknown parameter %q", pm)
	}
	return nil
}

func positive(value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid value %g: expecting a positive value", v)
	}
	return v, nil
}

// Value returns the value of a parameter
// as a string.
func (p *Params) Value(pm Param) string {
	switch pm {
	case Bound:
		return strconv.FormatFloat(p.bound, 'g', -1, 64)
	case Heating:
		return strconv.FormatBool(p.heating)
	case KScale:
		return strconv.FormatFloat(p.kScale, 'g', -1, 64)
	case Length:
		return strconv.FormatFloat(p.scale.Length, 'g', -1, 64)
	case Names:
		return strings.Join(p.names, ",")
	case Order:
		return string(p.order)
	case Select:
		if p.sel == nil {
			return ""
		}
		s := make([]string, len(p.sel))
		for i, v := range p.sel {
			s[i] = strconv.Itoa(v)
		}
		return strings.Join(s, ",")
	case Steps:
		return strconv.Itoa(p.steps)
	case Time:
		return strconv.FormatFloat(p.scale.Time, 'g', -1, 64)
	case TScale:
		return strconv.FormatFloat(p.tScale, 'g', -1, 64)
	case Wavelength:
		return strconv.FormatFloat(p.wavelength, 'g', -1, 64)
	}
	return ""
}

// Name returns the name of the parameter file.
func (p *Params) Name() string {
	return p.name
}

// SetName sets the name of a parameter collection.
func (p *Params) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	p.name = name
}

// Bound returns the half length
// of the reconstruction domain.
func (p *Params) Bound() float64 {
	return p.bound
}

// Heating returns true if the heating variables
// should be appended to the state.
func (p *Params) Heating() bool {
	return p.heating
}

// KScale returns the length scale
// of the non-dimensional wavenumber.
func (p *Params) KScale() float64 {
	return p.kScale
}

// Names returns the names of the state variables.
// If a name is not defined,
// a generic name is used.
func (p *Params) Names(nv int) []string {
	names := make([]string, nv)
	for i := range names {
		if i < len(p.names) {
			names[i] = p.names[i]
			continue
		}
		names[i] = fmt.Sprintf("var-%d", i)
	}
	return names
}

// Order returns the axis order of the state file.
func (p *Params) Order() h5data.Order {
	return p.order
}

// Scale returns the scale of the phase speed.
func (p *Params) Scale() diag.Scale {
	return p.scale
}

// rawSelection is the default selection
// of the state variables.
var rawSelection = []int{0, 1, 2, 3, 5, 6}

// Selection returns the indices of the variables
// used for the reconstruction,
// for a state with nv variables
// (before the heating variables are appended).
//
// If the selection is not defined,
// the default is 0,1,2,3,5,6.
// If heating is set,
// the last two indices of the default
// are the appended J1 and J2 variables,
// i.e. nv and nv+1.
func (p *Params) Selection(nv int) []int {
	if p.sel != nil {
		return slices.Clone(p.sel)
	}
	if p.heating {
		return []int{0, 1, 2, 3, nv, nv + 1}
	}
	return slices.Clone(rawSelection)
}

// Steps returns the maximum number of time steps.
// Zero means all time steps.
func (p *Params) Steps() int {
	return p.steps
}

// TScale returns the scale of the vertical basis
// for the temperature and heating.
func (p *Params) TScale() float64 {
	return p.tScale
}

// Wavelength returns the target wavelength.
func (p *Params) Wavelength() float64 {
	return p.wavelength
}

// Write writes a parameter collection into a file.
func (p *Params) Write() (err error) {
	f, err := os.Create(p.name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "# kwave parameters\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("on file %q: while writing header: %v", p.name, err)
	}

	for _, pm := range params {
		v := p.Value(pm)
		if v == "" {
			continue
		}
		row := []string{
			string(pm),
			v,
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("on file %q: %v", p.name, err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", p.name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", p.name, err)
	}
	return nil
}
