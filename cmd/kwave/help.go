// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(dataFilesGuide)
	app.Add(paramsGuide)
	app.Add(projectsGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
Kwave requires several files to read and process a simulation case. To reduce
the burden of keeping track of many files, a single project file is used to
hold the reference of all files required in the analysis. This guide explains
the structure of the file, but most of the time, the best and most secure way
to edit or view this file is by using kwave commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# kwave project files
	dataset	path
	domain	data/domain.h5
	inverse	data/inv_mat.h5
	operators	output/no_rad/optrs.h5
	params	params.tab
	state	output/no_rad/state.h5
	vmodes	data/vertical_mode.h5

The valid file types are:

- Simulated state. Defined by the dataset keyword "state". An HDF5 file with
  the spectral coefficients of the simulation.
- Linear operators. Defined by the dataset keyword "operators". An HDF5 file
  with the linear operator of each wavenumber.
- Inverse transform. Defined by the dataset keyword "inverse". An HDF5 file
  with the inverse horizontal transform, and the wavenumber axes.
- Model domain. Defined by the dataset keyword "domain". An HDF5 file with
  the horizontal and vertical coordinates.
- Vertical modes. Defined by the dataset keyword "vmodes". An HDF5 file with
  the vertical structure functions.
- Analysis parameters. Defined by the dataset keyword "params". A
  tab-delimited file with the parameters of the analysis. If it is not
  defined, the default parameters will be used.

The recommended way to add a file to a project is by using the command
'kwave add'.
	`,
}

var paramsGuide = &command.Command{
	Usage: "parameters",
	Short: "about the parameters file",
	Long: `
The constants of the analysis are stored in a parameters file. The
recommended way to interact with the parameters is by using the command
'kwave param'.

A parameters file is a tab-delimited file with the following fields:

	- parameter  the name of the parameter
	- value      the value of the parameter

Here is an example file:

	# kwave parameters
	parameter	value
	wavelength	8640
	steps	300
	select	0,1,2,3,5,6

The valid parameters are:

	bound       half length of the horizontal domain used in the
	            reconstruction, in meters. Default: 4320000.
	heating     if true, the heating variables J1 and J2 are appended to
	            the state before the reconstruction. Default: false.
	kscale      length scale of the non-dimensional wavenumbers, in km.
	            Default: 4320.
	length      length scale of the phase speed, in meters.
	            Default: 4320000.
	names       names of the state variables, separated by commas.
	order       axis order of the state dataset, either "kvt"
	            (wavenumber, variable, time) or "vkt". Default: kvt.
	select      indices of the state variables used in the
	            reconstruction, separated by commas. With heating,
	            J1 and J2 are at the indices Nv and Nv+1 (Nv is the
	            number of state variables). Default: 0,1,2,3,5,6, or
	            0,1,2,3,Nv,Nv+1 if heating is set.
	steps       maximum number of time steps read from the state.
	            Zero means all time steps. Default: 300.
	time        time scale of the phase speed, in seconds.
	            Default: 86400.
	tscale      scale of the vertical basis of the temperature and
	            heating. Default: 0.0033.
	wavelength  target wavelength of the reconstruction, in km.
	            Default: 8640.
	`,
}

var dataFilesGuide = &command.Command{
	Usage: "data-files",
	Short: "about the HDF5 data files",
	Long: `
The data of a simulation case is stored in HDF5 files. Complex values can be
stored as a compound type with the fields "r" and "i" (as written by h5py), or
as real values.

The state file contains the following datasets:

	state       the spectral coefficients, with the shape (Nk, Nv, Nt) or
	            (Nv, Nk, Nt), as defined by the "order" parameter.
	time        (optional) the time of each step.
	wavenumber  (optional) the wavenumber axis.

The operators file contains the dataset "operators", with the shape
(Nv, Nv, Nk).

The inverse transform file contains the dataset "F_inv", with the shape
(Nx, Nk), and the optional datasets "lambda", "wnum_cal" (the wavenumbers
used for the calculations), and "wnum_dis" (the wavenumbers used for
display).

The domain file contains the datasets "x" and "z", and the vertical modes file
contains the datasets "G1" and "G2".
	`,
}
