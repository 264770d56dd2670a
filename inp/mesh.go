// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// boundary ids of line meshes
const (
	BryLeft  = 0 // x = xmin
	BryRight = 1 // x = xmax
)

// MeshData holds the definition of a line mesh
type MeshData struct {
	Xmin   float64 `yaml:"xmin"`   // left end
	Xmax   float64 `yaml:"xmax"`   // right end
	Ncells int     `yaml:"ncells"` // number of cells
	Geo    string  `yaml:"geo"`    // geometry of cells; e.g. "lin2"
	Quad   string  `yaml:"quad"`   // quadrature rule: "gauss" or "lobatto"
	Nqp    int     `yaml:"nqp"`    // number of integration points per cell
	Blocks []int   `yaml:"blocks"` // block id of each cell; empty means all in block 0
}

// SetDefault sets default values
func (o *MeshData) SetDefault() {
	o.Xmin, o.Xmax = 0, 1
	o.Ncells = 1
	o.Geo = "lin2"
	o.Quad = "gauss"
	o.Nqp = 2
}

// Vert holds vertex data
type Vert struct {
	Id  int       // id
	Tag int       // boundary id or -1
	C   []float64 // coordinates (size==1)
}

// Cell holds cell data
type Cell struct {
	Id    int    // id
	Block int    // block id
	Type  string // geometry type; e.g. "lin2"
	Verts []int  // vertices
}

// Mesh holds a line mesh
type Mesh struct {
	Verts  []*Vert // vertices
	Cells  []*Cell // cells
	Ndim   int     // space dimension
	Quad   string  // quadrature rule
	Nqp    int     // number of integration points per cell
	Xmin   float64 // min x coordinate
	Xmax   float64 // max x coordinate
	Blocks []int   // sorted list of block ids
}

// NewLineMesh generates a mesh of a segment
func NewLineMesh(dat *MeshData) (o *Mesh, err error) {

	// check
	if dat.Ncells < 1 {
		return nil, chk.Err("number of cells must be at least 1. %d is invalid", dat.Ncells)
	}
	if dat.Xmax <= dat.Xmin {
		return nil, chk.Err("xmax=%g must be greater than xmin=%g", dat.Xmax, dat.Xmin)
	}
	if len(dat.Blocks) > 0 && len(dat.Blocks) != dat.Ncells {
		return nil, chk.Err("number of block ids (%d) must be equal to the number of cells (%d)", len(dat.Blocks), dat.Ncells)
	}
	nvpc := 2 // vertices per cell
	switch dat.Geo {
	case "lin2":
	case "lin3":
		nvpc = 3
	default:
		return nil, chk.Err("geometry %q is not available for line meshes", dat.Geo)
	}

	// mesh
	o = &Mesh{Ndim: 1, Quad: dat.Quad, Nqp: dat.Nqp, Xmin: dat.Xmin, Xmax: dat.Xmax}

	// corner vertices
	L := (dat.Xmax - dat.Xmin) / float64(dat.Ncells)
	nc := dat.Ncells + 1
	for i := 0; i < nc; i++ {
		tag := -1
		switch i {
		case 0:
			tag = BryLeft
		case nc - 1:
			tag = BryRight
		}
		o.Verts = append(o.Verts, &Vert{Id: i, Tag: tag, C: []float64{dat.Xmin + float64(i)*L}})
	}
	o.Verts[nc-1].C[0] = dat.Xmax

	// cells
	blocks := make(map[int]bool)
	for e := 0; e < dat.Ncells; e++ {
		block := 0
		if len(dat.Blocks) > 0 {
			block = dat.Blocks[e]
		}
		blocks[block] = true
		cell := &Cell{Id: e, Block: block, Type: dat.Geo, Verts: []int{e, e + 1}}
		if nvpc == 3 {
			mid := len(o.Verts)
			o.Verts = append(o.Verts, &Vert{Id: mid, Tag: -1, C: []float64{dat.Xmin + (float64(e)+0.5)*L}})
			cell.Verts = append(cell.Verts, mid)
		}
		o.Cells = append(o.Cells, cell)
	}
	for b := range blocks {
		o.Blocks = append(o.Blocks, b)
	}
	sort.Ints(o.Blocks)
	return
}

// BoundaryVerts returns the ids of vertices on boundary bry
func (o *Mesh) BoundaryVerts(bry int) (ids []int) {
	for _, v := range o.Verts {
		if v.Tag == bry {
			ids = append(ids, v.Id)
		}
	}
	return
}

// String returns a short description of the mesh
func (o *Mesh) String() string {
	return io.Sf("line mesh: x=[%g, %g] nverts=%d ncells=%d blocks=%v", o.Xmin, o.Xmax, len(o.Verts), len(o.Cells), o.Blocks)
}
