// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

// Package window turns a viewport over a long sequence into draw
// instructions for only the rows that can be seen.
//
// The sequence is split into rows of a fixed number of bases. Given the
// viewport's scroll offset and height, Compute finds the visible rows
// and widens the range by a small overscan on each side. Render then
// materializes just those rows, so the work done per scroll event
// depends on the viewport height and not on the sequence length.
package window

import (
	"math"
)

// Geometry is the fixed row layout.
type Geometry struct {
	BasesPerRow int     `yaml:"bases_per_row"`
	RowHeight   float64 `yaml:"row_height"` // pixels
	Overscan    int     `yaml:"overscan"`   // extra rows on each side
}

var DefaultGeometry = Geometry{
	BasesPerRow: 60,
	RowHeight:   24,
	Overscan:    5,
}

// Viewport is the scroll state of the display surface, in pixels.
type Viewport struct {
	ScrollTop float64
	Height    float64
}

// Window is the range of rows to materialize. FirstVisibleRow and
// LastVisibleRow are inclusive; First and Last include the overscan.
// When Empty is true there is nothing to draw.
type Window struct {
	RowCount        int     `json:"row_count"`
	FirstVisibleRow int     `json:"first_visible_row"`
	LastVisibleRow  int     `json:"last_visible_row"`
	First           int     `json:"first"`
	Last            int     `json:"last"`
	RowHeight       float64 `json:"row_height"`
	Empty           bool    `json:"empty"`
}

// Len is the number of rows to materialize.
func (w Window) Len() int {
	if w.Empty {
		return 0
	}
	return w.Last - w.First + 1
}

// RowCount is ceil(n/basesPerRow).
func RowCount(n, basesPerRow int) int {
	if n <= 0 || basesPerRow <= 0 {
		return 0
	}
	return (n + basesPerRow - 1) / basesPerRow
}

// MaxRows is the most rows Compute can return for a viewport height,
// whatever the sequence length.
func (g Geometry) MaxRows(height float64) int {
	if !(height > 0) || !(g.RowHeight > 0) {
		return 0
	}
	if math.IsInf(height, 1) {
		return math.MaxInt
	}
	return int(math.Ceil(height/g.RowHeight)) + 1 + 2*g.Overscan
}

// Compute returns the window for a sequence of n bases. It depends only
// on its arguments, so the same viewport state always yields the same
// window. A NaN or negative scroll offset counts as 0 and an offset
// past the end shows the last row; a NaN height gives an empty window.
func Compute(n int, g Geometry, vp Viewport) Window {
	w := Window{
		RowCount:  RowCount(n, g.BasesPerRow),
		RowHeight: g.RowHeight,
	}
	if w.RowCount == 0 || !(vp.Height > 0) || !(g.RowHeight > 0) || math.IsInf(g.RowHeight, 1) {
		w.Empty = true
		return w
	}
	// Clamp to the content before converting to int, so that huge or
	// non-finite scroll states cannot overflow the row arithmetic.
	total := g.TotalHeight(n)
	top := vp.ScrollTop
	if math.IsNaN(top) || top < 0 {
		top = 0
	} else if top > total {
		top = total
	}
	height := math.Min(vp.Height, total)
	first := int(math.Floor(top / g.RowHeight))
	last := int(math.Ceil((top+height)/g.RowHeight)) - 1
	if first > w.RowCount-1 {
		first = w.RowCount - 1
	}
	if last > w.RowCount-1 {
		last = w.RowCount - 1
	}
	if last < first {
		last = first
	}
	overscan := g.Overscan
	if overscan < 0 {
		overscan = 0
	}
	w.FirstVisibleRow, w.LastVisibleRow = first, last
	w.First, w.Last = first-overscan, last+overscan
	if w.First < 0 {
		w.First = 0
	}
	if w.Last > w.RowCount-1 {
		w.Last = w.RowCount - 1
	}
	return w
}

// TotalHeight is the pixel height of the whole scrollable content.
func (g Geometry) TotalHeight(n int) float64 {
	return float64(RowCount(n, g.BasesPerRow)) * g.RowHeight
}
