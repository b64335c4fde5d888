// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package window

import (
	"github.com/denishdholaria/bijmantra-sub010/seqio"
)

// FeatureSpan is the part of a feature that falls on one row. From and
// To are row columns, half-open.
type FeatureSpan struct {
	Feature int          `json:"feature"` // index into the indexed feature list
	Name    string       `json:"name"`
	Type    string       `json:"type"`
	Strand  seqio.Strand `json:"strand"`
	From    int          `json:"from"`
	To      int          `json:"to"`
}

// Row is the draw instruction for one row of bases.
type Row struct {
	Index    int           `json:"index"`
	Offset   int           `json:"offset"` // 0-based position of the first base
	Y        float64       `json:"y"`      // top edge in content pixels
	Bases    string        `json:"bases"`
	Bars     []Bar         `json:"bars,omitempty"`
	Features []FeatureSpan `json:"features,omitempty"`
}

// Frame is everything needed to draw one viewport state.
type Frame struct {
	Length      int     `json:"length"`
	Window      Window  `json:"window"`
	TotalHeight float64 `json:"total_height"`
	Rows        []Row   `json:"rows"`
}

// Render materializes the rows of rec inside the viewport. The record
// is only read; Bases slices share its sequence storage. features may
// be nil.
func Render(rec *seqio.Record, g Geometry, vp Viewport, features *FeatureIndex) Frame {
	n := len(rec.Sequence)
	w := Compute(n, g, vp)
	frame := Frame{
		Length:      n,
		Window:      w,
		TotalHeight: g.TotalHeight(n),
		Rows:        make([]Row, 0, w.Len()),
	}
	if w.Empty {
		return frame
	}
	withQuality := rec.HasQuality()
	for i := w.First; i <= w.Last; i++ {
		start := i * g.BasesPerRow
		end := start + g.BasesPerRow
		if end > n {
			end = n
		}
		row := Row{
			Index:  i,
			Offset: start,
			Y:      float64(i) * g.RowHeight,
			Bases:  rec.Sequence[start:end],
		}
		if withQuality {
			row.Bars = make([]Bar, 0, end-start)
			for p := start; p < end; p++ {
				row.Bars = append(row.Bars, QualityBar(p-start, rec.Phred(p), g.RowHeight))
			}
		}
		features.Overlapping(start, end-1, func(id int) {
			f := features.Feature(id)
			from, to := f.Start-1-start, f.End-start
			if from < 0 {
				from = 0
			}
			if to > end-start {
				to = end - start
			}
			row.Features = append(row.Features, FeatureSpan{
				Feature: id,
				Name:    f.Name(),
				Type:    f.Type,
				Strand:  f.Strand,
				From:    from,
				To:      to,
			})
		})
		frame.Rows = append(frame.Rows, row)
	}
	return frame
}
