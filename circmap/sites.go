// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package circmap

import (
	"github.com/denishdholaria/bijmantra-sub010/motif"
)

// SiteMark is a restriction site drawn as a tick outside the forward
// feature ring, at the site's top-strand cut position.
type SiteMark struct {
	Enzyme      string
	CutPosition int
	Angle       float64
	Inner       Point
	Outer       Point
	Label       Point
}

// SiteMarks projects restriction sites onto the circle. A cut at the
// very end of the sequence is drawn at 12 o'clock.
func SiteMarks(length int, sites []motif.Site, layout Layout) ([]SiteMark, error) {
	if length <= 0 {
		return nil, ErrLength
	}
	base := layout.Radius + layout.Gap + layout.RingWidth + 2
	marks := make([]SiteMark, 0, len(sites))
	for _, s := range sites {
		a := Angle(s.CutPosition%length, length)
		marks = append(marks, SiteMark{
			Enzyme:      s.Enzyme,
			CutPosition: s.CutPosition,
			Angle:       a,
			Inner:       layout.Polar(base, a),
			Outer:       layout.Polar(base+10, a),
			Label:       layout.Polar(base+10+layout.LabelOffset, a),
		})
	}
	return marks, nil
}
