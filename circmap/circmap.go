// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

// Package circmap projects linear feature coordinates onto a circular
// (plasmid-style) map.
//
// Angles are in degrees, measured clockwise from 12 o'clock. A base
// position p on a sequence of length L sits at p/L*360. Forward-strand
// features occupy a ring just outside the backbone radius, reverse
// strand features a ring just inside it, and unstranded features
// straddle it.
package circmap

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/denishdholaria/bijmantra-sub010/seqio"
)

var ErrLength = errors.New("sequence length must be positive")

// Layout is the fixed geometry of a map.
type Layout struct {
	CenterX   float64 `yaml:"center_x"`
	CenterY   float64 `yaml:"center_y"`
	Radius    float64 `yaml:"radius"`     // backbone
	RingWidth float64 `yaml:"ring_width"` // radial thickness of a feature
	Gap       float64 `yaml:"gap"`        // space between backbone and ring
	// LabelOffset is the distance from the ring's outer edge to the
	// label anchor.
	LabelOffset float64 `yaml:"label_offset"`
}

var DefaultLayout = Layout{
	CenterX:     300,
	CenterY:     300,
	Radius:      200,
	RingWidth:   18,
	Gap:         3,
	LabelOffset: 14,
}

type Point struct {
	X, Y float64
}

// Polar returns the point at radius r and angle deg.
func (l Layout) Polar(r, deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{
		X: l.CenterX + r*math.Sin(rad),
		Y: l.CenterY - r*math.Cos(rad),
	}
}

// Angle converts a sequence position to degrees.
func Angle(pos, length int) float64 {
	return float64(pos) / float64(length) * 360
}

// Ring returns the radial extent of a feature on strand.
func (l Layout) Ring(strand seqio.Strand) (inner, outer float64) {
	switch strand {
	case seqio.StrandForward:
		inner = l.Radius + l.Gap
		return inner, inner + l.RingWidth
	case seqio.StrandReverse:
		outer = l.Radius - l.Gap
		return outer - l.RingWidth, outer
	default:
		return l.Radius - l.RingWidth/2, l.Radius + l.RingWidth/2
	}
}

// Sector is the projected geometry of one feature.
type Sector struct {
	Index       int // position in the input feature list
	Name        string
	Type        string
	Strand      seqio.Strand
	StartAngle  float64
	EndAngle    float64
	InnerRadius float64
	OuterRadius float64
	LargeArc    bool
	Color       string
	Path        string // SVG path data
	Label       Point
}

// Sweep is the angular extent of the sector.
func (s Sector) Sweep() float64 {
	return s.EndAngle - s.StartAngle
}

// Project maps each feature onto the circle. Features are returned in
// input order. An end coordinate beyond length wraps past 12 o'clock.
func Project(length int, features []seqio.Feature, layout Layout, palette Palette) ([]Sector, error) {
	if length <= 0 {
		return nil, ErrLength
	}
	sectors := make([]Sector, 0, len(features))
	for i, f := range features {
		inner, outer := layout.Ring(f.Strand)
		start, end := Angle(f.Start, length), Angle(f.End, length)
		if end-start > 360 {
			end = start + 360
		}
		sec := Sector{
			Index:       i,
			Name:        f.Name(),
			Type:        f.Type,
			Strand:      f.Strand,
			StartAngle:  start,
			EndAngle:    end,
			InnerRadius: inner,
			OuterRadius: outer,
			LargeArc:    end-start > 180,
			Color:       palette.Color(f.Type),
			Label:       layout.Polar(outer+layout.LabelOffset, (start+end)/2),
		}
		sec.Path = layout.sectorPath(inner, outer, start, end)
		sectors = append(sectors, sec)
	}
	return sectors, nil
}

// sectorPath draws an annular sector clockwise along the outer edge and
// back along the inner edge. A full circle is drawn as two half arcs,
// since a single SVG arc cannot end where it starts.
func (l Layout) sectorPath(inner, outer, start, end float64) string {
	var b strings.Builder
	if end-start >= 360 {
		mid := start + 180
		o0, o1 := l.Polar(outer, start), l.Polar(outer, mid)
		i0, i1 := l.Polar(inner, start), l.Polar(inner, mid)
		fmt.Fprintf(&b, "M %s A %s 0 0 1 %s A %s 0 0 1 %s Z ", pt(o0), rr(outer), pt(o1), rr(outer), pt(o0))
		fmt.Fprintf(&b, "M %s A %s 0 0 0 %s A %s 0 0 0 %s Z", pt(i0), rr(inner), pt(i1), rr(inner), pt(i0))
		return b.String()
	}
	large := 0
	if end-start > 180 {
		large = 1
	}
	fmt.Fprintf(&b, "M %s A %s 0 %d 1 %s L %s A %s 0 %d 0 %s Z",
		pt(l.Polar(outer, start)),
		rr(outer), large, pt(l.Polar(outer, end)),
		pt(l.Polar(inner, end)),
		rr(inner), large, pt(l.Polar(inner, start)))
	return b.String()
}

func pt(p Point) string {
	return fmt.Sprintf("%.2f %.2f", p.X, p.Y)
}

func rr(r float64) string {
	return fmt.Sprintf("%.2f %.2f", r, r)
}

// Tick is a position marker on the backbone.
type Tick struct {
	Position int
	Angle    float64
	Inner    Point
	Outer    Point
	Label    Point
}

// Ticks returns backbone markers every interval bases, starting at 0.
func Ticks(length, interval int, layout Layout) []Tick {
	if length <= 0 || interval <= 0 {
		return nil
	}
	var ticks []Tick
	for pos := 0; pos < length; pos += interval {
		a := Angle(pos, length)
		ticks = append(ticks, Tick{
			Position: pos,
			Angle:    a,
			Inner:    layout.Polar(layout.Radius-4, a),
			Outer:    layout.Polar(layout.Radius+4, a),
			Label:    layout.Polar(layout.Radius-layout.RingWidth-layout.Gap-12, a),
		})
	}
	return ticks
}

// TickInterval picks a round interval giving roughly n ticks.
func TickInterval(length, n int) int {
	if length <= 0 || n <= 0 {
		return 0
	}
	raw := float64(length) / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, step := range []float64{1, 2, 5, 10} {
		if raw <= step*mag {
			return int(step * mag)
		}
	}
	return int(10 * mag)
}
