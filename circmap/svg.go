// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package circmap

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// Map is everything needed to draw one circular map.
type Map struct {
	Title   string
	Length  int
	Layout  Layout
	Sectors []Sector
	Ticks   []Tick
	Sites   []SiteMark
}

// WriteSVG writes m as a standalone SVG document.
func WriteSVG(w io.Writer, m Map) error {
	l := m.Layout
	width := int(math.Ceil(2 * l.CenterX))
	height := int(math.Ceil(2 * l.CenterY))
	cw := &countingWriter{w: w}
	canvas := svg.New(cw)
	canvas.Start(width, height)
	canvas.Title(m.Title)
	cx, cy := iround(l.CenterX), iround(l.CenterY)
	canvas.Circle(cx, cy, iround(l.Radius), "fill:none;stroke:#333;stroke-width:2")
	for _, t := range m.Ticks {
		canvas.Line(iround(t.Inner.X), iround(t.Inner.Y), iround(t.Outer.X), iround(t.Outer.Y), "stroke:#333")
		canvas.Text(iround(t.Label.X), iround(t.Label.Y), formatPosition(t.Position), "font-size:9px;text-anchor:middle;fill:#555")
	}
	for _, s := range m.Sectors {
		canvas.Path(s.Path, fmt.Sprintf("fill:%s;fill-rule:evenodd;stroke:#222;stroke-width:0.5", s.Color))
		anchor := "start"
		if mid := math.Mod((s.StartAngle+s.EndAngle)/2, 360); mid > 180 {
			anchor = "end"
		}
		canvas.Text(iround(s.Label.X), iround(s.Label.Y), s.Name, "font-size:11px;text-anchor:"+anchor)
	}
	for _, site := range m.Sites {
		anchor := "start"
		if site.Angle > 180 {
			anchor = "end"
		}
		canvas.Line(iround(site.Inner.X), iround(site.Inner.Y), iround(site.Outer.X), iround(site.Outer.Y), "stroke:#b00;stroke-width:1.5")
		canvas.Text(iround(site.Label.X), iround(site.Label.Y), site.Enzyme, "font-size:9px;fill:#b00;text-anchor:"+anchor)
	}
	canvas.Text(cx, cy, m.Title, "font-size:14px;font-weight:bold;text-anchor:middle")
	canvas.Text(cx, cy+16, fmt.Sprintf("%d bp", m.Length), "font-size:11px;text-anchor:middle")
	canvas.End()
	return cw.err
}

func iround(f float64) int {
	return int(math.Round(f))
}

func formatPosition(pos int) string {
	switch {
	case pos >= 1000000 && pos%1000000 == 0:
		return fmt.Sprintf("%d Mb", pos/1000000)
	case pos >= 1000 && pos%1000 == 0:
		return fmt.Sprintf("%d kb", pos/1000)
	default:
		return fmt.Sprintf("%d", pos)
	}
}

// countingWriter remembers the first write error, since the svg
// canvas does not report one.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	cw.err = err
	return n, err
}
