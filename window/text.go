// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package window

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/denishdholaria/bijmantra-sub010/seqio"
)

var tierGlyphs = [...]byte{
	TierLow:  '.',
	TierMid:  '+',
	TierHigh: '#',
}

// WriteText draws a frame for a terminal: one line of bases per row,
// prefixed with its 1-based start position, followed by a quality line
// and one line per overlapping feature.
func WriteText(w io.Writer, frame Frame) error {
	bufw := bufio.NewWriter(w)
	width := len(strconv.Itoa(frame.Length))
	pad := strings.Repeat(" ", width+1)
	for _, row := range frame.Rows {
		fmt.Fprintf(bufw, "%*d %s\n", width, row.Offset+1, row.Bases)
		if len(row.Bars) > 0 {
			q := make([]byte, len(row.Bars))
			for i, bar := range row.Bars {
				q[i] = tierGlyphs[bar.Tier]
			}
			fmt.Fprintf(bufw, "%s%s\n", pad, q)
		}
		for _, fs := range row.Features {
			glyph := ">"
			switch fs.Strand {
			case seqio.StrandReverse:
				glyph = "<"
			case seqio.StrandNone:
				glyph = "="
			}
			fmt.Fprintf(bufw, "%s%s%s %s\n", pad, strings.Repeat(" ", fs.From), strings.Repeat(glyph, fs.To-fs.From), fs.Name)
		}
	}
	return bufw.Flush()
}
