// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

// Package align computes optimal pairwise alignments with a linear gap
// penalty: Needleman-Wunsch (global) and Smith-Waterman (local).
//
// Scores are added exactly as given, so penalties are negative
// numbers. When more than one transition reaches a cell's score, the
// traceback prefers diagonal, then up (gap in the second sequence),
// then left (gap in the first sequence). Local alignment starts from
// the first maximal cell in row-major order.
package align

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Gap is the symbol inserted where a sequence did not advance.
const Gap = '-'

var (
	ErrEmptySequence = errors.New("cannot align an empty sequence")
	ErrScoreRange    = errors.New("scoring parameters too large for sequence lengths")
)

type Mode int

const (
	Global Mode = iota
	Local
)

func (m Mode) String() string {
	switch m {
	case Global:
		return "global"
	case Local:
		return "local"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "global" or "local".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "global", "nw", "needleman-wunsch":
		return Global, nil
	case "local", "sw", "smith-waterman":
		return Local, nil
	}
	return 0, fmt.Errorf("unknown alignment mode %q", s)
}

// Scoring holds the three linear scoring parameters.
type Scoring struct {
	Match    int `yaml:"match"`
	Mismatch int `yaml:"mismatch"`
	Gap      int `yaml:"gap"`
}

// DefaultScoring is 1/-1/-2.
var DefaultScoring = Scoring{Match: 1, Mismatch: -1, Gap: -2}

func (s Scoring) pair(a, b byte) int {
	if fold(a) == fold(b) {
		return s.Match
	}
	return s.Mismatch
}

// fold upper-cases ASCII letters; sequences are case-insensitive.
func fold(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

// Result is an optimal alignment. Align1 and Align2 have equal length.
// [Start1,End1) and [Start2,End2) are the 0-based spans of the inputs
// covered by the alignment; for a global alignment they cover both
// inputs entirely.
type Result struct {
	Score  int    `json:"score"`
	Align1 string `json:"align1"`
	Align2 string `json:"align2"`
	Start1 int    `json:"start1"`
	End1   int    `json:"end1"`
	Start2 int    `json:"start2"`
	End2   int    `json:"end2"`
}

// GlobalAlign returns the optimal global alignment of a and b.
func GlobalAlign(a, b string, s Scoring) (Result, error) {
	return GlobalContext(context.Background(), a, b, s)
}

// LocalAlign returns the optimal local alignment of a and b.
func LocalAlign(a, b string, s Scoring) (Result, error) {
	return LocalContext(context.Background(), a, b, s)
}

// GlobalContext is GlobalAlign with cancellation, checked once per
// matrix row.
func GlobalContext(ctx context.Context, a, b string, s Scoring) (Result, error) {
	return Align(ctx, a, b, s, Global)
}

// LocalContext is LocalAlign with cancellation, checked once per
// matrix row.
func LocalContext(ctx context.Context, a, b string, s Scoring) (Result, error) {
	return Align(ctx, a, b, s, Local)
}

// Align fills the score matrix for mode and traces back the optimal
// alignment.
func Align(ctx context.Context, a, b string, s Scoring, mode Mode) (Result, error) {
	m, err := Fill(ctx, a, b, s, mode)
	if err != nil {
		return Result{}, err
	}
	return m.Traceback(), nil
}

// Identity is the fraction of alignment columns where both sides hold
// the same (case-insensitive) non-gap symbol.
func (r Result) Identity() float64 {
	if len(r.Align1) == 0 {
		return 0
	}
	same := 0
	for i := 0; i < len(r.Align1); i++ {
		if r.Align1[i] != Gap && fold(r.Align1[i]) == fold(r.Align2[i]) {
			same++
		}
	}
	return float64(same) / float64(len(r.Align1))
}

// Gaps counts gap symbols on both sides.
func (r Result) Gaps() int {
	return strings.Count(r.Align1, string(Gap)) + strings.Count(r.Align2, string(Gap))
}

// Midline returns the conventional match line shown between the two
// aligned strings: '|' for identical symbols, '.' for a mismatch and
// ' ' for a gap column.
func (r Result) Midline() string {
	mid := make([]byte, len(r.Align1))
	for i := range mid {
		switch {
		case r.Align1[i] == Gap || r.Align2[i] == Gap:
			mid[i] = ' '
		case fold(r.Align1[i]) == fold(r.Align2[i]):
			mid[i] = '|'
		default:
			mid[i] = '.'
		}
	}
	return string(mid)
}
