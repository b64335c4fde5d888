// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package align

import (
	"context"
	"fmt"
	"math"
)

// Matrix is a filled (len(a)+1) x (len(b)+1) dynamic-programming score
// matrix, stored row-major.
type Matrix struct {
	Mode    Mode
	Scoring Scoring
	Rows    int
	Cols    int
	Cells   []int64

	a, b string
	// first maximal cell in row-major order (local mode)
	maxI, maxJ int
}

func (m *Matrix) At(i, j int) int {
	return int(m.Cells[i*m.Cols+j])
}

// Fill computes the score matrix of a against b. It returns an error
// wrapping ErrScoreRange if the scoring parameters are large enough for
// a cell to overflow.
func Fill(ctx context.Context, a, b string, s Scoring, mode Mode) (*Matrix, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptySequence
	}
	if !s.fits(len(a) + len(b)) {
		return nil, fmt.Errorf("%w: scoring %+v with sequence lengths %d and %d", ErrScoreRange, s, len(a), len(b))
	}
	n, mm := len(a), len(b)
	m := &Matrix{
		Mode:    mode,
		Scoring: s,
		Rows:    n + 1,
		Cols:    mm + 1,
		Cells:   make([]int64, (n+1)*(mm+1)),
		a:       a,
		b:       b,
	}
	cols := m.Cols
	if mode == Global {
		for i := 0; i <= n; i++ {
			m.Cells[i*cols] = int64(i) * int64(s.Gap)
		}
		for j := 0; j <= mm; j++ {
			m.Cells[j] = int64(j) * int64(s.Gap)
		}
	}
	gap := int64(s.Gap)
	var best int64
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, prev := m.Cells[i*cols:(i+1)*cols], m.Cells[(i-1)*cols:i*cols]
		ai := a[i-1]
		for j := 1; j <= mm; j++ {
			diag := prev[j-1] + int64(s.pair(ai, b[j-1]))
			up := prev[j] + gap
			left := row[j-1] + gap
			v := diag
			if up > v {
				v = up
			}
			if left > v {
				v = left
			}
			if mode == Local {
				if v < 0 {
					v = 0
				}
				if v > best {
					best, m.maxI, m.maxJ = v, i, j
				}
			}
			row[j] = v
		}
	}
	return m, nil
}

// Score is the alignment score: the bottom-right cell for a global
// alignment, the maximal cell for a local one.
func (m *Matrix) Score() int {
	if m.Mode == Local {
		return m.At(m.maxI, m.maxJ)
	}
	return m.At(m.Rows-1, m.Cols-1)
}

// Traceback reconstructs the optimal alignment from the filled matrix.
func (m *Matrix) Traceback() Result {
	i, j := m.Rows-1, m.Cols-1
	if m.Mode == Local {
		i, j = m.maxI, m.maxJ
	}
	endI, endJ := i, j
	s := m.Scoring
	// built back to front, reversed at the end
	out1 := make([]byte, 0, i+j)
	out2 := make([]byte, 0, i+j)
	for i > 0 || j > 0 {
		if m.Mode == Local && (i == 0 || j == 0 || m.At(i, j) == 0) {
			break
		}
		cur := m.At(i, j)
		if i > 0 && j > 0 && cur == m.At(i-1, j-1)+s.pair(m.a[i-1], m.b[j-1]) {
			out1 = append(out1, m.a[i-1])
			out2 = append(out2, m.b[j-1])
			i, j = i-1, j-1
		} else if i > 0 && cur == m.At(i-1, j)+s.Gap {
			out1 = append(out1, m.a[i-1])
			out2 = append(out2, Gap)
			i--
		} else if j > 0 {
			out1 = append(out1, Gap)
			out2 = append(out2, m.b[j-1])
			j--
		} else {
			panic("bug: traceback found no predecessor")
		}
	}
	reverse(out1)
	reverse(out2)
	return Result{
		Score:  m.Score(),
		Align1: string(out1),
		Align2: string(out2),
		Start1: i,
		End1:   endI,
		Start2: j,
		End2:   endJ,
	}
}

func reverse(buf []byte) {
	for l, r := 0, len(buf)-1; l < r; l, r = l+1, r-1 {
		buf[l], buf[r] = buf[r], buf[l]
	}
}

// fits reports whether every cell of a matrix for sequences with
// total length n, and every sum formed while filling it, stays within
// the range of int. Cell magnitudes are bounded by max|param| * n.
func (s Scoring) fits(n int) bool {
	var bound uint64
	for _, p := range []int{s.Match, s.Mismatch, s.Gap} {
		mag := uint64(p)
		if p < 0 {
			mag = -mag
		}
		if mag > bound {
			bound = mag
		}
	}
	return bound <= uint64(math.MaxInt)/uint64(n+1)
}
