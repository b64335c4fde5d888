// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package motif

import (
	"errors"
)

var ErrFrame = errors.New("reading frame must be 0, 1, 2, -1, -2 or -3")

// Standard genetic code, indexed by codon with T=0 C=1 A=2 G=3 and the
// first base most significant.
const codonTable = "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG"

var baseIndex = func() [256]int8 {
	var r [256]int8
	for i := range r {
		r[i] = -1
	}
	for i, b := range "TCAG" {
		r[b] = int8(i)
		r[b+'a'-'A'] = int8(i)
	}
	r['U'], r['u'] = 0, 0
	return r
}()

// Translate translates seq to a protein using the standard genetic
// code. Frames 0, 1 and 2 start at that offset on the forward strand;
// frames -1, -2 and -3 read the reverse complement from offset 0, 1
// and 2. A trailing partial codon is dropped, stops are "*", and a
// codon containing anything other than ACGTU is "X".
func Translate(seq string, frame int) (string, error) {
	switch {
	case frame >= 0 && frame <= 2:
	case frame <= -1 && frame >= -3:
		seq = ReverseComplement(seq)
		frame = -frame - 1
	default:
		return "", ErrFrame
	}
	if frame >= len(seq) {
		return "", nil
	}
	seq = seq[frame:]
	protein := make([]byte, 0, len(seq)/3)
	for i := 0; i+3 <= len(seq); i += 3 {
		a, b, c := baseIndex[seq[i]], baseIndex[seq[i+1]], baseIndex[seq[i+2]]
		if a < 0 || b < 0 || c < 0 {
			protein = append(protein, 'X')
			continue
		}
		protein = append(protein, codonTable[int(a)*16+int(b)*4+int(c)])
	}
	return string(protein), nil
}
