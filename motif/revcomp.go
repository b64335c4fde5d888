// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package motif

var complement = func() [256]byte {
	var r [256]byte
	for _, pair := range []string{"AT", "CG", "RY", "SS", "WW", "KM", "BV", "DH", "NN", "UA"} {
		r[pair[0]] = pair[1]
		r[pair[1]] = pair[0]
		r[pair[0]+'a'-'A'] = pair[1] + 'a' - 'A'
		r[pair[1]+'a'-'A'] = pair[0] + 'a' - 'A'
	}
	// U pairs with A, but A complements to T
	r['A'], r['a'] = 'T', 't'
	r['-'], r['.'] = '-', '.'
	return r
}()

// ReverseComplement returns the reverse complement of an IUPAC
// nucleotide sequence, preserving case. Unknown symbols become N.
func ReverseComplement(seq string) string {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		c := complement[seq[len(seq)-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return string(out)
}
