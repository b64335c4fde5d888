// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package motif

type twobitKey uint64

// twobitMaxLen is the longest pattern that fits in a twobitKey.
const twobitMaxLen = 32

var (
	twobit = func() []twobitKey {
		r := make([]twobitKey, 256)
		r[int('a')] = 0
		r[int('A')] = 0
		r[int('c')] = 1
		r[int('C')] = 1
		r[int('g')] = 2
		r[int('G')] = 2
		r[int('t')] = 3
		r[int('T')] = 3
		return r
	}()
	isbase = func() []bool {
		r := make([]bool, 256)
		for _, b := range "acgtACGT" {
			r[int(b)] = true
		}
		return r
	}()
)

func allBases(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isbase[int(s[i])] {
			return false
		}
	}
	return true
}

// searchTwobit slides a rolling 2-bit key over sequence. Any base
// other than ACGT resets the window, since it can never be part of a
// match for an ACGT-only pattern.
func searchTwobit(sequence, pattern string) []Match {
	k := len(pattern)
	mask := twobitKey(1)<<(2*uint(k)) - 1
	var target twobitKey
	for i := 0; i < k; i++ {
		target = (target << 2) | twobit[int(pattern[i])]
	}
	matches := []Match{}
	var key twobitKey
	valid := 0
	for i := 0; i < len(sequence); i++ {
		base := sequence[i]
		if !isbase[int(base)] {
			key, valid = 0, 0
			continue
		}
		key = ((key << 2) | twobit[int(base)]) & mask
		valid++
		if valid >= k && key == target {
			start := i - k + 1
			matches = append(matches, Match{Start: start, End: i + 1, MatchStr: sequence[start : i+1]})
		}
	}
	return matches
}
