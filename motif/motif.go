// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

// Package motif finds every occurrence of a literal pattern in a
// sequence. Matching is case-insensitive and overlapping; there are
// no wildcards.
package motif

import (
	"errors"
	"sort"
)

var ErrEmptyPattern = errors.New("empty motif pattern")

// Match is one occurrence: sequence[Start:End] equals the pattern.
type Match struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	MatchStr string `json:"match_str"`
}

// Search returns all occurrences of pattern in sequence, ascending by
// Start. A pattern that does not occur yields an empty list.
func Search(sequence, pattern string) ([]Match, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	if len(pattern) > len(sequence) {
		return []Match{}, nil
	}
	if len(pattern) <= twobitMaxLen && allBases(pattern) {
		return searchTwobit(sequence, pattern), nil
	}
	return searchFolded(sequence, pattern), nil
}

// searchFolded compares every window byte by byte.
func searchFolded(sequence, pattern string) []Match {
	matches := []Match{}
	k := len(pattern)
	for i := 0; i+k <= len(sequence); i++ {
		j := 0
		for ; j < k; j++ {
			if fold(sequence[i+j]) != fold(pattern[j]) {
				break
			}
		}
		if j == k {
			matches = append(matches, Match{Start: i, End: i + k, MatchStr: sequence[i : i+k]})
		}
	}
	return matches
}

// Strand tells which strand a StrandMatch was found on.
type Strand byte

const (
	Forward Strand = '+'
	Reverse Strand = '-'
)

func (s Strand) MarshalJSON() ([]byte, error) {
	return []byte{'"', byte(s), '"'}, nil
}

// StrandMatch is a Match on either strand. Coordinates always refer to
// the forward sequence; a Reverse match is an occurrence of the
// pattern's reverse complement.
type StrandMatch struct {
	Match
	Strand Strand `json:"strand"`
}

// SearchBothStrands searches for pattern and its reverse complement.
// A palindromic pattern is reported on the forward strand only.
func SearchBothStrands(sequence, pattern string) ([]StrandMatch, error) {
	fwd, err := Search(sequence, pattern)
	if err != nil {
		return nil, err
	}
	out := make([]StrandMatch, 0, len(fwd))
	for _, m := range fwd {
		out = append(out, StrandMatch{Match: m, Strand: Forward})
	}
	rc := ReverseComplement(pattern)
	if equalFold(rc, pattern) {
		return out, nil
	}
	rev, err := Search(sequence, rc)
	if err != nil {
		return nil, err
	}
	for _, m := range rev {
		out = append(out, StrandMatch{Match: m, Strand: Reverse})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out, nil
}

func fold(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if fold(a[i]) != fold(b[i]) {
			return false
		}
	}
	return true
}
