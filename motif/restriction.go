// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package motif

import (
	"fmt"
	"sort"
	"strings"
)

// Overhang is the end left by a cut: "5'", "3'" or "blunt".
type Overhang string

const (
	Overhang5 Overhang = "5'"
	Overhang3 Overhang = "3'"
	Blunt     Overhang = "blunt"
)

// Enzyme is a restriction enzyme. Cut is the offset of the top-strand
// cut from the start of the recognition site.
type Enzyme struct {
	Name     string   `json:"name" yaml:"name"`
	Site     string   `json:"site" yaml:"site"`
	Cut      int      `json:"cut" yaml:"cut"`
	Overhang Overhang `json:"overhang" yaml:"overhang"`
}

// DefaultEnzymes is a set of common cloning enzymes.
var DefaultEnzymes = []Enzyme{
	{"EcoRI", "GAATTC", 1, Overhang5},
	{"BamHI", "GGATCC", 1, Overhang5},
	{"HindIII", "AAGCTT", 1, Overhang5},
	{"XbaI", "TCTAGA", 1, Overhang5},
	{"SalI", "GTCGAC", 1, Overhang5},
	{"PstI", "CTGCAG", 5, Overhang3},
	{"SmaI", "CCCGGG", 3, Blunt},
	{"KpnI", "GGTACC", 5, Overhang3},
	{"SacI", "GAGCTC", 5, Overhang3},
	{"NotI", "GCGGCCGC", 2, Overhang5},
	{"XhoI", "CTCGAG", 1, Overhang5},
	{"NcoI", "CCATGG", 1, Overhang5},
	{"NdeI", "CATATG", 2, Overhang5},
	{"BglII", "AGATCT", 1, Overhang5},
	{"ClaI", "ATCGAT", 2, Overhang5},
}

// LookupEnzymes returns the named enzymes from DefaultEnzymes, in the
// order given. Names are case-insensitive. "all" selects the whole
// table.
func LookupEnzymes(names []string) ([]Enzyme, error) {
	var out []Enzyme
	for _, name := range names {
		name = strings.TrimSpace(name)
		if strings.EqualFold(name, "all") {
			out = append(out, DefaultEnzymes...)
			continue
		}
		found := false
		for _, e := range DefaultEnzymes {
			if strings.EqualFold(e.Name, name) {
				out = append(out, e)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown restriction enzyme %q", name)
		}
	}
	return out, nil
}

// Site is one recognition site. Position is the 0-based start of the
// recognition sequence and CutPosition is Position+Cut.
type Site struct {
	Enzyme      string   `json:"enzyme"`
	Position    int      `json:"position"`
	Recognition string   `json:"recognition_sequence"`
	CutPosition int      `json:"cut_position"`
	Overhang    Overhang `json:"overhang"`
}

// RestrictionSites finds every recognition site of every enzyme in
// seq, ordered by Position. Sites at the same position keep the order
// of enzymes. Overlapping sites of one enzyme are all reported.
func RestrictionSites(seq string, enzymes []Enzyme) ([]Site, error) {
	sites := []Site{}
	for _, e := range enzymes {
		matches, err := Search(seq, e.Site)
		if err != nil {
			return nil, fmt.Errorf("enzyme %s: %w", e.Name, err)
		}
		for _, m := range matches {
			sites = append(sites, Site{
				Enzyme:      e.Name,
				Position:    m.Start,
				Recognition: e.Site,
				CutPosition: m.Start + e.Cut,
				Overhang:    e.Overhang,
			})
		}
	}
	sort.SliceStable(sites, func(i, j int) bool {
		return sites[i].Position < sites[j].Position
	})
	return sites, nil
}
