// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package motif

import (
	"errors"

	"gopkg.in/check.v1"
)

type restrictionSuite struct{}

var _ = check.Suite(&restrictionSuite{})

func (s *restrictionSuite) TestAllEnzymes(c *check.C) {
	sites, err := RestrictionSites("ttGAATTCaaGGATCCcccgggGAATTC", DefaultEnzymes)
	c.Assert(err, check.IsNil)
	c.Check(sites, check.DeepEquals, []Site{
		{Enzyme: "EcoRI", Position: 2, Recognition: "GAATTC", CutPosition: 3, Overhang: Overhang5},
		{Enzyme: "BamHI", Position: 10, Recognition: "GGATCC", CutPosition: 11, Overhang: Overhang5},
		{Enzyme: "SmaI", Position: 16, Recognition: "CCCGGG", CutPosition: 19, Overhang: Blunt},
		{Enzyme: "EcoRI", Position: 22, Recognition: "GAATTC", CutPosition: 23, Overhang: Overhang5},
	})
}

func (s *restrictionSuite) TestSelectedEnzymes(c *check.C) {
	enzymes, err := LookupEnzymes([]string{"pstI", " SmaI"})
	c.Assert(err, check.IsNil)
	c.Assert(enzymes, check.HasLen, 2)
	c.Check(enzymes[0].Name, check.Equals, "PstI")
	sites, err := RestrictionSites("CCCGGGCTGCAG", enzymes)
	c.Assert(err, check.IsNil)
	c.Check(sites, check.DeepEquals, []Site{
		{Enzyme: "SmaI", Position: 0, Recognition: "CCCGGG", CutPosition: 3, Overhang: Blunt},
		{Enzyme: "PstI", Position: 6, Recognition: "CTGCAG", CutPosition: 11, Overhang: Overhang3},
	})

	sites, err = RestrictionSites("AAAA", enzymes)
	c.Check(err, check.IsNil)
	c.Check(sites, check.HasLen, 0)

	all, err := LookupEnzymes([]string{"all"})
	c.Check(err, check.IsNil)
	c.Check(all, check.DeepEquals, DefaultEnzymes)

	_, err = LookupEnzymes([]string{"EcoRI", "FooI"})
	c.Check(err, check.ErrorMatches, `unknown restriction enzyme "FooI"`)
}

func (s *restrictionSuite) TestEmptySite(c *check.C) {
	_, err := RestrictionSites("ACGT", []Enzyme{{Name: "Nothing"}})
	c.Check(errors.Is(err, ErrEmptyPattern), check.Equals, true)
}

func (s *restrictionSuite) TestTranslateFrames(c *check.C) {
	for _, trial := range []struct {
		seq    string
		frame  int
		expect string
	}{
		{"ATGGCCTAA", 0, "MA*"},
		{"ATGGCCTAA", 1, "WP"},
		{"ATGGCCTAA", 2, "GL"},
		{"ATGGCCTAA", -1, "LGH"},
		{"ATGGCCTAA", -2, "*A"},
		{"ATGGCCTAA", -3, "RP"},
		{"atggcctaa", 0, "MA*"},
		{"AUGGCCUAA", 0, "MA*"},
		{"ATGNCCTGA", 0, "MX*"},
		{"TTTTTCTTATTG", 0, "FFLL"},
		{"ATGTGGTAGTGA", 0, "MW**"},
		{"AT", 0, ""},
		{"AT", 2, ""},
		{"", 0, ""},
	} {
		prot, err := Translate(trial.seq, trial.frame)
		c.Check(err, check.IsNil)
		c.Check(prot, check.Equals, trial.expect, check.Commentf("%s frame %d", trial.seq, trial.frame))
	}
	for _, frame := range []int{3, -4, 100} {
		_, err := Translate("ATG", frame)
		c.Check(err, check.Equals, ErrFrame)
	}
}

func (s *restrictionSuite) TestTranslateCodonTable(c *check.C) {
	// every codon, in TCAG order
	var seq []byte
	for _, a := range "TCAG" {
		for _, b := range "TCAG" {
			for _, d := range "TCAG" {
				seq = append(seq, byte(a), byte(b), byte(d))
			}
		}
	}
	prot, err := Translate(string(seq), 0)
	c.Assert(err, check.IsNil)
	c.Check(prot, check.Equals, "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG")
}
