// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package seqcore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/denishdholaria/bijmantra-sub010/seqio"
	"gopkg.in/check.v1"
)

type statsSuite struct{}

var _ = check.Suite(&statsSuite{})

func mustStats(c *check.C, rec *seqio.Record) sequenceStats {
	st, err := computeStats(rec)
	c.Assert(err, check.IsNil)
	return st
}

func (s *statsSuite) TestComputeStats(c *check.C) {
	st := mustStats(c, &seqio.Record{ID: "s1", Sequence: "acgN", Quality: "III#"})
	c.Check(st.ID, check.Equals, "s1")
	c.Check(st.Length, check.Equals, 4)
	c.Check(st.GCContent, check.Equals, 50.0)
	c.Check(st.ATContent, check.Equals, 25.0)
	c.Check(st.Composition, check.Equals, composition{A: 1, C: 1, G: 1, N: 1})
	c.Check(math.Abs(st.MolecularWeight-985.6) < 1e-9, check.Equals, true, check.Commentf("%v", st.MolecularWeight))
	c.Check(fmt.Sprintf("%.4f", st.CompositionPvalue), check.Equals, "0.8013")
	c.Check(st.Blake2b, check.Equals, "54e2f1a1494e0aa9806ed029ee422c64af149decf472aff8476a54a40b6c11c1")
	c.Assert(st.Quality, check.NotNil)
	c.Check(st.Quality.Mean, check.Equals, 30.5)
	c.Check(st.Quality.Min, check.Equals, 2.0)
	c.Check(st.Quality.Max, check.Equals, 40.0)
	c.Check(st.Quality.Median, check.Equals, 40.0)
	c.Check(st.Quality.Q30, check.Equals, 0.75)
	c.Check(st.Quality.StdDev > 18 && st.Quality.StdDev < 20, check.Equals, true, check.Commentf("%v", st.Quality.StdDev))
}

func (s *statsSuite) TestDigestIgnoresCase(c *check.C) {
	a := mustStats(c, &seqio.Record{Sequence: "acgt"})
	b := mustStats(c, &seqio.Record{Sequence: "ACGT"})
	c.Check(a.Blake2b, check.Equals, b.Blake2b)
	c.Check(a.Quality, check.IsNil)
}

func (s *statsSuite) TestEdgeCases(c *check.C) {
	st := mustStats(c, &seqio.Record{ID: "empty"})
	c.Check(st.Length, check.Equals, 0)
	c.Check(st.GCContent, check.Equals, 0.0)
	c.Check(st.Quality, check.IsNil)

	st = mustStats(c, &seqio.Record{Sequence: "RY", Quality: "5"})
	c.Check(st.Composition.Other, check.Equals, 2)
	c.Check(st.Quality, check.IsNil)

	st = mustStats(c, &seqio.Record{Sequence: "A", Quality: "5"})
	c.Assert(st.Quality, check.NotNil)
	c.Check(st.Quality.StdDev, check.Equals, 0.0)
	c.Check(st.Quality.Median, check.Equals, 20.0)
}

func (s *statsSuite) TestCommand(c *check.C) {
	tmpdir := c.MkDir()
	fq := writeGzip(c, tmpdir+"/r.fq.gz", "@s1\nACGN\n+\nIII#\n@s2\nGGGG\n+\nIIII\n@broken\nAC\n+\nI\n")
	var stdout bytes.Buffer
	exited := (&statscmd{}).RunCommand("stats", []string{fq}, &bytes.Buffer{}, &stdout, os.Stderr)
	c.Assert(exited, check.Equals, 0)
	var all []map[string]interface{}
	dec := json.NewDecoder(strings.NewReader(stdout.String()))
	for dec.More() {
		var st map[string]interface{}
		c.Assert(dec.Decode(&st), check.IsNil)
		all = append(all, st)
	}
	c.Assert(all, check.HasLen, 2)
	c.Check(all[0]["id"], check.Equals, "s1")
	c.Check(all[0]["file"], check.Equals, fq)
	c.Check(all[1]["id"], check.Equals, "s2")
	c.Check(all[1]["gc_content"], check.Equals, 100.0)
	c.Check(all[1]["quality"].(map[string]interface{})["mean"], check.Equals, 40.0)
}

func (s *statsSuite) TestInvalidQuality(c *check.C) {
	_, err := computeStats(&seqio.Record{ID: "q", Sequence: "ACGT", Quality: "II\x01I"})
	c.Check(err, check.ErrorMatches, `record "q": invalid quality character '\\x01' at position 2`)
}

func (s *statsSuite) TestCommandWorkerError(c *check.C) {
	tmpdir := c.MkDir()
	var in bytes.Buffer
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&in, "@r%d\nACGT\n+\nIIII\n", i)
	}
	in.WriteString("@bad\nACGT\n+\nI\x7fII\n")
	fq := writeFile(c, tmpdir+"/r.fq", in.String())
	var stdout, stderr bytes.Buffer
	exited := (&statscmd{}).RunCommand("stats", []string{"-o", tmpdir + "/out.json", fq}, &bytes.Buffer{}, &stdout, &stderr)
	c.Check(exited, check.Equals, 1)
	c.Check(stderr.String(), check.Matches, `(?s).*r\.fq: record "bad": invalid quality character.*`)
}
