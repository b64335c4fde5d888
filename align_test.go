// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package seqcore

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/kshedden/gonpy"
	"gopkg.in/check.v1"
)

type alignCmdSuite struct{}

var _ = check.Suite(&alignCmdSuite{})

func decodeAlignments(c *check.C, out string) []alignment {
	var all []alignment
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var a alignment
		c.Assert(dec.Decode(&a), check.IsNil)
		all = append(all, a)
	}
	return all
}

func (s *alignCmdSuite) TestGlobalJSON(c *check.C) {
	tmpdir := c.MkDir()
	a := writeFile(c, tmpdir+"/a.fa", ">a\nGATTACA\n")
	b := writeFile(c, tmpdir+"/b.fa", ">b\nGCATGCU\n")
	var stdout bytes.Buffer
	exited := (&aligncmd{}).RunCommand("align", []string{"-a", a, "-b", b, "-output-format", "json"}, &bytes.Buffer{}, &stdout, os.Stderr)
	c.Assert(exited, check.Equals, 0)
	all := decodeAlignments(c, stdout.String())
	c.Assert(all, check.HasLen, 1)
	c.Check(all[0].Query, check.Equals, "a")
	c.Check(all[0].Target, check.Equals, "b")
	c.Check(all[0].Mode, check.Equals, "global")
	c.Check(all[0].Score, check.Equals, -1)
	c.Check(all[0].Align1, check.Equals, "GATTACA")
	c.Check(all[0].Align2, check.Equals, "GCATGCU")
	c.Check(all[0].Gaps, check.Equals, 0)
}

func (s *alignCmdSuite) TestText(c *check.C) {
	tmpdir := c.MkDir()
	a := writeFile(c, tmpdir+"/a.fa", ">q\nACGT\n")
	var stdout bytes.Buffer
	exited := (&aligncmd{}).RunCommand("align", []string{"-a", a, "-b", "-", "-width", "3"}, strings.NewReader(">t\nAGT\n"), &stdout, os.Stderr)
	c.Assert(exited, check.Equals, 0)
	c.Check(stdout.String(), check.Equals, `# q vs t (global)
# score 1, identity 75.0%, gaps 1
# query 0-4, target 0-3
ACG
| |
A-G
T
|
T
`)
}

func (s *alignCmdSuite) TestLocal(c *check.C) {
	tmpdir := c.MkDir()
	a := writeFile(c, tmpdir+"/a.fa", ">a\nTTTTACGTACGTTTTT\n")
	b := writeFile(c, tmpdir+"/b.fa", ">b\nGGACGTACGGG\n")
	var stdout bytes.Buffer
	exited := (&aligncmd{}).RunCommand("align", []string{"-a", a, "-b", b, "-mode", "local", "-match", "2", "-mismatch", "-1", "-gap", "-2", "-output-format", "json"}, &bytes.Buffer{}, &stdout, os.Stderr)
	c.Assert(exited, check.Equals, 0)
	all := decodeAlignments(c, stdout.String())
	c.Assert(all, check.HasLen, 1)
	c.Check(all[0].Score, check.Equals, 14)
	c.Check(all[0].Align1, check.Equals, "ACGTACG")
	c.Check(all[0].Start1, check.Equals, 4)
	c.Check(all[0].End1, check.Equals, 11)
	c.Check(all[0].Start2, check.Equals, 2)
	c.Check(all[0].End2, check.Equals, 9)
	c.Check(all[0].Identity, check.Equals, 1.0)
}

func (s *alignCmdSuite) TestAll(c *check.C) {
	tmpdir := c.MkDir()
	a := writeFile(c, tmpdir+"/a.fa", ">x\nIGNORED\n>q\nACGT\n")
	b := writeGzip(c, tmpdir+"/b.fa.gz", ">t1\nACGT\n>t2\nAGT\n>t3\nacgt\n>t4\nTTTT\n")
	var stdout bytes.Buffer
	exited := (&aligncmd{}).RunCommand("align", []string{"-a", a, "-a-id", "q", "-b", b, "-all", "-output-format", "json"}, &bytes.Buffer{}, &stdout, os.Stderr)
	c.Assert(exited, check.Equals, 0)
	all := decodeAlignments(c, stdout.String())
	c.Assert(all, check.HasLen, 4)
	for i, expect := range []struct {
		target string
		score  int
	}{{"t1", 4}, {"t2", 1}, {"t3", 4}, {"t4", -2}} {
		c.Check(all[i].Query, check.Equals, "q")
		c.Check(all[i].Target, check.Equals, expect.target)
		c.Check(all[i].Score, check.Equals, expect.score, check.Commentf("%s", expect.target))
	}
}

func (s *alignCmdSuite) TestPickByID(c *check.C) {
	tmpdir := c.MkDir()
	a := writeFile(c, tmpdir+"/a.fa", ">q\nACGT\n")
	b := writeFile(c, tmpdir+"/b.fa", ">t1\nTTTT\n>t2\nACGT\n")
	var stdout bytes.Buffer
	exited := (&aligncmd{}).RunCommand("align", []string{"-a", a, "-b", b, "-b-id", "t2", "-output-format", "json"}, &bytes.Buffer{}, &stdout, os.Stderr)
	c.Assert(exited, check.Equals, 0)
	all := decodeAlignments(c, stdout.String())
	c.Assert(all, check.HasLen, 1)
	c.Check(all[0].Target, check.Equals, "t2")
	c.Check(all[0].Score, check.Equals, 4)

	var stderr bytes.Buffer
	exited = (&aligncmd{}).RunCommand("align", []string{"-a", a, "-b", b, "-b-id", "t3"}, &bytes.Buffer{}, &bytes.Buffer{}, &stderr)
	c.Check(exited, check.Equals, 1)
	c.Check(stderr.String(), check.Matches, `(?ms).*no record with id "t3".*`)
}

func (s *alignCmdSuite) TestMatrixOut(c *check.C) {
	tmpdir := c.MkDir()
	a := writeFile(c, tmpdir+"/a.fa", ">a\nAC\n")
	b := writeFile(c, tmpdir+"/b.fa", ">b\nA\n")
	exited := (&aligncmd{}).RunCommand("align", []string{"-a", a, "-b", b, "-matrix-out", tmpdir + "/matrix.npy"}, &bytes.Buffer{}, &bytes.Buffer{}, os.Stderr)
	c.Assert(exited, check.Equals, 0)
	f, err := os.Open(tmpdir + "/matrix.npy")
	c.Assert(err, check.IsNil)
	defer f.Close()
	npy, err := gonpy.NewReader(f)
	c.Assert(err, check.IsNil)
	c.Check(npy.Shape, check.DeepEquals, []int{3, 2})
	cells, err := npy.GetInt64()
	c.Assert(err, check.IsNil)
	c.Check(cells, check.DeepEquals, []int64{0, -2, -2, 1, -4, -1})
}

func (s *alignCmdSuite) TestConfigScoring(c *check.C) {
	tmpdir := c.MkDir()
	a := writeFile(c, tmpdir+"/a.fa", ">a\nACGT\n")
	cfg := writeFile(c, tmpdir+"/config.yml", "scoring:\n  match: 2\n")
	for _, trial := range []struct {
		args  []string
		score int
	}{
		{[]string{"-config", cfg}, 8},
		{[]string{"-config", cfg, "-match", "3"}, 12},
		{nil, 4},
	} {
		var stdout bytes.Buffer
		args := append([]string{"-a", a, "-b", a, "-output-format", "json"}, trial.args...)
		exited := (&aligncmd{}).RunCommand("align", args, &bytes.Buffer{}, &stdout, os.Stderr)
		c.Assert(exited, check.Equals, 0)
		all := decodeAlignments(c, stdout.String())
		c.Assert(all, check.HasLen, 1)
		c.Check(all[0].Score, check.Equals, trial.score, check.Commentf("%v", trial.args))
	}
}

func (s *alignCmdSuite) TestUsageErrors(c *check.C) {
	tmpdir := c.MkDir()
	a := writeFile(c, tmpdir+"/a.fa", ">a\nACGT\n")
	for _, args := range [][]string{
		{"-a", a},
		{"-a", "-", "-b", "-"},
		{"-a", a, "-b", a, "-mode", "semiglobal"},
		{"-a", a, "-b", a, "-output-format", "xml"},
		{"-a", a, "-b", a, "-all", "-matrix-out", tmpdir + "/m.npy"},
		{"-a", a, "-b", a, "-width", "0"},
		{"-a", a, "-b", a, "-config", tmpdir + "/nonexistent.yml"},
	} {
		var stderr bytes.Buffer
		exited := (&aligncmd{}).RunCommand("align", args, &bytes.Buffer{}, &bytes.Buffer{}, &stderr)
		c.Check(exited, check.Equals, 2, check.Commentf("%v", args))
		c.Check(stderr.Len() > 0, check.Equals, true, check.Commentf("%v", args))
	}
}

func (s *alignCmdSuite) TestEmptySequence(c *check.C) {
	tmpdir := c.MkDir()
	a := writeFile(c, tmpdir+"/a.fa", ">a\n")
	b := writeFile(c, tmpdir+"/b.fa", ">b\nACGT\n")
	var stderr bytes.Buffer
	exited := (&aligncmd{}).RunCommand("align", []string{"-a", a, "-b", b}, &bytes.Buffer{}, &bytes.Buffer{}, &stderr)
	c.Check(exited, check.Equals, 1)
	c.Check(stderr.String(), check.Matches, `(?ms).*empty.*`)
}

func (s *alignCmdSuite) TestScoreRange(c *check.C) {
	tmpdir := c.MkDir()
	a := writeFile(c, tmpdir+"/a.fa", ">a\nACGT\n")
	var stdout, stderr bytes.Buffer
	exited := (&aligncmd{}).RunCommand("align", []string{"-a", a, "-b", a, "-match", "4294967296", "-output-format", "json"}, &bytes.Buffer{}, &stdout, os.Stderr)
	c.Assert(exited, check.Equals, 0)
	all := decodeAlignments(c, stdout.String())
	c.Assert(all, check.HasLen, 1)
	c.Check(all[0].Score, check.Equals, 4*4294967296)

	exited = (&aligncmd{}).RunCommand("align", []string{"-a", a, "-b", a, "-match", "9223372036854775807"}, &bytes.Buffer{}, &bytes.Buffer{}, &stderr)
	c.Check(exited, check.Equals, 1)
	c.Check(stderr.String(), check.Matches, `(?ms).*too large.*`)
}
