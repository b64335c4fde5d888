// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package seqcore

import (
	"bytes"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/denishdholaria/bijmantra-sub010/align"
	"github.com/denishdholaria/bijmantra-sub010/circmap"
	"github.com/denishdholaria/bijmantra-sub010/seqio"
	"github.com/denishdholaria/bijmantra-sub010/window"
	"gopkg.in/check.v1"
)

type configSuite struct{}

var _ = check.Suite(&configSuite{})

func (s *configSuite) TestDefaults(c *check.C) {
	cfg, err := LoadConfig("")
	c.Assert(err, check.IsNil)
	c.Check(cfg.Scoring, check.Equals, align.DefaultScoring)
	c.Check(cfg.Render, check.Equals, window.DefaultGeometry)
	c.Check(cfg.CircularMap.Layout, check.Equals, circmap.DefaultLayout)
	c.Check(cfg.Workers, check.Equals, 0)

	// the palette is a copy
	cfg.CircularMap.Palette.Colors["gene"] = "#000000"
	c.Check(circmap.DefaultPalette.Colors["gene"], check.Not(check.Equals), "#000000")
}

func (s *configSuite) TestLoad(c *check.C) {
	tmpdir := c.MkDir()
	fnm := writeFile(c, tmpdir+"/c.yml", `
scoring:
  gap: -5
render:
  row_height: 12.5
circular_map:
  layout:
    radius: 150
  palette:
    default: "#ffffff"
    colors:
      CDS: "#abcdef"
workers: 3
`)
	cfg, err := LoadConfig(fnm)
	c.Assert(err, check.IsNil)
	c.Check(cfg.Scoring, check.Equals, align.Scoring{Match: 1, Mismatch: -1, Gap: -5})
	c.Check(cfg.Render.RowHeight, check.Equals, 12.5)
	c.Check(cfg.Render.BasesPerRow, check.Equals, window.DefaultGeometry.BasesPerRow)
	c.Check(cfg.CircularMap.Layout.Radius, check.Equals, 150.0)
	c.Check(cfg.CircularMap.Layout.CenterX, check.Equals, circmap.DefaultLayout.CenterX)
	c.Check(cfg.CircularMap.Palette.Color("cds"), check.Equals, "#abcdef")
	c.Check(cfg.CircularMap.Palette.Color("gene"), check.Equals, circmap.DefaultPalette.Colors["gene"])
	c.Check(cfg.CircularMap.Palette.Color("mystery"), check.Equals, "#ffffff")
	c.Check(cfg.Workers, check.Equals, 3)
}

func (s *configSuite) TestInvalid(c *check.C) {
	tmpdir := c.MkDir()
	for _, trial := range []struct {
		yaml  string
		match string
	}{
		{"render:\n  bases_per_row: 0\n", `.*bases_per_row.*`},
		{"render:\n  row_height: -1\n", `.*row_height.*`},
		{"render:\n  overscan: -1\n", `.*overscan.*`},
		{"circular_map:\n  layout:\n    radius: 0\n", `.*radius.*`},
		{"workers: -2\n", `.*workers.*`},
		{"scoring: [1, 2]\n", `(?s).*c.yml.*`},
	} {
		fnm := writeFile(c, tmpdir+"/c.yml", trial.yaml)
		_, err := LoadConfig(fnm)
		c.Check(err, check.ErrorMatches, trial.match, check.Commentf("%q", trial.yaml))
	}
	_, err := LoadConfig(tmpdir + "/missing.yml")
	c.Check(err, check.NotNil)
}

type inputSuite struct{}

var _ = check.Suite(&inputSuite{})

func (s *inputSuite) TestGzip(c *check.C) {
	tmpdir := c.MkDir()
	fnm := writeGzip(c, tmpdir+"/x.fa.gz", ">a\nAC\nGT\n")
	records, err := loadRecords(fnm, "", nil)
	c.Assert(err, check.IsNil)
	c.Check(records, check.DeepEquals, []seqio.Record{{ID: "a", Sequence: "ACGT"}})
}

func (s *inputSuite) TestFormatOf(c *check.C) {
	for _, trial := range []struct {
		name   string
		text   string
		format seqio.Format
		fail   bool
	}{
		{"", ">a\nA\n", seqio.FormatFasta, false},
		{"", "@a\nA\n+\nI\n", seqio.FormatFastq, false},
		{"", "##gff-version 3\n", seqio.FormatGFF3, false},
		{"", "", seqio.FormatFasta, false},
		{"", "ACGT\n", seqio.FormatUnknown, true},
		{"fq", ">a\nA\n", seqio.FormatFastq, false},
		{"embl", ">a\nA\n", seqio.FormatUnknown, true},
	} {
		format, err := formatOf(trial.name, "test", trial.text)
		c.Check(format, check.Equals, trial.format, check.Commentf("%+v", trial))
		c.Check(err != nil, check.Equals, trial.fail, check.Commentf("%+v", trial))
	}
}

func (s *inputSuite) TestLoadFeatures(c *check.C) {
	features, err := loadFeatures("-", strings.NewReader("seq1\tsrc\tgene\t100\t200\t.\t+\t.\tID=gene1\n##FASTA\n>seq1\nACGT\n"))
	c.Assert(err, check.IsNil)
	c.Assert(features, check.HasLen, 1)
	c.Check(features[0].Name(), check.Equals, "gene1")
}

func (s *inputSuite) TestPickRecord(c *check.C) {
	records := []seqio.Record{{ID: "a"}, {ID: "b"}}
	rec, err := pickRecord(records, "", "x")
	c.Check(err, check.IsNil)
	c.Check(rec.ID, check.Equals, "a")
	rec, err = pickRecord(records, "b", "x")
	c.Check(err, check.IsNil)
	c.Check(rec.ID, check.Equals, "b")
	_, err = pickRecord(records, "c", "x")
	c.Check(err, check.ErrorMatches, `x: no record with id "c"`)
	_, err = pickRecord(nil, "", "x")
	c.Check(err, check.ErrorMatches, `x: no sequence records`)
}

func (s *inputSuite) TestCreateOutputStdout(c *check.C) {
	var buf bytes.Buffer
	w, err := createOutput("-", &buf)
	c.Assert(err, check.IsNil)
	w.Write([]byte("hi"))
	c.Check(w.Close(), check.IsNil)
	c.Check(buf.String(), check.Equals, "hi")
}

type throttleSuite struct{}

var _ = check.Suite(&throttleSuite{})

func (s *throttleSuite) TestLimit(c *check.C) {
	var running, peak int64
	th := throttle{Max: 3}
	for i := 0; i < 50; i++ {
		th.Go(func() error {
			n := atomic.AddInt64(&running, 1)
			for {
				p := atomic.LoadInt64(&peak)
				if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
					break
				}
			}
			atomic.AddInt64(&running, -1)
			return nil
		})
	}
	c.Check(th.Wait(), check.IsNil)
	c.Check(peak <= 3, check.Equals, true)
}

func (s *throttleSuite) TestFirstError(c *check.C) {
	th := throttle{Max: 1}
	errFirst := errors.New("first")
	var calls int64
	th.Go(func() error { atomic.AddInt64(&calls, 1); return errFirst })
	th.Wait()
	th.Go(func() error { atomic.AddInt64(&calls, 1); return errors.New("second") })
	c.Check(th.Wait(), check.Equals, errFirst)
	c.Check(calls, check.Equals, int64(1))
}

func (s *throttleSuite) TestZeroMax(c *check.C) {
	th := throttle{}
	done := false
	th.Go(func() error { done = true; return nil })
	c.Check(th.Wait(), check.IsNil)
	c.Check(done, check.Equals, true)
}
