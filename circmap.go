// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package seqcore

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/denishdholaria/bijmantra-sub010/circmap"
	"github.com/denishdholaria/bijmantra-sub010/motif"
	"github.com/denishdholaria/bijmantra-sub010/seqio"
	log "github.com/sirupsen/logrus"
)

type circmapcmd struct {
	common       commonArgs
	featuresFile string
	seqFile      string
	seqid        string
	length       int
	title        string
	ticks        int
	enzymes      string
}

func (cmd *circmapcmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	cmd.common.Flags(flags)
	flags.StringVar(&cmd.featuresFile, "features", "", "gff3 `file` with features to draw")
	flags.StringVar(&cmd.seqFile, "seq", "", "fasta `file` giving the sequence length")
	flags.StringVar(&cmd.seqid, "seqid", "", "draw features of this sequence `id` only (default: first record, or all features)")
	flags.IntVar(&cmd.length, "length", 0, "sequence length in bases (instead of -seq)")
	flags.StringVar(&cmd.title, "title", "", "map title (default: sequence id)")
	flags.IntVar(&cmd.ticks, "ticks", 0, "approximate number of backbone ticks (0 uses config)")
	flags.StringVar(&cmd.enzymes, "enzymes", "", "mark restriction sites of comma-separated `enzymes` (or \"all\"); needs -seq")
	outputFilename := flags.String("o", "-", "output svg `file`")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	}
	cfg, err := cmd.common.Setup()
	if err != nil {
		return 2
	}
	if cmd.featuresFile == "" {
		err = errors.New("-features is required")
		return 2
	}
	if (cmd.seqFile == "") == (cmd.length == 0) {
		err = errors.New("exactly one of -seq and -length is required")
		return 2
	}
	if cmd.length < 0 {
		err = fmt.Errorf("invalid -length %d", cmd.length)
		return 2
	}
	var enzymes []motif.Enzyme
	if cmd.enzymes != "" {
		if cmd.seqFile == "" {
			err = errors.New("-enzymes needs -seq")
			return 2
		}
		enzymes, err = motif.LookupEnzymes(strings.Split(cmd.enzymes, ","))
		if err != nil {
			return 2
		}
	}

	length, seqid := cmd.length, cmd.seqid
	var sites []motif.Site
	if cmd.seqFile != "" {
		var records []seqio.Record
		records, err = loadRecords(cmd.seqFile, "", stdin)
		if err != nil {
			return 1
		}
		var rec *seqio.Record
		rec, err = pickRecord(records, seqid, cmd.seqFile)
		if err != nil {
			return 1
		}
		length, seqid = len(rec.Sequence), rec.ID
		if enzymes != nil {
			sites, err = motif.RestrictionSites(rec.Sequence, enzymes)
			if err != nil {
				return 1
			}
		}
	}
	features, err := loadFeatures(cmd.featuresFile, stdin)
	if err != nil {
		return 1
	}
	if seqid != "" {
		features = featuresOn(features, seqid)
	}

	mapcfg := cfg.CircularMap
	sectors, err := circmap.Project(length, features, mapcfg.Layout, mapcfg.Palette)
	if err != nil {
		return 1
	}
	marks, err := circmap.SiteMarks(length, sites, mapcfg.Layout)
	if err != nil {
		return 1
	}
	nticks := mapcfg.Ticks
	if cmd.ticks > 0 {
		nticks = cmd.ticks
	}
	title := cmd.title
	if title == "" {
		title = seqid
	}
	m := circmap.Map{
		Title:   title,
		Length:  length,
		Layout:  mapcfg.Layout,
		Sectors: sectors,
		Ticks:   circmap.Ticks(length, circmap.TickInterval(length, nticks), mapcfg.Layout),
		Sites:   marks,
	}
	log.WithFields(log.Fields{
		"seqid":    seqid,
		"length":   length,
		"features": len(sectors),
		"sites":    len(marks),
	}).Info("drawing circular map")

	output, err := createOutput(*outputFilename, stdout)
	if err != nil {
		return 1
	}
	defer output.Close()
	bufw := bufio.NewWriter(output)
	err = circmap.WriteSVG(bufw, m)
	if err != nil {
		return 1
	}
	err = bufw.Flush()
	if err != nil {
		return 1
	}
	err = output.Close()
	if err != nil {
		return 1
	}
	return 0
}

// featuresOn returns the features whose seqid matches.
func featuresOn(features []seqio.Feature, seqid string) []seqio.Feature {
	var out []seqio.Feature
	for _, f := range features {
		if f.Seqid == seqid {
			out = append(out, f)
		}
	}
	return out
}
