// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package seqcore

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/denishdholaria/bijmantra-sub010/motif"
	"github.com/denishdholaria/bijmantra-sub010/seqio"
	log "github.com/sirupsen/logrus"
)

type motifcmd struct {
	common      commonArgs
	pattern     string
	bothStrands bool
	enzymes     string
	formatName  string
}

// motifHit is one output line.
type motifHit struct {
	File   string `json:"file"`
	Record string `json:"record"`
	motif.StrandMatch
}

// siteHit is one output line in restriction site mode.
type siteHit struct {
	File   string `json:"file"`
	Record string `json:"record"`
	motif.Site
}

func (cmd *motifcmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	cmd.common.Flags(flags)
	flags.StringVar(&cmd.pattern, "pattern", "", "literal `motif` to search for (case-insensitive)")
	flags.BoolVar(&cmd.bothStrands, "both-strands", false, "also search for the reverse complement")
	flags.StringVar(&cmd.enzymes, "enzymes", "", "report restriction sites of comma-separated `enzymes` (or \"all\") instead of a pattern")
	flags.StringVar(&cmd.formatName, "format", "", "input `format` (fasta or fastq; default: detect)")
	outputFilename := flags.String("o", "-", "output `file`")
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
	var enzymes []motif.Enzyme
	if cmd.enzymes != "" {
		if cmd.pattern != "" {
			err = errors.New("-pattern and -enzymes cannot be used together")
			return 2
		}
		enzymes, err = motif.LookupEnzymes(strings.Split(cmd.enzymes, ","))
		if err != nil {
			return 2
		}
	} else if cmd.pattern == "" {
		err = errors.New("-pattern or -enzymes is required")
		return 2
	}
	inputs := flags.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	output, err := createOutput(*outputFilename, stdout)
	if err != nil {
		return 1
	}
	defer output.Close()
	bufw := bufio.NewWriter(output)
	enc := json.NewEncoder(bufw)
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	total := 0
	for _, infile := range inputs {
		var records []seqio.Record
		records, err = loadRecords(infile, cmd.formatName, stdin)
		if err != nil {
			return 1
		}
		if enzymes != nil {
			var sites [][]motif.Site
			sites, err = cmd.siteRecords(records, enzymes, workers)
			if err != nil {
				err = fmt.Errorf("%s: %w", infile, err)
				return 1
			}
			for i, recsites := range sites {
				for _, site := range recsites {
					err = enc.Encode(siteHit{File: infile, Record: records[i].ID, Site: site})
					if err != nil {
						return 1
					}
				}
				total += len(recsites)
			}
			continue
		}
		var hits [][]motif.StrandMatch
		hits, err = cmd.searchRecords(records, workers)
		if err != nil {
			err = fmt.Errorf("%s: %w", infile, err)
			return 1
		}
		for i, matches := range hits {
			for _, m := range matches {
				err = enc.Encode(motifHit{File: infile, Record: records[i].ID, StrandMatch: m})
				if err != nil {
					return 1
				}
			}
			total += len(matches)
		}
	}
	log.WithFields(log.Fields{"pattern": cmd.pattern, "enzymes": len(enzymes), "matches": total}).Info("motif search done")
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

// searchRecords searches every record concurrently. The result is
// indexed like records.
func (cmd *motifcmd) searchRecords(records []seqio.Record, workers int) ([][]motif.StrandMatch, error) {
	hits := make([][]motif.StrandMatch, len(records))
	throttle := throttle{Max: workers}
	for i := range records {
		i, rec := i, &records[i]
		throttle.Go(func() error {
			var matches []motif.StrandMatch
			if cmd.bothStrands {
				var err error
				matches, err = motif.SearchBothStrands(rec.Sequence, cmd.pattern)
				if err != nil {
					return err
				}
			} else {
				fwd, err := motif.Search(rec.Sequence, cmd.pattern)
				if err != nil {
					return err
				}
				matches = make([]motif.StrandMatch, len(fwd))
				for j, m := range fwd {
					matches[j] = motif.StrandMatch{Match: m, Strand: motif.Forward}
				}
			}
			hits[i] = matches
			return nil
		})
	}
	return hits, throttle.Wait()
}

// siteRecords finds restriction sites in every record concurrently.
func (cmd *motifcmd) siteRecords(records []seqio.Record, enzymes []motif.Enzyme, workers int) ([][]motif.Site, error) {
	sites := make([][]motif.Site, len(records))
	throttle := throttle{Max: workers}
	for i := range records {
		i, rec := i, &records[i]
		throttle.Go(func() error {
			found, err := motif.RestrictionSites(rec.Sequence, enzymes)
			sites[i] = found
			return err
		})
	}
	return sites, throttle.Wait()
}
