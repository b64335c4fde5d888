// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package seqcore

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/denishdholaria/bijmantra-sub010/seqio"
	log "github.com/sirupsen/logrus"
)

type parsecmd struct {
	common       commonArgs
	formatName   string
	withSequence bool
}

// parsedEntry is one output line: a sequence record or a feature.
type parsedEntry struct {
	File    string         `json:"file"`
	Record  *seqio.Record  `json:"record,omitempty"`
	Feature *seqio.Feature `json:"feature,omitempty"`
}

func (cmd *parsecmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	cmd.common.Flags(flags)
	flags.StringVar(&cmd.formatName, "format", "", "input `format` (fasta, fastq, or gff3; default: detect)")
	flags.BoolVar(&cmd.withSequence, "with-sequence", true, "include sequence and quality strings in output")
	outputFilename := flags.String("o", "-", "output `file`")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	}
	if _, err = cmd.common.Setup(); err != nil {
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
	for _, infile := range inputs {
		err = cmd.parseFile(enc, infile, stdin)
		if err != nil {
			return 1
		}
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

func (cmd *parsecmd) parseFile(enc *json.Encoder, infile string, stdin io.Reader) error {
	text, err := readText(infile, stdin)
	if err != nil {
		return err
	}
	format, err := formatOf(cmd.formatName, infile, text)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"filename": infile, "format": format}).Info("parsing")
	var (
		records  []seqio.Record
		features []seqio.Feature
	)
	switch format {
	case seqio.FormatFasta:
		records = seqio.ParseFasta(text)
	case seqio.FormatFastq:
		var stats seqio.FastqStats
		records, stats, err = seqio.ReadFastqStats(strings.NewReader(text))
		if stats.Dropped > 0 || stats.Truncated > 0 {
			log.WithFields(log.Fields{
				"filename":  infile,
				"dropped":   stats.Dropped,
				"truncated": stats.Truncated,
			}).Warn("skipped malformed fastq records")
		}
	case seqio.FormatGFF3:
		features, records, err = seqio.ReadGFF3WithSequences(strings.NewReader(text))
	}
	if err != nil {
		return err
	}
	for i := range features {
		if err := enc.Encode(parsedEntry{File: infile, Feature: &features[i]}); err != nil {
			return err
		}
	}
	for i := range records {
		rec := records[i]
		if !cmd.withSequence {
			rec.Sequence, rec.Quality = "", ""
		}
		if err := enc.Encode(parsedEntry{File: infile, Record: &rec}); err != nil {
			return err
		}
	}
	log.WithFields(log.Fields{
		"filename": infile,
		"records":  len(records),
		"features": len(features),
	}).Debug("parsed")
	return nil
}
