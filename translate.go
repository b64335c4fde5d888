// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package seqcore

import (
	"bufio"
	"flag"
	"fmt"
	"io"

	"github.com/denishdholaria/bijmantra-sub010/motif"
	"github.com/denishdholaria/bijmantra-sub010/seqio"
	log "github.com/sirupsen/logrus"
)

type translatecmd struct {
	common     commonArgs
	frame      int
	formatName string
}

// RunCommand writes the protein translation of every input record as
// FASTA.
func (cmd *translatecmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	cmd.common.Flags(flags)
	flags.IntVar(&cmd.frame, "frame", 0, "reading `frame` (0, 1, 2 forward; -1, -2, -3 reverse complement)")
	flags.StringVar(&cmd.formatName, "format", "", "input `format` (fasta or fastq; default: detect)")
	outputFilename := flags.String("o", "-", "output `file`")
	err = flags.Parse(args)
	if err == flag.ErrHelp {
		err = nil
		return 0
	} else if err != nil {
		return 2
	}
	_, err = cmd.common.Setup()
	if err != nil {
		return 2
	}
	if _, err = motif.Translate("", cmd.frame); err != nil {
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
	count := 0
	for _, infile := range inputs {
		var records []seqio.Record
		records, err = loadRecords(infile, cmd.formatName, stdin)
		if err != nil {
			return 1
		}
		for _, rec := range records {
			var protein string
			protein, err = motif.Translate(rec.Sequence, cmd.frame)
			if err != nil {
				return 1
			}
			_, err = fmt.Fprintf(bufw, ">%s frame=%d\n%s\n", rec.ID, cmd.frame, protein)
			if err != nil {
				return 1
			}
			count++
		}
	}
	log.WithFields(log.Fields{"frame": cmd.frame, "records": count}).Info("translation done")
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
