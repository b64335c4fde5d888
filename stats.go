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
	"runtime"
	"sort"
	"strings"

	"github.com/denishdholaria/bijmantra-sub010/seqio"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Average nucleotide masses (Da) of single-stranded DNA residues.
var nucleotideWeight = map[byte]float64{
	'A': 331.2,
	'T': 322.2,
	'G': 347.2,
	'C': 307.2,
}

type composition struct {
	A     int `json:"A"`
	C     int `json:"C"`
	G     int `json:"G"`
	T     int `json:"T"`
	N     int `json:"N"`
	Other int `json:"other"`
}

type qualityStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	// fraction of bases at or above Q30
	Q30 float64 `json:"q30"`
}

type sequenceStats struct {
	File              string        `json:"file,omitempty"`
	ID                string        `json:"id"`
	Length            int           `json:"length"`
	GCContent         float64       `json:"gc_content"` // percent
	ATContent         float64       `json:"at_content"` // percent
	Composition       composition   `json:"composition"`
	CompositionPvalue float64       `json:"composition_pvalue"` // uniform A/C/G/T mix
	MolecularWeight   float64       `json:"molecular_weight"`
	Quality           *qualityStats `json:"quality,omitempty"`
	Blake2b           string        `json:"blake2b"` // of the upper-cased sequence
}

// computeStats summarizes one record. Quality characters must be
// printable ASCII ('!' to '~').
func computeStats(rec *seqio.Record) (sequenceStats, error) {
	st := sequenceStats{ID: rec.ID, Length: len(rec.Sequence)}
	upper := strings.ToUpper(rec.Sequence)
	comp := &st.Composition
	for i := 0; i < len(upper); i++ {
		switch upper[i] {
		case 'A':
			comp.A++
		case 'C':
			comp.C++
		case 'G':
			comp.G++
		case 'T':
			comp.T++
		case 'N':
			comp.N++
		default:
			comp.Other++
		}
		st.MolecularWeight += nucleotideWeight[upper[i]]
	}
	if st.Length > 0 {
		st.GCContent = float64(comp.G+comp.C) / float64(st.Length) * 100
		st.ATContent = float64(comp.A+comp.T) / float64(st.Length) * 100
	}
	st.CompositionPvalue = compositionPvalue(*comp)
	st.Blake2b = fmt.Sprintf("%x", blake2b.Sum256([]byte(upper)))
	if rec.HasQuality() && len(rec.Quality) > 0 {
		qs, err := computeQuality(rec)
		if err != nil {
			return st, fmt.Errorf("record %q: %w", rec.ID, err)
		}
		st.Quality = qs
	}
	return st, nil
}

func computeQuality(rec *seqio.Record) (*qualityStats, error) {
	scores := make([]float64, len(rec.Quality))
	q30 := 0
	for i := range scores {
		if ch := rec.Quality[i]; ch < '!' || ch > '~' {
			return nil, fmt.Errorf("invalid quality character %q at position %d", ch, i)
		}
		q := rec.Phred(i)
		if q >= 30 {
			q30++
		}
		scores[i] = float64(q)
	}
	qs := &qualityStats{
		Min: floats.Min(scores),
		Max: floats.Max(scores),
		Q30: float64(q30) / float64(len(scores)),
	}
	qs.Mean, qs.StdDev = stat.MeanStdDev(scores, nil)
	if len(scores) < 2 {
		qs.StdDev = 0
	}
	sort.Float64s(scores)
	qs.Median = stat.Quantile(0.5, stat.Empirical, scores, nil)
	return qs, nil
}

type statscmd struct {
	common     commonArgs
	formatName string
}

func (cmd *statscmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	cmd.common.Flags(flags)
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
	inputs := flags.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	output, err := createOutput(*outputFilename, stdout)
	if err != nil {
		return 1
	}
	defer output.Close()
	bufw := bufio.NewWriter(output)
	enc := json.NewEncoder(bufw)
	for _, infile := range inputs {
		var records []seqio.Record
		records, err = loadRecords(infile, cmd.formatName, stdin)
		if err != nil {
			return 1
		}
		all := make([]sequenceStats, len(records))
		throttle := throttle{Max: workers}
		for i := range records {
			i := i
			throttle.Go(func() error {
				st, err := computeStats(&records[i])
				if err != nil {
					return err
				}
				st.File = infile
				all[i] = st
				return nil
			})
		}
		err = throttle.Wait()
		if err != nil {
			err = fmt.Errorf("%s: %w", infile, err)
			return 1
		}
		for _, st := range all {
			err = enc.Encode(st)
			if err != nil {
				return 1
			}
		}
		log.WithFields(log.Fields{"filename": infile, "records": len(records)}).Info("computed statistics")
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
