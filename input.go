// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package seqcore

import (
	"bufio"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/denishdholaria/bijmantra-sub010/seqio"
	"github.com/klauspost/pgzip"
	log "github.com/sirupsen/logrus"
)

// zopen returns a reader for the given file ("-" for stdin),
// transparently decompressing the input if fnm ends with ".gz".
func zopen(fnm string, stdin io.Reader) (io.ReadCloser, error) {
	var f io.ReadCloser
	if fnm == "-" {
		f = ioutil.NopCloser(stdin)
	} else {
		file, err := os.Open(fnm)
		if err != nil {
			return nil, err
		}
		f = file
	}
	if !strings.HasSuffix(fnm, ".gz") {
		return f, nil
	}
	rdr, err := pgzip.NewReader(bufio.NewReaderSize(f, 4*1024*1024))
	if err != nil {
		f.Close()
		return nil, err
	}
	return gzipr{rdr, f}, nil
}

// gzipr wraps a ReadCloser and a Closer, presenting a single Close()
// method that closes both wrapped objects.
type gzipr struct {
	io.ReadCloser
	io.Closer
}

func (gr gzipr) Close() error {
	e1 := gr.ReadCloser.Close()
	e2 := gr.Closer.Close()
	if e1 != nil {
		return e1
	}
	return e2
}

// readText returns the whole (decompressed) content of fnm.
func readText(fnm string, stdin io.Reader) (string, error) {
	rdr, err := zopen(fnm, stdin)
	if err != nil {
		return "", err
	}
	defer rdr.Close()
	buf, err := ioutil.ReadAll(rdr)
	if err != nil {
		return "", fmt.Errorf("%s: %w", fnm, err)
	}
	return string(buf), nil
}

// formatOf returns the named format, or sniffs the content when name
// is empty.
func formatOf(name, fnm, text string) (seqio.Format, error) {
	if name != "" {
		return seqio.ParseFormat(name)
	}
	format := seqio.Sniff(text)
	if format == seqio.FormatUnknown {
		if strings.TrimSpace(text) == "" {
			// an empty upload is a valid, empty file
			return seqio.FormatFasta, nil
		}
		return format, fmt.Errorf("%s: cannot detect file format", fnm)
	}
	return format, nil
}

// loadRecords reads FASTA or FASTQ records from fnm.
func loadRecords(fnm, formatName string, stdin io.Reader) ([]seqio.Record, error) {
	text, err := readText(fnm, stdin)
	if err != nil {
		return nil, err
	}
	format, err := formatOf(formatName, fnm, text)
	if err != nil {
		return nil, err
	}
	var records []seqio.Record
	switch format {
	case seqio.FormatFasta:
		records = seqio.ParseFasta(text)
	case seqio.FormatFastq:
		var stats seqio.FastqStats
		records, stats, err = seqio.ReadFastqStats(strings.NewReader(text))
		if err != nil {
			return nil, err
		}
		if stats.Dropped > 0 || stats.Truncated > 0 {
			log.WithFields(log.Fields{
				"filename":  fnm,
				"dropped":   stats.Dropped,
				"truncated": stats.Truncated,
			}).Warn("skipped malformed fastq records")
		}
	case seqio.FormatGFF3:
		_, records, err = seqio.ReadGFF3WithSequences(strings.NewReader(text))
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%s: %s input does not contain sequences", fnm, format)
	}
	log.WithFields(log.Fields{
		"filename": fnm,
		"format":   format,
		"records":  len(records),
	}).Debug("loaded sequences")
	return records, nil
}

// loadFeatures reads GFF3 features from fnm.
func loadFeatures(fnm string, stdin io.Reader) ([]seqio.Feature, error) {
	rdr, err := zopen(fnm, stdin)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()
	features, err := seqio.ReadGFF3(rdr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fnm, err)
	}
	log.WithFields(log.Fields{
		"filename": fnm,
		"features": len(features),
	}).Debug("loaded features")
	return features, nil
}

// pickRecord returns the record named id, or the first record if id
// is empty.
func pickRecord(records []seqio.Record, id, fnm string) (*seqio.Record, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no sequence records", fnm)
	}
	if id == "" {
		return &records[0], nil
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, fmt.Errorf("%s: no record with id %q", fnm, id)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// createOutput opens fnm for writing, or returns stdout for "-".
func createOutput(fnm string, stdout io.Writer) (io.WriteCloser, error) {
	if fnm == "-" {
		return nopCloser{stdout}, nil
	}
	return os.OpenFile(fnm, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
}
