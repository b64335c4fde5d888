// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

// Package seqio decodes FASTA, FASTQ and GFF3 text.
//
// Parsers are tolerant: truncated or malformed trailing fragments are
// dropped rather than reported, since input often comes from partial
// interactive uploads.
package seqio

import (
	"bufio"
	"io"
	"strings"
)

// Record is a single sequence entry from a FASTA or FASTQ file. An
// empty Description or Quality means the field was absent.
type Record struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
	Sequence    string `json:"sequence"`
	Quality     string `json:"quality,omitempty"`
}

// HasQuality reports whether the record carries per-base quality.
func (r *Record) HasQuality() bool {
	return r.Quality != "" && len(r.Quality) == len(r.Sequence)
}

// Phred returns the Phred+33 decoded quality of base i, or -1 if the
// record has no quality data.
func (r *Record) Phred(i int) int {
	if !r.HasQuality() || i < 0 || i >= len(r.Quality) {
		return -1
	}
	return int(r.Quality[i]) - 33
}

// splitHeader splits a FASTA/FASTQ header (without its leading marker)
// into id and description at the first space.
func splitHeader(hdr string) (id, desc string) {
	id, desc, _ = strings.Cut(hdr, " ")
	return id, desc
}

// readBufferSize is the bufio buffer used by lineReader. Lines longer
// than this are assembled from several chunks, so it is not a limit on
// line length.
var readBufferSize = 64 * 1024

// lineReader returns lines of any length. It has the Scan/Text/Err
// shape of bufio.Scanner.
type lineReader struct {
	r   *bufio.Reader
	buf []byte
	err error
}

func newScanner(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, readBufferSize)}
}

// Scan reads the next line, without its line terminator.
func (lr *lineReader) Scan() bool {
	if lr.err != nil {
		return false
	}
	lr.buf = lr.buf[:0]
	got := false
	for {
		chunk, isPrefix, err := lr.r.ReadLine()
		if err != nil {
			lr.err = err
			return got
		}
		got = true
		lr.buf = append(lr.buf, chunk...)
		if !isPrefix {
			return true
		}
	}
}

func (lr *lineReader) Text() string {
	return string(lr.buf)
}

// Err returns the first read error other than io.EOF.
func (lr *lineReader) Err() error {
	if lr.err == io.EOF {
		return nil
	}
	return lr.err
}

// trimEOL removes a trailing CR left behind by CRLF line endings.
func trimEOL(line string) string {
	return strings.TrimSuffix(line, "\r")
}
