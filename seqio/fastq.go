// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package seqio

import (
	"io"
	"strings"
)

// FastqStats counts what ReadFastqStats kept and dropped.
type FastqStats struct {
	Records int
	// Dropped counts complete 4-line groups rejected for a missing
	// '@' header or a quality/sequence length mismatch.
	Dropped int
	// Truncated is the number of lines in an incomplete trailing
	// group.
	Truncated int
}

// ReadFastqStats parses FASTQ from rdr in strict 4-line groups of
// non-empty lines and reports how many groups were accepted.
func ReadFastqStats(rdr io.Reader) ([]Record, FastqStats, error) {
	var (
		records []Record
		stats   FastqStats
		group   [4]string
		n       int
	)
	sc := newScanner(rdr)
	for sc.Scan() {
		line := strings.TrimSpace(trimEOL(sc.Text()))
		if line == "" {
			continue
		}
		group[n] = line
		n++
		if n < 4 {
			continue
		}
		n = 0
		hdr, seq, qual := group[0], group[1], group[3]
		if !strings.HasPrefix(hdr, "@") || len(qual) != len(seq) {
			stats.Dropped++
			continue
		}
		id, desc := splitHeader(hdr[1:])
		records = append(records, Record{
			ID:          id,
			Description: desc,
			Sequence:    seq,
			Quality:     qual,
		})
	}
	stats.Records = len(records)
	stats.Truncated = n
	return records, stats, sc.Err()
}

// ReadFastq parses all complete FASTQ records from rdr.
func ReadFastq(rdr io.Reader) ([]Record, error) {
	records, _, err := ReadFastqStats(rdr)
	return records, err
}

// ParseFastq parses FASTQ text. A truncated trailing group is dropped.
func ParseFastq(text string) []Record {
	records, _ := ReadFastq(strings.NewReader(text))
	return records
}
