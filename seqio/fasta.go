// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package seqio

import (
	"io"
	"strings"
)

// ReadFasta parses all FASTA records from rdr. Sequence lines that
// appear before the first header are ignored. Lines may be of any
// length. On a read error, the records parsed so far are returned
// along with the error.
func ReadFasta(rdr io.Reader) ([]Record, error) {
	var (
		records []Record
		cur     *Record
		seq     strings.Builder
	)
	flush := func() {
		if cur != nil {
			cur.Sequence = seq.String()
			records = append(records, *cur)
			cur = nil
		}
		seq.Reset()
	}
	sc := newScanner(rdr)
	for sc.Scan() {
		line := trimEOL(sc.Text())
		if strings.HasPrefix(line, ">") {
			flush()
			id, desc := splitHeader(strings.TrimRight(line[1:], " \t"))
			cur = &Record{ID: id, Description: desc}
			continue
		}
		if cur == nil {
			continue
		}
		seq.WriteString(strings.TrimSpace(line))
	}
	// records read before an error are still returned
	flush()
	return records, sc.Err()
}

// ParseFasta parses FASTA text. Empty input yields an empty list.
func ParseFasta(text string) []Record {
	records, _ := ReadFasta(strings.NewReader(text))
	return records
}
