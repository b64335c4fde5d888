// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package seqio

import (
	"fmt"
	"strings"
)

type Format int

const (
	FormatUnknown Format = iota
	FormatFasta
	FormatFastq
	FormatGFF3
)

var formatNames = map[Format]string{
	FormatUnknown: "unknown",
	FormatFasta:   "fasta",
	FormatFastq:   "fastq",
	FormatGFF3:    "gff3",
}

func (f Format) String() string {
	return formatNames[f]
}

// ParseFormat maps a format name (as accepted on the command line) to
// a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "fasta", "fa", "fna":
		return FormatFasta, nil
	case "fastq", "fq":
		return FormatFastq, nil
	case "gff3", "gff":
		return FormatGFF3, nil
	}
	return FormatUnknown, fmt.Errorf("unknown format %q", name)
}

// Sniff guesses the format of text from its first non-blank line.
func Sniff(text string) Format {
	for len(text) > 0 {
		var line string
		line, text, _ = strings.Cut(text, "\n")
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "##gff-version"):
			return FormatGFF3
		case strings.HasPrefix(line, ">"):
			return FormatFasta
		case strings.HasPrefix(line, "@"):
			return FormatFastq
		case strings.HasPrefix(line, "#"):
			continue
		case strings.Count(line, "\t") >= gffColumns-1:
			return FormatGFF3
		default:
			return FormatUnknown
		}
	}
	return FormatUnknown
}
