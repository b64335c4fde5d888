// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package seqio

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"strconv"
	"strings"
)

// Column indexes of a GFF3 data line.
const (
	FieldSeqid = iota
	FieldSource
	FieldType
	FieldStart
	FieldEnd
	FieldScore
	FieldStrand
	FieldPhase
	FieldAttributes

	gffColumns
)

// Strand of a feature: '+', '-', or '.' when unstranded.
type Strand byte

const (
	StrandForward Strand = '+'
	StrandReverse Strand = '-'
	StrandNone    Strand = '.'
)

func (s Strand) String() string { return string(rune(s)) }

func (s Strand) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func parseStrand(col string) Strand {
	switch col {
	case "+":
		return StrandForward
	case "-":
		return StrandReverse
	default:
		return StrandNone
	}
}

// Attributes is the ordered key/value map from column 9. Setting an
// existing key replaces its value but keeps its original position.
type Attributes struct {
	keys   []string
	values map[string]string
}

func (a *Attributes) Set(key, value string) {
	if a.values == nil {
		a.values = map[string]string{}
	}
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

func (a *Attributes) Get(key string) (string, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Keys returns attribute names in file order.
func (a *Attributes) Keys() []string {
	return append([]string(nil), a.keys...)
}

func (a *Attributes) Len() int { return len(a.keys) }

// Map returns an unordered copy.
func (a *Attributes) Map() map[string]string {
	m := make(map[string]string, len(a.keys))
	for k, v := range a.values {
		m[k] = v
	}
	return m
}

func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range a.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kj, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vj, err := json.Marshal(a.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kj)
		buf.WriteByte(':')
		buf.Write(vj)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Feature is one GFF3 data line. Start and End are 1-based and
// inclusive. A nil Score or Phase stands for the literal ".".
type Feature struct {
	Seqid      string
	Source     string
	Type       string
	Start      int
	End        int
	Score      *float64
	Strand     Strand
	Phase      *int
	Attributes Attributes
}

// Len is the number of bases covered by the feature.
func (f *Feature) Len() int {
	return f.End - f.Start + 1
}

// Name returns the Name attribute, falling back to ID and then Type.
func (f *Feature) Name() string {
	if v, ok := f.Attributes.Get("Name"); ok && v != "" {
		return v
	}
	if v, ok := f.Attributes.Get("ID"); ok && v != "" {
		return v
	}
	return f.Type
}

func (f Feature) MarshalJSON() ([]byte, error) {
	var score, phase interface{} = ".", "."
	if f.Score != nil {
		score = *f.Score
	}
	if f.Phase != nil {
		phase = *f.Phase
	}
	return json.Marshal(struct {
		Seqid      string      `json:"seqid"`
		Source     string      `json:"source"`
		Type       string      `json:"type"`
		Start      int         `json:"start"`
		End        int         `json:"end"`
		Score      interface{} `json:"score"`
		Strand     Strand      `json:"strand"`
		Phase      interface{} `json:"phase"`
		Attributes Attributes  `json:"attributes"`
	}{f.Seqid, f.Source, f.Type, f.Start, f.End, score, f.Strand, phase, f.Attributes})
}

// ReadGFF3 parses GFF3 feature lines from rdr, stopping at a ##FASTA
// directive if there is one.
func ReadGFF3(rdr io.Reader) ([]Feature, error) {
	features, _, err := readGFF3(rdr, false)
	return features, err
}

// ReadGFF3WithSequences parses GFF3 feature lines and any FASTA
// records embedded after a ##FASTA directive.
func ReadGFF3WithSequences(rdr io.Reader) ([]Feature, []Record, error) {
	return readGFF3(rdr, true)
}

// ParseGFF3 parses GFF3 text. Comments, blank lines and lines that
// cannot be decoded are skipped.
func ParseGFF3(text string) []Feature {
	features, _ := ReadGFF3(strings.NewReader(text))
	return features
}

func readGFF3(rdr io.Reader, wantFasta bool) ([]Feature, []Record, error) {
	var features []Feature
	sc := newScanner(rdr)
	for sc.Scan() {
		line := trimEOL(sc.Text())
		if strings.HasPrefix(line, "##FASTA") {
			if !wantFasta {
				return features, nil, nil
			}
			var rest strings.Builder
			for sc.Scan() {
				rest.WriteString(sc.Text())
				rest.WriteByte('\n')
			}
			return features, ParseFasta(rest.String()), sc.Err()
		}
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		if f, ok := parseFeature(line); ok {
			features = append(features, f)
		}
	}
	return features, nil, sc.Err()
}

func parseFeature(line string) (Feature, bool) {
	cols := strings.Split(line, "\t")
	if len(cols) < gffColumns {
		return Feature{}, false
	}
	f := Feature{
		Seqid:  cols[FieldSeqid],
		Source: cols[FieldSource],
		Type:   cols[FieldType],
		Strand: parseStrand(cols[FieldStrand]),
	}
	var err error
	if f.Start, err = strconv.Atoi(strings.TrimSpace(cols[FieldStart])); err != nil {
		return Feature{}, false
	}
	if f.End, err = strconv.Atoi(strings.TrimSpace(cols[FieldEnd])); err != nil {
		return Feature{}, false
	}
	if f.Start > f.End {
		return Feature{}, false
	}
	if col := strings.TrimSpace(cols[FieldScore]); col != "." {
		score, err := strconv.ParseFloat(col, 64)
		if err != nil {
			return Feature{}, false
		}
		f.Score = &score
	}
	if col := strings.TrimSpace(cols[FieldPhase]); col != "." {
		phase, err := strconv.Atoi(col)
		if err != nil {
			return Feature{}, false
		}
		f.Phase = &phase
	}
	f.Attributes = parseAttributes(cols[FieldAttributes])
	return f, true
}

func parseAttributes(col string) Attributes {
	var attrs Attributes
	for _, tok := range strings.Split(col, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(tok), "=")
		if !ok {
			continue
		}
		if unesc, err := url.PathUnescape(value); err == nil {
			value = unesc
		}
		attrs.Set(key, value)
	}
	return attrs
}
