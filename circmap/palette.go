// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package circmap

import "strings"

// Palette maps feature types to fill colours. Lookups ignore case.
type Palette struct {
	Colors  map[string]string `yaml:"colors"`
	Default string            `yaml:"default"`
}

var DefaultPalette = Palette{
	Colors: map[string]string{
		"gene":        "#4e79a7",
		"mrna":        "#59a14f",
		"cds":         "#f28e2b",
		"exon":        "#e15759",
		"promoter":    "#76b7b2",
		"terminator":  "#b07aa1",
		"rep_origin":  "#edc948",
		"primer_bind": "#ff9da7",
	},
	Default: "#9c9c9c",
}

func (p Palette) Color(featureType string) string {
	if c, ok := p.Colors[strings.ToLower(featureType)]; ok {
		return c
	}
	if p.Default != "" {
		return p.Default
	}
	return DefaultPalette.Default
}
