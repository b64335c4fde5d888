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
	"math"

	"github.com/denishdholaria/bijmantra-sub010/seqio"
	"github.com/denishdholaria/bijmantra-sub010/window"
	log "github.com/sirupsen/logrus"
)

type rendercmd struct {
	common       commonArgs
	inputFile    string
	formatName   string
	id           string
	featuresFile string
	viewport     window.Viewport
	geometry     window.Geometry
	outputFormat string
}

func (cmd *rendercmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	cmd.common.Flags(flags)
	flags.StringVar(&cmd.inputFile, "i", "-", "fasta or fastq input `file`")
	flags.StringVar(&cmd.formatName, "format", "", "input `format` (fasta or fastq; default: detect)")
	flags.StringVar(&cmd.id, "id", "", "render the record with this `id` (default: first)")
	flags.StringVar(&cmd.featuresFile, "features", "", "gff3 `file` with features to overlay")
	flags.Float64Var(&cmd.viewport.ScrollTop, "scroll", 0, "scroll offset in `pixels`")
	flags.Float64Var(&cmd.viewport.Height, "height", 480, "viewport height in `pixels`")
	flags.IntVar(&cmd.geometry.BasesPerRow, "bases-per-row", window.DefaultGeometry.BasesPerRow, "bases per row")
	flags.Float64Var(&cmd.geometry.RowHeight, "row-height", window.DefaultGeometry.RowHeight, "row height in `pixels`")
	flags.IntVar(&cmd.geometry.Overscan, "overscan", window.DefaultGeometry.Overscan, "extra `rows` rendered above and below the viewport")
	flags.StringVar(&cmd.outputFormat, "output-format", "text", "output `format` (text or json)")
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
	if cmd.outputFormat != "text" && cmd.outputFormat != "json" {
		err = fmt.Errorf("unknown output format %q", cmd.outputFormat)
		return 2
	}
	geometry := cfg.Render
	if cmd.common.IsSet("bases-per-row") {
		geometry.BasesPerRow = cmd.geometry.BasesPerRow
	}
	if cmd.common.IsSet("row-height") {
		geometry.RowHeight = cmd.geometry.RowHeight
	}
	if cmd.common.IsSet("overscan") {
		geometry.Overscan = cmd.geometry.Overscan
	}
	if geometry.BasesPerRow < 1 || !(geometry.RowHeight > 0) || math.IsInf(geometry.RowHeight, 1) || geometry.Overscan < 0 {
		err = fmt.Errorf("invalid geometry %+v", geometry)
		return 2
	}

	records, err := loadRecords(cmd.inputFile, cmd.formatName, stdin)
	if err != nil {
		return 1
	}
	rec, err := pickRecord(records, cmd.id, cmd.inputFile)
	if err != nil {
		return 1
	}
	var index *window.FeatureIndex
	if cmd.featuresFile != "" {
		var features []seqio.Feature
		features, err = loadFeatures(cmd.featuresFile, stdin)
		if err != nil {
			return 1
		}
		index = window.NewFeatureIndex(features, rec.ID)
	}

	frame := window.Render(rec, geometry, cmd.viewport, index)
	log.WithFields(log.Fields{
		"record": rec.ID,
		"length": frame.Length,
		"rows":   len(frame.Rows),
		"first":  frame.Window.First,
		"last":   frame.Window.Last,
	}).Debug("rendered window")

	output, err := createOutput(*outputFilename, stdout)
	if err != nil {
		return 1
	}
	defer output.Close()
	bufw := bufio.NewWriter(output)
	if cmd.outputFormat == "json" {
		err = json.NewEncoder(bufw).Encode(frame)
	} else {
		err = window.WriteText(bufw, frame)
	}
	if err != nil {
		return 1
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
