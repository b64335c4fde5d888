// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package seqcore

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/denishdholaria/bijmantra-sub010/align"
	"github.com/denishdholaria/bijmantra-sub010/seqio"
	"github.com/kshedden/gonpy"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type aligncmd struct {
	common       commonArgs
	fileA        string
	fileB        string
	idA          string
	idB          string
	all          bool
	modeName     string
	scoring      align.Scoring
	outputFormat string
	matrixOut    string
	lineWidth    int
	timeout      time.Duration
}

// alignment is one output entry.
type alignment struct {
	Query    string  `json:"query"`
	Target   string  `json:"target"`
	Mode     string  `json:"mode"`
	Score    int     `json:"score"`
	Align1   string  `json:"align1"`
	Align2   string  `json:"align2"`
	Start1   int     `json:"start1"`
	End1     int     `json:"end1"`
	Start2   int     `json:"start2"`
	End2     int     `json:"end2"`
	Identity float64 `json:"identity"`
	Gaps     int     `json:"gaps"`
}

func (cmd *aligncmd) RunCommand(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	cmd.common.Flags(flags)
	flags.StringVar(&cmd.fileA, "a", "", "query sequence `file` (fasta or fastq)")
	flags.StringVar(&cmd.fileB, "b", "", "target sequence `file` (fasta or fastq)")
	flags.StringVar(&cmd.idA, "a-id", "", "use the query record with this `id` (default: first)")
	flags.StringVar(&cmd.idB, "b-id", "", "use the target record with this `id` (default: first)")
	flags.BoolVar(&cmd.all, "all", false, "align the query against every target record")
	flags.StringVar(&cmd.modeName, "mode", "global", "alignment `mode` (global or local)")
	flags.IntVar(&cmd.scoring.Match, "match", align.DefaultScoring.Match, "match `score`")
	flags.IntVar(&cmd.scoring.Mismatch, "mismatch", align.DefaultScoring.Mismatch, "mismatch `score`")
	flags.IntVar(&cmd.scoring.Gap, "gap", align.DefaultScoring.Gap, "gap `score`")
	flags.StringVar(&cmd.outputFormat, "output-format", "text", "output `format` (text or json)")
	flags.StringVar(&cmd.matrixOut, "matrix-out", "", "write the score matrix to `file`.npy (single alignment only)")
	flags.IntVar(&cmd.lineWidth, "width", 60, "alignment columns per line in text output")
	flags.DurationVar(&cmd.timeout, "timeout", 0, "give up after this long (0 means no limit)")
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
	if cmd.fileA == "" || cmd.fileB == "" {
		err = errors.New("both -a and -b are required")
		return 2
	}
	if cmd.fileA == "-" && cmd.fileB == "-" {
		err = errors.New("only one of -a and -b can be stdin")
		return 2
	}
	mode, err := align.ParseMode(cmd.modeName)
	if err != nil {
		return 2
	}
	if cmd.outputFormat != "text" && cmd.outputFormat != "json" {
		err = fmt.Errorf("unknown output format %q", cmd.outputFormat)
		return 2
	}
	if cmd.all && cmd.matrixOut != "" {
		err = errors.New("cannot use -matrix-out with -all")
		return 2
	}
	if cmd.lineWidth < 1 {
		err = fmt.Errorf("invalid -width %d", cmd.lineWidth)
		return 2
	}
	scoring := cfg.Scoring
	if cmd.common.IsSet("match") {
		scoring.Match = cmd.scoring.Match
	}
	if cmd.common.IsSet("mismatch") {
		scoring.Mismatch = cmd.scoring.Mismatch
	}
	if cmd.common.IsSet("gap") {
		scoring.Gap = cmd.scoring.Gap
	}

	recsA, err := loadRecords(cmd.fileA, "", stdin)
	if err != nil {
		return 1
	}
	query, err := pickRecord(recsA, cmd.idA, cmd.fileA)
	if err != nil {
		return 1
	}
	recsB, err := loadRecords(cmd.fileB, "", stdin)
	if err != nil {
		return 1
	}
	var targets []seqio.Record
	if cmd.all {
		targets = recsB
	} else {
		var target *seqio.Record
		target, err = pickRecord(recsB, cmd.idB, cmd.fileB)
		if err != nil {
			return 1
		}
		targets = []seqio.Record{*target}
	}

	ctx := context.Background()
	if cmd.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.timeout)
		defer cancel()
	}

	var results []alignment
	if cmd.all {
		workers := cfg.Workers
		if workers == 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		results, err = alignAll(ctx, query, targets, scoring, mode, workers)
	} else {
		var res alignment
		res, err = cmd.alignOne(ctx, query, &targets[0], scoring, mode)
		results = []alignment{res}
	}
	if err != nil {
		return 1
	}

	output, err := createOutput(*outputFilename, stdout)
	if err != nil {
		return 1
	}
	defer output.Close()
	bufw := bufio.NewWriter(output)
	if cmd.outputFormat == "json" {
		enc := json.NewEncoder(bufw)
		for _, res := range results {
			err = enc.Encode(res)
			if err != nil {
				return 1
			}
		}
	} else {
		for i, res := range results {
			if i > 0 {
				fmt.Fprintln(bufw)
			}
			writeAlignmentText(bufw, res, cmd.lineWidth)
		}
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

// alignOne runs a single alignment on a background runner, so that a
// timeout can abandon it, and optionally exports the score matrix.
func (cmd *aligncmd) alignOne(ctx context.Context, query, target *seqio.Record, scoring align.Scoring, mode align.Mode) (alignment, error) {
	if cmd.matrixOut != "" {
		m, err := align.Fill(ctx, query.Sequence, target.Sequence, scoring, mode)
		if err != nil {
			return alignment{}, fmt.Errorf("%s vs %s: %w", query.ID, target.ID, err)
		}
		err = writeMatrix(cmd.matrixOut, m)
		if err != nil {
			return alignment{}, err
		}
		return newAlignment(query, target, mode, m.Traceback()), nil
	}

	runner := align.Runner{Logger: log.StandardLogger()}
	defer runner.Close()
	runner.Submit(align.Request{A: query.Sequence, B: target.Sequence, Scoring: scoring, Mode: mode})
	select {
	case <-ctx.Done():
		return alignment{}, fmt.Errorf("%s vs %s: %w", query.ID, target.ID, ctx.Err())
	case resp := <-runner.Results():
		if resp.Err != nil {
			return alignment{}, fmt.Errorf("%s vs %s: %w", query.ID, target.ID, resp.Err)
		}
		log.WithFields(log.Fields{
			"query":   query.ID,
			"target":  target.ID,
			"score":   resp.Result.Score,
			"elapsed": resp.Elapsed,
		}).Info("aligned")
		return newAlignment(query, target, mode, resp.Result), nil
	}
}

// alignAll aligns query against every target, keeping target order in
// the returned slice.
func alignAll(ctx context.Context, query *seqio.Record, targets []seqio.Record, scoring align.Scoring, mode align.Mode, workers int) ([]alignment, error) {
	results := make([]alignment, len(targets))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := range targets {
		i, target := i, &targets[i]
		eg.Go(func() error {
			res, err := align.Align(ctx, query.Sequence, target.Sequence, scoring, mode)
			if err != nil {
				return fmt.Errorf("%s vs %s: %w", query.ID, target.ID, err)
			}
			log.WithFields(log.Fields{
				"query":  query.ID,
				"target": target.ID,
				"score":  res.Score,
			}).Debug("aligned")
			results[i] = newAlignment(query, target, mode, res)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"query": query.ID, "targets": len(targets)}).Info("aligned all targets")
	return results, nil
}

func newAlignment(query, target *seqio.Record, mode align.Mode, res align.Result) alignment {
	return alignment{
		Query:    query.ID,
		Target:   target.ID,
		Mode:     mode.String(),
		Score:    res.Score,
		Align1:   res.Align1,
		Align2:   res.Align2,
		Start1:   res.Start1,
		End1:     res.End1,
		Start2:   res.Start2,
		End2:     res.End2,
		Identity: res.Identity(),
		Gaps:     res.Gaps(),
	}
}

func (a alignment) result() align.Result {
	return align.Result{Score: a.Score, Align1: a.Align1, Align2: a.Align2}
}

func writeAlignmentText(w io.Writer, a alignment, width int) {
	fmt.Fprintf(w, "# %s vs %s (%s)\n", a.Query, a.Target, a.Mode)
	fmt.Fprintf(w, "# score %d, identity %.1f%%, gaps %d\n", a.Score, a.Identity*100, a.Gaps)
	fmt.Fprintf(w, "# query %d-%d, target %d-%d\n", a.Start1, a.End1, a.Start2, a.End2)
	mid := a.result().Midline()
	for off := 0; off < len(a.Align1); off += width {
		end := off + width
		if end > len(a.Align1) {
			end = len(a.Align1)
		}
		fmt.Fprintf(w, "%s\n%s\n%s\n", a.Align1[off:end], mid[off:end], a.Align2[off:end])
	}
}

// writeMatrix saves the score matrix as a rows x cols int64 .npy file.
func writeMatrix(fnm string, m *align.Matrix) error {
	output, err := os.Create(fnm)
	if err != nil {
		return err
	}
	defer output.Close()
	bufw := bufio.NewWriter(output)
	npw, err := gonpy.NewWriter(nopCloser{bufw})
	if err != nil {
		return err
	}
	npw.Shape = []int{m.Rows, m.Cols}
	err = npw.WriteInt64(m.Cells)
	if err != nil {
		return err
	}
	err = bufw.Flush()
	if err != nil {
		return err
	}
	err = output.Close()
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"filename": fnm,
		"rows":     m.Rows,
		"cols":     m.Cols,
	}).Info("wrote score matrix")
	return nil
}
