// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package align

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Request is one alignment job for a Runner.
type Request struct {
	A, B    string
	Scoring Scoring
	Mode    Mode
}

// Response carries the outcome of the newest request that finished
// without being superseded.
type Response struct {
	Seq     uint64
	Request Request
	Result  Result
	Err     error
	Elapsed time.Duration
}

// Runner computes alignments on background goroutines so that a large
// comparison never blocks the caller. Submitting a new request cancels
// the one in flight; superseded requests never produce a Response.
type Runner struct {
	Logger logrus.FieldLogger

	setupOnce sync.Once
	mtx       sync.Mutex
	seq       uint64
	cancel    context.CancelFunc
	closed    bool
	results   chan Response
	wg        sync.WaitGroup
}

func (r *Runner) setup() {
	r.setupOnce.Do(func() {
		r.results = make(chan Response, 1)
		if r.Logger == nil {
			r.Logger = logrus.StandardLogger()
		}
	})
}

// Results returns the channel on which responses are delivered. Only
// the newest undelivered response is buffered. The channel is closed
// by Close.
func (r *Runner) Results() <-chan Response {
	r.setup()
	return r.results
}

// Submit starts req and returns its sequence number, cancelling any
// request still running. It returns 0 if the runner is closed.
func (r *Runner) Submit(req Request) uint64 {
	r.setup()
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.closed {
		return 0
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.seq++
	seq := r.seq
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.wg.Add(1)
	go r.run(ctx, seq, req)
	return seq
}

func (r *Runner) run(ctx context.Context, seq uint64, req Request) {
	defer r.wg.Done()
	t0 := time.Now()
	res, err := Align(ctx, req.A, req.B, req.Scoring, req.Mode)
	elapsed := time.Since(t0)

	r.mtx.Lock()
	defer r.mtx.Unlock()
	logger := r.Logger.WithFields(logrus.Fields{
		"seq":     seq,
		"mode":    req.Mode,
		"len1":    len(req.A),
		"len2":    len(req.B),
		"elapsed": elapsed,
	})
	if seq != r.seq || ctx.Err() != nil {
		logger.Debug("alignment superseded")
		return
	}
	r.cancel()
	r.cancel = nil
	select {
	case <-r.results:
		logger.Debug("replacing unread alignment response")
	default:
	}
	r.results <- Response{Seq: seq, Request: req, Result: res, Err: err, Elapsed: elapsed}
	logger.WithField("score", res.Score).Debug("alignment done")
}

// Close cancels any running request, waits for background work to
// finish, and closes the Results channel.
func (r *Runner) Close() {
	r.setup()
	r.mtx.Lock()
	if r.closed {
		r.mtx.Unlock()
		return
	}
	r.closed = true
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mtx.Unlock()
	r.wg.Wait()
	close(r.results)
}
