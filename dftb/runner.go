/*
 * runner.go, part of emperor.
 *
 * Copyright 2025 The emperor authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package dftb

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// OutputFile collects the solver's stdout and stderr in the job
// directory, and DetailedFile is the results file whose presence
// marks a successful run. Both names are fixed by DFTB+.
const (
	OutputFile   = "out.log"
	DetailedFile = "detailed.out"
)

// RunResult is the outcome of one solver invocation. OK means the
// solver produced detailed.out; the exit code alone is not trusted
// because dftb+ exits zero after some failed runs.
type RunResult struct {
	OK       bool
	ExitCode int
}

// Runner executes the DFTB+ binary inside job directories. At most
// maxRuns solver processes run at once; further calls wait on the
// semaphore until a slot frees or their context is done.
type Runner struct {
	binary  string
	timeout time.Duration
	sem     *semaphore.Weighted
	log     *zap.Logger
}

// NewRunner returns a runner for the given binary. maxRuns and
// timeout fall back to 1 and 20 minutes when non-positive, and a nil
// logger is replaced by a no-op one.
func NewRunner(binary string, timeout time.Duration, maxRuns int, log *zap.Logger) *Runner {
	if maxRuns < 1 {
		maxRuns = 1
	}
	if timeout <= 0 {
		timeout = 1200 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		binary:  binary,
		timeout: timeout,
		sem:     semaphore.NewWeighted(int64(maxRuns)),
		log:     log,
	}
}

// Run executes the solver in dir, which must already hold
// dftb_in.hsd and a parameters link. Output goes to out.log. The run
// is bounded by the runner's timeout on top of ctx; hitting either
// kills the process and returns the context error.
func (r *Runner) Run(ctx context.Context, dir string) (RunResult, error) {
	if err := r.sem.Acquire(ctx, 1); err != nil {
		return RunResult{}, fmt.Errorf("dftb: waiting for a run slot: %w", err)
	}
	defer r.sem.Release(1)

	rctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := os.Create(filepath.Join(dir, OutputFile))
	if err != nil {
		return RunResult{}, fmt.Errorf("dftb: create %s: %w", OutputFile, err)
	}
	defer out.Close()

	cmd := exec.CommandContext(rctx, r.binary)
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out

	r.log.Info("running solver", zap.String("dir", dir), zap.String("binary", r.binary))
	start := time.Now()
	runErr := cmd.Run()
	res := RunResult{}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	if rctx.Err() != nil {
		r.log.Warn("solver run cut short", zap.String("dir", dir), zap.Error(rctx.Err()))
		return res, fmt.Errorf("dftb: run in %s: %w", dir, rctx.Err())
	}
	if runErr != nil {
		if _, ok := runErr.(*exec.ExitError); !ok {
			// the binary never started (not found, not executable)
			return res, fmt.Errorf("dftb: run %s: %w", r.binary, runErr)
		}
	}
	_, statErr := os.Stat(filepath.Join(dir, DetailedFile))
	res.OK = statErr == nil
	r.log.Info("solver finished",
		zap.String("dir", dir),
		zap.Bool("ok", res.OK),
		zap.Int("rc", res.ExitCode),
		zap.Duration("took", time.Since(start)))
	return res, nil
}
