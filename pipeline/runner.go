// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/leotrs/smol/core"
	"github.com/leotrs/smol/spectrum"
)

// Source streams graphs with their identifiers. *graph6.Scanner satisfies it.
// LineErr reports an item that could not be decoded; Err reports a failure of
// the stream itself.
type Source interface {
	Scan() bool
	ID() string
	Graph() *core.Graph
	LineErr() error
	Err() error
}

// Sink receives records. Has lets a run skip graphs stored by an earlier one.
type Sink interface {
	Has(ctx context.Context, id string) (bool, error)
	PutRecord(ctx context.Context, rec Record) error
}

// Failure is one unit of work that did not complete. Kind is a matrix tag for
// per-kind numerical failures, otherwise one of the Stage constants.
type Failure struct {
	ID     string `json:"id" yaml:"id"`
	Kind   string `json:"kind" yaml:"kind"`
	Reason string `json:"reason" yaml:"reason"`
}

// Summary reports a run.
type Summary struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	Processed  int       `json:"processed" yaml:"processed"`
	Skipped    int       `json:"skipped" yaml:"skipped"`
	Failed     []Failure `json:"failed" yaml:"failed"`
}

const panicWorkersInvalid = "pipeline: WithWorkers: workers must be >= 1"

// Runner fans graph work out over a bounded worker pool.
type Runner struct {
	workers      int
	spectrumOpts []spectrum.Option
	log          zerolog.Logger
	now          func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers bounds the number of graphs processed concurrently.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(r *Runner) { r.workers = n }
}

// WithSpectrumOptions forwards fingerprint options to every computation.
func WithSpectrumOptions(opts ...spectrum.Option) Option {
	return func(r *Runner) { r.spectrumOpts = append(r.spectrumOpts, opts...) }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// NewRunner returns a runner with one worker per CPU.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{workers: runtime.NumCPU(), log: zerolog.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run builds a record for every graph of src that sink does not yet hold in
// complete form.
//
// A per-graph failure, a malformed input line included, is recorded in the
// summary and never stops the run; a sink or read error does. Cancelling ctx
// stops scheduling new graphs and returns the partial summary with ctx's
// error. A record whose build completed is still written; one whose build was
// cut short is dropped and picked up by the next run.
func (r *Runner) Run(ctx context.Context, src Source, sink Sink) (Summary, error) {
	sum := Summary{RunID: uuid.NewString(), StartedAt: r.now().UTC(), Failed: []Failure{}}
	log := r.log.With().Str("run_id", sum.RunID).Logger()
	log.Info().Int("workers", r.workers).Msg("run started")

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	var srcErr error
	for src.Scan() {
		if gctx.Err() != nil {
			break
		}
		id, graph := src.ID(), src.Graph()
		if err := src.LineErr(); err != nil {
			log.Warn().Str("graph", id).Err(err).Msg("malformed input")
			mu.Lock()
			sum.Failed = append(sum.Failed, Failure{ID: id, Kind: StageDecode, Reason: err.Error()})
			mu.Unlock()
			continue
		}
		done, err := sink.Has(gctx, id)
		if err != nil {
			srcErr = fmt.Errorf("%s: %s: %w: %w", opRun, id, ErrSink, err)
			break
		}
		if done {
			mu.Lock()
			sum.Skipped++
			mu.Unlock()
			continue
		}

		g.Go(func() error {
			rec, kinds, err := BuildRecord(gctx, id, graph, r.spectrumOpts...)
			if err != nil && gctx.Err() != nil {
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			for _, f := range kinds {
				log.Warn().Str("graph", id).Stringer("kind", f.Kind).Err(f.Err).Msg("kind excluded")
				sum.Failed = append(sum.Failed, Failure{ID: id, Kind: f.Kind.String(), Reason: f.Err.Error()})
			}
			if err != nil {
				log.Warn().Str("graph", id).Err(err).Msg("record failed")
				sum.Failed = append(sum.Failed, Failure{ID: id, Kind: StageRecord, Reason: err.Error()})
				return nil
			}
			if err := sink.PutRecord(context.WithoutCancel(gctx), rec); err != nil {
				return fmt.Errorf("%s: %s: %w: %w", opRun, id, ErrSink, err)
			}
			sum.Processed++

			return nil
		})
	}
	werr := g.Wait()
	sum.FinishedAt = r.now().UTC()

	switch {
	case srcErr != nil:
		return sum, srcErr
	case werr != nil:
		return sum, werr
	case ctx.Err() != nil:
		return sum, fmt.Errorf("%s: %w", opRun, ctx.Err())
	}
	if err := src.Err(); err != nil {
		return sum, fmt.Errorf("%s: %w: %w", opRun, ErrSource, err)
	}
	log.Info().
		Int("processed", sum.Processed).
		Int("skipped", sum.Skipped).
		Int("failed", len(sum.Failed)).
		Msg("run finished")

	return sum, nil
}
