// SPDX-License-Identifier: MIT

package switching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/leotrs/smol/core"
	"github.com/leotrs/smol/iso"
)

// Detector defaults.
const (
	DefaultIsoTimeout = 5 * time.Second
	DefaultMaxLeaves  = 2
)

const (
	panicIsoTimeoutInvalid = "switching: WithIsoTimeout: timeout must be > 0"
	panicMaxLeavesInvalid  = "switching: WithMaxLeaves: leaves must be >= 1"
	panicNoTheorems        = "switching: WithTheorems: registry must not be empty"
)

// Status is the verdict of Detect on one pair.
type Status string

const (
	// Explained means a confirmed mechanism maps one graph onto the other.
	Explained Status = "explained"
	// MechanismUnknown means no registered mechanism was confirmed. It is a
	// research outcome, not a failure.
	MechanismUnknown Status = "mechanism-unknown"
)

// PairGraphs is a cospectral pair handed to the detector.
type PairGraphs struct {
	FirstID  string
	SecondID string
	First    *core.Graph
	Second   *core.Graph
}

// Outcome summarises one Detect call. Matches counts candidates whose switched
// graph is isomorphic to the target; Invalid, Rejected and TimedOut break
// down the ones that did not become the mechanism.
type Outcome struct {
	Status    Status     `json:"status" yaml:"status"`
	Mechanism *Mechanism `json:"mechanism,omitempty" yaml:"mechanism,omitempty"`
	Examined  int        `json:"examined" yaml:"examined"`
	Matches   int        `json:"matches" yaml:"matches"`
	Invalid   int        `json:"invalid" yaml:"invalid"`
	Rejected  int        `json:"rejected" yaml:"rejected"`
	TimedOut  int        `json:"timed_out" yaml:"timed_out"`
	Divergent int        `json:"divergent" yaml:"divergent"`
}

// Detector searches for switching mechanisms behind cospectral pairs.
// A Detector is safe for concurrent use once built.
type Detector struct {
	theorems   []Theorem
	certifier  *Certifier
	isoTimeout time.Duration
	maxLeaves  int
	log        zerolog.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithTheorems replaces the theorem registry. Order is significance order.
func WithTheorems(ts ...Theorem) Option {
	if len(ts) == 0 {
		panic(panicNoTheorems)
	}
	reg := append([]Theorem(nil), ts...)

	return func(d *Detector) { d.theorems = reg }
}

// WithCertifier sets the spectral certifier.
func WithCertifier(c *Certifier) Option {
	return func(d *Detector) { d.certifier = c }
}

// WithIsoTimeout bounds each isomorphism test.
func WithIsoTimeout(t time.Duration) Option {
	if t <= 0 {
		panic(panicIsoTimeoutInvalid)
	}

	return func(d *Detector) { d.isoTimeout = t }
}

// WithMaxLeaves sets the largest leaf set size of bipartite swaps.
func WithMaxLeaves(k int) Option {
	if k < 1 {
		panic(panicMaxLeavesInvalid)
	}

	return func(d *Detector) { d.maxLeaves = k }
}

// WithLogger sets the logger. Rejections are logged at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Detector) { d.log = l }
}

// NewDetector builds a detector. Without WithCertifier it certifies with
// NewCertifier defaults, logging on the detector's logger.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		theorems:   DefaultTheorems(),
		isoTimeout: DefaultIsoTimeout,
		maxLeaves:  DefaultMaxLeaves,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.certifier == nil {
		d.certifier = NewCertifier(WithCertifierLogger(d.log))
	}

	return d
}

// Theorems returns a copy of the registry.
func (d *Detector) Theorems() []Theorem { return append([]Theorem(nil), d.theorems...) }

// Certifier returns the certifier in use.
func (d *Detector) Certifier() *Certifier { return d.certifier }

// Evaluate drives cfg on g through the state machine: structural check
// (precondition and theorem registry), then, when valid, spectral
// certification of g against the switched graph. Invalid and rejected
// candidates are returned with a nil error.
func (d *Detector) Evaluate(ctx context.Context, g *core.Graph, cfg Configuration) (*Candidate, error) {
	if g == nil {
		return nil, switchErrorf(opEvaluate, ErrGraphNil, "%v", cfg)
	}
	if err := ctx.Err(); err != nil {
		return nil, switchErrorf(opEvaluate, err, "%v", cfg)
	}

	c := NewCandidate(cfg)
	diag, err := Diagnose(g, cfg)
	if err != nil {
		if !errors.Is(err, ErrBadConfiguration) {
			return nil, err
		}

		return c, c.Transition(StructurallyInvalid)
	}
	c.Diagnostics = diag
	c.Holding = holding(d.theorems, cfg, diag)
	if len(c.Holding) == 0 {
		return c, c.Transition(StructurallyInvalid)
	}
	c.Theorem = c.Holding[0]
	if err = c.Transition(StructurallyValid); err != nil {
		return c, err
	}

	h, err := cfg.Apply(g)
	if err != nil {
		return c, err
	}
	cert, err := d.certifier.Certify(g, h)
	c.Certification = &cert
	if err != nil {
		return c, err
	}
	if cert.Confirmed {
		return c, c.Transition(SpectrallyConfirmed)
	}

	return c, c.Transition(SpectrallyRejected)
}

type strategy struct {
	name     string
	reversed bool
	generate func(*core.Graph) []Configuration
}

// strategies lists the search order: 2-edge switches, then bipartite swaps by
// growing leaf count, first from First towards Second, then the reverse.
func (d *Detector) strategies() []strategy {
	forward := []strategy{{name: string(TwoEdgeSwitch), generate: func(g *core.Graph) []Configuration {
		cs := Candidates(g)
		out := make([]Configuration, len(cs))
		for i, c := range cs {
			out[i] = c
		}

		return out
	}}}
	for k := 2; k <= d.maxLeaves; k++ {
		k := k
		forward = append(forward, strategy{
			name: fmt.Sprintf("%s/k=%d", BipartiteSwapType, k),
			generate: func(g *core.Graph) []Configuration {
				cs := BipartiteCandidates(g, k)
				out := make([]Configuration, len(cs))
				for i, c := range cs {
					out[i] = c
				}

				return out
			},
		})
	}

	all := append([]strategy(nil), forward...)
	for _, s := range forward {
		s.reversed = true
		all = append(all, s)
	}

	return all
}

// Detect looks for a confirmed mechanism between pair.First and pair.Second.
// The first confirmed candidate in search order wins. An isomorphism test
// exceeding the per-candidate timeout is counted and skipped; cancellation of
// ctx aborts the search with an error.
func (d *Detector) Detect(ctx context.Context, pair PairGraphs) (Outcome, error) {
	if pair.First == nil || pair.Second == nil {
		return Outcome{}, switchErrorf(opDetect, ErrGraphNil, "%s/%s", pair.FirstID, pair.SecondID)
	}
	if pair.First.N() != pair.Second.N() || pair.First.M() != pair.Second.M() {
		return Outcome{}, switchErrorf(opDetect, ErrOrderMismatch, "%s/%s", pair.FirstID, pair.SecondID)
	}

	log := d.log.With().Str("first", pair.FirstID).Str("second", pair.SecondID).Logger()
	out := Outcome{Status: MechanismUnknown}
	for _, s := range d.strategies() {
		slog := log.With().Str("strategy", s.name).Bool("reversed", s.reversed).Logger()
		src, dst := pair.First, pair.Second
		if s.reversed {
			src, dst = dst, src
		}
		for _, cfg := range s.generate(src) {
			if err := ctx.Err(); err != nil {
				return out, switchErrorf(opDetect, err, "%s/%s", pair.FirstID, pair.SecondID)
			}
			out.Examined++

			match, err := d.matches(ctx, src, dst, cfg)
			if err != nil {
				if errors.Is(err, iso.ErrTimeout) && ctx.Err() == nil {
					out.TimedOut++
					slog.Debug().Stringer("config", cfg).Msg("isomorphism test timed out")
					continue
				}

				return out, switchErrorf(opDetect, err, "%s/%s: %v", pair.FirstID, pair.SecondID, cfg)
			}
			if !match {
				continue
			}
			out.Matches++

			c, err := d.Evaluate(ctx, src, cfg)
			if err != nil {
				return out, switchErrorf(opDetect, err, "%s/%s", pair.FirstID, pair.SecondID)
			}
			if c.Certification != nil && c.Certification.Divergent {
				out.Divergent++
			}
			switch c.State {
			case StructurallyInvalid:
				out.Invalid++
				slog.Debug().Stringer("config", cfg).Msg("no theorem holds")
			case SpectrallyRejected:
				out.Rejected++
				slog.Debug().
					Stringer("config", cfg).
					Str("theorem", c.Theorem).
					Int("first_mismatch", c.Certification.FirstMismatch).
					Msg("candidate spectrally rejected")
			case SpectrallyConfirmed:
				out.Status = Explained
				out.Mechanism = newMechanism(pair, s.reversed, c)
				slog.Debug().Stringer("config", cfg).Str("theorem", c.Theorem).Msg("mechanism confirmed")

				return out, nil
			}
		}
	}
	log.Info().
		Int("examined", out.Examined).
		Int("matches", out.Matches).
		Int("rejected", out.Rejected).
		Int("timed_out", out.TimedOut).
		Msg("mechanism unknown")

	return out, nil
}

// matches applies cfg to src and tests the result against dst under the
// per-candidate timeout.
func (d *Detector) matches(ctx context.Context, src, dst *core.Graph, cfg Configuration) (bool, error) {
	h, err := cfg.Apply(src)
	if err != nil {
		return false, err
	}
	ictx, cancel := context.WithTimeout(ctx, d.isoTimeout)
	defer cancel()

	return iso.Isomorphic(ictx, h, dst)
}
