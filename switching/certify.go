// SPDX-License-Identifier: MIT

package switching

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/leotrs/smol/core"
	"github.com/leotrs/smol/graph6"
	"github.com/leotrs/smol/matrix"
	"github.com/leotrs/smol/spectrum"
)

// Certifier defaults.
const (
	DefaultMaxPower          = 14
	DefaultPrecision         = spectrum.DefaultPrecision
	DefaultSpectralTolerance = 1e-6
)

const (
	panicMaxPowerInvalid  = "switching: WithMaxPower: power must be >= 1"
	panicPrecisionInvalid = "switching: WithPrecision: precision must be in [0,15]"
	panicToleranceInvalid = "switching: WithSpectralTolerance: tolerance must be > 0"
)

// Certification is the spectral verdict on a pair of graphs.
//
// Traces are tr(T^k) for k = 1..MaxPower of the NBL transition matrix.
// FirstMismatch is the smallest k whose traces differ by more than Tolerance,
// 0 when none does. TraceEqual is authoritative: Confirmed == TraceEqual.
// SpectrumEqual is the independent eigenvalue comparison; Divergent is set
// when the two disagree.
type Certification struct {
	MaxPower      int       `json:"max_power" yaml:"max_power"`
	Tolerance     float64   `json:"tolerance" yaml:"tolerance"`
	TracesFirst   []float64 `json:"traces_first" yaml:"traces_first"`
	TracesSecond  []float64 `json:"traces_second" yaml:"traces_second"`
	FirstMismatch int       `json:"first_mismatch" yaml:"first_mismatch"`
	TraceEqual    bool      `json:"trace_equal" yaml:"trace_equal"`
	SpectrumEqual bool      `json:"spectrum_equal" yaml:"spectrum_equal"`
	Divergent     bool      `json:"divergent" yaml:"divergent"`
	Confirmed     bool      `json:"confirmed" yaml:"confirmed"`
}

// Certifier decides NBL cospectrality of two graphs of equal order and size.
type Certifier struct {
	maxPower    int
	precision   int
	spectralTol float64
	strict      bool
	cache       *TraceCache
	log         zerolog.Logger
}

// CertifierOption configures a Certifier.
type CertifierOption func(*Certifier)

// WithMaxPower sets K, the highest trace power compared.
func WithMaxPower(k int) CertifierOption {
	if k < 1 {
		panic(panicMaxPowerInvalid)
	}

	return func(c *Certifier) { c.maxPower = k }
}

// WithPrecision sets the trace tolerance to 10^-p.
func WithPrecision(p int) CertifierOption {
	if p < 0 || p > spectrum.MaxPrecision {
		panic(panicPrecisionInvalid)
	}

	return func(c *Certifier) { c.precision = p }
}

// WithSpectralTolerance sets the per-eigenvalue tolerance of the secondary
// spectrum comparison.
func WithSpectralTolerance(tol float64) CertifierOption {
	if !(tol > 0) {
		panic(panicToleranceInvalid)
	}

	return func(c *Certifier) { c.spectralTol = tol }
}

// WithStrictCertification turns a divergent verdict into ErrCertificationDivergence.
func WithStrictCertification() CertifierOption {
	return func(c *Certifier) { c.strict = true }
}

// WithTraceCache shares a trace cache between certifiers.
func WithTraceCache(tc *TraceCache) CertifierOption {
	return func(c *Certifier) { c.cache = tc }
}

// WithCertifierLogger sets the logger divergences are reported on.
func WithCertifierLogger(l zerolog.Logger) CertifierOption {
	return func(c *Certifier) { c.log = l }
}

// NewCertifier returns a certifier with the defaults overridden by opts.
// Without WithTraceCache traces are recomputed on every call.
func NewCertifier(opts ...CertifierOption) *Certifier {
	c := &Certifier{
		maxPower:    DefaultMaxPower,
		precision:   DefaultPrecision,
		spectralTol: DefaultSpectralTolerance,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Tolerance returns the absolute trace tolerance.
func (c *Certifier) Tolerance() float64 { return math.Pow10(-c.precision) }

// Certify compares g and h.
func (c *Certifier) Certify(g, h *core.Graph) (Certification, error) {
	if g == nil || h == nil {
		return Certification{}, switchErrorf(opCertify, ErrGraphNil, "certify")
	}
	if g.N() != h.N() || g.M() != h.M() {
		return Certification{}, switchErrorf(opCertify, ErrOrderMismatch,
			"(n,m)=(%d,%d) vs (%d,%d)", g.N(), g.M(), h.N(), h.M())
	}

	cert := Certification{MaxPower: c.maxPower, Tolerance: c.Tolerance()}
	var err error
	if cert.TracesFirst, err = c.cache.Traces(g, c.maxPower); err != nil {
		return Certification{}, switchErrorf(opCertify, err, "traces of first graph")
	}
	if cert.TracesSecond, err = c.cache.Traces(h, c.maxPower); err != nil {
		return Certification{}, switchErrorf(opCertify, err, "traces of second graph")
	}
	for i := range cert.TracesFirst {
		if math.Abs(cert.TracesFirst[i]-cert.TracesSecond[i]) > cert.Tolerance {
			cert.FirstMismatch = i + 1
			break
		}
	}
	cert.TraceEqual = cert.FirstMismatch == 0

	sg, err := spectrum.Compute(g, matrix.NBLTransition)
	if err != nil {
		return Certification{}, switchErrorf(opCertify, err, "spectrum of first graph")
	}
	sh, err := spectrum.Compute(h, matrix.NBLTransition)
	if err != nil {
		return Certification{}, switchErrorf(opCertify, err, "spectrum of second graph")
	}
	cert.SpectrumEqual = spectrum.Equal(sg.Spectrum, sh.Spectrum, c.spectralTol)

	cert.Confirmed = cert.TraceEqual
	if cert.TraceEqual != cert.SpectrumEqual {
		cert.Divergent = true
		c.log.Warn().
			Str("first", graph6.Encode(g)).
			Str("second", graph6.Encode(h)).
			Bool("trace_equal", cert.TraceEqual).
			Bool("spectrum_equal", cert.SpectrumEqual).
			Int("first_mismatch", cert.FirstMismatch).
			Msg("trace and spectrum verdicts diverge")
		if c.strict {
			return cert, switchErrorf(opCertify, ErrCertificationDivergence,
				"%s vs %s", graph6.Encode(g), graph6.Encode(h))
		}
	}

	return cert, nil
}
