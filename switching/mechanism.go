// SPDX-License-Identifier: MIT

package switching

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/leotrs/smol/core"
	"github.com/leotrs/smol/matrix"
)

// Mechanism is a confirmed switch explaining an NBL-cospectral pair. When
// Reversed is set the configuration acts on Second and produces First.
type Mechanism struct {
	First         string        `json:"first" yaml:"first"`
	Second        string        `json:"second" yaml:"second"`
	Kind          matrix.Kind   `json:"kind" yaml:"kind"`
	Type          MechanismType `json:"type" yaml:"type"`
	Theorem       string        `json:"theorem" yaml:"theorem"`
	Holding       []string      `json:"holding" yaml:"holding"`
	Reversed      bool          `json:"reversed" yaml:"reversed"`
	Config        Configuration `json:"config" yaml:"config"`
	Diagnostics   Diagnostics   `json:"diagnostics" yaml:"diagnostics"`
	Certification Certification `json:"certification" yaml:"certification"`
}

func newMechanism(pair PairGraphs, reversed bool, c *Candidate) *Mechanism {
	m := &Mechanism{
		First:       pair.FirstID,
		Second:      pair.SecondID,
		Kind:        matrix.NBLTransition,
		Type:        c.Config.Type(),
		Theorem:     c.Theorem,
		Holding:     append([]string(nil), c.Holding...),
		Reversed:    reversed,
		Config:      c.Config,
		Diagnostics: c.Diagnostics,
	}
	if c.Certification != nil {
		m.Certification = *c.Certification
	}

	return m
}

// Payload is the persisted form of a mechanism: enough to rebuild the
// configuration and re-verify it against the stored pair.
type Payload struct {
	Type     MechanismType  `json:"type" yaml:"type"`
	Theorem  string         `json:"theorem" yaml:"theorem"`
	Holding  []string       `json:"holding,omitempty" yaml:"holding,omitempty"`
	Reversed bool           `json:"reversed" yaml:"reversed"`
	TwoEdge  *TwoEdge       `json:"two_edge,omitempty" yaml:"two_edge,omitempty"`
	Swap     *BipartiteSwap `json:"bipartite_swap,omitempty" yaml:"bipartite_swap,omitempty"`
}

// Payload returns the persisted form of m.
func (m *Mechanism) Payload() Payload {
	p := Payload{Type: m.Type, Theorem: m.Theorem, Holding: m.Holding, Reversed: m.Reversed}
	switch c := m.Config.(type) {
	case TwoEdge:
		p.TwoEdge = &c
	case BipartiteSwap:
		p.Swap = &c
	}

	return p
}

// Configuration rebuilds the configuration named by p.
func (p Payload) Configuration() (Configuration, error) {
	switch {
	case p.Type == TwoEdgeSwitch && p.TwoEdge != nil:
		return *p.TwoEdge, nil
	case p.Type == BipartiteSwapType && p.Swap != nil:
		return *p.Swap, nil
	default:
		return nil, switchErrorf(opPayload, ErrUnknownType, "type %q", p.Type)
	}
}

// ParsePayload decodes a JSON payload and checks it names a configuration.
func ParsePayload(b []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(b, &p); err != nil {
		return Payload{}, fmt.Errorf("%s: %w", opPayload, err)
	}
	if _, err := p.Configuration(); err != nil {
		return Payload{}, err
	}

	return p, nil
}

// Reverify rebuilds the configuration of p, checks that it still maps first
// onto second (or second onto first when reversed) and certifies it again.
// ErrNotReproduced means the stored configuration no longer applies or no
// longer lands on the mate; a spectral rejection is reported through
// Certification.Confirmed.
func (d *Detector) Reverify(ctx context.Context, first, second *core.Graph, p Payload) (Certification, error) {
	if first == nil || second == nil {
		return Certification{}, switchErrorf(opReverify, ErrGraphNil, "reverify")
	}
	cfg, err := p.Configuration()
	if err != nil {
		return Certification{}, err
	}
	src, dst := first, second
	if p.Reversed {
		src, dst = dst, src
	}

	ok, err := d.matches(ctx, src, dst, cfg)
	if err != nil {
		return Certification{}, fmt.Errorf("%s: %v: %w: %w", opReverify, cfg, ErrNotReproduced, err)
	}
	if !ok {
		return Certification{}, switchErrorf(opReverify, ErrNotReproduced, "%v", cfg)
	}

	h, err := cfg.Apply(src)
	if err != nil {
		return Certification{}, err
	}
	cert, err := d.certifier.Certify(src, h)
	if err != nil {
		return cert, switchErrorf(opReverify, err, "%v", cfg)
	}

	return cert, nil
}
