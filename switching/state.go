// SPDX-License-Identifier: MIT

package switching

import "fmt"

// State is the lifecycle position of a candidate switch.
//
//	Proposed ─┬─► StructurallyInvalid
//	          └─► StructurallyValid ─┬─► SpectrallyConfirmed
//	                                 └─► SpectrallyRejected
type State int

const (
	Proposed State = iota
	StructurallyValid
	StructurallyInvalid
	SpectrallyConfirmed
	SpectrallyRejected
)

var stateNames = [...]string{
	Proposed:            "proposed",
	StructurallyValid:   "structurally-valid",
	StructurallyInvalid: "structurally-invalid",
	SpectrallyConfirmed: "spectrally-confirmed",
	SpectrallyRejected:  "spectrally-rejected",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}

	return stateNames[s]
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StructurallyInvalid || s == SpectrallyConfirmed || s == SpectrallyRejected
}

var transitions = map[State][]State{
	Proposed:          {StructurallyValid, StructurallyInvalid},
	StructurallyValid: {SpectrallyConfirmed, SpectrallyRejected},
}

// CanTransition reports whether from → to is legal.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}

	return false
}

// Candidate is one configuration moving through the state machine.
type Candidate struct {
	Config        Configuration
	State         State
	History       []State
	Diagnostics   Diagnostics
	Holding       []string
	Theorem       string
	Certification *Certification
}

// NewCandidate starts cfg in Proposed.
func NewCandidate(cfg Configuration) *Candidate {
	return &Candidate{Config: cfg, State: Proposed, History: []State{Proposed}}
}

// Transition moves the candidate to s or returns ErrInvalidTransition.
func (c *Candidate) Transition(s State) error {
	if !CanTransition(c.State, s) {
		return fmt.Errorf("%v: %s -> %s: %w", c.Config, c.State, s, ErrInvalidTransition)
	}
	c.State = s
	c.History = append(c.History, s)

	return nil
}
