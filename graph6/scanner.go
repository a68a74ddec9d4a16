// SPDX-License-Identifier: MIT

package graph6

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/leotrs/smol/core"
)

// Scanner reads newline-separated graph6 strings, as written by nauty's geng,
// and decodes them one at a time. Blank lines and lines holding only the
// ">>graph6<<" header are skipped.
//
//	sc := graph6.NewScanner(os.Stdin)
//	for sc.Scan() {
//	    if err := sc.LineErr(); err != nil { ... continue }
//	    id, g := sc.ID(), sc.Graph()
//	    ...
//	}
//	if err := sc.Err(); err != nil { ... }
//
// A malformed line does not stop the scan: Scan still returns true, ID holds
// the line text, Graph is nil and LineErr reports the decode error with its
// line number. Only a read error ends the scan early.
type Scanner struct {
	sc      *bufio.Scanner
	line    int
	id      string
	g       *core.Graph
	lineErr error
	err     error
}

// NewScanner wraps r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{sc: bufio.NewScanner(r)}
}

// Scan advances to the next non-blank line. It returns false at EOF or on a
// read error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.sc.Scan() {
		s.line++
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s.sc.Text()), FileHeader))
		if text == "" {
			continue
		}
		s.id = text
		s.g, s.lineErr = Decode(text)
		if s.lineErr != nil {
			s.g = nil
			s.lineErr = fmt.Errorf("line %d: %w", s.line, s.lineErr)
		}

		return true
	}
	s.id, s.g, s.lineErr = "", nil, nil
	s.err = s.sc.Err()

	return false
}

// ID returns the graph6 string of the current graph, exactly as read.
func (s *Scanner) ID() string { return s.id }

// Graph returns the current decoded graph, or nil when the line is malformed.
func (s *Scanner) Graph() *core.Graph { return s.g }

// LineErr returns the decode error of the current line, or nil.
func (s *Scanner) LineErr() error { return s.lineErr }

// Err returns the read error that ended the scan, or nil at clean EOF.
func (s *Scanner) Err() error { return s.err }
