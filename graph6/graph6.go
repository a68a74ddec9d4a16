// SPDX-License-Identifier: MIT

// Package graph6 implements the graph6 text encoding of simple undirected
// graphs (McKay's nauty format), the canonical identifier every smol record
// is keyed by.
//
// Encoding:
//
//	N(n) R(x)
//
//   - N(n): one byte n+63 for 0 <= n <= 62, or '~' followed by three bytes
//     (18 bits, big-endian, 6 bits per byte) for 63 <= n <= 258047.
//   - R(x): the upper triangle of the adjacency matrix read column by column,
//     x(0,1) x(0,2) x(1,2) x(0,3) x(1,3) x(2,3) ..., padded with zeros to a
//     multiple of 6 bits; each 6-bit group is written as value+63.
//
// Round trips are bit-exact: Encode(Decode(s)) == s for every valid s, which
// is what makes the string usable as a primary key.
package graph6

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leotrs/smol/core"
)

// Sentinel errors.
var (
	// ErrEmpty indicates an empty input string.
	ErrEmpty = errors.New("graph6: empty input")

	// ErrInvalidChar indicates a byte outside the printable range 63..126.
	ErrInvalidChar = errors.New("graph6: invalid character")

	// ErrLength indicates the body length does not match the declared order.
	ErrLength = errors.New("graph6: length mismatch")

	// ErrHeader indicates a sparse6/digraph6 string or an unsupported order.
	ErrHeader = errors.New("graph6: unsupported header")

	// ErrPadding indicates non-zero padding bits in the last byte.
	ErrPadding = errors.New("graph6: non-zero padding")
)

// FileHeader is the optional header nauty writes in front of graph6 files.
const FileHeader = ">>graph6<<"

const (
	bias       = 63
	maxByte    = 126
	longMarker = '~'
	maxShort   = 62
	maxLong    = 258047

	opDecode = "Decode"
	opEncode = "Encode"
)

// Decode parses one graph6 string (without trailing newline) into a Graph.
// An optional ">>graph6<<" prefix is accepted.
func Decode(s string) (*core.Graph, error) {
	s = strings.TrimPrefix(s, FileHeader)
	if s == "" {
		return nil, fmt.Errorf("%s: %w", opDecode, ErrEmpty)
	}
	switch s[0] {
	case ':', ';':
		return nil, fmt.Errorf("%s: sparse6 %q: %w", opDecode, s, ErrHeader)
	case '&':
		return nil, fmt.Errorf("%s: digraph6 %q: %w", opDecode, s, ErrHeader)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < bias || s[i] > maxByte {
			return nil, fmt.Errorf("%s: byte %d (0x%02x) in %q: %w", opDecode, i, s[i], s, ErrInvalidChar)
		}
	}

	n, body, err := decodeOrder(s)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%s: %w", opDecode, core.ErrInvalidOrder)
	}

	bits := n * (n - 1) / 2
	if want := (bits + 5) / 6; len(body) != want {
		return nil, fmt.Errorf("%s: n=%d needs %d body bytes, got %d: %w", opDecode, n, want, len(body), ErrLength)
	}

	var edges []core.Edge
	k := 0
	for v := 1; v < n; v++ {
		for u := 0; u < v; u++ {
			if bitAt(body, k) {
				edges = append(edges, core.Edge{U: u, V: v})
			}
			k++
		}
	}
	for ; k < len(body)*6; k++ {
		if bitAt(body, k) {
			return nil, fmt.Errorf("%s: %q: %w", opDecode, s, ErrPadding)
		}
	}

	return core.New(n, edges)
}

func decodeOrder(s string) (int, string, error) {
	if s[0] != longMarker {
		return int(s[0] - bias), s[1:], nil
	}
	if len(s) >= 2 && s[1] == longMarker {
		return 0, "", fmt.Errorf("%s: 36-bit order: %w", opDecode, ErrHeader)
	}
	if len(s) < 4 {
		return 0, "", fmt.Errorf("%s: truncated order: %w", opDecode, ErrLength)
	}
	n := int(s[1]-bias)<<12 | int(s[2]-bias)<<6 | int(s[3]-bias)

	return n, s[4:], nil
}

func bitAt(body string, k int) bool {
	b := body[k/6] - bias

	return b&(1<<(5-uint(k%6))) != 0
}

// Encode returns the graph6 string of g. It panics only if g has more than
// 258047 vertices; use EncodeChecked to receive an error instead.
func Encode(g *core.Graph) string {
	s, err := EncodeChecked(g)
	if err != nil {
		panic(err)
	}

	return s
}

// EncodeChecked is Encode returning ErrHeader for orders graph6 short/long
// forms cannot express.
func EncodeChecked(g *core.Graph) (string, error) {
	n := g.N()
	var sb strings.Builder
	switch {
	case n <= maxShort:
		sb.WriteByte(byte(n + bias))
	case n <= maxLong:
		sb.WriteByte(longMarker)
		sb.WriteByte(byte((n>>12)&0x3f + bias))
		sb.WriteByte(byte((n>>6)&0x3f + bias))
		sb.WriteByte(byte(n&0x3f + bias))
	default:
		return "", fmt.Errorf("%s: n=%d: %w", opEncode, n, ErrHeader)
	}

	var (
		cur  byte
		used int
	)
	for v := 1; v < n; v++ {
		for u := 0; u < v; u++ {
			cur <<= 1
			if g.HasEdge(u, v) {
				cur |= 1
			}
			used++
			if used == 6 {
				sb.WriteByte(cur + bias)
				cur, used = 0, 0
			}
		}
	}
	if used > 0 {
		sb.WriteByte(cur<<(6-uint(used)) + bias)
	}

	return sb.String(), nil
}
