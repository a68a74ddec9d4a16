// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Safety at the public surface: At/Set return errors instead of panicking.
//   - Determinism: fixed loop orders, no map iteration.
//
// The 0×0 matrix is legal: it is the non-backtracking representation of an
// edgeless graph.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); Mul: O(r*k*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"  // method tag used in error wrappers
	ctxSet = "Set" // method tag used in error wrappers
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// Dense is a concrete row-major matrix of float64.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c (offset = i*c + j).
type Dense struct {
	r, c int
	data []float64
}

// NewDense allocates an r×c zero matrix. Negative dimensions yield ErrBadShape.
func NewDense(rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, matrixErrorf(opNewDense, fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape))
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// newSquare allocates an n×n zero matrix for internal builders (n >= 0).
func newSquare(n int) *Dense {
	return &Dense{r: n, c: n, data: make([]float64, n*n)}
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf(ctxAt, row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns v at (row, col).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf(ctxSet, row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// at/set are the unchecked fast paths used by builders after shape validation.
func (m *Dense) at(i, j int) float64     { return m.data[i*m.c+j] }
func (m *Dense) set(i, j int, v float64) { m.data[i*m.c+j] = v }

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// Raw returns a row-major copy of the backing buffer, suitable for
// mat.NewDense / mat.NewSymDense.
func (m *Dense) Raw() []float64 {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return cp
}

// Row returns a copy of row i, or nil when i is out of range.
func (m *Dense) Row(i int) []float64 {
	if i < 0 || i >= m.r {
		return nil
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out
}

// Mul returns a·b.
// Stage 1 (Validate): non-nil operands, a.Cols == b.Rows.
// Stage 2 (Execute): i→k→j loop order; zero a[i,k] entries are skipped, which
// matters for the sparse non-backtracking matrices.
func Mul(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opMul, ErrNilMatrix)
	}
	if a.c != b.r {
		return nil, matrixErrorf(opMul, fmt.Errorf("%dx%d · %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch))
	}

	out := &Dense{r: a.r, c: b.c, data: make([]float64, a.r*b.c)}
	var (
		i, k, j int
		aik     float64
	)
	for i = 0; i < a.r; i++ {
		rowOut := out.data[i*b.c : (i+1)*b.c]
		for k = 0; k < a.c; k++ {
			aik = a.data[i*a.c+k]
			if aik == 0 {
				continue
			}
			rowB := b.data[k*b.c : (k+1)*b.c]
			for j = 0; j < b.c; j++ {
				rowOut[j] += aik * rowB[j]
			}
		}
	}

	return out, nil
}

// Trace returns the sum of the diagonal. Non-square input yields ErrNonSquare.
func (m *Dense) Trace() (float64, error) {
	if m.r != m.c {
		return 0, matrixErrorf(opTrace, ErrNonSquare)
	}
	var s float64
	for i := 0; i < m.r; i++ {
		s += m.data[i*m.c+i]
	}

	return s, nil
}

// IsSymmetric reports whether m is square and |m[i,j]-m[j,i]| <= eps for all i<j.
func (m *Dense) IsSymmetric(eps float64) bool {
	if m.r != m.c {
		return false
	}
	for i := 0; i < m.r; i++ {
		for j := i + 1; j < m.c; j++ {
			if math.Abs(m.at(i, j)-m.at(j, i)) > eps {
				return false
			}
		}
	}

	return true
}

// RowSums returns the sum of every row.
func (m *Dense) RowSums() []float64 {
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out[i] += m.data[i*m.c+j]
		}
	}

	return out
}

// String implements fmt.Stringer for debugging.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
