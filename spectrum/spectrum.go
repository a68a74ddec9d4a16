// SPDX-License-Identifier: MIT

package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/leotrs/smol/matrix"
)

var (
	// ErrNotApplicable indicates the representation is undefined for the graph.
	ErrNotApplicable = errors.New("spectrum: representation not applicable")

	// ErrNoConvergence indicates the eigensolver failed or returned non-finite values.
	ErrNoConvergence = errors.New("spectrum: eigenvalue computation did not converge")
)

const (
	opEigenvalues = "Eigenvalues"
	opTracePowers = "TracePowers"
	opCompute     = "Compute"
)

// Spectrum is the eigenvalue multiset of one representation, in solver order.
// For symmetric kinds every value has a zero imaginary part and Complex is false.
type Spectrum struct {
	Kind    matrix.Kind
	Values  []complex128
	Complex bool
}

// Len returns the number of eigenvalues (the matrix order).
func (s Spectrum) Len() int { return len(s.Values) }

// Real returns the real parts.
func (s Spectrum) Real() []float64 {
	out := make([]float64, len(s.Values))
	for i, v := range s.Values {
		out[i] = real(v)
	}

	return out
}

// Eigenvalues computes the spectrum of rep.
//
// Symmetric kinds go through mat.EigenSym, which is both faster and more
// accurate than a general solver on symmetric input; nb/nbl go through
// mat.Eigen. A 0×0 representation yields an empty spectrum.
func Eigenvalues(rep matrix.Representation) (Spectrum, error) {
	if !rep.Applicable || rep.M == nil {
		return Spectrum{}, fmt.Errorf("%s: %v: %w", opEigenvalues, rep.Kind, ErrNotApplicable)
	}

	s := Spectrum{Kind: rep.Kind, Complex: !rep.Kind.Symmetric()}
	n := rep.M.Rows()
	if n == 0 {
		s.Values = []complex128{}
		return s, nil
	}

	if rep.Kind.Symmetric() {
		var es mat.EigenSym
		if ok := es.Factorize(mat.NewSymDense(n, rep.M.Raw()), false); !ok {
			return Spectrum{}, fmt.Errorf("%s: %v: %w", opEigenvalues, rep.Kind, ErrNoConvergence)
		}
		vals := es.Values(nil)
		s.Values = make([]complex128, len(vals))
		for i, v := range vals {
			s.Values[i] = complex(v, 0)
		}
	} else {
		var eg mat.Eigen
		if ok := eg.Factorize(mat.NewDense(n, n, rep.M.Raw()), mat.EigenNone); !ok {
			return Spectrum{}, fmt.Errorf("%s: %v: %w", opEigenvalues, rep.Kind, ErrNoConvergence)
		}
		s.Values = eg.Values(nil)
	}

	for _, v := range s.Values {
		if cmplx.IsNaN(v) || math.IsInf(real(v), 0) || math.IsInf(imag(v), 0) {
			return Spectrum{}, fmt.Errorf("%s: %v: non-finite eigenvalue: %w", opEigenvalues, rep.Kind, ErrNoConvergence)
		}
	}

	return s, nil
}

// TracePowers returns tr(M^k) for k = 1..kmax by repeated multiplication.
// kmax < 1 yields an empty slice.
func TracePowers(m *matrix.Dense, kmax int) ([]float64, error) {
	if m == nil {
		return nil, fmt.Errorf("%s: %w", opTracePowers, matrix.ErrNilMatrix)
	}
	if m.Rows() != m.Cols() {
		return nil, fmt.Errorf("%s: %w", opTracePowers, matrix.ErrNonSquare)
	}

	out := make([]float64, 0, max(kmax, 0))
	p := m
	for k := 1; k <= kmax; k++ {
		tr, err := p.Trace()
		if err != nil {
			return nil, fmt.Errorf("%s: k=%d: %w", opTracePowers, k, err)
		}
		out = append(out, tr)
		if k == kmax {
			break
		}
		if p, err = matrix.Mul(p, m); err != nil {
			return nil, fmt.Errorf("%s: k=%d: %w", opTracePowers, k, err)
		}
	}

	return out, nil
}
