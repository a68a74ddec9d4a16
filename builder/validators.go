// Package builder provides validation helpers to enforce
// parameter contracts in the family constructors.
//
// Each function returns a sentinel wrapped via builderErrorf
// when its precondition is violated.
package builder

// validateMin ensures that got ≥ min.
func validateMin(method, param string, got, min int) error {
	if got < min {
		return builderErrorf(method, ErrTooFewVertices, "%s=%d < min=%d", param, got, min)
	}

	return nil
}

// validateProbability enforces p ∈ [MinProbability, MaxProbability].
func validateProbability(method string, p float64) error {
	if p < MinProbability || p > MaxProbability {
		return builderErrorf(method, ErrInvalidProbability, "p=%.6f not in [%.1f,%.1f]", p, MinProbability, MaxProbability)
	}

	return nil
}
