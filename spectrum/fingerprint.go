// SPDX-License-Identifier: MIT

package spectrum

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/leotrs/smol/matrix"
)

// domainPrefix separates fingerprint namespaces; the kind tag is appended so
// identical text under two kinds never collides.
const domainPrefix = "smol/spectrum/v1/"

// Fingerprint is the truncated hex digest of a canonical spectrum. Two
// spectra of the same kind are treated as equal iff their fingerprints match.
type Fingerprint string

// String implements fmt.Stringer.
func (f Fingerprint) String() string { return string(f) }

// Hash returns the fingerprint of s under the given options.
func Hash(s Spectrum, opts ...Option) Fingerprint {
	o := gatherOptions(opts)
	text := Serialize(Canonical(s, o.Precision), s.Complex, o.Precision)

	return hashText(s.Kind, text, o.HashLength)
}

// hashText computes SHA-256(domain || 0x00 || text), hex encoded and
// truncated to length characters.
func hashText(kind matrix.Kind, text string, length int) Fingerprint {
	h := sha256.New()
	h.Write([]byte(domainPrefix + kind.String()))
	h.Write([]byte{0x00})
	h.Write([]byte(text))
	sum := hex.EncodeToString(h.Sum(nil))

	return Fingerprint(sum[:length])
}
