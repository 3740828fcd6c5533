package order

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"orderregistry/internal/pkg/errs"
)

// ErrFingerprintIsRequired is returned when restoring an order whose stored
// fingerprint is empty.
var ErrFingerprintIsRequired = errs.NewValueIsRequiredError("fingerprint")

// Fingerprint is a derived digest summarizing order content, used for soft
// duplicate detection. Two orders share a fingerprint only if they have the
// same external id and the same line items in the same positions.
//
// The digest is positional, not a content-set hash: reordering the items of an
// otherwise identical submission yields a different fingerprint. It is adequate
// for near-identical-resubmission detection, nothing more.
type Fingerprint string

// ComputeFingerprint derives the fingerprint for the given external id and
// line items as supplied. The input is canonicalized as
// "externalID|name:price:quantity|..." and digested with SHA-256.
func ComputeFingerprint(externalID string, products []*Product) Fingerprint {
	var b strings.Builder
	b.WriteString(externalID)
	for _, p := range products {
		b.WriteByte('|')
		b.WriteString(p.Name())
		b.WriteByte(':')
		b.WriteString(p.Price().Amount().String())
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(p.Quantity()))
	}

	sum := sha256.Sum256([]byte(b.String()))
	return Fingerprint(hex.EncodeToString(sum[:]))
}

// FingerprintFromString restores a fingerprint loaded from persistence.
func FingerprintFromString(s string) (Fingerprint, error) {
	if s == "" {
		return "", ErrFingerprintIsRequired
	}
	return Fingerprint(s), nil
}

// String returns the hex-encoded digest.
func (f Fingerprint) String() string {
	return string(f)
}

// IsEqual reports whether two fingerprints are identical.
func (f Fingerprint) IsEqual(other Fingerprint) bool {
	return f == other
}
