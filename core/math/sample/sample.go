package sample

import (
	cryptorand "crypto/rand"
	"crypto/sha256"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
)

const (
	// ScalarSize is the byte length of a sampled scalar.
	ScalarSize = 32
)

// Scalar draws 32 bytes from rand, defaulting to crypto/rand when rand is
// nil. The result is NOT reduced or range-checked: a caller must treat an
// all-zero or >= n result as an invalid scalar and redraw. The probability
// of either is negligible but it is checked, not assumed away.
func Scalar(rand io.Reader) ([ScalarSize]byte, error) {
	var k [ScalarSize]byte

	if rand == nil {
		rand = cryptorand.Reader
	}
	if _, err := io.ReadFull(rand, k[:]); err != nil {
		return k, errors.WithMessage(err, "sample: failed to read random scalar")
	}
	return k, nil
}

// DerivedScalar deterministically expands a master seed and a context label
// into a 32-byte scalar with HKDF-SHA256. An oracle that announces many
// R-points can rebuild each one-time signing key from the seed and the
// announcement context instead of persisting every nonce individually.
// The same caller-side range validation contract as Scalar applies.
func DerivedScalar(master, context []byte) ([ScalarSize]byte, error) {
	var k [ScalarSize]byte

	if len(master) == 0 {
		return k, errors.New("sample: empty master seed")
	}

	r := hkdf.New(sha256.New, master, nil, context)
	if _, err := io.ReadFull(r, k[:]); err != nil {
		return k, errors.WithMessage(err, "sample: hkdf expand failed")
	}
	return k, nil
}
