package curve

import (
	"errors"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// ScalarSize is the byte length of a big-endian encoded scalar.
	ScalarSize = 32

	// PointSize is the byte length of a compressed point encoding:
	// one parity byte followed by the 32-byte x-coordinate.
	PointSize = 33
)

// N returns the order of the secp256k1 group.
func N() *big.Int {
	return secp256k1.S256().N
}

// P returns the prime of the underlying field.
func P() *big.Int {
	return secp256k1.S256().P
}

// ScalarBaseMult computes k·G in affine coordinates.
func ScalarBaseMult(k *big.Int) (x, y *big.Int) {
	return secp256k1.S256().ScalarBaseMult(k.Bytes())
}

// ScalarMult computes k·(px, py) in affine coordinates.
func ScalarMult(px, py, k *big.Int) (x, y *big.Int) {
	return secp256k1.S256().ScalarMult(px, py, k.Bytes())
}

// Add computes (x1, y1) + (x2, y2). The point at infinity is returned
// as (0, 0), following the crypto/elliptic convention.
func Add(x1, y1, x2, y2 *big.Int) (x, y *big.Int) {
	return secp256k1.S256().Add(x1, y1, x2, y2)
}

// ParsePoint decodes a 33-byte compressed point and returns its affine
// coordinates. It rejects any encoding that does not describe a point on
// the curve.
func ParsePoint(encoded []byte) (x, y *big.Int, err error) {
	if len(encoded) != PointSize {
		return nil, nil, errors.New("curve: invalid length for compressed point encoding")
	}
	pub, err := secp256k1.ParsePubKey(encoded)
	if err != nil {
		return nil, nil, err
	}

	var j secp256k1.JacobianPoint
	pub.AsJacobian(&j)
	x = new(big.Int).SetBytes(j.X.Bytes()[:])
	y = new(big.Int).SetBytes(j.Y.Bytes()[:])
	return x, y, nil
}

// SerializePoint returns the compressed encoding of an affine point.
func SerializePoint(x, y *big.Int) [PointSize]byte {
	var out [PointSize]byte
	out[0] = 0x02 | byte(y.Bit(0))
	x.FillBytes(out[1:])
	return out
}

// SerializeScalar returns the 32-byte big-endian encoding of s,
// zero-padded on the left.
func SerializeScalar(s *big.Int) [ScalarSize]byte {
	var out [ScalarSize]byte
	s.FillBytes(out[:])
	return out
}
