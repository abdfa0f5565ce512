package oracle

import (
	"math/big"

	"github.com/mit-dci/dlc-oracle/core/math/arith"
	"github.com/mit-dci/dlc-oracle/core/math/curve"
)

// ComputeSignaturePubKey computes, from public data alone, the curve point
// the oracle's eventual attestation scalar must map to under the generator:
//
//	P = R − e·A = (k − e·a)·G = s·G
//
// where A is the oracle's public key, R the announced R-point for the
// outcome, and e the same challenge ComputeSignature derives. A third party
// can therefore commit spending conditions to P before s exists; the
// conditions resolve exactly when the oracle publishes s.
//
// Both keys must decode to valid on-curve points (ErrInvalidPoint). An
// ErrArithmeticDegenerate result mirrors the signer-side rejection: a zero
// challenge, or a P at infinity, corresponds to a signature the signer
// would have refused to produce.
func ComputeSignaturePubKey(oraclePubKey, noncePubKey [curve.PointSize]byte, message [MessageSize]byte) ([curve.PointSize]byte, error) {
	var out [curve.PointSize]byte

	ax, ay, err := curve.ParsePoint(oraclePubKey[:])
	if err != nil {
		return out, ErrInvalidPoint
	}
	rx, ry, err := curve.ParsePoint(noncePubKey[:])
	if err != nil {
		return out, ErrInvalidPoint
	}

	var rxBuf [MessageSize]byte
	rx.FillBytes(rxBuf[:])

	e := challenge(message, rxBuf)
	if e.Sign() == 0 {
		return out, ErrArithmeticDegenerate
	}

	// Q = e·A, then negate its y-coordinate so the addition below is a
	// subtraction: P = R + (−Q).
	qx, qy := curve.ScalarMult(ax, ay, e)
	negQy := arith.EuclideanMod(new(big.Int).Neg(qy), curve.P())

	px, py := curve.Add(rx, ry, qx, negQy)
	if px.Sign() == 0 && py.Sign() == 0 {
		// R == e·A, i.e. the would-be signature scalar is zero.
		return out, ErrArithmeticDegenerate
	}

	return curve.SerializePoint(px, py), nil
}
