package oracle

import (
	"crypto/sha256"
	"math/big"

	"github.com/mit-dci/dlc-oracle/core/math/arith"
	"github.com/mit-dci/dlc-oracle/core/math/curve"
)

// challenge computes e = SHA256(message ‖ rx) reduced into [0, n), where rx
// is the 32-byte big-endian x-coordinate of the announced R-point. The byte
// layout here is load-bearing: ComputeSignaturePubKey recomputes the same
// value from public data, and any divergence breaks the s·G identity.
func challenge(message, rx [MessageSize]byte) *big.Int {
	h := sha256.New()
	h.Write(message[:])
	h.Write(rx[:])
	e := new(big.Int).SetBytes(h.Sum(nil))
	return arith.EuclideanMod(e, curve.N())
}

// signatureScalar computes s = k − e·a mod n and rejects the degenerate
// zero cases that would otherwise leak through as a useless signature.
func signatureScalar(k, a, e *big.Int) (*big.Int, error) {
	if e.Sign() == 0 {
		return nil, ErrArithmeticDegenerate
	}
	s := new(big.Int).Mul(e, a)
	s.Sub(k, s)
	s = arith.EuclideanMod(s, curve.N())
	if s.Sign() == 0 {
		return nil, ErrArithmeticDegenerate
	}
	return s, nil
}

// ComputeSignature produces the attestation scalar s = k − e·a mod n for a
// message, where a is the oracle's identity key and k the one-time signing
// key whose R-point was announced for this outcome. The output is the
// 32-byte big-endian encoding of s, zero-padded on the left.
//
// The computation is deterministic and performs no I/O. Scalar arithmetic
// runs in variable time; do not run it on hardware shared with an adversary.
//
// oneTimeKey must never be used for a second message: two signatures under
// the same k reveal both a and k (see RecoverFromNonceReuse).
func ComputeSignature(privKey, oneTimeKey [curve.ScalarSize]byte, message [MessageSize]byte) ([curve.ScalarSize]byte, error) {
	var sig [curve.ScalarSize]byte

	n := curve.N()
	a := new(big.Int).SetBytes(privKey[:])
	k := new(big.Int).SetBytes(oneTimeKey[:])
	if !arith.InRange(a, n) || !arith.InRange(k, n) {
		return sig, ErrInvalidScalar
	}

	// Re-derive R = k·G; only its x-coordinate enters the challenge.
	rx, _ := curve.ScalarBaseMult(k)
	var rxBuf [MessageSize]byte
	rx.FillBytes(rxBuf[:])

	e := challenge(message, rxBuf)
	s, err := signatureScalar(k, a, e)
	if err != nil {
		return sig, err
	}

	return curve.SerializeScalar(s), nil
}
