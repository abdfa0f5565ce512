// Package oracle implements the single-signer Schnorr-variant attestation
// scheme used by Discreet Log Contract oracles on secp256k1.
//
// An oracle holds a long-lived identity key a with public key A = a·G. For
// every outcome it will attest, it announces a fresh one-time signing key's
// public R-point R = k·G ahead of time. Once the outcome is known, it
// publishes the single scalar s = k − e·a mod n, where e binds the message
// and R. Unlike classic Schnorr, only s is published; R is already known.
//
// The scheme's distinguishing property is that anyone holding only (A, R)
// and the agreed message can compute s·G before s exists, via
// ComputeSignaturePubKey. That point can be committed to in spending
// conditions that only become satisfiable when the oracle reveals s.
//
// A one-time signing key must be used for at most one ComputeSignature call,
// ever. Signing two distinct messages with the same k reveals the oracle's
// private key (see RecoverFromNonceReuse). This package keeps no state and
// cannot enforce that discipline; callers own it.
package oracle

import (
	"errors"
	"io"
	"math/big"

	"github.com/mit-dci/dlc-oracle/core/math/arith"
	"github.com/mit-dci/dlc-oracle/core/math/curve"
	"github.com/mit-dci/dlc-oracle/core/math/sample"
)

// MessageSize is the byte length of a signable message.
const MessageSize = 32

var (
	// ErrInvalidScalar is returned when a private scalar is zero or not
	// below the group order.
	ErrInvalidScalar = errors.New("oracle: scalar is zero or out of range")

	// ErrInvalidPoint is returned when a public key is malformed or does
	// not describe a point on the curve.
	ErrInvalidPoint = errors.New("oracle: malformed or off-curve public key")

	// ErrValueOutOfRange is returned when an outcome value cannot be
	// encoded into a 32-byte message.
	ErrValueOutOfRange = errors.New("oracle: outcome value does not fit in 256 bits")

	// ErrArithmeticDegenerate is returned when the challenge or the
	// signature scalar reduces to zero. Producing output in either case
	// would yield a signature that cannot bind anything; callers should
	// redraw the one-time key and retry.
	ErrArithmeticDegenerate = errors.New("oracle: degenerate zero challenge or signature scalar")
)

// GenerateOneTimeSigningKey draws a fresh nonce scalar from rand, defaulting
// to crypto/rand when rand is nil. The result is not range-checked here;
// callers must reject an all-zero or >= n draw as ErrInvalidScalar before
// use, and must never feed the same key into two ComputeSignature calls.
func GenerateOneTimeSigningKey(rand io.Reader) ([curve.ScalarSize]byte, error) {
	return sample.Scalar(rand)
}

// PublicKeyFromPrivateKey computes priv·G and returns its compressed
// encoding. It fails with ErrInvalidScalar when priv is zero or not below
// the group order.
func PublicKeyFromPrivateKey(priv [curve.ScalarSize]byte) ([curve.PointSize]byte, error) {
	a := new(big.Int).SetBytes(priv[:])
	if !arith.InRange(a, curve.N()) {
		return [curve.PointSize]byte{}, ErrInvalidScalar
	}
	x, y := curve.ScalarBaseMult(a)
	return curve.SerializePoint(x, y), nil
}

// GenerateNumericMessage encodes a non-negative outcome value as a 32-byte
// big-endian message, zero-padded on the left. It fails with
// ErrValueOutOfRange when the value is negative or needs more than 256 bits.
func GenerateNumericMessage(value *big.Int) ([MessageSize]byte, error) {
	var msg [MessageSize]byte
	if value == nil || value.Sign() < 0 || value.BitLen() > 256 {
		return msg, ErrValueOutOfRange
	}
	value.FillBytes(msg[:])
	return msg, nil
}
