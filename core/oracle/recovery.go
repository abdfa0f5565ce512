package oracle

import (
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/mit-dci/dlc-oracle/core/math/arith"
	"github.com/mit-dci/dlc-oracle/core/math/curve"
)

// RecoverFromNonceReuse recovers an oracle's identity key and the reused
// one-time key from two attestations made with the same R-point over
// distinct messages:
//
//	a = (s2 − s1) · (e1 − e2)⁻¹ mod n
//	k = s1 + e1·a mod n
//
// This is the attack a reused one-time signing key enables, exposed as a
// diagnostic so operators and tests can demonstrate the break rather than
// take it on faith. It fails with ErrArithmeticDegenerate when the two
// challenges coincide (same message twice), since nothing leaks in that
// case.
func RecoverFromNonceReuse(sig1, sig2 [curve.ScalarSize]byte, msg1, msg2 [MessageSize]byte, noncePubKey [curve.PointSize]byte) (priv, nonce [curve.ScalarSize]byte, err error) {
	n := curve.N()

	s1Big := new(big.Int).SetBytes(sig1[:])
	s2Big := new(big.Int).SetBytes(sig2[:])
	if !arith.InRange(s1Big, n) || !arith.InRange(s2Big, n) {
		err = ErrInvalidScalar
		return
	}
	if _, _, perr := curve.ParsePoint(noncePubKey[:]); perr != nil {
		err = ErrInvalidPoint
		return
	}

	var rx [MessageSize]byte
	copy(rx[:], noncePubKey[1:])

	e1 := challenge(msg1, rx)
	e2 := challenge(msg2, rx)
	if e1.Cmp(e2) == 0 {
		err = ErrArithmeticDegenerate
		return
	}

	nMod := saferith.ModulusFromBytes(n.Bytes())
	s1 := new(saferith.Nat).SetBytes(sig1[:])
	s2 := new(saferith.Nat).SetBytes(sig2[:])
	e1Nat := new(saferith.Nat).SetBig(e1, e1.BitLen())
	e2Nat := new(saferith.Nat).SetBig(e2, e2.BitLen())

	// a = (s2 − s1) · (e1 − e2)⁻¹ (mod n)
	num := new(saferith.Nat).ModSub(s2, s1, nMod)
	den := new(saferith.Nat).ModSub(e1Nat, e2Nat, nMod)
	denInv := new(saferith.Nat).ModInverse(den, nMod)
	aNat := new(saferith.Nat).ModMul(num, denInv, nMod)

	// k = s1 + e1·a (mod n)
	kNat := new(saferith.Nat).ModMul(e1Nat, aNat, nMod)
	kNat.ModAdd(kNat, s1, nMod)

	aNat.FillBytes(priv[:])
	kNat.FillBytes(nonce[:])
	return priv, nonce, nil
}
