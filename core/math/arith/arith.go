package arith

import "math/big"

// EuclideanMod returns the unique representative of a mod m in [0, m).
// It accepts any sign of a; m must be positive. Generic big-integer remainder
// operations can carry the sign of the dividend, so every scalar and
// coordinate flowing into curve arithmetic is reduced through here.
func EuclideanMod(a, m *big.Int) *big.Int {
	r := new(big.Int).Mod(a, m)
	if r.Sign() < 0 {
		r.Add(r, m)
	}
	return r
}

// InRange reports whether s lies in [1, n), the valid range for a private
// scalar on a curve of order n.
func InRange(s, n *big.Int) bool {
	return s.Sign() > 0 && s.Cmp(n) < 0
}
