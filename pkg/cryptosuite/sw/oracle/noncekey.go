package oracle

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/mit-dci/dlc-oracle/core/hash"
	"github.com/mit-dci/dlc-oracle/core/math/curve"
	core_oracle "github.com/mit-dci/dlc-oracle/core/oracle"
)

type NonceKeyImpl struct {
	// priv holds the one-time scalar, nil once only the R-point is kept
	priv []byte

	// pub is the compressed R-point published in the announcement
	pub [curve.PointSize]byte

	// used flips when an attestation consumes the key and never flips back
	used bool
}

type rawNonceKey struct {
	Pub  []byte
	Priv []byte
	Used bool
}

func NewNonceKey(priv []byte, pub [curve.PointSize]byte, used bool) *NonceKeyImpl {
	return &NonceKeyImpl{
		priv: priv,
		pub:  pub,
		used: used,
	}
}

// nonceFromScalar builds a fresh unused nonce key from a one-time scalar.
func nonceFromScalar(priv [curve.ScalarSize]byte) (*NonceKeyImpl, error) {
	pub, err := core_oracle.PublicKeyFromPrivateKey(priv)
	if err != nil {
		return nil, err
	}
	p := make([]byte, curve.ScalarSize)
	copy(p, priv[:])
	return NewNonceKey(p, pub, false), nil
}

func (key *NonceKeyImpl) Bytes() ([]byte, error) {
	raw := &rawNonceKey{
		Pub:  key.pub[:],
		Used: key.used,
	}
	if key.priv != nil {
		raw.Priv = key.priv
	}
	return cbor.Marshal(raw)
}

func (key *NonceKeyImpl) SKI() []byte {
	h := hash.New()
	if err := h.WriteAny(key.pub[:]); err != nil {
		return nil
	}
	return h.Sum()
}

func (key *NonceKeyImpl) Used() bool {
	return key.used
}

func (key *NonceKeyImpl) PublicKeyBytes() ([curve.PointSize]byte, error) {
	return key.pub, nil
}

func (key *NonceKeyImpl) privateScalar() ([curve.ScalarSize]byte, error) {
	var s [curve.ScalarSize]byte
	if key.priv == nil {
		return s, ErrInvalidKey
	}
	copy(s[:], key.priv)
	return s, nil
}

func nonceFromBytes(data []byte) (*NonceKeyImpl, error) {
	raw := &rawNonceKey{}
	if err := cbor.Unmarshal(data, raw); err != nil {
		return nil, err
	}

	if len(raw.Pub) != curve.PointSize {
		return nil, ErrInvalidKey
	}
	var pub [curve.PointSize]byte
	copy(pub[:], raw.Pub)

	var priv []byte
	if len(raw.Priv) > 0 {
		if len(raw.Priv) != curve.ScalarSize {
			return nil, ErrInvalidKey
		}
		priv = make([]byte, curve.ScalarSize)
		copy(priv, raw.Priv)
	}

	return NewNonceKey(priv, pub, raw.Used), nil
}
