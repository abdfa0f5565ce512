package oracle

import (
	"errors"
	"math/big"

	"github.com/fxamacker/cbor/v2"
	"github.com/mit-dci/dlc-oracle/core/hash"
	"github.com/mit-dci/dlc-oracle/core/math/arith"
	"github.com/mit-dci/dlc-oracle/core/math/curve"
	core_oracle "github.com/mit-dci/dlc-oracle/core/oracle"
	comm_oracle "github.com/mit-dci/dlc-oracle/pkg/common/cryptosuite/oracle"
)

var (
	ErrInvalidKey = errors.New("oracle: invalid key")
)

type OracleKeyImpl struct {
	// priv holds the identity scalar, nil for public-only keys
	priv []byte

	// pub is the compressed public point
	pub [curve.PointSize]byte
}

type rawOracleKey struct {
	Pub  []byte
	Priv []byte
}

func NewOracleKey(priv []byte, pub [curve.PointSize]byte) *OracleKeyImpl {
	return &OracleKeyImpl{
		priv: priv,
		pub:  pub,
	}
}

// keyFromScalar builds a full key pair from an identity scalar.
func keyFromScalar(priv [curve.ScalarSize]byte) (*OracleKeyImpl, error) {
	pub, err := core_oracle.PublicKeyFromPrivateKey(priv)
	if err != nil {
		return nil, err
	}
	p := make([]byte, curve.ScalarSize)
	copy(p, priv[:])
	return NewOracleKey(p, pub), nil
}

func (key *OracleKeyImpl) Bytes() ([]byte, error) {
	raw := &rawOracleKey{
		Pub: key.pub[:],
	}
	if key.priv != nil {
		raw.Priv = key.priv
	}
	return cbor.Marshal(raw)
}

func (key *OracleKeyImpl) SKI() []byte {
	h := hash.New()
	if err := h.WriteAny(key.pub[:]); err != nil {
		return nil
	}
	return h.Sum()
}

func (key *OracleKeyImpl) Private() bool {
	return key.priv != nil
}

func (key *OracleKeyImpl) PublicKey() comm_oracle.OracleKey {
	return NewOracleKey(nil, key.pub)
}

func (key *OracleKeyImpl) PublicKeyBytes() ([curve.PointSize]byte, error) {
	return key.pub, nil
}

func (key *OracleKeyImpl) privateScalar() ([curve.ScalarSize]byte, error) {
	var s [curve.ScalarSize]byte
	if key.priv == nil {
		return s, ErrInvalidKey
	}
	copy(s[:], key.priv)
	return s, nil
}

func oracleKeyFromBytes(data []byte) (*OracleKeyImpl, error) {
	raw := &rawOracleKey{}
	if err := cbor.Unmarshal(data, raw); err != nil {
		return nil, err
	}

	if len(raw.Pub) != curve.PointSize {
		return nil, ErrInvalidKey
	}
	var pub [curve.PointSize]byte
	copy(pub[:], raw.Pub)

	if len(raw.Priv) == 0 {
		return NewOracleKey(nil, pub), nil
	}
	if len(raw.Priv) != curve.ScalarSize {
		return nil, ErrInvalidKey
	}
	if !arith.InRange(new(big.Int).SetBytes(raw.Priv), curve.N()) {
		return nil, core_oracle.ErrInvalidScalar
	}
	priv := make([]byte, curve.ScalarSize)
	copy(priv, raw.Priv)

	return NewOracleKey(priv, pub), nil
}
