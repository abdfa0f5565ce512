package oracle

import (
	"encoding/hex"
	"math/big"
	"sync"

	"github.com/mit-dci/dlc-oracle/core/math/arith"
	"github.com/mit-dci/dlc-oracle/core/math/curve"
	"github.com/mit-dci/dlc-oracle/core/math/sample"
	core_oracle "github.com/mit-dci/dlc-oracle/core/oracle"
	comm_oracle "github.com/mit-dci/dlc-oracle/pkg/common/cryptosuite/oracle"
	"github.com/mit-dci/dlc-oracle/pkg/common/keyopts"
	"github.com/mit-dci/dlc-oracle/pkg/common/keystore"
	"github.com/pkg/errors"
)

var (
	ErrNonceUsed = errors.New("oracle: nonce already consumed by an attestation")
)

type NonceManagerImpl struct {
	// lock serializes the read-mark-write cycle of consume so two
	// attestations can never both observe an unused nonce.
	lock sync.Mutex

	keystore keystore.Keystore
}

func NewNonceManager(store keystore.Keystore) *NonceManagerImpl {
	return &NonceManagerImpl{
		keystore: store,
	}
}

func (mgr *NonceManagerImpl) NewNonce(opts keyopts.Options) (comm_oracle.NonceKey, error) {
	var priv [curve.ScalarSize]byte
	for {
		k, err := sample.Scalar(nil)
		if err != nil {
			return nil, err
		}
		if arith.InRange(new(big.Int).SetBytes(k[:]), curve.N()) {
			priv = k
			break
		}
	}

	key, err := nonceFromScalar(priv)
	if err != nil {
		return nil, err
	}

	return mgr.importNonce(key, opts)
}

func (mgr *NonceManagerImpl) DeriveNonce(master, context []byte, opts keyopts.Options) (comm_oracle.NonceKey, error) {
	priv, err := sample.DerivedScalar(master, context)
	if err != nil {
		return nil, err
	}

	// a derived scalar cannot be redrawn, so an out-of-range draw is an
	// error for this context rather than a retry
	if !arith.InRange(new(big.Int).SetBytes(priv[:]), curve.N()) {
		return nil, core_oracle.ErrInvalidScalar
	}

	key, err := nonceFromScalar(priv)
	if err != nil {
		return nil, err
	}

	return mgr.importNonce(key, opts)
}

func (mgr *NonceManagerImpl) GetNonce(opts keyopts.Options) (comm_oracle.NonceKey, error) {
	decoded, err := mgr.keystore.Get(opts)
	if err != nil {
		return nil, err
	}
	return nonceFromBytes(decoded)
}

func (mgr *NonceManagerImpl) importNonce(key *NonceKeyImpl, opts keyopts.Options) (comm_oracle.NonceKey, error) {
	kb, err := key.Bytes()
	if err != nil {
		return nil, err
	}

	keyID := hex.EncodeToString(key.SKI())
	if err := mgr.keystore.Import(keyID, kb, opts); err != nil {
		return nil, err
	}

	return key, nil
}

// consume marks the nonce under opts as used and hands back its one-time
// scalar. The mark is written through the keystore before the scalar is
// returned, and it stays written even if the signing that follows fails:
// a nonce that touched a signature computation is never offered again.
func (mgr *NonceManagerImpl) consume(opts keyopts.Options) ([curve.ScalarSize]byte, error) {
	mgr.lock.Lock()
	defer mgr.lock.Unlock()

	var zero [curve.ScalarSize]byte

	decoded, err := mgr.keystore.Get(opts)
	if err != nil {
		return zero, errors.WithMessage(err, "oracle: failed to get nonce from keystore")
	}

	key, err := nonceFromBytes(decoded)
	if err != nil {
		return zero, err
	}
	if key.used {
		return zero, ErrNonceUsed
	}

	priv, err := key.privateScalar()
	if err != nil {
		return zero, err
	}

	key.used = true
	kb, err := key.Bytes()
	if err != nil {
		return zero, err
	}
	if err := mgr.keystore.Update(kb, opts); err != nil {
		return zero, errors.WithMessage(err, "oracle: failed to mark nonce as used")
	}

	return priv, nil
}
