package oracle

import (
	"encoding/hex"
	"math/big"

	"github.com/mit-dci/dlc-oracle/core/math/arith"
	"github.com/mit-dci/dlc-oracle/core/math/curve"
	"github.com/mit-dci/dlc-oracle/core/math/sample"
	core_oracle "github.com/mit-dci/dlc-oracle/core/oracle"
	comm_oracle "github.com/mit-dci/dlc-oracle/pkg/common/cryptosuite/oracle"
	"github.com/mit-dci/dlc-oracle/pkg/common/keyopts"
	"github.com/mit-dci/dlc-oracle/pkg/common/keystore"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type OracleKeyManagerImpl struct {
	keystore keystore.Keystore
	noncemgr *NonceManagerImpl
}

func NewOracleKeyManager(store keystore.Keystore, noncemgr *NonceManagerImpl) *OracleKeyManagerImpl {
	return &OracleKeyManagerImpl{
		keystore: store,
		noncemgr: noncemgr,
	}
}

func (mgr *OracleKeyManagerImpl) GenerateKey(opts keyopts.Options) (comm_oracle.OracleKey, error) {
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

	key, err := keyFromScalar(priv)
	if err != nil {
		return nil, err
	}

	decoded, err := key.Bytes()
	if err != nil {
		return nil, err
	}

	// get key SKI and encode it to hex string as keyID
	keyID := hex.EncodeToString(key.SKI())

	// import the decoded key to the keystore with keyID
	if err := mgr.keystore.Import(keyID, decoded, opts); err != nil {
		return nil, err
	}

	return key, nil
}

func (mgr *OracleKeyManagerImpl) ImportKey(raw interface{}, opts keyopts.Options) (comm_oracle.OracleKey, error) {
	var err error
	key := &OracleKeyImpl{}

	switch raw := raw.(type) {
	case []byte:
		key, err = oracleKeyFromBytes(raw)
		if err != nil {
			return nil, err
		}
	case [curve.ScalarSize]byte:
		key, err = keyFromScalar(raw)
		if err != nil {
			return nil, err
		}
	case *OracleKeyImpl:
		key = raw
	default:
		return nil, ErrInvalidKey
	}

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

func (mgr *OracleKeyManagerImpl) GetKey(opts keyopts.Options) (comm_oracle.OracleKey, error) {
	decoded, err := mgr.keystore.Get(opts)
	if err != nil {
		return nil, err
	}
	return oracleKeyFromBytes(decoded)
}

func (mgr *OracleKeyManagerImpl) Attest(
	keyOpts, nonceOpts keyopts.Options,
	message [core_oracle.MessageSize]byte) ([curve.ScalarSize]byte, error) {
	var zero [curve.ScalarSize]byte

	k, err := mgr.GetKey(keyOpts)
	if err != nil {
		return zero, errors.WithMessage(err, "oracle: failed to get identity key from keystore")
	}

	key, ok := k.(*OracleKeyImpl)
	if !ok {
		return zero, errors.New("oracle: invalid key type")
	}

	priv, err := key.privateScalar()
	if err != nil {
		return zero, errors.WithMessage(err, "oracle: identity key must be private")
	}

	oneTime, err := mgr.noncemgr.consume(nonceOpts)
	if err != nil {
		return zero, err
	}

	return core_oracle.ComputeSignature(priv, oneTime, message)
}

func (mgr *OracleKeyManagerImpl) AttestBatch(
	keyOpts keyopts.Options,
	items []comm_oracle.BatchItem) ([][curve.ScalarSize]byte, error) {
	sigs := make([][curve.ScalarSize]byte, len(items))

	var g errgroup.Group
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			msg, err := core_oracle.GenerateNumericMessage(item.Outcome)
			if err != nil {
				return err
			}
			sig, err := mgr.Attest(keyOpts, item.NonceOpts, msg)
			if err != nil {
				return err
			}
			sigs[i] = sig
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return sigs, nil
}
