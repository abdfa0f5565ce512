package oracle

import (
	"math/big"

	"github.com/mit-dci/dlc-oracle/core/math/curve"
	core_oracle "github.com/mit-dci/dlc-oracle/core/oracle"
	"github.com/mit-dci/dlc-oracle/pkg/common/keyopts"
)

// OracleKey is an oracle identity key. A public-only key carries just the
// compressed point; a private key can take part in attestations.
type OracleKey interface {
	// Bytes returns the serialized representation of the key.
	Bytes() ([]byte, error)

	// SKI returns the serialized key identifier.
	SKI() []byte

	// Private returns true if the key holds the private scalar.
	Private() bool

	// PublicKey returns the public-only part of the key.
	PublicKey() OracleKey

	// PublicKeyBytes returns the compressed encoding of the public point.
	PublicKeyBytes() ([curve.PointSize]byte, error)
}

// OracleKeyManager generates, imports and retrieves oracle identity keys,
// and performs attestations with them.
type OracleKeyManager interface {
	// GenerateKey generates a new identity key pair.
	GenerateKey(opts keyopts.Options) (OracleKey, error)

	// ImportKey imports an identity key from its serialized form.
	ImportKey(raw interface{}, opts keyopts.Options) (OracleKey, error)

	// GetKey returns an identity key by its options.
	GetKey(opts keyopts.Options) (OracleKey, error)

	// Attest signs the message with the identity key under keyOpts and
	// the announced one-time key under nonceOpts, consuming the nonce.
	// A second attestation against the same nonce fails.
	Attest(keyOpts, nonceOpts keyopts.Options, message [core_oracle.MessageSize]byte) ([curve.ScalarSize]byte, error)

	// AttestBatch runs independent attestations concurrently, one
	// announced nonce per outcome.
	AttestBatch(keyOpts keyopts.Options, items []BatchItem) ([][curve.ScalarSize]byte, error)
}

// BatchItem pairs an announced nonce with the numeric outcome to attest.
type BatchItem struct {
	NonceOpts keyopts.Options
	Outcome   *big.Int
}

// NonceKey is a one-time signing key together with its single-use
// bookkeeping. Once consumed by an attestation it refuses further use.
type NonceKey interface {
	// SKI returns the serialized key identifier.
	SKI() []byte

	// Used reports whether the key has been consumed by an attestation.
	Used() bool

	// PublicKeyBytes returns the compressed R-point for the announcement.
	PublicKeyBytes() ([curve.PointSize]byte, error)
}

// NonceManager generates and retrieves one-time signing keys. Every nonce
// is tracked through its store so that consumption survives retrieval.
type NonceManager interface {
	// NewNonce draws a fresh one-time key and stores it under opts.
	NewNonce(opts keyopts.Options) (NonceKey, error)

	// DeriveNonce deterministically derives the one-time key for a
	// context from a master seed, and stores it under opts.
	DeriveNonce(master, context []byte, opts keyopts.Options) (NonceKey, error)

	// GetNonce returns the stored nonce under opts.
	GetNonce(opts keyopts.Options) (NonceKey, error)
}
