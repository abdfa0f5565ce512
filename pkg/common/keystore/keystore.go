package keystore

import "github.com/mit-dci/dlc-oracle/pkg/common/keyopts"

// Keystore composes a vault holding raw key bytes with a metadata
// repository resolving lookup options to serialized key identifiers.
type Keystore interface {
	Import(ski string, key []byte, opts keyopts.Options) error
	Update(key []byte, opts keyopts.Options) error
	Get(opts keyopts.Options) ([]byte, error)
	Delete(opts keyopts.Options) error
	DeleteAll(opts keyopts.Options) error
	KeyAccessor(ski string, opts keyopts.Options) KeyAccessor
}

// KeyAccessor binds a keystore to a single key.
type KeyAccessor interface {
	Import(key []byte) error
	Get() ([]byte, error)
	Delete() error
}
