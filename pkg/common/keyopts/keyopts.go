package keyopts

// KeyData is the metadata stored for a key: which oracle it belongs to and
// the serialized key identifier locating its bytes in a vault.
type KeyData struct {
	OracleID string
	SKI      string
}

// Options carries string-keyed lookup metadata for a key. The conventional
// keys are "id" (the identity key name or announcement id) and "oracleid".
type Options interface {
	Set(kVs ...interface{}) (Options, error)
	Get(key string) (interface{}, bool)
}

// KeyOpts manages the storage of key metadata referred to by an
// announcement or key id.
type KeyOpts interface {
	// Import stores the SKI for the key identified by opts.
	Import(ski string, opts Options) error

	// Get returns the key metadata identified by opts.
	Get(opts Options) (*KeyData, error)

	// GetAll returns all keys' metadata under the id in opts, keyed by
	// oracle id.
	GetAll(opts Options) (map[string]*KeyData, error)

	// Delete deletes the key metadata identified by opts.
	Delete(opts Options) error

	// DeleteAll deletes all keys' metadata under the id in opts.
	DeleteAll(opts Options) error
}

// KeyOptsFactory creates KeyOpts instances from a repository configuration.
type KeyOptsFactory interface {
	NewKeyOpts(cfg interface{}) KeyOpts
}
