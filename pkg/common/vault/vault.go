package vault

// Vault stores raw key bytes addressed by their serialized key identifier.
// Implementations decide where the bytes live; the in-memory vault is the
// reference implementation, and a durable backend plugs in here.
type Vault interface {
	Import(ski string, key []byte) error
	Get(ski string) ([]byte, error)
	Delete(ski string) error
}

// VaultFactory creates Vault instances from a backend configuration.
type VaultFactory interface {
	NewVault(cfg interface{}) Vault
}
