package vault

import "github.com/mit-dci/dlc-oracle/pkg/common/vault"

type InmemoryVaultFactory struct{}

var _ vault.VaultFactory = InmemoryVaultFactory{}

// NewVault creates a new Vault instance for the given Vault configuration
func (f InmemoryVaultFactory) NewVault(cfg interface{}) vault.Vault {
	return NewInMemoryVault()
}
