package keyopts

import "github.com/mit-dci/dlc-oracle/pkg/common/keyopts"

type InMemoryKeyOptsFactory struct{}

var _ keyopts.KeyOptsFactory = (*InMemoryKeyOptsFactory)(nil)

// NewKeyOpts creates a new KeyOpts instance for the given Opts configuration
func (f *InMemoryKeyOptsFactory) NewKeyOpts(cfg interface{}) keyopts.KeyOpts {
	return NewInMemoryKeyOpts()
}
