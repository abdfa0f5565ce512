package keyopts

import (
	"errors"
	"sync"

	"github.com/mit-dci/dlc-oracle/pkg/common/keyopts"
)

var (
	ErrInvalidParamsOracleID = errors.New("keyopts: invalid oracleID")
	ErrInvalidParamsKeyID    = errors.New("keyopts: invalid keyID")
	ErrKeyNotFound           = errors.New("keyopts: key not found")
)

type Keys map[string]*keyopts.KeyData

type KeyOpts struct {
	lock sync.RWMutex

	// keys maps a key or announcement id to a map of OracleID to key
	// metadata{SKI}.
	keys map[string]Keys
}

func NewInMemoryKeyOpts() *KeyOpts {
	return &KeyOpts{
		keys: make(map[string]Keys),
	}
}

func optIDs(opts keyopts.Options) (kid, oid string, err error) {
	ID, ok := opts.Get("id")
	if !ok {
		return "", "", ErrInvalidParamsKeyID
	}
	kid, ok = ID.(string)
	if !ok {
		return "", "", ErrInvalidParamsKeyID
	}

	oracleID, ok := opts.Get("oracleid")
	if !ok {
		return "", "", ErrInvalidParamsOracleID
	}
	oid, ok = oracleID.(string)
	if !ok {
		return "", "", ErrInvalidParamsOracleID
	}

	return kid, oid, nil
}

func (kr *KeyOpts) Import(ski string, opts keyopts.Options) error {
	kr.lock.Lock()
	defer kr.lock.Unlock()

	kid, oid, err := optIDs(opts)
	if err != nil {
		return err
	}

	if _, ok := kr.keys[kid]; !ok {
		kr.keys[kid] = make(Keys)
	}

	kr.keys[kid][oid] = &keyopts.KeyData{
		SKI:      ski,
		OracleID: oid,
	}

	return nil
}

func (kr *KeyOpts) Get(opts keyopts.Options) (*keyopts.KeyData, error) {
	kr.lock.RLock()
	defer kr.lock.RUnlock()

	kid, oid, err := optIDs(opts)
	if err != nil {
		return nil, err
	}

	ks, ok := kr.keys[kid]
	if !ok {
		return nil, ErrKeyNotFound
	}

	k, ok := ks[oid]
	if !ok {
		return nil, ErrKeyNotFound
	}

	return k, nil
}

func (kr *KeyOpts) GetAll(opts keyopts.Options) (map[string]*keyopts.KeyData, error) {
	kr.lock.RLock()
	defer kr.lock.RUnlock()

	ID, ok := opts.Get("id")
	if !ok {
		return nil, ErrInvalidParamsKeyID
	}
	kid, ok := ID.(string)
	if !ok {
		return nil, ErrInvalidParamsKeyID
	}

	ks, ok := kr.keys[kid]
	if !ok {
		return nil, ErrKeyNotFound
	}

	result := make(map[string]*keyopts.KeyData)
	for oracleID, key := range ks {
		result[oracleID] = key
	}
	return result, nil
}

func (kr *KeyOpts) Delete(opts keyopts.Options) error {
	kr.lock.Lock()
	defer kr.lock.Unlock()

	kid, oid, err := optIDs(opts)
	if err != nil {
		return err
	}

	ks, ok := kr.keys[kid]
	if !ok {
		return ErrKeyNotFound
	}

	delete(ks, oid)

	return nil
}

func (kr *KeyOpts) DeleteAll(opts keyopts.Options) error {
	kr.lock.Lock()
	defer kr.lock.Unlock()

	ID, ok := opts.Get("id")
	if !ok {
		return ErrInvalidParamsKeyID
	}
	kid, ok := ID.(string)
	if !ok {
		return ErrInvalidParamsKeyID
	}

	delete(kr.keys, kid)

	return nil
}
