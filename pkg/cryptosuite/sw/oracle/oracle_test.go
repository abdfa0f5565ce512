package oracle

import (
	"math/big"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	core_oracle "github.com/mit-dci/dlc-oracle/core/oracle"
	comm_keyopts "github.com/mit-dci/dlc-oracle/pkg/common/keyopts"
	comm_oracle "github.com/mit-dci/dlc-oracle/pkg/common/cryptosuite/oracle"
	"github.com/mit-dci/dlc-oracle/pkg/keyopts"
	"github.com/mit-dci/dlc-oracle/pkg/keystore"
	"github.com/mit-dci/dlc-oracle/pkg/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOracleKeyManager() (*OracleKeyManagerImpl, *NonceManagerImpl) {
	vf := vault.InmemoryVaultFactory{}
	kf := &keyopts.InMemoryKeyOptsFactory{}

	keyStore := keystore.NewInMemoryKeystore(vf.NewVault(nil), kf.NewKeyOpts(nil))
	nonceStore := keystore.NewInMemoryKeystore(vf.NewVault(nil), kf.NewKeyOpts(nil))

	noncemgr := NewNonceManager(nonceStore)
	return NewOracleKeyManager(keyStore, noncemgr), noncemgr
}

func newTestOpts(t *testing.T, id string) comm_keyopts.Options {
	opts, err := keyopts.NewOptions().Set("id", id, "oracleid", "oracle1")
	require.NoError(t, err)
	return opts
}

func TestGenerateAndGetKey(t *testing.T) {
	mgr, _ := newOracleKeyManager()

	opts := newTestOpts(t, uuid.NewString())

	key, err := mgr.GenerateKey(opts)
	require.NoError(t, err)
	assert.True(t, key.Private())

	got, err := mgr.GetKey(opts)
	require.NoError(t, err)

	keyPub, err := key.PublicKeyBytes()
	require.NoError(t, err)
	gotPub, err := got.PublicKeyBytes()
	require.NoError(t, err)
	assert.Equal(t, keyPub, gotPub)

	pubOnly := key.PublicKey()
	assert.False(t, pubOnly.Private())
	assert.Equal(t, key.SKI(), pubOnly.SKI())
}

func TestImportKeyRoundTrip(t *testing.T) {
	mgr, _ := newOracleKeyManager()

	genOpts := newTestOpts(t, uuid.NewString())
	key, err := mgr.GenerateKey(genOpts)
	require.NoError(t, err)

	kb, err := key.Bytes()
	require.NoError(t, err)

	mgr2, _ := newOracleKeyManager()
	impOpts := newTestOpts(t, uuid.NewString())
	imported, err := mgr2.ImportKey(kb, impOpts)
	require.NoError(t, err)
	assert.Equal(t, key.SKI(), imported.SKI())
	assert.True(t, imported.Private())
}

func TestAttestMatchesPrediction(t *testing.T) {
	mgr, noncemgr := newOracleKeyManager()

	keyOpts := newTestOpts(t, uuid.NewString())
	key, err := mgr.GenerateKey(keyOpts)
	require.NoError(t, err)

	nonceOpts := newTestOpts(t, uuid.NewString())
	nonce, err := noncemgr.NewNonce(nonceOpts)
	require.NoError(t, err)

	oraclePub, err := key.PublicKeyBytes()
	require.NoError(t, err)
	noncePub, err := nonce.PublicKeyBytes()
	require.NoError(t, err)

	msg, err := core_oracle.GenerateNumericMessage(big.NewInt(42))
	require.NoError(t, err)

	// a taker of the announcement predicts the signature point before
	// the outcome is attested
	predicted, err := core_oracle.ComputeSignaturePubKey(oraclePub, noncePub, msg)
	require.NoError(t, err)

	sig, err := mgr.Attest(keyOpts, nonceOpts, msg)
	require.NoError(t, err)

	sigPub, err := core_oracle.PublicKeyFromPrivateKey(sig)
	require.NoError(t, err)
	assert.Equal(t, predicted, sigPub)
}

func TestAttestNonceSingleUse(t *testing.T) {
	mgr, noncemgr := newOracleKeyManager()

	keyOpts := newTestOpts(t, uuid.NewString())
	_, err := mgr.GenerateKey(keyOpts)
	require.NoError(t, err)

	nonceOpts := newTestOpts(t, uuid.NewString())
	_, err = noncemgr.NewNonce(nonceOpts)
	require.NoError(t, err)

	msg, err := core_oracle.GenerateNumericMessage(big.NewInt(1))
	require.NoError(t, err)

	_, err = mgr.Attest(keyOpts, nonceOpts, msg)
	require.NoError(t, err)

	// the consumed mark must survive retrieval through the store
	nonce, err := noncemgr.GetNonce(nonceOpts)
	require.NoError(t, err)
	assert.True(t, nonce.Used())

	otherMsg, err := core_oracle.GenerateNumericMessage(big.NewInt(2))
	require.NoError(t, err)
	_, err = mgr.Attest(keyOpts, nonceOpts, otherMsg)
	assert.ErrorIs(t, err, ErrNonceUsed)
}

func TestAttestConcurrentSingleUse(t *testing.T) {
	mgr, noncemgr := newOracleKeyManager()

	keyOpts := newTestOpts(t, uuid.NewString())
	_, err := mgr.GenerateKey(keyOpts)
	require.NoError(t, err)

	nonceOpts := newTestOpts(t, uuid.NewString())
	_, err = noncemgr.NewNonce(nonceOpts)
	require.NoError(t, err)

	msg, err := core_oracle.GenerateNumericMessage(big.NewInt(7))
	require.NoError(t, err)

	const workers = 16
	var successes int32
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := mgr.Attest(keyOpts, nonceOpts, msg); err == nil {
				atomic.AddInt32(&successes, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes, "exactly one attestation may consume a nonce")
}

func TestDeriveNonceDeterministic(t *testing.T) {
	master := []byte("test-master-seed-keep-out-of-git")

	_, noncemgr1 := newOracleKeyManager()
	_, noncemgr2 := newOracleKeyManager()

	n1, err := noncemgr1.DeriveNonce(master, []byte("event-1"), newTestOpts(t, uuid.NewString()))
	require.NoError(t, err)
	n2, err := noncemgr2.DeriveNonce(master, []byte("event-1"), newTestOpts(t, uuid.NewString()))
	require.NoError(t, err)
	n3, err := noncemgr1.DeriveNonce(master, []byte("event-2"), newTestOpts(t, uuid.NewString()))
	require.NoError(t, err)

	p1, err := n1.PublicKeyBytes()
	require.NoError(t, err)
	p2, err := n2.PublicKeyBytes()
	require.NoError(t, err)
	p3, err := n3.PublicKeyBytes()
	require.NoError(t, err)

	assert.Equal(t, p1, p2, "same seed and context must rebuild the same R-point")
	assert.NotEqual(t, p1, p3)
}

func TestAttestBatch(t *testing.T) {
	mgr, noncemgr := newOracleKeyManager()

	keyOpts := newTestOpts(t, uuid.NewString())
	key, err := mgr.GenerateKey(keyOpts)
	require.NoError(t, err)
	oraclePub, err := key.PublicKeyBytes()
	require.NoError(t, err)

	const outcomes = 8
	items := make([]comm_oracle.BatchItem, outcomes)
	noncePubs := make([][33]byte, outcomes)
	for i := 0; i < outcomes; i++ {
		nonceOpts := newTestOpts(t, uuid.NewString())
		nonce, err := noncemgr.NewNonce(nonceOpts)
		require.NoError(t, err)
		noncePubs[i], err = nonce.PublicKeyBytes()
		require.NoError(t, err)
		items[i] = comm_oracle.BatchItem{
			NonceOpts: nonceOpts,
			Outcome:   big.NewInt(int64(i * 1000)),
		}
	}

	sigs, err := mgr.AttestBatch(keyOpts, items)
	require.NoError(t, err)
	require.Len(t, sigs, outcomes)

	for i := 0; i < outcomes; i++ {
		msg, err := core_oracle.GenerateNumericMessage(items[i].Outcome)
		require.NoError(t, err)

		predicted, err := core_oracle.ComputeSignaturePubKey(oraclePub, noncePubs[i], msg)
		require.NoError(t, err)
		sigPub, err := core_oracle.PublicKeyFromPrivateKey(sigs[i])
		require.NoError(t, err)
		assert.Equal(t, predicted, sigPub)
	}
}

func TestAttestBatchFailsOnReusedNonce(t *testing.T) {
	mgr, noncemgr := newOracleKeyManager()

	keyOpts := newTestOpts(t, uuid.NewString())
	_, err := mgr.GenerateKey(keyOpts)
	require.NoError(t, err)

	nonceOpts := newTestOpts(t, uuid.NewString())
	_, err = noncemgr.NewNonce(nonceOpts)
	require.NoError(t, err)

	items := []comm_oracle.BatchItem{
		{NonceOpts: nonceOpts, Outcome: big.NewInt(1)},
		{NonceOpts: nonceOpts, Outcome: big.NewInt(2)},
	}
	_, err = mgr.AttestBatch(keyOpts, items)
	assert.ErrorIs(t, err, ErrNonceUsed)
}
