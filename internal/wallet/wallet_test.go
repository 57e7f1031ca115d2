package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certichain/certichain/internal/chain"
	"github.com/certichain/certichain/internal/config"
	"github.com/certichain/certichain/internal/logger"
)

const testPassphrase = "test-passphrase"

// newTestManager builds a Manager over a real temp keystore with one account
// and a scripted chain probe. Binding is stubbed out so no network is
// touched.
func newTestManager(t *testing.T, probes map[string]uint64, probeErrs map[string]error) *Manager {
	t.Helper()

	dir := t.TempDir()
	ks := keystore.NewKeyStore(dir, keystore.LightScryptN, keystore.LightScryptP)
	_, err := ks.NewAccount(testPassphrase)
	require.NoError(t, err)

	m := NewManager(
		config.Chain{
			SessionRPCURL:   "wallet-endpoint",
			TargetChainID:   11155111,
			ContractAddress: "0xcc8a9a1d20ba4da17130be63ff12a74229d11fa8",
			Endpoints:       map[uint64]string{11155111: "target-endpoint"},
		},
		config.Wallet{KeystoreDir: dir},
		logger.Nop(),
	)

	probeCalls := map[string]int{}
	m.probe = func(_ context.Context, url string) (uint64, error) {
		probeCalls[url]++
		if err, ok := probeErrs[url]; ok {
			return 0, err
		}
		id, ok := probes[url]
		if !ok {
			return 0, errors.New("unknown endpoint " + url)
		}
		return id, nil
	}
	m.bind = func(_ context.Context, _ string, acct accounts.Account, _ *keystore.KeyStore, chainID uint64) (*chain.Writer, error) {
		return nil, nil // session carries a nil writer in tests
	}

	return m
}

// TestConnect_RightChain verifies the happy path: endpoint already on the
// target chain, no switch request issued.
func TestConnect_RightChain(t *testing.T) {
	m := newTestManager(t, map[string]uint64{"wallet-endpoint": 11155111}, nil)

	sess, err := m.Connect(context.Background(), testPassphrase)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, uint64(11155111), sess.ChainID)
	assert.NotEqual(t, "0x0000000000000000000000000000000000000000", sess.Address.Hex())
	assert.Same(t, sess, m.Session())
}

// TestConnect_WrongChainSwitches verifies exactly one switch attempt to the
// configured target endpoint.
func TestConnect_WrongChainSwitches(t *testing.T) {
	m := newTestManager(t, map[string]uint64{
		"wallet-endpoint": 1, // mainnet, wrong
		"target-endpoint": 11155111,
	}, nil)

	sess, err := m.Connect(context.Background(), testPassphrase)
	require.NoError(t, err)
	assert.Equal(t, uint64(11155111), sess.ChainID)
}

// TestConnect_ChainUnavailable verifies the failure when no endpoint is
// configured for the target chain.
func TestConnect_ChainUnavailable(t *testing.T) {
	m := newTestManager(t, map[string]uint64{"wallet-endpoint": 1}, nil)
	m.chainCfg.Endpoints = nil

	_, err := m.Connect(context.Background(), testPassphrase)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChainUnavailable)
	assert.Nil(t, m.Session(), "no write-capable session on failed negotiation")
}

// TestConnect_SwitchRejected verifies the failure when the switch attempt
// lands on a still-wrong chain or errors out.
func TestConnect_SwitchRejected(t *testing.T) {
	tests := []struct {
		name      string
		probes    map[string]uint64
		probeErrs map[string]error
	}{
		{
			name:   "still wrong chain after switch",
			probes: map[string]uint64{"wallet-endpoint": 1, "target-endpoint": 5},
		},
		{
			name:      "switch endpoint unreachable",
			probes:    map[string]uint64{"wallet-endpoint": 1},
			probeErrs: map[string]error{"target-endpoint": errors.New("dial refused")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t, tt.probes, tt.probeErrs)

			_, err := m.Connect(context.Background(), testPassphrase)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrChainSwitchRejected)
			assert.Nil(t, m.Session())
		})
	}
}

// TestConnect_NoWallet verifies the missing-keystore failure.
func TestConnect_NoWallet(t *testing.T) {
	m := newTestManager(t, map[string]uint64{"wallet-endpoint": 11155111}, nil)
	m.walletCfg.KeystoreDir = "/does/not/exist"

	_, err := m.Connect(context.Background(), testPassphrase)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoWallet)
}

// TestConnect_NoAccounts verifies the empty-keystore failure.
func TestConnect_NoAccounts(t *testing.T) {
	m := newTestManager(t, map[string]uint64{"wallet-endpoint": 11155111}, nil)
	m.walletCfg.KeystoreDir = t.TempDir() // exists, holds nothing

	_, err := m.Connect(context.Background(), testPassphrase)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoAccounts)
}

// TestConnect_WrongPassphrase verifies that declined access maps to
// ErrNoAccounts.
func TestConnect_WrongPassphrase(t *testing.T) {
	m := newTestManager(t, map[string]uint64{"wallet-endpoint": 11155111}, nil)

	_, err := m.Connect(context.Background(), "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoAccounts)
	assert.Nil(t, m.Session())
}

// TestDisconnect_ClearsSession verifies wholesale invalidation and that
// reconnecting re-establishes a fresh session.
func TestDisconnect_ClearsSession(t *testing.T) {
	m := newTestManager(t, map[string]uint64{"wallet-endpoint": 11155111}, nil)

	first, err := m.Connect(context.Background(), testPassphrase)
	require.NoError(t, err)
	require.NotNil(t, m.Session())

	m.Disconnect()
	assert.Nil(t, m.Session())

	m.Disconnect() // idempotent

	second, err := m.Connect(context.Background(), testPassphrase)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, first.Address, second.Address)
}
