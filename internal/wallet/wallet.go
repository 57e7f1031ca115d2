// Package wallet negotiates the client's signing session: the local
// encrypted keystore stands in for an injected browser wallet, and the
// session endpoint's chain ID is checked against the required target before
// any write-capable handle is exposed.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sync"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/certichain/certichain/internal/chain"
	"github.com/certichain/certichain/internal/config"
	"github.com/certichain/certichain/internal/logger"
)

// Connection errors returned by [Manager.Connect]. Match with [errors.Is].
var (
	// ErrNoWallet means no keystore directory exists; there is nothing to
	// sign with.
	ErrNoWallet = errors.New("no wallet keystore found")

	// ErrNoAccounts means the keystore holds no accounts or access to the
	// account was declined (wrong passphrase).
	ErrNoAccounts = errors.New("no accounts available")

	// ErrChainUnavailable means the session endpoint is on the wrong chain
	// and no endpoint is configured for the target chain.
	ErrChainUnavailable = errors.New("target chain unavailable")

	// ErrChainSwitchRejected means the single switch attempt failed or
	// landed on a still-wrong chain.
	ErrChainSwitchRejected = errors.New("chain switch rejected")
)

// Session is the client's in-memory record of the connected account, chain,
// and write-capable contract handle. It is invalidated wholesale on account
// or chain change.
type Session struct {
	Address common.Address
	ChainID uint64
	Writer  *chain.Writer
}

// probeFunc reports the chain ID behind an RPC endpoint.
type probeFunc func(ctx context.Context, rawURL string) (uint64, error)

// bindFunc builds a write-capable contract handle for an unlocked account.
type bindFunc func(ctx context.Context, rawURL string, acct accounts.Account, ks *keystore.KeyStore, chainID uint64) (*chain.Writer, error)

// Manager owns the session state. All session mutation goes through it;
// nothing else holds ambient account or contract globals.
type Manager struct {
	chainCfg  config.Chain
	walletCfg config.Wallet
	log       *logger.Logger

	probe probeFunc
	bind  bindFunc

	mu      sync.Mutex
	session *Session
}

// NewManager constructs a session manager over the configured keystore and
// endpoints.
func NewManager(chainCfg config.Chain, walletCfg config.Wallet, log *logger.Logger) *Manager {
	m := &Manager{
		chainCfg:  chainCfg,
		walletCfg: walletCfg,
		log:       log,
	}
	m.probe = m.probeChainID
	m.bind = m.bindWriter
	return m
}

// Connect negotiates a signing session:
//
//  1. the keystore must exist (ErrNoWallet) and hold at least one account
//     that the passphrase unlocks (ErrNoAccounts);
//  2. the session endpoint's chain ID is compared with the target; on
//     mismatch exactly one switch attempt is made to the endpoint configured
//     for the target chain (ErrChainUnavailable when none is configured,
//     ErrChainSwitchRejected when the attempt fails or still mismatches);
//  3. on match the first account is unlocked and a write-capable contract
//     handle is returned.
//
// There is no retry; a failed negotiation leaves no session behind.
func (m *Manager) Connect(ctx context.Context, passphrase string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		m.closeLocked()
	}

	info, err := os.Stat(m.walletCfg.KeystoreDir)
	if err != nil || !info.IsDir() {
		return nil, &chain.Error{Kind: chain.KindEnvironment, Err: ErrNoWallet}
	}

	ks := keystore.NewKeyStore(m.walletCfg.KeystoreDir, keystore.StandardScryptN, keystore.StandardScryptP)
	accts := ks.Accounts()
	if len(accts) == 0 {
		return nil, &chain.Error{Kind: chain.KindConnection, Err: ErrNoAccounts}
	}
	acct := accts[0]

	endpoint, chainID, err := m.negotiateChain(ctx)
	if err != nil {
		return nil, err
	}

	if err := ks.Unlock(acct, passphrase); err != nil {
		return nil, &chain.Error{Kind: chain.KindConnection, Err: fmt.Errorf("%w: %w", ErrNoAccounts, err)}
	}

	writer, err := m.bind(ctx, endpoint, acct, ks, chainID)
	if err != nil {
		return nil, chain.Classify(err)
	}

	m.session = &Session{
		Address: acct.Address,
		ChainID: chainID,
		Writer:  writer,
	}

	m.log.Debug().
		Str("account", acct.Address.Hex()).
		Uint64("chain_id", chainID).
		Msg("wallet session established")

	return m.session, nil
}

// negotiateChain compares the session endpoint's chain with the target and
// performs at most one switch attempt.
func (m *Manager) negotiateChain(ctx context.Context) (string, uint64, error) {
	endpoint := m.chainCfg.SessionRPCURL
	target := m.chainCfg.TargetChainID

	id, err := m.probe(ctx, endpoint)
	if err != nil {
		return "", 0, chain.Classify(err)
	}
	if id == target {
		return endpoint, id, nil
	}

	m.log.Debug().Uint64("reported", id).Uint64("target", target).Msg("session endpoint on wrong chain, attempting switch")

	switched, ok := m.chainCfg.Endpoints[target]
	if !ok {
		return "", 0, &chain.Error{Kind: chain.KindConnection, Err: ErrChainUnavailable}
	}

	id, err = m.probe(ctx, switched)
	if err != nil {
		return "", 0, &chain.Error{Kind: chain.KindConnection, Err: fmt.Errorf("%w: %w", ErrChainSwitchRejected, err)}
	}
	if id != target {
		return "", 0, &chain.Error{Kind: chain.KindConnection, Err: ErrChainSwitchRejected}
	}

	return switched, id, nil
}

// Session returns the current session, or nil when disconnected.
func (m *Manager) Session() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Disconnect clears all session state wholesale. Safe to call when already
// disconnected.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *Manager) closeLocked() {
	if m.session == nil {
		return
	}
	if m.session.Writer != nil {
		m.session.Writer.Close()
	}
	m.session = nil
	m.log.Debug().Msg("wallet session cleared")
}

func (m *Manager) probeChainID(ctx context.Context, rawURL string) (uint64, error) {
	eth, err := ethclient.DialContext(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	defer eth.Close()

	id, err := eth.ChainID(ctx)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

func (m *Manager) bindWriter(ctx context.Context, rawURL string, acct accounts.Account, ks *keystore.KeyStore, chainID uint64) (*chain.Writer, error) {
	rc, err := chain.Dial(ctx, rawURL, common.HexToAddress(m.chainCfg.ContractAddress), m.log)
	if err != nil {
		return nil, err
	}

	opts, err := bind.NewKeyStoreTransactorWithChainID(ks, acct, new(big.Int).SetUint64(chainID))
	if err != nil {
		rc.Close()
		return nil, err
	}

	return chain.NewWriter(rc, opts), nil
}
