package config

import "time"

// StructuredConfig is the top-level configuration container for the
// certichain client. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, an
// optional JSON file, and built-in defaults (in that priority order).
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the client version.
	App App `envPrefix:"APP_"`

	// Chain holds the contract address, target chain and RPC endpoints.
	Chain Chain `envPrefix:"CHAIN_"`

	// Wallet holds the local keystore settings.
	Wallet Wallet `envPrefix:"WALLET_"`

	// QR holds QR image output and frame-source settings.
	QR QR `envPrefix:"QR_"`

	// Storage holds the local activity-history database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Explorer holds the optional block-explorer API settings.
	Explorer Explorer `envPrefix:"EXPLORER_"`

	// JSONFilePath is the optional path to a JSON configuration file. When
	// non-empty, the file is parsed and merged below the values already
	// loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running client.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Chain holds everything needed to reach the certificate registry contract.
type Chain struct {
	// RPCURL is the public JSON-RPC endpoint used for anonymous reads.
	// Env: CHAIN_RPC_URL
	RPCURL string `env:"RPC_URL"`

	// SessionRPCURL is the endpoint the wallet session dials. It may point
	// at a different node (or chain) than RPCURL; the session negotiation
	// compares its chain ID against TargetChainID.
	// Env: CHAIN_SESSION_RPC_URL
	SessionRPCURL string `env:"SESSION_RPC_URL"`

	// TargetChainID is the chain the contract lives on. A session on any
	// other chain is refused after a single switch attempt.
	// Env: CHAIN_TARGET_CHAIN_ID
	TargetChainID uint64 `env:"TARGET_CHAIN_ID"`

	// ContractAddress is the fixed registry contract address (hex).
	// Env: CHAIN_CONTRACT_ADDRESS
	ContractAddress string `env:"CONTRACT_ADDRESS"`

	// Endpoints maps chain IDs to known RPC URLs. When the session endpoint
	// reports the wrong chain, the entry for TargetChainID is the one switch
	// attempt the client makes; no entry means the target chain is unknown.
	// Env: CHAIN_ENDPOINTS (e.g. "11155111:https://1rpc.io/sepolia")
	Endpoints map[uint64]string `env:"ENDPOINTS"`
}

// Wallet holds the local keystore settings. The keystore directory is the
// terminal-client analog of an injected browser wallet.
type Wallet struct {
	// KeystoreDir is the directory holding encrypted key files.
	// Env: WALLET_KEYSTORE_DIR
	KeystoreDir string `env:"KEYSTORE_DIR"`
}

// QR holds QR codec and frame-source settings.
type QR struct {
	// OutputDir is where issued certificate QR images are written.
	// Env: QR_OUTPUT_DIR
	OutputDir string `env:"OUTPUT_DIR"`

	// WatchDir is the drop directory polled by the continuous scanner, the
	// camera-feed analog. Images appearing here are decoded as frames.
	// Env: QR_WATCH_DIR
	WatchDir string `env:"WATCH_DIR"`

	// PollInterval is how often the watch directory is polled.
	// Env: QR_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`

	// Size is the pixel size of generated QR images.
	// Env: QR_SIZE
	Size int `env:"SIZE"`
}

// Storage holds the local activity-history database settings.
type Storage struct {
	// HistoryPath is the SQLite file recording this client's activity.
	// Env: STORAGE_HISTORY_PATH
	HistoryPath string `env:"HISTORY_PATH"`
}

// Explorer holds the optional block-explorer integration. Leaving APIURL
// empty disables transaction status lookups.
type Explorer struct {
	// APIURL is an Etherscan-compatible API base URL.
	// Env: EXPLORER_API_URL
	APIURL string `env:"API_URL"`

	// APIKey is passed as the apikey query parameter when set.
	// Env: EXPLORER_API_KEY
	APIKey string `env:"API_KEY"`

	// TxLinkBase is the human-facing transaction URL prefix shown after
	// writes (the transaction hash is appended).
	// Env: EXPLORER_TX_LINK_BASE
	TxLinkBase string `env:"TX_LINK_BASE"`
}

// GetClientConfig assembles the client configuration from all sources.
// Priority: environment > flags > JSON file > defaults.
func GetClientConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
