package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidChainConfigs indicates invalid chain settings (for example,
	// missing RPC URL, malformed contract address, or zero target chain ID).
	ErrInvalidChainConfigs = errors.New("invalid chain configuration")
	// ErrInvalidWalletConfigs indicates invalid wallet settings (for
	// example, an empty keystore directory).
	ErrInvalidWalletConfigs = errors.New("invalid wallet configuration")
	// ErrInvalidQRConfigs indicates invalid QR codec settings (for example,
	// a non-positive image size or poll interval).
	ErrInvalidQRConfigs = errors.New("invalid qr configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings (for
	// example, an empty history database path).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
