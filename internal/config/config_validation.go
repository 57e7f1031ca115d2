package config

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// validate checks the assembled configuration for values the client cannot
// run without. Defaults fill every group, so failures here mean an explicit
// override broke something.
func (c *StructuredConfig) validate() error {
	if c.Chain.RPCURL == "" || c.Chain.SessionRPCURL == "" {
		return fmt.Errorf("%w: rpc url is required", ErrInvalidChainConfigs)
	}
	if c.Chain.TargetChainID == 0 {
		return fmt.Errorf("%w: target chain id is required", ErrInvalidChainConfigs)
	}
	if !common.IsHexAddress(c.Chain.ContractAddress) {
		return fmt.Errorf("%w: contract address %q is not a hex address", ErrInvalidChainConfigs, c.Chain.ContractAddress)
	}

	if c.Wallet.KeystoreDir == "" {
		return fmt.Errorf("%w: keystore directory is required", ErrInvalidWalletConfigs)
	}

	if c.QR.Size <= 0 {
		return fmt.Errorf("%w: image size must be positive", ErrInvalidQRConfigs)
	}
	if c.QR.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", ErrInvalidQRConfigs)
	}

	if c.Storage.HistoryPath == "" {
		return fmt.Errorf("%w: history path is required", ErrInvalidStorageConfigs)
	}

	return nil
}
