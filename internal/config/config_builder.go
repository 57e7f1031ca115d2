package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flags := ParseFlags()

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	isJSONSpecified := false

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			isJSONSpecified = true
			jsonPath = cfg.JSONFilePath
		}
	}

	if isJSONSpecified {
		jsonCfg, err := parseJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, jsonCfg)
	}

	return b
}

// withDefaults appends the built-in defaults last so every explicitly
// configured value wins over them.
func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	return b
}

// defaultConfig carries the static configuration of the public deployment:
// the Sepolia test network and the registry contract address.
func defaultConfig() *StructuredConfig {
	const sepoliaRPC = "https://1rpc.io/sepolia"
	const sepoliaChainID = 11155111

	return &StructuredConfig{
		App: App{
			Version: "0.1.0",
		},
		Chain: Chain{
			RPCURL:          sepoliaRPC,
			SessionRPCURL:   sepoliaRPC,
			TargetChainID:   sepoliaChainID,
			ContractAddress: "0xcc8a9a1d20ba4da17130be63ff12a74229d11fa8",
			Endpoints: map[uint64]string{
				sepoliaChainID: sepoliaRPC,
			},
		},
		Wallet: Wallet{
			KeystoreDir: "keystore",
		},
		QR: QR{
			OutputDir:    "qr",
			WatchDir:     "qr-inbox",
			PollInterval: 500 * time.Millisecond,
			Size:         512,
		},
		Storage: Storage{
			HistoryPath: "certichain.db",
		},
		Explorer: Explorer{
			TxLinkBase: "https://sepolia.etherscan.io/tx/",
		},
	}
}
