package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-rpc-url public JSON-RPC endpoint for anonymous reads
//	-session-rpc-url endpoint dialed by the wallet session
//	-chain-id target chain ID
//	-contract registry contract address (hex)
//	-keystore keystore directory path
//	-qr-out directory for generated QR images
//	-qr-watch drop directory polled by the scanner
//	-qr-poll scanner poll interval (e.g. "500ms")
//	-history local activity history SQLite file
//	-explorer-api block explorer API base URL
//	-explorer-key block explorer API key
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var rpcURL string
	var sessionRPCURL string
	var chainID uint64
	var contractAddress string
	var keystoreDir string
	var qrOutDir string
	var qrWatchDir string
	var qrPoll time.Duration
	var historyPath string
	var explorerAPI string
	var explorerKey string
	var jsonConfigPath string

	flag.StringVar(&rpcURL, "rpc-url", "", "Public JSON-RPC endpoint for reads")
	flag.StringVar(&sessionRPCURL, "session-rpc-url", "", "Wallet session JSON-RPC endpoint")
	flag.Uint64Var(&chainID, "chain-id", 0, "Target chain ID")
	flag.StringVar(&contractAddress, "contract", "", "Registry contract address")
	flag.StringVar(&keystoreDir, "keystore", "", "Keystore directory")
	flag.StringVar(&qrOutDir, "qr-out", "", "QR image output directory")
	flag.StringVar(&qrWatchDir, "qr-watch", "", "QR scanner drop directory")
	flag.DurationVar(&qrPoll, "qr-poll", 0, "QR scanner poll interval (e.g. 500ms)")
	flag.StringVar(&historyPath, "history", "", "Activity history SQLite file")
	flag.StringVar(&explorerAPI, "explorer-api", "", "Block explorer API base URL")
	flag.StringVar(&explorerKey, "explorer-key", "", "Block explorer API key")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Chain: Chain{
			RPCURL:          rpcURL,
			SessionRPCURL:   sessionRPCURL,
			TargetChainID:   chainID,
			ContractAddress: contractAddress,
		},
		Wallet: Wallet{
			KeystoreDir: keystoreDir,
		},
		QR: QR{
			OutputDir:    qrOutDir,
			WatchDir:     qrWatchDir,
			PollInterval: qrPoll,
		},
		Storage: Storage{
			HistoryPath: historyPath,
		},
		Explorer: Explorer{
			APIURL: explorerAPI,
			APIKey: explorerKey,
		},
		JSONFilePath: jsonConfigPath,
	}
}
