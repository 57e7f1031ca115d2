package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors StructuredConfig for JSON file parsing.
// Durations are accepted as strings like "500ms" or "1m".
type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Chain struct {
		RPCURL          string            `json:"rpc_url"`
		SessionRPCURL   string            `json:"session_rpc_url"`
		TargetChainID   uint64            `json:"target_chain_id"`
		ContractAddress string            `json:"contract_address"`
		Endpoints       map[uint64]string `json:"endpoints"`
	} `json:"chain,omitempty"`

	Wallet struct {
		KeystoreDir string `json:"keystore_dir"`
	} `json:"wallet,omitempty"`

	QR struct {
		OutputDir    string   `json:"output_dir"`
		WatchDir     string   `json:"watch_dir"`
		PollInterval Duration `json:"poll_interval"`
		Size         int      `json:"size"`
	} `json:"qr,omitempty"`

	Storage struct {
		HistoryPath string `json:"history_path"`
	} `json:"storage,omitempty"`

	Explorer struct {
		APIURL     string `json:"api_url"`
		APIKey     string `json:"api_key"`
		TxLinkBase string `json:"tx_link_base"`
	} `json:"explorer,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version: jsonCfg.App.Version,
		},
		Chain: Chain{
			RPCURL:          jsonCfg.Chain.RPCURL,
			SessionRPCURL:   jsonCfg.Chain.SessionRPCURL,
			TargetChainID:   jsonCfg.Chain.TargetChainID,
			ContractAddress: jsonCfg.Chain.ContractAddress,
			Endpoints:       jsonCfg.Chain.Endpoints,
		},
		Wallet: Wallet{
			KeystoreDir: jsonCfg.Wallet.KeystoreDir,
		},
		QR: QR{
			OutputDir:    jsonCfg.QR.OutputDir,
			WatchDir:     jsonCfg.QR.WatchDir,
			PollInterval: time.Duration(jsonCfg.QR.PollInterval),
			Size:         jsonCfg.QR.Size,
		},
		Storage: Storage{
			HistoryPath: jsonCfg.Storage.HistoryPath,
		},
		Explorer: Explorer{
			APIURL:     jsonCfg.Explorer.APIURL,
			APIKey:     jsonCfg.Explorer.APIKey,
			TxLinkBase: jsonCfg.Explorer.TxLinkBase,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h" and "30s" as well as plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
