package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultConfig_Validates verifies that the built-in defaults alone form
// a runnable configuration.
func TestDefaultConfig_Validates(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.validate())

	assert.Equal(t, uint64(11155111), cfg.Chain.TargetChainID)
	assert.Equal(t, "https://1rpc.io/sepolia", cfg.Chain.RPCURL)
	assert.Contains(t, cfg.Chain.Endpoints, uint64(11155111))
	assert.Equal(t, 512, cfg.QR.Size)
}

// TestBuild_ExplicitValuesWinOverDefaults verifies merge priority: a config
// appended before the defaults keeps its values.
func TestBuild_ExplicitValuesWinOverDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Chain: Chain{
			RPCURL:        "https://rpc.example.org",
			TargetChainID: 5,
		},
	})
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "https://rpc.example.org", cfg.Chain.RPCURL)
	assert.Equal(t, uint64(5), cfg.Chain.TargetChainID)
	// untouched fields come from defaults
	assert.Equal(t, "0xcc8a9a1d20ba4da17130be63ff12a74229d11fa8", cfg.Chain.ContractAddress)
	assert.Equal(t, "certichain.db", cfg.Storage.HistoryPath)
}

// TestBuild_EarlierSourceWins verifies that of two explicit sources the one
// appended first (higher priority) wins.
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Wallet: Wallet{KeystoreDir: "from-env"}},
		&StructuredConfig{Wallet: Wallet{KeystoreDir: "from-json"}},
	)
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Wallet.KeystoreDir)
}

// TestValidate_RejectsBrokenOverrides covers the validation sentinels.
func TestValidate_RejectsBrokenOverrides(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{
			name:    "empty rpc url",
			mutate:  func(c *StructuredConfig) { c.Chain.RPCURL = "" },
			wantErr: ErrInvalidChainConfigs,
		},
		{
			name:    "zero chain id",
			mutate:  func(c *StructuredConfig) { c.Chain.TargetChainID = 0 },
			wantErr: ErrInvalidChainConfigs,
		},
		{
			name:    "malformed contract address",
			mutate:  func(c *StructuredConfig) { c.Chain.ContractAddress = "not-an-address" },
			wantErr: ErrInvalidChainConfigs,
		},
		{
			name:    "empty keystore dir",
			mutate:  func(c *StructuredConfig) { c.Wallet.KeystoreDir = "" },
			wantErr: ErrInvalidWalletConfigs,
		},
		{
			name:    "non-positive qr size",
			mutate:  func(c *StructuredConfig) { c.QR.Size = 0 },
			wantErr: ErrInvalidQRConfigs,
		},
		{
			name:    "non-positive poll interval",
			mutate:  func(c *StructuredConfig) { c.QR.PollInterval = 0 },
			wantErr: ErrInvalidQRConfigs,
		},
		{
			name:    "empty history path",
			mutate:  func(c *StructuredConfig) { c.Storage.HistoryPath = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestDuration_UnmarshalJSON verifies both string and numeric forms.
func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "string form", input: `"500ms"`, expected: 500 * time.Millisecond},
		{name: "numeric nanoseconds", input: `1000000000`, expected: time.Second},
		{name: "garbage string", input: `"not-a-duration"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, time.Duration(d))
		})
	}
}

// TestParseJSON_FullFile verifies parsing of a complete JSON config file.
func TestParseJSON_FullFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.json"
	body := `{
		"chain": {
			"rpc_url": "https://rpc.example.org",
			"target_chain_id": 11155111,
			"contract_address": "0xcc8a9a1d20ba4da17130be63ff12a74229d11fa8",
			"endpoints": {"11155111": "https://rpc.example.org"}
		},
		"qr": {"poll_interval": "250ms", "size": 256},
		"storage": {"history_path": "hist.db"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "https://rpc.example.org", cfg.Chain.RPCURL)
	assert.Equal(t, uint64(11155111), cfg.Chain.TargetChainID)
	assert.Equal(t, 250*time.Millisecond, cfg.QR.PollInterval)
	assert.Equal(t, 256, cfg.QR.Size)
	assert.Equal(t, "hist.db", cfg.Storage.HistoryPath)
}

// TestParseJSON_MissingFile verifies the wrapped error for an absent file.
func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/does/not/exist.json")
	require.Error(t, err)
}
