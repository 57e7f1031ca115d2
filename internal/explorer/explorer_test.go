package explorer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certichain/certichain/internal/config"
)

func newStatusServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api", r.URL.Path)
		assert.Equal(t, "transaction", r.URL.Query().Get("module"))
		assert.Equal(t, "gettxreceiptstatus", r.URL.Query().Get("action"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// TestTxStatus covers the explorer's receipt-status answers.
func TestTxStatus(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    TxStatus
		wantErr error
	}{
		{
			name: "succeeded",
			body: `{"status":"1","message":"OK","result":{"status":"1"}}`,
			want: StatusSucceeded,
		},
		{
			name: "failed",
			body: `{"status":"1","message":"OK","result":{"status":"0"}}`,
			want: StatusFailed,
		},
		{
			name: "not yet indexed reports pending",
			body: `{"status":"0","message":"No records found","result":{"status":""}}`,
			want: StatusPending,
		},
		{
			name:    "explorer error surfaces",
			body:    `{"status":"0","message":"NOTOK","result":{"status":""}}`,
			want:    StatusPending,
			wantErr: ErrStatusUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newStatusServer(t, tt.body)
			c := NewClient(config.Explorer{APIURL: srv.URL, APIKey: "test-key"})
			require.True(t, c.Enabled())

			status, err := c.TxStatus(context.Background(), "0xabc")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, status)
		})
	}
}

// TestTxStatus_Disabled verifies the no-API-key path.
func TestTxStatus_Disabled(t *testing.T) {
	c := NewClient(config.Explorer{TxLinkBase: "https://sepolia.etherscan.io/tx/"})
	assert.False(t, c.Enabled())

	_, err := c.TxStatus(context.Background(), "0xabc")
	assert.ErrorIs(t, err, ErrDisabled)
}

// TestTxURL covers link construction.
func TestTxURL(t *testing.T) {
	c := NewClient(config.Explorer{TxLinkBase: "https://sepolia.etherscan.io/tx/"})
	assert.Equal(t, "https://sepolia.etherscan.io/tx/0xabc", c.TxURL("0xabc"))
	assert.Empty(t, c.TxURL(""))

	none := NewClient(config.Explorer{})
	assert.Empty(t, none.TxURL("0xabc"))
}
