// Package explorer links transactions to a block explorer and, when an API
// key is configured, polls the explorer's receipt-status endpoint. It is an
// optional convenience layer: the app works fully without it.
package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/certichain/certichain/internal/config"
)

var (
	// ErrDisabled is returned when status is requested but no explorer API
	// is configured.
	ErrDisabled = errors.New("explorer api is not configured")

	// ErrStatusUnknown is returned when the explorer answers but does not
	// report a definite receipt status.
	ErrStatusUnknown = errors.New("transaction status unknown")
)

// TxStatus is the explorer's view of a mined transaction.
type TxStatus int

const (
	StatusPending TxStatus = iota
	StatusSucceeded
	StatusFailed
)

func (s TxStatus) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

type Client struct {
	http       *resty.Client
	apiKey     string
	txLinkBase string
}

func NewClient(cfg config.Explorer) *Client {
	var http *resty.Client
	if cfg.APIURL != "" {
		http = resty.New().
			SetBaseURL(strings.TrimRight(cfg.APIURL, "/")).
			SetTimeout(15 * time.Second)
	}

	return &Client{
		http:       http,
		apiKey:     cfg.APIKey,
		txLinkBase: strings.TrimRight(cfg.TxLinkBase, "/"),
	}
}

// Enabled reports whether receipt-status polling is available.
func (c *Client) Enabled() bool {
	return c.http != nil && c.apiKey != ""
}

// TxURL builds the human-facing explorer link for a transaction hash.
// Returns "" when no link base is configured.
func (c *Client) TxURL(txHash string) string {
	if c.txLinkBase == "" || txHash == "" {
		return ""
	}
	return c.txLinkBase + "/" + txHash
}

// statusResponse is the Etherscan-compatible gettxreceiptstatus envelope.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  struct {
		Status string `json:"status"`
	} `json:"result"`
}

// TxStatus queries the explorer for a transaction's receipt status.
func (c *Client) TxStatus(ctx context.Context, txHash string) (TxStatus, error) {
	if !c.Enabled() {
		return StatusPending, ErrDisabled
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"module": "transaction",
			"action": "gettxreceiptstatus",
			"txhash": txHash,
			"apikey": c.apiKey,
		}).
		Get("/api")
	if err != nil {
		return StatusPending, fmt.Errorf("explorer request: %w", err)
	}
	if resp.StatusCode() != 200 {
		return StatusPending, fmt.Errorf("explorer http %d: %s", resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}

	var sr statusResponse
	if err = json.Unmarshal(resp.Body(), &sr); err != nil {
		return StatusPending, fmt.Errorf("decode explorer response: %w", err)
	}

	// Etherscan reports status "0" with message "No records found" for
	// transactions not yet indexed.
	if sr.Status != "1" {
		if strings.Contains(strings.ToLower(sr.Message), "no records") {
			return StatusPending, nil
		}
		return StatusPending, fmt.Errorf("%w: %s", ErrStatusUnknown, sr.Message)
	}

	switch sr.Result.Status {
	case "1":
		return StatusSucceeded, nil
	case "0":
		return StatusFailed, nil
	default:
		return StatusPending, nil
	}
}
