package chain

import (
	"context"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// Sentinel errors returned by the chain layer. Callers should match with
// [errors.Is].
var (
	// ErrNoContractCode is returned when the configured address holds no
	// bytecode on the connected chain.
	ErrNoContractCode = errors.New("no contract code at configured address")

	// ErrTxReverted is returned when a transaction was mined but its receipt
	// reports failure.
	ErrTxReverted = errors.New("transaction reverted")
)

// Kind is the failure taxonomy every operation error is classified into.
// Classification is driven by structured fields (revert data, receipt
// status, context state), never by pattern-matching free-form message text;
// anything unrecognized stays KindUnclassified.
type Kind int

const (
	// KindUnclassified is the fallback for errors with no structured signal.
	KindUnclassified Kind = iota
	// KindEnvironment covers missing prerequisites: no keystore, no RPC
	// endpoint, no contract code.
	KindEnvironment
	// KindConnection covers dial failures, wrong or unavailable chains, and
	// canceled or timed-out calls.
	KindConnection
	// KindValidation covers locally rejected input before any submission.
	KindValidation
	// KindRevert covers on-chain rejection with or without a revert reason.
	KindRevert
	// KindCapture covers frame-source failures on the QR scan path.
	KindCapture
)

// Error is the typed operation failure handed to the UI. Reason carries the
// contract-supplied revert reason when one was recoverable; it is preferred
// over the underlying error text for display.
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "operation failed"
}

func (e *Error) Unwrap() error { return e.Err }

// Classify wraps err into a typed *Error. Errors already classified pass
// through unchanged.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	if reason, ok := RevertReason(err); ok {
		return &Error{Kind: KindRevert, Reason: FriendlyReason(reason), Err: err}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindConnection, Err: err}
	}

	return &Error{Kind: KindUnclassified, Err: err}
}

// RevertReason extracts the contract-supplied revert reason from a JSON-RPC
// error carrying structured revert data. The second return value reports
// whether a reason was recovered.
func RevertReason(err error) (string, bool) {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return "", false
	}

	hexData, ok := dataErr.ErrorData().(string)
	if !ok {
		return "", false
	}

	raw, decodeErr := hexutil.Decode(hexData)
	if decodeErr != nil {
		return "", false
	}

	reason, unpackErr := abi.UnpackRevert(raw)
	if unpackErr != nil {
		return "", false
	}
	return reason, true
}

// friendlyRemaps rewrites well-known revert reasons and wallet responses
// into short user-facing phrasing. Keys are matched against the extracted
// reason only, never against arbitrary error text.
var friendlyRemaps = []struct {
	match   string
	message string
}{
	{match: "user rejected", message: "Transaction rejected by user"},
	{match: "already exists", message: "Certificate ID already exists"},
	{match: "not found", message: "Certificate not found"},
	{match: "already admin", message: "Address is already an admin"},
	{match: "not admin", message: "Address is not an admin"},
}

// FriendlyReason applies the remap table to a revert reason, returning the
// reason unchanged when nothing matches.
func FriendlyReason(reason string) string {
	lowered := strings.ToLower(reason)
	for _, remap := range friendlyRemaps {
		if strings.Contains(lowered, remap.match) {
			return remap.message
		}
	}
	return reason
}

// UserMessage renders any operation error as the short string shown in the
// status region. Typed errors prefer their revert reason; everything else
// falls back to the raw error text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return Classify(err).Error()
}
