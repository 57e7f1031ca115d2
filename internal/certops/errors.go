package certops

import (
	"errors"
	"fmt"

	"github.com/certichain/certichain/internal/chain"
)

// Sentinel errors for locally rejected operations. Match with [errors.Is].
var (
	// ErrNotConnected means a write was attempted without an active wallet
	// session.
	ErrNotConnected = errors.New("wallet not connected")

	// ErrInvalidDate means the manufacturing date does not parse to a
	// positive UNIX timestamp. Raised before any submission.
	ErrInvalidDate = errors.New("invalid manufacturing date")

	// ErrInvalidAddress means a recipient or roster address is not a
	// well-formed hex address.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrEmptyIdentifier means a verify or revoke call got a blank input.
	ErrEmptyIdentifier = errors.New("certificate ID is required")

	// ErrIssueInFlight means an issue call was rejected because another one
	// has not finished yet.
	ErrIssueInFlight = errors.New("an issue transaction is already in flight")
)

// FieldError reports a missing or malformed input field; nothing was
// submitted.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Field, e.Err.Error())
	}
	return e.Field + " is required"
}

func (e *FieldError) Unwrap() error { return e.Err }

func missingField(name string) error {
	return &chain.Error{Kind: chain.KindValidation, Err: &FieldError{Field: name}}
}

func badField(name string, err error) error {
	return &chain.Error{Kind: chain.KindValidation, Err: &FieldError{Field: name, Err: err}}
}
