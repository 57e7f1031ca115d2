package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/certichain/certichain/models"
)

// Writer is a write-capable contract handle: a ReadClient plus transact
// options bound to an unlocked keystore account. Every write waits for the
// mined receipt before returning; there are no timeouts beyond the caller's
// context and no automatic retries.
type Writer struct {
	*ReadClient
	opts *bind.TransactOpts
	from common.Address
}

// NewWriter binds signing options to a connected read client.
func NewWriter(rc *ReadClient, opts *bind.TransactOpts) *Writer {
	return &Writer{
		ReadClient: rc,
		opts:       opts,
		from:       opts.From,
	}
}

// From reports the signer address.
func (w *Writer) From() common.Address {
	return w.from
}

// IssueCertificate submits a new certificate record and waits for its
// receipt.
func (w *Writer) IssueCertificate(ctx context.Context, certID, productName, mfgName string, mfgDate int64) (models.TxOutcome, error) {
	return w.transact(ctx, "issueCertificate", certID, productName, mfgName, new(big.Int).SetInt64(mfgDate))
}

// RevokeCertificate invalidates an existing certificate. Existence is not
// pre-checked locally; the contract's revert is authoritative.
func (w *Writer) RevokeCertificate(ctx context.Context, certID string) (models.TxOutcome, error) {
	return w.transact(ctx, "revokeCertificate", certID)
}

// AddAdmin grants issue/revoke rights to an address. Owner only; the
// contract enforces it.
func (w *Writer) AddAdmin(ctx context.Context, newAdmin common.Address) (models.TxOutcome, error) {
	return w.transact(ctx, "addAdmin", newAdmin)
}

// RemoveAdmin revokes an address's roster membership.
func (w *Writer) RemoveAdmin(ctx context.Context, admin common.Address) (models.TxOutcome, error) {
	return w.transact(ctx, "removeAdmin", admin)
}

func (w *Writer) transact(ctx context.Context, method string, args ...interface{}) (models.TxOutcome, error) {
	opts := *w.opts
	opts.Context = ctx

	tx, err := w.contract.Transact(&opts, method, args...)
	if err != nil {
		w.log.Err(err).Str("method", method).Msg("transaction submission failed")
		return models.TxOutcome{}, Classify(err)
	}

	w.log.Debug().Str("method", method).Str("tx", tx.Hash().Hex()).Msg("transaction submitted, waiting for receipt")

	receipt, err := bind.WaitMined(ctx, w.eth, tx)
	if err != nil {
		return models.TxOutcome{TxHash: tx.Hash().Hex()}, Classify(err)
	}

	outcome := models.TxOutcome{
		TxHash:      tx.Hash().Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		Success:     receipt.Status == types.ReceiptStatusSuccessful,
	}
	if !outcome.Success {
		return outcome, &Error{Kind: KindRevert, Err: ErrTxReverted}
	}

	w.log.Debug().Str("method", method).Str("tx", outcome.TxHash).Uint64("block", outcome.BlockNumber).Msg("transaction confirmed")
	return outcome, nil
}
