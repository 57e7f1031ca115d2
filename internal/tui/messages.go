package tui

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/certichain/certichain/internal/certops"
	"github.com/certichain/certichain/internal/explorer"
	"github.com/certichain/certichain/models"
)

type connectDoneMsg struct {
	address common.Address
	chainID uint64
	role    models.RoleState
	err     error
}

type verifyDoneMsg struct {
	result certops.VerifyResult
	err    error
}

type scanDoneMsg struct {
	sessionID string
	text      string
	err       error
}

type issueDoneMsg struct {
	result certops.IssueResult
	err    error
}

type revokeDoneMsg struct {
	outcome models.TxOutcome
	err     error
}

type transferDoneMsg struct {
	result certops.TransferResult
	err    error
}

type adminTxMsg struct {
	outcome models.TxOutcome
	err     error
}

type roleCheckMsg struct {
	address string
	role    models.AddressRole
	err     error
}

type roleRefreshMsg struct {
	role models.RoleState
	err  error
}

type historyLoadedMsg struct {
	entries []models.HistoryEntry
	err     error
}

type txStatusMsg struct {
	status explorer.TxStatus
	err    error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
