package models

import "time"

// HistoryAction labels a locally recorded client activity.
type HistoryAction string

const (
	ActionIssue    HistoryAction = "issue"
	ActionRevoke   HistoryAction = "revoke"
	ActionVerify   HistoryAction = "verify"
	ActionScan     HistoryAction = "scan"
	ActionTransfer HistoryAction = "transfer"
)

// HistoryEntry is one row of the client's local activity log. The log is an
// append-only record of what this client did; it is never used as a cache of
// chain state.
type HistoryEntry struct {
	ID        string
	Action    HistoryAction
	CertID    string
	TxHash    string
	Detail    string
	CreatedAt time.Time
}
