package models

// TxOutcome captures the facts of a confirmed write: the transaction hash,
// the block it was mined in, and whether the receipt reported success.
type TxOutcome struct {
	TxHash      string
	BlockNumber uint64
	Success     bool
}

// ShortHash returns an abbreviated transaction hash for status lines.
func (o TxOutcome) ShortHash() string {
	if len(o.TxHash) <= 10 {
		return o.TxHash
	}
	return o.TxHash[:10] + "..."
}
