package models

import (
	"encoding/json"
	"time"
)

// Certificate is the on-chain product-authenticity record as returned by the
// registry contract. The contract has no explicit existence flag: a lookup
// for an unknown ID returns zero values, so an empty product name combined
// with a zero manufacturing date is treated as "not found".
type Certificate struct {
	ID          string `json:"id"`
	ProductName string `json:"product_name"`
	MfgName     string `json:"mfg_name"`
	MfgDate     int64  `json:"mfg_date"` // UNIX seconds
	Valid       bool   `json:"valid"`
}

// Found reports whether the contract returned a real record for the queried
// ID. A certificate whose on-chain fields genuinely happen to be empty and
// zero is indistinguishable from an absent one; that ambiguity comes from the
// contract's return shape.
func (c Certificate) Found() bool {
	return c.ProductName != "" || c.MfgDate != 0
}

// MfgTime returns the manufacturing date as a time.Time in UTC.
func (c Certificate) MfgTime() time.Time {
	return time.Unix(c.MfgDate, 0).UTC()
}

// CompactProduct is the JSON blob written into the contract's productName
// field at issuance: a compaction of the display name, manufacturing location
// and intended region. Field order matters for the wire bytes.
type CompactProduct struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Region   string `json:"region"`
}

// Compact serializes the compaction exactly as it is stored on-chain.
func (p CompactProduct) Compact() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseCompactProduct attempts to decode an on-chain productName field back
// into its compacted parts. Older records (or records issued by other
// clients) may hold a plain string; the second return value reports whether
// the field was a compaction.
func ParseCompactProduct(s string) (CompactProduct, bool) {
	var p CompactProduct
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return CompactProduct{}, false
	}
	if p.Name == "" {
		return CompactProduct{}, false
	}
	return p, true
}
