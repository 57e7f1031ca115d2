package models

import "encoding/json"

// QRPayload is the client-defined JSON structure encoded into (and decoded
// from) a certificate QR image. Only the ID and a compaction of
// name/location/region ever reach the chain; the remaining fields survive
// solely inside the QR image handed to the certificate holder.
//
// The wire format carries no version field, checksum, or signature, so a QR
// payload is not cryptographically bound to the on-chain record it names.
type QRPayload struct {
	CertID         string `json:"certId"`
	ProductName    string `json:"productName"`
	Location       string `json:"location"`
	IntendedRegion string `json:"intendedRegion"`
	Details        string `json:"details"`
	Notes          string `json:"notes"`
	MfgDate        string `json:"mfgDate"`
}

// Encode serializes the payload into its QR wire form.
func (p QRPayload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// ParseQRPayload attempts to read a scanned string as a QR payload. It
// returns false when the input is not a JSON object carrying a non-empty
// certId, in which case callers fall back to treating the raw input as a
// certificate ID.
func ParseQRPayload(s string) (QRPayload, bool) {
	var p QRPayload
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return QRPayload{}, false
	}
	if p.CertID == "" {
		return QRPayload{}, false
	}
	return p, true
}
