package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCertificate_Found covers the zero-value "not found" convention.
func TestCertificate_Found(t *testing.T) {
	tests := []struct {
		name string
		cert Certificate
		want bool
	}{
		{
			name: "full record",
			cert: Certificate{ProductName: "Widget", MfgDate: 1705276800},
			want: true,
		},
		{
			name: "name only",
			cert: Certificate{ProductName: "Widget"},
			want: true,
		},
		{
			name: "date only",
			cert: Certificate{MfgDate: 1705276800},
			want: true,
		},
		{
			name: "zero record means absent",
			cert: Certificate{ID: "CERT-1-ABC", Valid: false},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cert.Found())
		})
	}
}

// TestCompactProduct_WireBytes pins the exact on-chain byte layout of the
// productName compaction.
func TestCompactProduct_WireBytes(t *testing.T) {
	compact, err := CompactProduct{Name: "Widget", Location: "Plant A", Region: "EU"}.Compact()
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Widget","location":"Plant A","region":"EU"}`, compact)
}

// TestParseCompactProduct covers compaction decoding against plain names.
func TestParseCompactProduct(t *testing.T) {
	compact, ok := ParseCompactProduct(`{"name":"Widget","location":"Plant A","region":"EU"}`)
	require.True(t, ok)
	assert.Equal(t, "Widget", compact.Name)
	assert.Equal(t, "EU", compact.Region)

	_, ok = ParseCompactProduct("Plain Widget")
	assert.False(t, ok)

	// JSON without a name is some other document, not a compaction.
	_, ok = ParseCompactProduct(`{"location":"Plant A"}`)
	assert.False(t, ok)
}

// TestParseQRPayload covers the scanned-text dispatch rule.
func TestParseQRPayload(t *testing.T) {
	payload, ok := ParseQRPayload(`{"certId":"CERT-1-ABC","productName":"Widget"}`)
	require.True(t, ok)
	assert.Equal(t, "CERT-1-ABC", payload.CertID)

	_, ok = ParseQRPayload("CERT-1-ABC")
	assert.False(t, ok, "raw IDs are not payloads")

	_, ok = ParseQRPayload(`{"productName":"Widget"}`)
	assert.False(t, ok, "payload without certId is rejected")
}

// TestRoleInfo_View verifies exactly one view per role combination, with
// owner beating admin.
func TestRoleInfo_View(t *testing.T) {
	assert.Equal(t, RoleUser, RoleInfo{}.View())
	assert.Equal(t, RoleManufacturer, RoleInfo{IsAdmin: true}.View())
	assert.Equal(t, RoleOwner, RoleInfo{IsOwner: true}.View())
	assert.Equal(t, RoleOwner, RoleInfo{IsAdmin: true, IsOwner: true}.View())
}

// TestTxOutcome_ShortHash covers display truncation.
func TestTxOutcome_ShortHash(t *testing.T) {
	o := TxOutcome{TxHash: "0x123456789abcdef0"}
	assert.Equal(t, "0x12345678...", o.ShortHash())

	short := TxOutcome{TxHash: "0xabc"}
	assert.Equal(t, "0xabc", short.ShortHash())
}
