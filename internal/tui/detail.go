package tui

import (
	"fmt"
	"strings"

	"github.com/certichain/certichain/internal/certops"
	"github.com/certichain/certichain/models"
)

// detailModel renders one verification result: the on-chain record plus the
// QR-only metadata when the lookup came from a scanned payload.
type detailModel struct {
	result certops.VerifyResult
	status string
}

func (m detailModel) View() string {
	var b strings.Builder

	b.WriteString("Certificate: ")
	b.WriteString(m.result.CertID)
	b.WriteString("\nStatus:      ")
	b.WriteString(renderStatus(m.result.Status))
	b.WriteString("\n")

	if m.result.Status != certops.StatusNotFound {
		cert := m.result.Certificate
		b.WriteString(fmt.Sprintf("\nProduct:      %s", m.result.DisplayName))
		b.WriteString(fmt.Sprintf("\nManufacturer: %s", cert.MfgName))
		if cert.MfgDate != 0 {
			b.WriteString(fmt.Sprintf("\nManufactured: %s", cert.MfgTime().Format("2006-01-02")))
		}
		if compact, ok := models.ParseCompactProduct(cert.ProductName); ok && compact.Region != "" {
			b.WriteString(fmt.Sprintf("\nRegion:       %s", compact.Region))
		}
	}

	if p := m.result.Payload; p != nil {
		b.WriteString("\n\nFrom QR code (not verified on chain):")
		if p.Location != "" {
			b.WriteString("\n  Location: " + p.Location)
		}
		if p.Details != "" {
			b.WriteString("\n  Details:  " + p.Details)
		}
		if p.Notes != "" {
			b.WriteString("\n  Notes:    " + p.Notes)
		}
		if p.IntendedRegion != "" {
			b.WriteString("\n  Region:   " + p.IntendedRegion)
		}
	}

	if m.status != "" {
		b.WriteString("\n\n" + m.status)
	}

	help := "c: copy ID │ esc: back"
	if m.result.Payload != nil {
		help = "c: copy ID │ p: copy payload JSON │ esc: back"
	}
	return renderPage("VERIFICATION RESULT", b.String(), help)
}

func renderStatus(s certops.VerifyStatus) string {
	switch s {
	case certops.StatusValid:
		return validStyle.Render("VALID")
	case certops.StatusRevoked:
		return revokedStyle.Render("REVOKED")
	default:
		return notFoundStyle.Render("NOT FOUND")
	}
}
