package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/certichain/certichain/internal/qr"
)

// scanModel tracks one in-flight scan session. The scanner is single-use; a
// fresh one is created every time the scan screen is entered.
type scanModel struct {
	spinner  spinner.Model
	scanner  *qr.Scanner
	cancel   context.CancelFunc
	dir      string
	stopping bool
}

func newScanModel(dir string) scanModel {
	return scanModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		dir:     dir,
	}
}

func (m scanModel) View() string {
	body := m.spinner.View() + " Watching " + m.dir + " for QR images..."
	if m.stopping {
		body += "\n\nStopping..."
	}
	return renderPage("SCAN QR CODE", body, "esc: stop scanning")
}
