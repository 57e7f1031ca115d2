// Package qr is the codec bridge between certificate payloads and QR
// images: encoding on issuance, decoding on verification, and the
// one-result-per-session scanner over a pluggable frame source.
package qr

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/certichain/certichain/internal/config"
	"github.com/certichain/certichain/models"
)

// Encoder renders certificate payloads into QR images at a fixed pixel size
// with the library's standard quiet-zone margin.
type Encoder struct {
	size   int
	outDir string
}

func NewEncoder(cfg config.QR) *Encoder {
	return &Encoder{size: cfg.Size, outDir: cfg.OutputDir}
}

// Encode serializes the payload to JSON and renders it as a PNG, returning
// the raw image bytes for on-screen display.
func (e *Encoder) Encode(p models.QRPayload) ([]byte, error) {
	body, err := p.Encode()
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	png, err := qrcode.Encode(string(body), qrcode.Medium, e.size)
	if err != nil {
		return nil, fmt.Errorf("render qr image: %w", err)
	}
	return png, nil
}

// SaveFile writes the payload's QR image into the output directory named by
// its certificate ID and returns the file path, for download and printing.
func (e *Encoder) SaveFile(p models.QRPayload) (string, error) {
	png, err := e.Encode(p)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(e.outDir, p.CertID+".png")
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("write qr image: %w", err)
	}
	return path, nil
}
