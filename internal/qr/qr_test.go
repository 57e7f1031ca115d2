package qr

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certichain/certichain/internal/config"
	"github.com/certichain/certichain/internal/logger"
	"github.com/certichain/certichain/models"
)

func testEncoder(t *testing.T) *Encoder {
	t.Helper()
	return NewEncoder(config.QR{Size: 512, OutputDir: t.TempDir()})
}

func testPayload() models.QRPayload {
	return models.QRPayload{
		CertID:         "CERT-1705276800000-A1B2C3",
		ProductName:    "Widget",
		Location:       "Plant A",
		IntendedRegion: "EU",
		Details:        "batch 7",
		Notes:          "",
		MfgDate:        "2024-01-15",
	}
}

// TestEncodeDecode_Roundtrip verifies that an encoded payload decodes back
// to the identical JSON document.
func TestEncodeDecode_Roundtrip(t *testing.T) {
	enc := testEncoder(t)
	p := testPayload()

	png, err := enc.Encode(p)
	require.NoError(t, err)
	require.NotEmpty(t, png)

	img, _, err := image.Decode(bytes.NewReader(png))
	require.NoError(t, err)

	text, err := DecodeImage(img)
	require.NoError(t, err)

	decoded, ok := models.ParseQRPayload(text)
	require.True(t, ok)
	assert.Equal(t, p, decoded)
}

// TestEncode_WireKeys pins the exact JSON keys of the QR wire format.
func TestEncode_WireKeys(t *testing.T) {
	body, err := testPayload().Encode()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))

	for _, key := range []string{"certId", "productName", "location", "intendedRegion", "details", "notes", "mfgDate"} {
		assert.Contains(t, raw, key)
	}
	assert.Len(t, raw, 7)
}

// TestSaveFile_WritesNamedImage verifies download-path file output.
func TestSaveFile_WritesNamedImage(t *testing.T) {
	enc := testEncoder(t)
	p := testPayload()

	path, err := enc.SaveFile(p)
	require.NoError(t, err)
	assert.Equal(t, p.CertID+".png", filepath.Base(path))

	text, err := DecodeFile(path)
	require.NoError(t, err)

	decoded, ok := models.ParseQRPayload(text)
	require.True(t, ok)
	assert.Equal(t, p.CertID, decoded.CertID)
}

// TestDecodeImage_NoCode verifies the keep-scanning signal for a codeless
// frame.
func TestDecodeImage_NoCode(t *testing.T) {
	blank := image.NewRGBA(image.Rect(0, 0, 64, 64))

	_, err := DecodeImage(blank)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoCode)
}

// TestDecodeFile_MissingFile verifies capture classification on the upload
// path.
func TestDecodeFile_MissingFile(t *testing.T) {
	_, err := DecodeFile(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCaptureNoDevice)
}

// fakeSource feeds a scripted frame sequence and records Close calls.
type fakeSource struct {
	frames []image.Image
	errs   []error
	idx    int
	closed int
}

func (f *fakeSource) Next(ctx context.Context) (image.Image, error) {
	if f.idx >= len(f.frames) {
		return nil, ErrSourceExhausted
	}
	frame, err := f.frames[f.idx], f.errs[f.idx]
	f.idx++
	return frame, err
}

func (f *fakeSource) Close() error {
	f.closed++
	return nil
}

func qrFrame(t *testing.T, text string) image.Image {
	t.Helper()
	enc := NewEncoder(config.QR{Size: 256, OutputDir: t.TempDir()})
	png, err := enc.Encode(models.QRPayload{CertID: text})
	require.NoError(t, err)
	img, _, err := image.Decode(bytes.NewReader(png))
	require.NoError(t, err)
	return img
}

// TestScanner_FirstDetectionWins verifies that junk frames are skipped and
// the first decoded code ends the session with the source released.
func TestScanner_FirstDetectionWins(t *testing.T) {
	blank := image.NewRGBA(image.Rect(0, 0, 64, 64))
	src := &fakeSource{
		frames: []image.Image{blank, blank, qrFrame(t, "CERT-123-ABC"), qrFrame(t, "CERT-456-DEF")},
		errs:   []error{nil, nil, nil, nil},
	}

	s := NewScanner(src, logger.Nop())
	result, err := s.Scan(context.Background())
	require.NoError(t, err)

	decoded, ok := models.ParseQRPayload(result.Text)
	require.True(t, ok)
	assert.Equal(t, "CERT-123-ABC", decoded.CertID)
	assert.Equal(t, result.SessionID, s.SessionID())
	assert.Equal(t, 3, src.idx, "scanning stops at first detection")
	assert.GreaterOrEqual(t, src.closed, 1, "source released on success")
}

// TestScanner_SourceErrorReleases verifies release on the failure path.
func TestScanner_SourceErrorReleases(t *testing.T) {
	src := &fakeSource{
		frames: []image.Image{nil},
		errs:   []error{ErrCaptureBusy},
	}

	s := NewScanner(src, logger.Nop())
	_, err := s.Scan(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCaptureBusy)
	assert.GreaterOrEqual(t, src.closed, 1, "source released on error")
}

// TestScanner_CancellationReleases verifies release on early cancellation.
func TestScanner_CancellationReleases(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{}
	s := NewScanner(src, logger.Nop())

	_, err := s.Scan(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, src.closed, 1, "source released on cancellation")
}

// TestScanner_SingleUse verifies at most one session per scanner.
func TestScanner_SingleUse(t *testing.T) {
	src := &fakeSource{
		frames: []image.Image{qrFrame(t, "CERT-1-A")},
		errs:   []error{nil},
	}
	s := NewScanner(src, logger.Nop())

	_, err := s.Scan(context.Background())
	require.NoError(t, err)

	_, err = s.Scan(context.Background())
	assert.ErrorIs(t, err, ErrSourceExhausted)
}

// TestStillSource_ServesOnce verifies the upload path source.
func TestStillSource_ServesOnce(t *testing.T) {
	enc := NewEncoder(config.QR{Size: 256, OutputDir: t.TempDir()})
	path, err := enc.SaveFile(models.QRPayload{CertID: "CERT-STILL-1"})
	require.NoError(t, err)

	src := NewStillSource(path)
	img, err := src.Next(context.Background())
	require.NoError(t, err)
	require.NotNil(t, img)

	_, err = src.Next(context.Background())
	assert.ErrorIs(t, err, ErrSourceExhausted)

	require.NoError(t, src.Close())
	require.NoError(t, src.Close(), "close is idempotent")
}

// TestDirSource_PicksUpNewFiles verifies the drop-directory camera analog:
// pre-existing files are ignored, a newly dropped image becomes a frame.
func TestDirSource_PicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	enc := NewEncoder(config.QR{Size: 256, OutputDir: dir})
	_, err := enc.SaveFile(models.QRPayload{CertID: "CERT-OLD-1"}) // present before open
	require.NoError(t, err)

	src := NewDirSource(dir, 5*time.Millisecond)
	defer src.Close()

	type frameResult struct {
		img image.Image
		err error
	}
	results := make(chan frameResult, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		img, err := src.Next(ctx)
		results <- frameResult{img: img, err: err}
	}()

	time.Sleep(50 * time.Millisecond) // let the source prime on existing files
	_, err = enc.SaveFile(models.QRPayload{CertID: "CERT-NEW-1"})
	require.NoError(t, err)

	res := <-results
	require.NoError(t, res.err)
	require.NotNil(t, res.img)

	text, err := DecodeImage(res.img)
	require.NoError(t, err)
	decoded, ok := models.ParseQRPayload(text)
	require.True(t, ok)
	assert.Equal(t, "CERT-NEW-1", decoded.CertID)
}

// TestDirSource_MissingDirectory classifies as no-device.
func TestDirSource_MissingDirectory(t *testing.T) {
	src := NewDirSource(filepath.Join(t.TempDir(), "absent"), time.Millisecond)
	defer src.Close()

	_, err := src.Next(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCaptureNoDevice)
}

// TestDirSource_ClosedReturnsExhausted verifies post-close behavior.
func TestDirSource_ClosedReturnsExhausted(t *testing.T) {
	dir := t.TempDir()
	src := NewDirSource(dir, time.Millisecond)
	require.NoError(t, src.Close())

	_, err := src.Next(context.Background())
	assert.ErrorIs(t, err, ErrSourceExhausted)
}

// TestCaptureMessage covers the user-facing capture strings.
func TestCaptureMessage(t *testing.T) {
	assert.Contains(t, CaptureMessage(ErrCaptureDenied), "permission denied")
	assert.Contains(t, CaptureMessage(ErrCaptureNoDevice), "No capture source")
	assert.Contains(t, CaptureMessage(ErrCaptureBusy), "already in use")
	assert.Contains(t, CaptureMessage(os.ErrClosed), "Capture failed")
}
