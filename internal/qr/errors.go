package qr

import (
	"errors"
	"io/fs"
	"syscall"
)

// Sentinel errors for the QR codec and capture paths. Match with
// [errors.Is].
var (
	// ErrNoCode means a frame or image was decoded successfully but carried
	// no readable QR code. On the continuous scan path this means "keep
	// scanning", not failure.
	ErrNoCode = errors.New("no QR code found")

	// ErrSourceExhausted means the frame source has no more frames to give
	// (still image already consumed, or the source was closed).
	ErrSourceExhausted = errors.New("frame source exhausted")

	// ErrCaptureDenied means the frame source exists but access to it was
	// refused.
	ErrCaptureDenied = errors.New("capture access denied")

	// ErrCaptureNoDevice means no frame source is present at the configured
	// location.
	ErrCaptureNoDevice = errors.New("no capture device found")

	// ErrCaptureBusy means the frame source is held by another process.
	ErrCaptureBusy = errors.New("capture device busy")
)

// classifyCapture maps a frame-source access failure onto the capture
// taxonomy using the error's structured identity. Unrecognized failures pass
// through unchanged.
func classifyCapture(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrPermission):
		return ErrCaptureDenied
	case errors.Is(err, fs.ErrNotExist):
		return ErrCaptureNoDevice
	case errors.Is(err, syscall.EBUSY):
		return ErrCaptureBusy
	default:
		return err
	}
}

// CaptureMessage renders a capture failure as the user-facing string shown
// in the status region.
func CaptureMessage(err error) string {
	switch {
	case errors.Is(err, ErrCaptureDenied):
		return "Capture permission denied. Please allow access and try again."
	case errors.Is(err, ErrCaptureNoDevice):
		return "No capture source found on this device."
	case errors.Is(err, ErrCaptureBusy):
		return "Capture source is already in use by another application."
	default:
		return "Capture failed: " + err.Error()
	}
}
