package qr

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/makiuchi-d/gozxing"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"
)

// DecodeImage reads a single QR code out of an in-memory image. It returns
// [ErrNoCode] when the image holds no readable code.
func DecodeImage(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("prepare bitmap: %w", err)
	}

	result, err := zxqr.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		if _, notFound := err.(gozxing.NotFoundException); notFound {
			return "", ErrNoCode
		}
		return "", fmt.Errorf("read qr code: %w", err)
	}

	return result.GetText(), nil
}

// DecodeFile decodes one uploaded still image, once, synchronously. The
// result feeds straight into verification, same as a live scan.
func DecodeFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", classifyCapture(err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("decode image file: %w", err)
	}

	return DecodeImage(img)
}
