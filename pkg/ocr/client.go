package ocr

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
)

// MaxImageBytes bounds the size of an uploaded screenshot.
const MaxImageBytes = 10 << 20

var (
	ErrNoText        = errors.New("no text found in image")
	ErrImageTooLarge = errors.New("image too large")
	ErrEmptyImage    = errors.New("empty image")
)

// Extractor reads the text out of a screenshot of a message.
type Extractor interface {
	Extract(ctx context.Context, image []byte, filename string) (string, error)
	Name() string
}

// Digest identifies an image in logs without recording its content.
func Digest(image []byte) string {
	sum := sha256.Sum256(image)
	return fmt.Sprintf("%x", sum)[:16]
}

func validate(image []byte) error {
	if len(image) == 0 {
		return ErrEmptyImage
	}
	if len(image) > MaxImageBytes {
		return ErrImageTooLarge
	}
	return nil
}
