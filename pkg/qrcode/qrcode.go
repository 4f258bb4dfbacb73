// Package qrcode generates member check-in codes and renders them as PNG images.
package qrcode

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"image/png"
	"math/big"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const (
	letterCount = 16
	digitCount  = 16

	// CodeLength is the length of every generated check-in code
	CodeLength = letterCount + digitCount

	// DefaultSize is the side in pixels of a rendered code
	DefaultSize = 300

	letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	digits  = "0123456789"
)

var ErrWeakCode = errors.New("qrcode: code must be 32 characters with 16 letters and 16 digits")

// Generate returns a new random check-in code made of 16 letters and 16 digits
// in a shuffled order.
func Generate() (string, error) {
	buf := make([]byte, 0, CodeLength)
	for i := 0; i < letterCount; i++ {
		c, err := pick(letters)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}
	for i := 0; i < digitCount; i++ {
		c, err := pick(digits)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}

	// Fisher-Yates
	for i := len(buf) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		j := int(n.Int64())
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf), nil
}

func pick(alphabet string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
	if err != nil {
		return 0, fmt.Errorf("qrcode: reading random source: %w", err)
	}
	return alphabet[n.Int64()], nil
}

// Validate checks that code has the shape produced by Generate
func Validate(code string) error {
	if len(code) != CodeLength {
		return ErrWeakCode
	}
	var nLetters, nDigits int
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c >= '0' && c <= '9':
			nDigits++
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			nLetters++
		default:
			return ErrWeakCode
		}
	}
	if nLetters != letterCount || nDigits != digitCount {
		return ErrWeakCode
	}
	return nil
}

// EncodePNG renders content as a square QR image of the given size
func EncodePNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}

	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qrcode: encode: %w", err)
	}

	code, err = barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("qrcode: scale: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return nil, fmt.Errorf("qrcode: png: %w", err)
	}
	return buf.Bytes(), nil
}
