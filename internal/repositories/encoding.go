package repositories

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"fmt"
)

// plantumlEncoding is PlantUML's URL-safe base64 variant
var plantumlEncoding = base64.NewEncoding("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz-_").WithPadding(base64.NoPadding)

// Encode compresses markup the way PlantUML servers expect in the URL path:
// raw deflate, then base64 in the PlantUML alphabet with the last group
// zero-filled to four characters.
func Encode(markup string) (string, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("failed to create compressor: %w", err)
	}
	if _, err := w.Write([]byte(markup)); err != nil {
		return "", fmt.Errorf("failed to compress markup: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to compress markup: %w", err)
	}

	data := buf.Bytes()
	if rem := len(data) % 3; rem != 0 {
		data = append(data, make([]byte, 3-rem)...)
	}
	return plantumlEncoding.EncodeToString(data), nil
}

// Decode reverses Encode
func Decode(encoded string) (string, error) {
	data, err := plantumlEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("invalid encoding: %w", err)
	}

	var out bytes.Buffer
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	if _, err := out.ReadFrom(r); err != nil {
		return "", fmt.Errorf("failed to decompress: %w", err)
	}
	return out.String(), nil
}
