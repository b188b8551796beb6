package extractor

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ExtractTXT decodes data as UTF-8, falling back to Latin-1 when the bytes
// are not valid UTF-8. Latin-1 maps every byte, so the fallback cannot fail.
func ExtractTXT(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode text file: %w", err)
	}
	return string(decoded), nil
}
