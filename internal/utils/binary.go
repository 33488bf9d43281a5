package utils

import (
	"bytes"
	"unicode/utf8"
)

// sniffLength bounds how many leading bytes are scanned for NUL bytes.
const sniffLength = 8000

// IsBinary reports whether data appears to be binary rather than UTF-8 text.
// Content is binary when it is not valid UTF-8 or when a NUL byte occurs
// within the first sniffLength bytes.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if !utf8.Valid(data) {
		return true
	}
	sniffed := data
	if len(sniffed) > sniffLength {
		sniffed = sniffed[:sniffLength]
	}
	return bytes.IndexByte(sniffed, 0) >= 0
}
