package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultSampleSize is the number of bytes inspected by DetectEncoding.
const DefaultSampleSize = 1024

// ErrEncodingUndetected is returned when no encoding could be determined.
var ErrEncodingUndetected = errors.New("encoding not detected")

// DetectEncoding guesses the character encoding of the file at path from
// its first sampleSize bytes. Plain ASCII is reported as ISO-8859-1.
func DetectEncoding(path string, sampleSize int) (string, error) {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	sample := make([]byte, sampleSize)
	n, err := io.ReadFull(f, sample)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if n == 0 {
		return "", fmt.Errorf("%w: %s is empty or unreadable", ErrEncodingUndetected, path)
	}
	return DetectEncodingBytes(sample[:n]), nil
}

// DetectEncodingBytes guesses the encoding of sample. Detected charsets
// that cannot be decoded fall back to UTF-8 or ISO-8859-1.
func DetectEncodingBytes(sample []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err == nil && result != nil && result.Charset != "" {
		if _, err := lookupEncoding(result.Charset); err == nil {
			return canonicalCharset(result.Charset)
		}
	}
	if utf8.Valid(completeRunes(sample)) {
		return "UTF-8"
	}
	return "ISO-8859-1"
}

// NewDecodingReader wraps r so it yields UTF-8 text decoded from charset.
func NewDecodingReader(r io.Reader, charset string) (io.Reader, error) {
	enc, err := lookupEncoding(charset)
	if err != nil {
		return nil, err
	}
	// Strip a UTF-8 byte order mark if one is present.
	return transform.NewReader(r, transform.Chain(enc.NewDecoder(), unicode.BOMOverride(encoding.Nop.NewDecoder()))), nil
}

func lookupEncoding(charset string) (encoding.Encoding, error) {
	switch canonicalCharset(charset) {
	case "UTF-8":
		return encoding.Nop, nil
	case "ISO-8859-1":
		return charmap.ISO8859_1, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", charset, err)
	}
	return enc, nil
}

func canonicalCharset(charset string) string {
	switch strings.ToLower(charset) {
	case "ascii", "us-ascii", "latin-1", "latin1", "iso-8859-1":
		return "ISO-8859-1"
	case "utf-8", "utf8":
		return "UTF-8"
	}
	return charset
}

// completeRunes drops a multi-byte sequence cut off at the end of the sample.
func completeRunes(b []byte) []byte {
	for i := 1; i <= utf8.UTFMax && i <= len(b); i++ {
		c := b[len(b)-i]
		if c < utf8.RuneSelf {
			return b
		}
		if utf8.RuneStart(c) {
			if utf8.FullRune(b[len(b)-i:]) {
				return b
			}
			return b[:len(b)-i]
		}
	}
	return b
}
