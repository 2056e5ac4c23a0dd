package transfer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	_ "golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// IsUTF8 returns true if the charset names UTF-8. Case and hyphens are
// ignored, so "utf-8", "UTF8" and "Utf-8" all match.
func IsUTF8(charset string) bool {
	return strings.ToLower(strings.ReplaceAll(charset, "-", "")) == "utf8"
}

// EncodeUTF8 returns the bytes of text in UTF-8. Go strings already hold
// UTF-8, so this is a reinterpretation rather than a conversion: the result is
// the binary form that the line-oriented encoders work on.
func EncodeUTF8(text string) []byte {
	return []byte(text)
}

// DecodeUTF8 reinterprets b as UTF-8 text. Decoding is best effort: if b is
// not valid UTF-8 the bytes are returned unchanged and the flag is false.
func DecodeUTF8(b []byte) (string, bool) {
	return string(b), utf8.Valid(b)
}

// EncodeCharset converts text into the named charset using the IANA registry
// from golang.org/x/text. UTF-8 charsets go through EncodeUTF8(). An error is
// returned if the charset is unknown or text cannot be represented in it.
func EncodeCharset(charset, text string) ([]byte, error) {
	if IsUTF8(charset) {
		return EncodeUTF8(text), nil
	}

	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return nil, err
	}

	if e == nil {
		return nil, fmt.Errorf("no encoding found for charset %q", charset)
	}

	es, err := e.NewEncoder().String(text)
	if err != nil {
		return nil, err
	}

	return []byte(es), nil
}

// DecodeCharset converts bytes in the named charset into text. UTF-8 charsets
// go through DecodeUTF8() and never fail.
func DecodeCharset(charset string, b []byte) (string, error) {
	if IsUTF8(charset) {
		s, _ := DecodeUTF8(b)
		return s, nil
	}

	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return "", err
	}

	if e == nil {
		return "", fmt.Errorf("no encoding found for charset %q", charset)
	}

	eb, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}

	return string(eb), nil
}
