package header

import (
	"net/textproto"
	"strings"
)

// acronyms lists the canonical spellings that differ from the usual
// capitalize-each-word rule.
var acronyms = map[string]string{
	"Content-Id":     ContentID,
	"Content-Md5":    "Content-MD5",
	"Dkim-Signature": "DKIM-Signature",
	"Message-Id":     MessageID,
	"Mime-Version":   MIMEVersion,
}

// Headerize returns the canonical capitalization of a field name. The first
// letter and every letter following a hyphen are upper-cased and all others
// are lower-cased, except for a handful of well-known names that keep their
// acronyms, such as MIME-Version and Message-ID:
//
//	header.Headerize("content-TYPE") // "Content-Type"
//	header.Headerize("mime-version") // "MIME-Version"
//
// Names containing characters that are not valid in a field name are returned
// with surrounding space trimmed and otherwise unchanged.
func Headerize(name string) string {
	n := textproto.CanonicalMIMEHeaderKey(strings.TrimSpace(name))
	if a, isAcronym := acronyms[n]; isAcronym {
		return a
	}
	return n
}
