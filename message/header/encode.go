package header

import (
	"mime"
	"strings"

	"github.com/zostay/go-mimemessage/message/header/param"
)

// WordEncoder transforms a piece of a field body on its way out.
type WordEncoder func(string) string

// EncodeWord RFC 2047 encodes s as UTF-8 Q encoded-words if it contains
// anything other than printable ASCII. Otherwise s is returned unchanged.
func EncodeWord(s string) string {
	return mime.QEncoding.Encode("utf-8", s)
}

// KeepWord returns s unchanged. Use it to emit raw Unicode headers.
func KeepWord(s string) string {
	return s
}

// EncodeParameterized encodes the body of a parameterized field piece by
// piece. The body is split on semicolons and each piece is split on equal
// signs, ignoring both inside quoted strings, and every token is passed
// through enc. Whitespace around tokens is kept.
//
// An encoded-word is not a valid parameter token, so a parameter value that
// enc changes is written out as a quoted string.
func EncodeParameterized(body string, enc WordEncoder) string {
	segs := param.SplitOutsideQuotes(body, ';')
	for i, seg := range segs {
		toks := param.SplitOutsideQuotes(seg, '=')
		for j, tok := range toks {
			toks[j] = encodeToken(tok, enc, j > 0)
		}
		segs[i] = strings.Join(toks, "=")
	}
	return strings.Join(segs, ";")
}

func encodeToken(tok string, enc WordEncoder, isValue bool) string {
	core := strings.TrimSpace(tok)
	if core == "" {
		return tok
	}

	lead := tok[:strings.Index(tok, core)]
	trail := tok[len(lead)+len(core):]

	quoted := len(core) >= 2 && core[0] == '"' && core[len(core)-1] == '"'
	text := core
	if quoted {
		text = param.Unquote(core)
	}

	e := enc(text)
	if e == text {
		return tok
	}

	if quoted || isValue {
		e = param.Quote(e)
	}

	return lead + e + trail
}
