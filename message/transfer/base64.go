package transfer

import (
	"encoding/base64"
	"io"
	"strings"
)

// LineLength is the longest line RFC 2045 permits in an encoded body, not
// counting the line break.
const LineLength = 76

const crlf = "\r\n"

// newlineWriter inserts lbr after every `every` bytes. No break is written
// after the final line.
type newlineWriter struct {
	every int
	acc   int
	lbr   []byte
	w     io.Writer
}

func (nw *newlineWriter) Write(b []byte) (int, error) {
	ix, n := 0, 0
	for len(b[ix:])+nw.acc > nw.every {
		if nw.acc == nw.every {
			if _, err := nw.w.Write(nw.lbr); err != nil {
				return n, err
			}
			nw.acc = 0
			continue
		}

		ln, err := nw.w.Write(b[ix : ix+(nw.every-nw.acc)])
		n += ln
		if err != nil {
			return n, err
		}

		_, err = nw.w.Write(nw.lbr)
		if err != nil {
			return n, err
		}

		ix += nw.every - nw.acc
		nw.acc = 0
	}

	ln, err := nw.w.Write(b[ix:])
	n += ln
	if err != nil {
		return n, err
	}

	nw.acc += len(b[ix:])

	return n, nil
}

// EncodeBase64 returns b in the standard base64 alphabet with a CRLF after
// every 76 characters. There is no line break at the end.
func EncodeBase64(b []byte) string {
	var out strings.Builder
	out.Grow(base64.StdEncoding.EncodedLen(len(b)) * (LineLength + 2) / LineLength)

	enc := base64.NewEncoder(base64.StdEncoding, &newlineWriter{
		every: LineLength,
		lbr:   []byte(crlf),
		w:     &out,
	})

	// writes to a strings.Builder cannot fail
	_, _ = enc.Write(b)
	_ = enc.Close()

	return out.String()
}

// DecodeBase64 decodes base64 text. Whitespace and any other character outside
// the base64 alphabet is ignored, as is padding. The URL-safe alphabet is
// accepted too. A dangling final character that cannot form a byte is
// dropped.
func DecodeBase64(s string) []byte {
	clean := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '+', c == '/':
			clean = append(clean, c)
		case c == '-':
			clean = append(clean, '+')
		case c == '_':
			clean = append(clean, '/')
		}
	}

	if len(clean)%4 == 1 {
		clean = clean[:len(clean)-1]
	}

	out := make([]byte, base64.RawStdEncoding.DecodedLen(len(clean)))
	n, _ := base64.RawStdEncoding.Decode(out, clean)
	return out[:n]
}
