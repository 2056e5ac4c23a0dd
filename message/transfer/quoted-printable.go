package transfer

import (
	"strings"
)

// qpWrapWidth is the fixed column at which candidate soft breaks are placed.
// Moving a break past an escape triad adds at most two characters, so no line
// carries more than LineLength characters ahead of its soft break marker.
const qpWrapWidth = LineLength - 2

const upperHex = "0123456789ABCDEF"

// qpLiteral reports whether c may appear as itself in quoted-printable text.
// Line breaks are handled separately.
func qpLiteral(c byte) bool {
	return c == '\t' || (c >= ' ' && c <= '~' && c != '=')
}

func writeQPEscape(b *strings.Builder, c byte) {
	b.WriteByte('=')
	b.WriteByte(upperHex[c>>4])
	b.WriteByte(upperHex[c&0x0f])
}

// splitLines splits on CRLF, CR or LF.
func splitLines(b []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '\n':
			lines = append(lines, b[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, b[start:i])
			if i+1 < len(b) && b[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(lines, b[start:])
}

// escapeQPLine escapes a single logical line. Trailing whitespace is escaped
// too; the returned flag reports whether that happened.
func escapeQPLine(line []byte) (string, bool) {
	var b strings.Builder
	b.Grow(len(line) * 3)

	last := len(line) - 1
	trailing := last >= 0 && (line[last] == ' ' || line[last] == '\t')
	for i, c := range line {
		if qpLiteral(c) && !(trailing && i == last) {
			b.WriteByte(c)
			continue
		}
		writeQPEscape(&b, c)
	}

	return b.String(), trailing
}

// wrapQPLine breaks an escaped line into physical lines. Candidate breaks sit
// at every multiple of qpWrapWidth. A candidate that falls inside an =HH triad
// is moved to just after the triad so the triad stays on one line. Every
// '=' in escaped text starts a triad, which makes the check a look back of at
// most two characters.
func wrapQPLine(line string) []string {
	var phys []string
	start := 0
	for cand := qpWrapWidth; cand < len(line); cand += qpWrapWidth {
		brk := cand
		switch {
		case line[cand-1] == '=':
			brk = cand + 2
		case line[cand-2] == '=':
			brk = cand + 1
		}

		if brk >= len(line) {
			break
		}

		phys = append(phys, line[start:brk])
		start = brk
	}
	return append(phys, line[start:])
}

// EncodeQP encodes b as quoted-printable text (RFC 2045 section 6.7).
//
// Every byte other than TAB and printable ASCII is written as =HH with
// upper-case hex digits, and '=' is always written as =3D. Any line ending
// (CRLF, CR or LF) becomes a CRLF. Lines longer than the limit are wrapped
// with soft breaks ("=" followed by CRLF) that never split an =HH triad. A
// space or tab at the end of a line is escaped and followed by a soft break
// so that it survives relays that trim trailing whitespace.
func EncodeQP(b []byte) string {
	var out strings.Builder
	out.Grow(len(b) * 3)

	for i, line := range splitLines(b) {
		if i > 0 {
			out.WriteString(crlf)
		}

		esc, trailing := escapeQPLine(line)
		phys := wrapQPLine(esc)
		if last := phys[len(phys)-1]; trailing && len(last) >= LineLength {
			// make room for the soft break by moving the escaped whitespace
			// down a line
			phys = append(phys[:len(phys)-1], last[:len(last)-3], last[len(last)-3:])
		}

		for j, p := range phys {
			if j > 0 {
				out.WriteString("=" + crlf)
			}
			out.WriteString(p)
		}

		if trailing {
			out.WriteString("=" + crlf)
		}
	}

	return out.String()
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// removeSoftBreaks drops every "=" that is immediately followed by a CRLF, LF
// or CR, along with that line break.
func removeSoftBreaks(s string) string {
	if !strings.Contains(s, "=\n") && !strings.Contains(s, "=\r") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '=' && i+1 < len(s) {
			switch {
			case strings.HasPrefix(s[i+1:], crlf):
				i += 2
				continue
			case s[i+1] == '\n', s[i+1] == '\r':
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// DecodeQP decodes quoted-printable text. Soft breaks ("=" followed by CRLF,
// LF or CR) are removed first and then every =HH is replaced by the byte it
// names. An '=' that does not start a valid escape is passed through as-is.
// Hard line breaks are kept exactly as they appear in s.
func DecodeQP(s string) []byte {
	s = removeSoftBreaks(s)

	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '=' && i+2 < len(s) {
			hi, okHi := unhex(s[i+1])
			lo, okLo := unhex(s[i+2])
			if okHi && okLo {
				out = append(out, hi<<4|lo)
				i += 2
				continue
			}
		}

		out = append(out, c)
	}
	return out
}
