package transfer_test

import (
	"bytes"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/zostay/go-mimemessage/message/transfer"
)

// crlfText draws bytes in which line breaks only ever appear as CRLF, which is
// the form the quoted-printable encoder writes all line breaks in.
func crlfText() *rapid.Generator[[]byte] {
	return rapid.Custom(func(t *rapid.T) []byte {
		lines := rapid.SliceOfN(rapid.SliceOf(rapid.Byte()), 1, 5).Draw(t, "lines")
		for _, line := range lines {
			for i, c := range line {
				if c == '\r' || c == '\n' {
					line[i] = ' '
				}
			}
		}
		return bytes.Join(lines, []byte("\r\n"))
	})
}

func TestBase64_RoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		b := rapid.SliceOf(rapid.Byte()).Draw(t, "b")
		got := transfer.DecodeBase64(transfer.EncodeBase64(b))
		if !bytes.Equal(b, got) {
			t.Fatalf("round trip changed %q into %q", b, got)
		}
	})
}

func TestBase64_LineLength(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		b := rapid.SliceOfN(rapid.Byte(), 0, 500).Draw(t, "b")
		for _, line := range strings.Split(transfer.EncodeBase64(b), "\r\n") {
			if len(line) > transfer.LineLength {
				t.Fatalf("line of %d characters: %q", len(line), line)
			}
		}
	})
}

func TestQP_RoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		b := crlfText().Draw(t, "b")
		got := transfer.DecodeQP(transfer.EncodeQP(b))
		if !bytes.Equal(b, got) {
			t.Fatalf("round trip changed %q into %q", b, got)
		}
	})
}

func TestQP_RoundTripText(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[^\r\n]*`).Draw(t, "s")
		got := string(transfer.DecodeQP(transfer.EncodeQP(transfer.EncodeUTF8(s))))
		if got != s {
			t.Fatalf("round trip changed %q into %q", s, got)
		}
	})
}

func TestQP_LineLengthAndEscapes(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		b := crlfText().Draw(t, "b")
		for _, line := range strings.Split(transfer.EncodeQP(b), "\r\n") {
			content := line
			soft := strings.HasSuffix(line, "=") && !strings.HasSuffix(line, "==")
			if soft {
				// a line ending in "=" is either a soft break or the last
				// character of an escape triad, which cannot be "="
				content = line[:len(line)-1]
			}

			if len(content) > transfer.LineLength {
				t.Fatalf("line of %d characters: %q", len(content), line)
			}

			// every '=' left in the content must start a complete triad
			for i := 0; i < len(content); i++ {
				if content[i] != '=' {
					continue
				}
				if i+2 >= len(content) {
					t.Fatalf("escape split by line break in %q", line)
				}
				i += 2
			}

			for i := 0; i < len(content); i++ {
				c := content[i]
				if c != '\t' && (c < ' ' || c > '~') {
					t.Fatalf("unescaped byte %#x in %q", c, line)
				}
			}
		}
	})
}
