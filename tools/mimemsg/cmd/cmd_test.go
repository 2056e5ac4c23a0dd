package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mimemessage/message"
	"github.com/zostay/go-mimemessage/message/transfer"
)

var attachmentMsg = strings.ReplaceAll(`Content-Type: multipart/mixed; boundary=X

--X
Content-Type: text/plain; charset=utf-8

Hello
--X
Content-Type: application/pdf
Content-Disposition: attachment; filename="a.pdf"
Content-Transfer-Encoding: base64

JVBERi0=
--X--`, "\n", "\r\n")

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs the root command with fresh flag values. The commands share
// package state, so tests using it must not run in parallel.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	verbose = false
	buildUnicode, buildNoHeaders = false, false
	buildFrom, buildTo, buildSubject, buildDate = "", "", "", ""
	roundtripStrict = false
	encodeEncoding, decodeEncoding = transfer.Base64, transfer.Base64
	stripTypes = nil

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestPrintTree(t *testing.T) {
	t.Parallel()

	e, err := message.Parse(strings.NewReader(attachmentMsg))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printTree(&buf, e))
	assert.Equal(t, `1. multipart/mixed 2 parts
   1. text/plain 5 bytes
   2. application/pdf base64 "a.pdf" 5 bytes
`, buf.String())
}

func TestStrip(t *testing.T) {
	t.Parallel()

	e, err := message.Parse(strings.NewReader(attachmentMsg))
	require.NoError(t, err)

	stripped, err := strip(e, nil)
	require.NoError(t, err)
	assert.Equal(t, strings.ReplaceAll(`Content-Type: multipart/mixed; boundary=X

--X
Content-Type: text/plain; charset=utf-8

Hello
--X--`, "\n", "\r\n"), stripped.String())

	stripped, err = strip(e, []string{"TEXT/PLAIN"})
	require.NoError(t, err)
	require.Len(t, stripped.Parts(), 1)
	mt, err := stripped.Parts()[0].GetMediaType()
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mt)

	_, err = strip(e, []string{"text/plain", "application/pdf"})
	assert.ErrorIs(t, err, ErrNothingLeft)

	// the original is left alone
	assert.Len(t, e.Parts(), 2)
}

func TestDiffText(t *testing.T) {
	t.Parallel()

	assert.Empty(t, diffText("same", "same"))

	d := diffText("Subject: one\r\n", "Subject: two\r\n")
	assert.True(t, strings.HasPrefix(d, "@@ -"))
}

func TestCommands(t *testing.T) {
	t.Run("build", func(t *testing.T) {
		path := writeFile(t, "msg.json", `{"body": "Grüße"}`)

		out, err := execute(t, "", "build",
			"--subject", "Grüße",
			"--date", "Mon, 05 Dec 2022 16:46:38 -0600",
			path)
		require.NoError(t, err)

		assert.Equal(t, strings.ReplaceAll(`Content-Type: text/plain; charset=utf-8
Subject: =?utf-8?q?Gr=C3=BC=C3=9Fe?=
Date: Mon, 05 Dec 2022 16:46:38 -0600

Grüße`, "\n", "\r\n"), out)
	})

	t.Run("build unicode without headers", func(t *testing.T) {
		path := writeFile(t, "msg.toml", "contentTransfer = \"base64\"\nbody = \"hello\"\n")

		out, err := execute(t, "", "build", "--no-headers", "--unicode", path)
		require.NoError(t, err)
		assert.Equal(t, "aGVsbG8=", out)
	})

	t.Run("build bad date", func(t *testing.T) {
		path := writeFile(t, "msg.json", `{"body": "x"}`)

		_, err := execute(t, "", "build", "--date", "not a date at all", path)
		assert.Error(t, err)
	})

	t.Run("roundtrip description", func(t *testing.T) {
		path := writeFile(t, "msg.json", `{
  "contentType": "multipart/alternative",
  "body": [
    {"contentTransfer": "quoted-printable", "body": "Grüße, ☺"},
    {"contentType": "text/html; charset=utf-8", "contentTransfer": "base64", "body": "<p>hi</p>"}
  ]
}`)

		out, err := execute(t, "", "roundtrip", path)
		require.NoError(t, err)
		assert.Equal(t, "ok\n", out)
	})

	t.Run("roundtrip raw", func(t *testing.T) {
		path := writeFile(t, "msg.eml", attachmentMsg)

		out, err := execute(t, "", "roundtrip", "--strict", path)
		require.NoError(t, err)
		assert.Equal(t, "ok\n", out)
	})

	t.Run("roundtrip strict mismatch", func(t *testing.T) {
		path := writeFile(t, "msg.eml", "content-type: text/plain\r\n\r\nhi")

		out, err := execute(t, "", "roundtrip", path)
		require.NoError(t, err)
		assert.Contains(t, out, "ok\n")

		out, err = execute(t, "", "roundtrip", "--strict", path)
		assert.ErrorIs(t, err, ErrRoundtripMismatch)
		assert.Contains(t, out, "+++ serialized")
	})

	t.Run("encode", func(t *testing.T) {
		out, err := execute(t, "hello", "encode")
		require.NoError(t, err)
		assert.Equal(t, "aGVsbG8=", out)

		out, err = execute(t, "café", "encode", "-e", "quoted-printable")
		require.NoError(t, err)
		assert.Equal(t, "caf=C3=A9", out)

		_, err = execute(t, "x", "encode", "-e", "uuencode")
		assert.ErrorIs(t, err, transfer.ErrUnknownTransferEncoding)
	})

	t.Run("decode", func(t *testing.T) {
		out, err := execute(t, "aGVs\r\nbG8=", "decode")
		require.NoError(t, err)
		assert.Equal(t, "hello", out)

		out, err = execute(t, "caf=C3=\r\n=A9", "decode", "--encoding", "QUOTED-PRINTABLE")
		require.NoError(t, err)
		assert.Equal(t, "café", out)
	})

	t.Run("tree", func(t *testing.T) {
		path := writeFile(t, "msg.eml", attachmentMsg)

		out, err := execute(t, "", "tree", path)
		require.NoError(t, err)
		assert.Contains(t, out, `2. application/pdf base64 "a.pdf" 5 bytes`)
	})

	t.Run("tree stdin", func(t *testing.T) {
		out, err := execute(t, attachmentMsg, "--verbose", "tree", "-")
		require.NoError(t, err)
		assert.Contains(t, out, "1. multipart/mixed 2 parts")
	})

	t.Run("strip", func(t *testing.T) {
		path := writeFile(t, "msg.eml", attachmentMsg)

		out, err := execute(t, "", "strip", path)
		require.NoError(t, err)
		assert.NotContains(t, out, "a.pdf")
		assert.Contains(t, out, "Hello")

		_, err = execute(t, "", "strip", "-t", "text/plain", "-t", "application/pdf", path)
		assert.ErrorIs(t, err, ErrNothingLeft)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "", "tree", filepath.Join(t.TempDir(), "nope.eml"))
		assert.Error(t, err)
	})
}
