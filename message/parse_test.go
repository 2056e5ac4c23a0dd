package message_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mimemessage/message"
	"github.com/zostay/go-mimemessage/message/header"
)

func TestParse_Nested(t *testing.T) {
	t.Parallel()

	m, err := message.Parse(strings.NewReader(nestedRendered))
	require.NoError(t, err)

	assert.True(t, m.IsMultipart())
	require.Len(t, m.Parts(), 2)

	s, isText := m.Parts()[0].Text()
	assert.True(t, isText)
	assert.Equal(t, "PART1", s)

	alt := m.Parts()[1]
	b, err := alt.GetBoundary()
	assert.NoError(t, err)
	assert.Equal(t, "b2", b)
	require.Len(t, alt.Parts(), 2)

	s, _ = alt.Parts()[1].Text()
	assert.Equal(t, "SUBPART2", s)

	// parsed headers and bodies are kept as they were
	assert.Equal(t, nestedRendered, m.String())
}

func TestParse_RoundTripUnicode(t *testing.T) {
	t.Parallel()

	const (
		filename = "売伝済屯講天表禁衣住後山"
		name     = "正見打実労含投楫媛由峰図読時要住"
		unit     = "🗳🧙️📩❤️💡😒正見打実労含投楫媛由峰図読時要住🗳😍💡😂"
	)

	body := strings.Repeat(unit, 200)

	e := message.New()
	require.NoError(t, e.SetContentType("text/plain; filename="+filename+"; name="+name+"; charset=utf-8"))
	require.NoError(t, e.SetTransferEncoding("quoted-printable"))
	require.NoError(t, e.SetText(body))

	s, err := e.Render()
	require.NoError(t, err)
	assert.True(t, isASCII(s))

	p, err := message.Parse(strings.NewReader(s))
	require.NoError(t, err)

	ct, err := p.GetContentType()
	require.NoError(t, err)
	assert.Equal(t, "text/plain", ct.MediaType())
	assert.Equal(t, name, ct.Parameter("name"))
	assert.Equal(t, filename, ct.Parameter("filename"))
	assert.Equal(t, "utf-8", ct.Charset())

	text, isText := p.Text()
	assert.True(t, isText)
	assert.Equal(t, body, text)
}

func TestParse_RoundTripBase64(t *testing.T) {
	t.Parallel()

	raw := string([]byte{0, 1, 2, 0xfe, 0xff, '\r', '\n', 'x'})

	e := message.New()
	require.NoError(t, e.SetContentType("application/octet-stream"))
	require.NoError(t, e.SetContentDisposition(`attachment; filename="data.bin"`))
	require.NoError(t, e.SetTransferEncoding("base64"))
	require.NoError(t, e.SetText(raw))

	p, err := message.Parse(strings.NewReader(e.String()))
	require.NoError(t, err)

	text, _ := p.Text()
	assert.Equal(t, raw, text)

	fn, err := p.GetFilename()
	assert.NoError(t, err)
	assert.Equal(t, "data.bin", fn)
}

func TestParse_Charset(t *testing.T) {
	t.Parallel()

	const msg = "Content-Type: text/plain; charset=iso-8859-1\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		"caf=E9"

	m, err := message.Parse(strings.NewReader(msg))
	require.NoError(t, err)

	text, _ := m.Text()
	assert.Equal(t, "café", text)
	assert.Equal(t, msg, m.String())
}

func TestParse_EncodedWords(t *testing.T) {
	t.Parallel()

	const msg = "Subject: =?utf-8?q?Hello_=E2=98=BA?=\r\n" +
		"MIME-Version: 1.0\r\n" +
		"\r\n" +
		"Hello"

	m, err := message.Parse(strings.NewReader(msg))
	require.NoError(t, err)

	s, err := m.GetSubject()
	assert.NoError(t, err)
	assert.Equal(t, "Hello ☺", s)

	assert.Equal(t, []string{header.Subject, header.MIMEVersion}, m.Names())
	assert.Equal(t, msg, m.String())
}

func TestParse_BadTransferEncoding(t *testing.T) {
	t.Parallel()

	const msg = "Content-Type: text/plain\r\n" +
		"Content-Transfer-Encoding: x-uuencode\r\n" +
		"\r\n" +
		"begin 644 x"

	_, err := message.Parse(strings.NewReader(msg))
	assert.Error(t, err)
}

func TestParse_MaxDepth(t *testing.T) {
	t.Parallel()

	_, err := message.Parse(strings.NewReader(nestedRendered), message.WithMaxDepth(1))
	assert.ErrorIs(t, err, message.ErrTooDeep)

	_, err = message.Parse(strings.NewReader(nestedRendered), message.WithMaxDepth(2))
	assert.NoError(t, err)
}

func TestParse_EntityOptions(t *testing.T) {
	t.Parallel()

	m, err := message.Parse(strings.NewReader("Subject: x\r\n\r\nbody"),
		message.WithEntityOptions(message.WithBoundaryGenerator(sequence())))
	require.NoError(t, err)

	require.NoError(t, m.SetParts(message.NewText("part")))
	b, err := m.GetBoundary()
	assert.NoError(t, err)
	assert.Equal(t, "b1", b)
}
