package message

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/zostay/go-mimemessage/message/header"
	"github.com/zostay/go-mimemessage/message/transfer"
)

const (
	// OpenPGPDescription is the Content-Description that marks a
	// multipart/encrypted entity as an OpenPGP/MIME message.
	OpenPGPDescription = "OpenPGP encrypted message"

	// OpenPGPPreamble is written ahead of the first part of an OpenPGP/MIME
	// message.
	OpenPGPPreamble = "This is an OpenPGP/MIME encrypted message (RFC 4880 and 3156)" + header.CRLF
)

type renderOptions struct {
	noHeaders bool
	unicode   bool
}

// RenderOption changes how Render writes an entity.
type RenderOption func(*renderOptions)

// WithoutHeaders leaves out the header block of the entity being rendered.
// Sub-parts are still written with their headers.
func WithoutHeaders() RenderOption {
	return func(o *renderOptions) {
		o.noHeaders = true
	}
}

// WithUnicode writes header fields as they are stored instead of RFC 2047
// encoding non-ASCII text.
func WithUnicode() RenderOption {
	return func(o *renderOptions) {
		o.unicode = true
	}
}

// Render returns the entity in wire format. Lines end with CRLF.
//
// The header comes first, with every token of every field RFC 2047 encoded as
// needed, followed by a blank line. A Leaf body is converted to its charset and
// transfer encoded. A Composite body writes each part after a "--boundary"
// line and ends with a "--boundary--" line. A Structured body is written as
// JSON.
//
// It returns ErrNoBoundary if a multipart entity anywhere in the tree has no
// boundary.
func (e *Entity) Render(opts ...RenderOption) (string, error) {
	o := &renderOptions{}
	for _, opt := range opts {
		opt(o)
	}

	b := &strings.Builder{}
	if err := e.render(b, o); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteTo writes the rendered entity to w.
func (e *Entity) WriteTo(w io.Writer) (int64, error) {
	s, err := e.Render()
	if err != nil {
		return 0, err
	}

	n, err := io.WriteString(w, s)
	return int64(n), err
}

// String returns the rendered entity. It panics if the entity cannot be
// rendered, which only happens when a multipart boundary has been removed by
// hand or a Structured body cannot be written as JSON.
func (e *Entity) String() string {
	s, err := e.Render()
	if err != nil {
		panic(err)
	}
	return s
}

func (e *Entity) render(b *strings.Builder, o *renderOptions) error {
	if !o.noHeaders {
		enc := header.EncodeWord
		if o.unicode {
			enc = header.KeepWord
		}
		b.WriteString(e.Header.Render(enc))
	}

	switch body := e.body.(type) {
	case Composite:
		return e.renderParts(b, body, o)
	case Leaf:
		b.WriteString(e.encodeLeaf(string(body)))
	case Structured:
		j, err := json.Marshal(body.Value)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBadBody, err)
		}
		b.Write(j)
	}

	return nil
}

func (e *Entity) isOpenPGP() bool {
	mt, err := e.GetMediaType()
	if err != nil || mt != "multipart/encrypted" {
		return false
	}

	d, err := e.GetDescription()
	return err == nil && d == OpenPGPDescription
}

func (e *Entity) renderParts(b *strings.Builder, parts Composite, o *renderOptions) error {
	boundary, err := e.GetBoundary()
	if err != nil || boundary == "" {
		return ErrNoBoundary
	}

	if e.isOpenPGP() {
		b.WriteString(OpenPGPPreamble)
	}

	po := &renderOptions{unicode: o.unicode}
	for i, part := range parts {
		if part == nil {
			return fmt.Errorf("%w: part %d is nil", ErrBadBody, i)
		}

		if i > 0 {
			b.WriteString(header.CRLF)
		}

		b.WriteString("--" + boundary + header.CRLF)
		if err := part.render(b, po); err != nil {
			return err
		}
	}

	b.WriteString(header.CRLF + "--" + boundary + "--")
	return nil
}

// encodeLeaf converts the text to the declared charset and then applies the
// Content-Transfer-Encoding. Without a charset the text is used as raw bytes.
// Text that cannot be represented in the charset is also used as raw bytes.
func (e *Entity) encodeLeaf(text string) string {
	raw := []byte(text)
	if cs, err := e.GetCharset(); err == nil {
		if transfer.IsUTF8(cs) {
			raw = transfer.EncodeUTF8(text)
		} else if cb, err := transfer.EncodeCharset(cs, text); err == nil {
			raw = cb
		}
	}

	cte, err := e.GetTransferEncoding()
	if err != nil {
		return string(raw)
	}

	s, _ := transfer.Encode(cte, raw)
	return s
}
