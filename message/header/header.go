package header

import (
	"errors"
	"io"
	"strings"
)

// Errors returned by various header methods and functions.
var (
	// ErrNoSuchField is returned by Header methods when the operation
	// being performed failed because the header named does not exist.
	ErrNoSuchField = errors.New("no such header field")

	// ErrNoSuchFieldParameter is returned by Header methods when the
	// operation being performed failed because the header exists, but a
	// sub-field of the header does not exist.
	ErrNoSuchFieldParameter = errors.New("no such header field parameter")
)

// These are the fields with special meaning to a MIME entity along with a few
// of the common RFC 5322 fields.
const (
	Bcc                     = "Bcc"
	Cc                      = "Cc"
	ContentDescription      = "Content-Description"
	ContentDisposition      = "Content-Disposition"
	ContentID               = "Content-ID"
	ContentTransferEncoding = "Content-Transfer-Encoding"
	ContentType             = "Content-Type"
	Date                    = "Date"
	From                    = "From"
	MessageID               = "Message-ID"
	MIMEVersion             = "MIME-Version"
	ReplyTo                 = "Reply-To"
	Sender                  = "Sender"
	Subject                 = "Subject"
	To                      = "To"
)

// CRLF is the line break used for all output.
const CRLF = "\r\n"

// Header is an ordered collection of fields with at most one field for each
// canonical name. The zero value is an empty header ready to use.
//
// A Header is not safe for concurrent modification.
type Header struct {
	fields []*Field
}

// Clone returns a copy of the header. Fields are immutable, so they are shared.
func (h *Header) Clone() *Header {
	fs := make([]*Field, len(h.fields))
	copy(fs, h.fields)
	return &Header{fields: fs}
}

// Len returns the number of fields in the header.
func (h *Header) Len() int {
	return len(h.fields)
}

// Fields returns the fields of the header in order. The returned slice is a
// copy.
func (h *Header) Fields() []*Field {
	fs := make([]*Field, len(h.fields))
	copy(fs, h.fields)
	return fs
}

// Names returns the canonical names of the fields in order.
func (h *Header) Names() []string {
	ns := make([]string, len(h.fields))
	for i, f := range h.fields {
		ns[i] = f.name
	}
	return ns
}

func (h *Header) index(name string) int {
	name = Headerize(name)
	for i, f := range h.fields {
		if f.name == name {
			return i
		}
	}
	return -1
}

// GetField returns the named field or ErrNoSuchField.
func (h *Header) GetField(name string) (*Field, error) {
	ix := h.index(name)
	if ix < 0 {
		return nil, ErrNoSuchField
	}
	return h.fields[ix], nil
}

// SetField stores the field, replacing any field with the same name in place
// or appending it to the end of the header.
func (h *Header) SetField(f *Field) {
	if ix := h.index(f.name); ix >= 0 {
		h.fields[ix] = f
		return
	}
	h.fields = append(h.fields, f)
}

// Get retrieves the body of the named field. It returns ErrNoSuchField if the
// field is not set.
func (h *Header) Get(name string) (string, error) {
	f, err := h.GetField(name)
	if err != nil {
		return "", err
	}
	return f.body, nil
}

// Set stores body in the named field. An empty body deletes the field.
//
// Fields with a grammar (see Rules) are parsed first and a *ParseError is
// returned if the body is rejected, leaving the header unchanged. Any other
// field is stored as given.
func (h *Header) Set(name, body string) error {
	if body == "" {
		h.Delete(name)
		return nil
	}

	f, err := ParseField(name, body)
	if err != nil {
		return err
	}

	h.SetField(f)
	return nil
}

// Delete removes the named field. Deleting a field that is not set does
// nothing.
func (h *Header) Delete(name string) {
	ix := h.index(name)
	if ix < 0 {
		return
	}
	h.fields = append(h.fields[:ix], h.fields[ix+1:]...)
}

// Render returns the header block: each field followed by a CRLF and then a
// final CRLF ending the block. Field bodies are passed through the given
// WordEncoder.
func (h *Header) Render(enc WordEncoder) string {
	var b strings.Builder
	for _, f := range h.fields {
		b.WriteString(f.name)
		b.WriteString(": ")
		if f.value != nil {
			b.WriteString(EncodeParameterized(f.body, enc))
		} else {
			b.WriteString(enc(f.body))
		}
		b.WriteString(CRLF)
	}
	b.WriteString(CRLF)
	return b.String()
}

// WriteTo writes the header block to w with non-ASCII text RFC 2047 encoded.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, h.Render(EncodeWord))
	return int64(n), err
}
