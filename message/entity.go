package message

import (
	"errors"
	"strings"

	"github.com/zostay/go-mimemessage/message/header"
	"github.com/zostay/go-mimemessage/message/header/param"
)

const (
	// DefaultMultipartContentType is the media type given to an entity that
	// receives parts while it has no multipart Content-Type.
	DefaultMultipartContentType = "multipart/mixed"

	// DefaultTextContentType is the Content-Type given to an entity that
	// receives a text body while it has no Content-Type or a multipart one.
	DefaultTextContentType = "text/plain; charset=utf-8"
)

var (
	// ErrNoBoundary is returned when serializing a multipart entity whose
	// Content-Type has no boundary parameter.
	ErrNoBoundary = errors.New("multipart entity has no boundary")

	// ErrBadBody is returned when an entity body cannot be serialized or a
	// value cannot be turned into a body.
	ErrBadBody = errors.New("unsupported entity body")
)

// Body is the content of an Entity. It is always one of Leaf, Composite or
// Structured.
type Body interface {
	isBody()
}

// Leaf is a single part payload. The string holds the decoded content. When
// the Content-Type charset is utf-8 the content is UTF-8 text, otherwise it is
// treated as the raw bytes to transfer encode.
type Leaf string

// Composite is the ordered list of sub-parts of a multipart entity.
type Composite []*Entity

// Structured is any other Go value used as a body. It is written out as JSON
// without charset or transfer encoding.
type Structured struct {
	Value any
}

func (Leaf) isBody()       {}
func (Composite) isBody()  {}
func (Structured) isBody() {}

// Entity is a MIME entity: a header and a body. The body is either a Leaf, a
// Composite of sub-entities or a Structured value.
//
// Assigning a body keeps the Content-Type consistent with it. A Composite body
// always comes with a multipart Content-Type carrying a boundary and any other
// body comes with a non-multipart Content-Type.
//
// The zero value is an empty entity ready to use. An Entity is not safe for
// concurrent modification.
type Entity struct {
	// Header is the header of the entity.
	header.Header

	body       Body
	boundaries BoundaryGenerator
}

// Option configures an Entity created with New.
type Option func(*Entity)

// WithBoundaryGenerator sets the generator used when the entity needs a new
// multipart boundary.
func WithBoundaryGenerator(g BoundaryGenerator) Option {
	return func(e *Entity) {
		e.boundaries = g
	}
}

// New returns a new empty entity.
func New(opts ...Option) *Entity {
	e := &Entity{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewText returns a new entity with the given text body and a Content-Type of
// text/plain; charset=utf-8.
func NewText(text string, opts ...Option) *Entity {
	e := New(opts...)
	_ = e.SetText(text)
	return e
}

// NewMultipart returns a new entity with the given media type, such as
// "multipart/alternative", holding the given parts. An empty media type means
// DefaultMultipartContentType.
func NewMultipart(mediaType string, parts []*Entity, opts ...Option) (*Entity, error) {
	e := New(opts...)
	if mediaType != "" {
		if err := e.SetContentType(mediaType); err != nil {
			return nil, err
		}
	}

	if err := e.SetParts(parts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Clone returns a deep copy of the entity and all its sub-parts. The value of
// a Structured body is shared.
func (e *Entity) Clone() *Entity {
	cp := &Entity{
		Header:     *e.Header.Clone(),
		boundaries: e.boundaries,
	}

	switch b := e.body.(type) {
	case Composite:
		parts := make(Composite, len(b))
		for i, p := range b {
			if p != nil {
				parts[i] = p.Clone()
			}
		}
		cp.body = parts
	default:
		cp.body = b
	}

	return cp
}

// GetHeader returns the header of the entity.
func (e *Entity) GetHeader() *header.Header {
	return &e.Header
}

func (e *Entity) generateBoundary() string {
	if e.boundaries != nil {
		return e.boundaries.Boundary()
	}
	return GenerateBoundary()
}

// Body returns the body of the entity or nil if there is none.
func (e *Entity) Body() Body {
	return e.body
}

// SetBody replaces the body and brings the Content-Type in line with it:
//
//   - For a Composite, a missing or non-multipart Content-Type becomes
//     multipart/mixed with a new boundary. A multipart Content-Type without a
//     boundary gains a new one and keeps its type and other parameters. An
//     existing boundary is kept.
//
//   - For a Leaf or a Structured body, a missing or multipart Content-Type is
//     reset to text/plain; charset=utf-8. Any other Content-Type is kept.
//
//   - A nil body removes the body and leaves the Content-Type alone.
func (e *Entity) SetBody(b Body) error {
	switch b.(type) {
	case Composite:
		if err := e.ensureMultipart(); err != nil {
			return err
		}
	case Leaf, Structured:
		if err := e.ensureSinglepart(); err != nil {
			return err
		}
	}

	e.body = b
	return nil
}

func (e *Entity) ensureMultipart() error {
	ct, err := e.GetContentType()
	if err != nil || ct.Type() != "multipart" {
		mixed := param.New(DefaultMultipartContentType, map[string]string{
			param.Boundary: e.generateBoundary(),
		})
		return e.SetContentType(mixed.String())
	}

	if ct.Boundary() == "" {
		return e.SetBoundary(e.generateBoundary())
	}

	return nil
}

func (e *Entity) ensureSinglepart() error {
	ct, err := e.GetContentType()
	if err != nil || ct.Type() == "multipart" {
		return e.SetContentType(DefaultTextContentType)
	}
	return nil
}

// ClearBody removes the body without touching the header.
func (e *Entity) ClearBody() {
	e.body = nil
}

// SetText sets a Leaf body.
func (e *Entity) SetText(text string) error {
	return e.SetBody(Leaf(text))
}

// Text returns the content of a Leaf body. The flag is false if the body is
// not a Leaf.
func (e *Entity) Text() (string, bool) {
	l, isLeaf := e.body.(Leaf)
	return string(l), isLeaf
}

// SetParts sets a Composite body holding the given parts. Calling it with no
// parts still makes the entity multipart.
func (e *Entity) SetParts(parts ...*Entity) error {
	c := make(Composite, len(parts))
	copy(c, parts)
	return e.SetBody(c)
}

// AddPart appends parts to the Composite body. If the entity does not have a
// Composite body yet, any other body is replaced.
func (e *Entity) AddPart(parts ...*Entity) error {
	c, _ := e.body.(Composite)
	return e.SetBody(append(c, parts...))
}

// Parts returns the sub-parts of a Composite body or nil for any other body.
func (e *Entity) Parts() []*Entity {
	c, _ := e.body.(Composite)
	return c
}

// IsMultipart returns true when the Content-Type has the primary type
// multipart.
func (e *Entity) IsMultipart() bool {
	ct, err := e.GetContentType()
	if err != nil {
		return false
	}
	return strings.EqualFold(ct.Type(), "multipart")
}
