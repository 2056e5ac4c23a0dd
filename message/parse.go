package message

import (
	"errors"
	"fmt"
	"io"

	gomessage "github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"

	"github.com/zostay/go-mimemessage/message/header"
)

// Constants related to Parse() options.
const (
	// DefaultMaxMultipartDepth is the default depth the parser will recurse
	// into a message.
	DefaultMaxMultipartDepth = 10

	// DefaultMaxHeaderLength is the default maximum byte length of a header
	// block.
	DefaultMaxHeaderLength = 1 << 20
)

// ErrTooDeep is returned by Parse when multipart entities are nested deeper
// than the configured WithMaxDepth option (or the default,
// DefaultMaxMultipartDepth).
var ErrTooDeep = errors.New("multipart nesting exceeds the maximum parse depth")

type parser struct {
	maxDepth     int
	maxHeaderLen int64
	entityOpts   []Option
}

// ParseOption configures Parse.
type ParseOption func(pr *parser)

// WithMaxDepth sets the deepest level of multipart nesting the parser accepts.
// The top-level entity is at depth 0.
func WithMaxDepth(maxDepth int) ParseOption {
	return func(pr *parser) {
		pr.maxDepth = maxDepth
	}
}

// WithMaxHeaderLength sets the maximum byte length of any header block. A
// negative value removes the limit.
func WithMaxHeaderLength(n int64) ParseOption {
	return func(pr *parser) {
		pr.maxHeaderLen = n
	}
}

// WithEntityOptions passes options to every entity the parser creates, such as
// WithBoundaryGenerator.
func WithEntityOptions(opts ...Option) ParseOption {
	return func(pr *parser) {
		pr.entityOpts = append(pr.entityOpts, opts...)
	}
}

// Parse reads a complete message and returns the entity tree it describes.
//
// Header fields keep their order and have any RFC 2047 encoded-words decoded.
// The last of several fields with the same name wins. Fields with a grammar
// must match it or a *header.ParseError is returned.
//
// Multipart bodies are split into sub-entities. Every other body is transfer
// decoded. Text bodies in a charset other than UTF-8 are converted to UTF-8,
// which the serializer reverses when writing the entity back out. A charset
// that cannot be converted leaves the raw bytes in place.
//
// Bodies are attached as parsed without adjusting the Content-Type.
func Parse(r io.Reader, opts ...ParseOption) (*Entity, error) {
	pr := &parser{
		maxDepth:     DefaultMaxMultipartDepth,
		maxHeaderLen: DefaultMaxHeaderLength,
	}
	for _, opt := range opts {
		opt(pr)
	}

	ge, err := gomessage.ReadWithOptions(r, &gomessage.ReadOptions{MaxHeaderBytes: pr.maxHeaderLen})
	if err != nil && !gomessage.IsUnknownCharset(err) {
		return nil, err
	}

	return pr.convert(ge, 0)
}

func (pr *parser) convert(ge *gomessage.Entity, depth int) (*Entity, error) {
	e := New(pr.entityOpts...)

	fields := ge.Header.Fields()
	for fields.Next() {
		body, err := fields.Text()
		if err != nil {
			body = fields.Value()
		}

		f, err := header.ParseField(fields.Key(), body)
		if err != nil {
			return nil, err
		}
		e.SetField(f)
	}

	mr := ge.MultipartReader()
	if mr == nil {
		b, err := io.ReadAll(ge.Body)
		if err != nil {
			return nil, fmt.Errorf("unable to read body: %w", err)
		}
		e.body = Leaf(b)
		return e, nil
	}

	if depth >= pr.maxDepth {
		return nil, ErrTooDeep
	}

	parts := Composite{}
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !gomessage.IsUnknownCharset(err) {
			return nil, fmt.Errorf("unable to read part %d: %w", len(parts), err)
		}

		part, err := pr.convert(p, depth+1)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	e.body = parts
	return e, nil
}
