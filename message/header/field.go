package header

import (
	"fmt"
	"strings"

	"github.com/zostay/go-mimemessage/message/header/param"
	"github.com/zostay/go-mimemessage/message/transfer"
)

// ParseError is returned when a field body does not match the grammar for
// that field. The header is left unchanged when this happens.
type ParseError struct {
	Field string // canonical name of the field being set
	Value string // the rejected body
	Err   error  // the reason the body was rejected
}

// Error returns a description of the parse failure.
func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse %s header %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the cause of the parse failure.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Field is a single header field. The body is what gets written out. Fields
// that have a parameterized grammar also carry the parsed form.
type Field struct {
	name  string
	body  string
	value *param.Value
}

// Name returns the canonical name of the field.
func (f *Field) Name() string {
	return f.name
}

// Body returns the body of the field.
func (f *Field) Body() string {
	return f.body
}

// Value returns the parsed parameterized value of a Content-Type or
// Content-Disposition field. It returns nil for every other field.
func (f *Field) Value() *param.Value {
	return f.value
}

// String returns the field as it would appear in a header without any word
// encoding and without the line break.
func (f *Field) String() string {
	return f.name + ": " + f.body
}

// Rule is the grammar for a single kind of field. It receives the body being
// set and returns the body to store and, for parameterized fields, the parsed
// value.
type Rule func(body string) (string, *param.Value, error)

// Rules maps canonical field names to the grammar used to parse them. Fields
// without a rule are stored as given.
var Rules = map[string]Rule{
	ContentType:             parseContentType,
	ContentDisposition:      parseContentDisposition,
	ContentTransferEncoding: parseTransferEncoding,
	ContentDescription:      parseText,
}

// ParseField builds a field from the given name and body, running the body
// through the grammar for that field if there is one. The name is
// canonicalized with Headerize(). A *ParseError is returned if the body is
// rejected.
func ParseField(name, body string) (*Field, error) {
	name = Headerize(name)

	rule, hasRule := Rules[name]
	if !hasRule {
		return &Field{name: name, body: body}, nil
	}

	b, pv, err := rule(body)
	if err != nil {
		return nil, &ParseError{Field: name, Value: body, Err: err}
	}

	return &Field{name: name, body: b, value: pv}, nil
}

func parseContentType(body string) (string, *param.Value, error) {
	body = strings.TrimSpace(body)
	pv, err := param.Parse(body)
	if err != nil {
		return "", nil, err
	}

	if pv.Type() == "" || pv.Subtype() == "" {
		return "", nil, fmt.Errorf("media type %q is not of the form type/subtype", pv.MediaType())
	}

	return body, pv, nil
}

func parseContentDisposition(body string) (string, *param.Value, error) {
	body = strings.TrimSpace(body)
	pv, err := param.Parse(body)
	if err != nil {
		return "", nil, err
	}

	return body, pv, nil
}

func parseTransferEncoding(body string) (string, *param.Value, error) {
	cte := strings.ToLower(strings.TrimSpace(body))
	if !transfer.IsKnown(cte) {
		return "", nil, fmt.Errorf("%w: %q", transfer.ErrUnknownTransferEncoding, cte)
	}

	return cte, nil, nil
}

func parseText(body string) (string, *param.Value, error) {
	return strings.TrimSpace(body), nil, nil
}
