package param

import (
	"errors"
	"fmt"
	"mime"
	"sort"
	"strings"
)

const (
	// Charset is the name of the charset parameter that may be present in the
	// Content-Type header.
	Charset = "charset"

	// Boundary is the name of the boundary parameter that may be present in
	// the Content-Type header.
	Boundary = "boundary"

	// Filename is the name of the filename parameter that may be present in
	// the Content-Disposition header.
	Filename = "filename"

	// Name is the name of the name parameter that is sometimes used in place
	// of Filename on the Content-Type header.
	Name = "name"
)

// Value represents a parsed parameterized header field, such as is used in the
// Content-Type and Content-Disposition headers. A Value object is immutable:
// You cannot change it in place. However, a Modify() function is provided to
// perform transformation of a Value into a new Value.
type Value struct {
	v  string
	ps map[string]string
}

// Parse takes a header field body, parses it as a Value and returns it. The
// primary value and the parameter names are lower-cased. Parameter values are
// kept as given, with any quoting removed.
//
// The strict RFC 2045 grammar is tried first (with RFC 2231 continuations and
// charsets). Real messages often carry unquoted 8-bit parameter values, so if
// only the parameters fail to parse, a lenient scan of the parameters is used
// instead. An invalid primary value is always an error.
func Parse(v string) (*Value, error) {
	mt, ps, err := mime.ParseMediaType(v)
	if errors.Is(err, mime.ErrInvalidMediaParameter) {
		ps, err = parseParamsLenient(v)
	}

	if err != nil {
		return nil, err
	}

	if ps == nil {
		ps = map[string]string{}
	}

	return &Value{mt, ps}, nil
}

// parseParamsLenient scans everything after the first semicolon as a list of
// name=value pairs. Quoted values may contain semicolons. Segments without an
// equal sign are skipped.
func parseParamsLenient(v string) (map[string]string, error) {
	segs := SplitOutsideQuotes(v, ';')
	ps := make(map[string]string, len(segs)-1)
	for _, seg := range segs[1:] {
		k, pv, found := strings.Cut(seg, "=")
		if !found {
			continue
		}

		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			return nil, fmt.Errorf("%w: empty parameter name", mime.ErrInvalidMediaParameter)
		}

		ps[k] = Unquote(strings.TrimSpace(pv))
	}
	return ps, nil
}

// SplitOutsideQuotes splits s on every sep that is not inside a double quoted
// string. Backslash escapes inside quotes are honored. The returned segments
// are not trimmed.
func SplitOutsideQuotes(s string, sep byte) []string {
	var (
		segs    []string
		start   int
		inQuote bool
		escaped bool
	)

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inQuote && c == '\\':
			escaped = true
		case c == '"':
			inQuote = !inQuote
		case !inQuote && c == sep:
			segs = append(segs, s[start:i])
			start = i + 1
		}
	}

	return append(segs, s[start:])
}

// Unquote removes the surrounding double quotes of a quoted string and
// resolves its backslash escapes. Anything else is returned as-is.
func Unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}

	s = s[1 : len(s)-1]
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	escaped := false
	for i := 0; i < len(s); i++ {
		if !escaped && s[i] == '\\' {
			escaped = true
			continue
		}
		escaped = false
		_ = b.WriteByte(s[i])
	}
	return b.String()
}

// Quote returns s as-is when it is a valid RFC 2045 token and as a quoted
// string otherwise.
func Quote(s string) string {
	if s != "" && strings.IndexFunc(s, notTokenRune) < 0 {
		return s
	}

	var b strings.Builder
	_ = b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			_ = b.WriteByte('\\')
		}
		_ = b.WriteByte(s[i])
	}
	_ = b.WriteByte('"')
	return b.String()
}

func notTokenRune(r rune) bool {
	return r <= ' ' || r >= 0x7f || strings.ContainsRune(`()<>@,;:\"/[]?=`, r)
}

// New creates a new parameterized header field. The parameters are optional.
// If more than one map is given, they are merged with later maps winning.
func New(v string, ps ...map[string]string) *Value {
	pv := &Value{v, map[string]string{}}
	for _, p := range ps {
		for k, val := range p {
			pv.ps[k] = val
		}
	}
	return pv
}

// Modifier is a modification to apply to a Value when calling the Modify()
// function.
type Modifier func(*Value)

// Change is a Modifier that replaces the primary value of the Value.
func Change(value string) Modifier {
	return func(pv *Value) {
		pv.v = value
	}
}

// Set is a Modifier that sets a parameter with the given name on the Value.
func Set(name, value string) Modifier {
	return func(pv *Value) {
		pv.ps[name] = value
	}
}

// Delete is a Modifier that removes the parameter with the given name from the
// Value.
func Delete(name string) Modifier {
	return func(pv *Value) {
		delete(pv.ps, name)
	}
}

// Modify clones a Value, applies the given modifications (if any) and returns
// the new Value. You can pass multiple changes to this function:
//
//	v, _ := param.Parse("multipart/mixed; boundary=abc123; charset=latin1")
//	nv := param.Modify(v, param.Change("multipart/alternative"), param.Set("charset", "utf-8"))
func Modify(pv *Value, changes ...Modifier) *Value {
	cp := pv.Clone()
	for _, change := range changes {
		change(cp)
	}
	return cp
}

// Value returns the primary value of the Value. This is the value before the
// first semi-colon.
func (pv *Value) Value() string {
	return pv.v
}

// Disposition is a synonym for Value() and returns the Content-Disposition,
// usually "inline" or "attachment".
func (pv *Value) Disposition() string {
	return pv.v
}

// MediaType is a synonym for Value() and returns the Content-Type value, e.g.,
// "text/html", "image/jpeg", "multipart/mixed", etc.
func (pv *Value) MediaType() string {
	return pv.v
}

// FullType is another synonym for Value(). It reads better next to Type() and
// Subtype().
func (pv *Value) FullType() string {
	return pv.v
}

// Type is only intended for use with the Content-Type header. It searches the
// MediaType() for a slash. If found, it will return the string before that
// slash. If no slash is found, it returns an empty string.
//
// For example, if MediaType() returns "image/jpeg", this method will return
// "image".
func (pv *Value) Type() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[:ix]
	}
	return ""
}

// Subtype is only intended for use with the Content-Type header. It searches
// the MediaType() for a slash. If found, it will return the string after that
// slash. If no slash is found, it returns an empty string.
//
// For example, if MediaType() returns "text/html", this method will return
// "html".
func (pv *Value) Subtype() string {
	if ix := strings.IndexRune(pv.v, '/'); ix >= 0 {
		return pv.v[ix+1:]
	}
	return ""
}

// Parameters returns the parameters encoded on this Value as a map. Do not
// modify this map. The behavior if you do is not defined and may change in the
// future. If you need to modify it, make a copy first.
func (pv *Value) Parameters() map[string]string {
	return pv.ps
}

// Parameter returns the value of the parameter with the given name.
func (pv *Value) Parameter(k string) string {
	return pv.ps[k]
}

// HasParameter returns true if the named parameter is set, even when it is set
// to the empty string.
func (pv *Value) HasParameter(k string) bool {
	_, has := pv.ps[k]
	return has
}

// Filename returns the value of the "filename" parameter. It is intended for
// use with the Content-Disposition header.
func (pv *Value) Filename() string {
	return pv.ps[Filename]
}

// Charset returns the value of the "charset" parameter. It is intended for use
// with the Content-Type header.
func (pv *Value) Charset() string {
	return pv.ps[Charset]
}

// Boundary returns the value of the "boundary" parameter. It is intended for
// use with the Content-Type header.
func (pv *Value) Boundary() string {
	return pv.ps[Boundary]
}

// String returns the serialized value of the Value including the primary value
// and all parameters. Parameters are sorted by name and quoted as needed.
func (pv *Value) String() string {
	pks := make([]string, 0, len(pv.ps))
	for k := range pv.ps {
		pks = append(pks, k)
	}
	sort.Strings(pks)

	parts := make([]string, len(pv.ps)+1)
	parts[0] = pv.v

	for n, k := range pks {
		parts[n+1] = fmt.Sprintf("%s=%s", k, Quote(pv.ps[k]))
	}

	return strings.Join(parts, "; ")
}

// Bytes returns the serialized value of the Value including the primary value
// and all parameters.
func (pv *Value) Bytes() []byte {
	return []byte(pv.String())
}

// Clone returns a deep copy of the Value.
func (pv *Value) Clone() *Value {
	var cp Value
	cp.v = pv.v
	cp.ps = make(map[string]string, len(pv.ps))
	for k, v := range pv.ps {
		cp.ps[k] = v
	}
	return &cp
}
