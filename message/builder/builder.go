// Package builder constructs entities from flat field sets. A field set names
// the Content-Type, Content-Disposition and Content-Transfer-Encoding of an
// entity plus its body, which may itself be a list of field sets for a
// multipart entity. Field sets usually come from JSON or TOML documents.
package builder

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/zostay/go-mimemessage/message"
	"github.com/zostay/go-mimemessage/message/header"
)

// Keys recognized by FromMap.
const (
	KeyContentType             = "contentType"
	KeyContentDisposition      = "contentDisposition"
	KeyContentTransferEncoding = "contentTransferEncoding"
	KeyContentTransfer         = "contentTransfer"
	KeyHeaders                 = "headers"
	KeyBody                    = "body"
)

// Alternatives is an ordered list of candidate values for a header. Only the
// first one is used.
type Alternatives []string

// First returns the first alternative or an empty string if there are none.
func (a Alternatives) First() string {
	if len(a) == 0 {
		return ""
	}
	return a[0]
}

// Fields is the flat description of a single entity.
//
// Body may be nil, a string for a leaf, a message.Body, a []Fields (or a
// []any holding Fields or maps as accepted by FromMap) for a multipart, or any
// other value, which becomes a Structured body.
type Fields struct {
	ContentType             Alternatives
	ContentDisposition      Alternatives
	ContentTransferEncoding Alternatives

	// Headers holds any other header fields to set. They are set in name
	// order after the content headers.
	Headers map[string]string

	Body any
}

func alternatives(key string, v any) (Alternatives, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		return Alternatives{v}, nil
	case []string:
		return v, nil
	case []any:
		alts := make(Alternatives, len(v))
		for i, a := range v {
			s, isString := a.(string)
			if !isString {
				return nil, fmt.Errorf("%s alternative %d is %T, not a string", key, i, a)
			}
			alts[i] = s
		}
		return alts, nil
	}
	return nil, fmt.Errorf("%s is %T, not a string or list of strings", key, v)
}

// FromMap turns a decoded document into Fields. The contentTransfer key is
// accepted as a synonym for contentTransferEncoding and is ignored when both
// are present. A body given as a list of
// maps is converted recursively. Unknown keys are ignored.
func FromMap(m map[string]any) (Fields, error) {
	var (
		f   Fields
		err error
	)

	for k, v := range m {
		switch k {
		case KeyContentType:
			f.ContentType, err = alternatives(k, v)
		case KeyContentDisposition:
			f.ContentDisposition, err = alternatives(k, v)
		case KeyContentTransferEncoding:
			f.ContentTransferEncoding, err = alternatives(k, v)
		case KeyContentTransfer:
			if _, hasCanonical := m[KeyContentTransferEncoding]; !hasCanonical {
				f.ContentTransferEncoding, err = alternatives(KeyContentTransferEncoding, v)
			}
		case KeyHeaders:
			f.Headers, err = headers(v)
		case KeyBody:
			f.Body, err = body(v)
		}

		if err != nil {
			return Fields{}, err
		}
	}

	return f, nil
}

func headers(v any) (map[string]string, error) {
	hm, isMap := v.(map[string]any)
	if !isMap {
		return nil, fmt.Errorf("%s is %T, not a map", KeyHeaders, v)
	}

	out := make(map[string]string, len(hm))
	for name, fb := range hm {
		s, isString := fb.(string)
		if !isString {
			return nil, fmt.Errorf("header %q is %T, not a string", name, fb)
		}
		out[name] = s
	}
	return out, nil
}

func body(v any) (any, error) {
	switch v := v.(type) {
	case []map[string]any:
		parts := make([]Fields, len(v))
		for i, pm := range v {
			p, err := FromMap(pm)
			if err != nil {
				return nil, fmt.Errorf("part %d: %w", i, err)
			}
			parts[i] = p
		}
		return parts, nil
	case []any:
		parts := make([]Fields, len(v))
		for i, item := range v {
			pm, isMap := item.(map[string]any)
			if !isMap {
				return nil, fmt.Errorf("part %d is %T: %w", i, item, message.ErrBadBody)
			}

			p, err := FromMap(pm)
			if err != nil {
				return nil, fmt.Errorf("part %d: %w", i, err)
			}
			parts[i] = p
		}
		return parts, nil
	}
	return v, nil
}

// Build constructs the entity described by f. The options are passed to every
// entity created.
func Build(f Fields, opts ...message.Option) (*message.Entity, error) {
	e := message.New(opts...)

	if ct := f.ContentType.First(); ct != "" {
		if err := e.SetContentType(ct); err != nil {
			return nil, err
		}
	}

	if cd := f.ContentDisposition.First(); cd != "" {
		if err := e.SetContentDisposition(cd); err != nil {
			return nil, err
		}
	}

	if cte := f.ContentTransferEncoding.First(); cte != "" {
		if err := e.SetTransferEncoding(cte); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(f.Headers))
	for name := range f.Headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := e.Set(header.Headerize(name), f.Headers[name]); err != nil {
			return nil, err
		}
	}

	if err := setBody(e, f.Body, opts); err != nil {
		return nil, err
	}

	return e, nil
}

func setBody(e *message.Entity, b any, opts []message.Option) error {
	switch b := b.(type) {
	case nil:
		return nil
	case string:
		if b == "" {
			return nil
		}
		return e.SetText(b)
	case message.Body:
		return e.SetBody(b)
	case *message.Entity:
		return e.SetParts(b)
	case []*message.Entity:
		return e.SetParts(b...)
	case []Fields:
		parts := make([]*message.Entity, len(b))
		for i, pf := range b {
			p, err := Build(pf, opts...)
			if err != nil {
				return fmt.Errorf("part %d: %w", i, err)
			}
			parts[i] = p
		}
		return e.SetParts(parts...)
	case []any:
		fs, err := body(b)
		if err != nil {
			return err
		}
		return setBody(e, fs, opts)
	}

	return e.SetBody(message.Structured{Value: b})
}

// DecodeJSON reads a JSON document describing an entity and builds it.
func DecodeJSON(r io.Reader, opts ...message.Option) (*message.Entity, error) {
	var m map[string]any
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("unable to decode JSON: %w", err)
	}

	f, err := FromMap(m)
	if err != nil {
		return nil, err
	}

	return Build(f, opts...)
}

// DecodeTOML reads a TOML document describing an entity and builds it. A
// multipart body is written as an array of tables named body.
func DecodeTOML(r io.Reader, opts ...message.Option) (*message.Entity, error) {
	var m map[string]any
	if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("unable to decode TOML: %w", err)
	}

	f, err := FromMap(m)
	if err != nil {
		return nil, err
	}

	return Build(f, opts...)
}
