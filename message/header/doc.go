// Package header provides the header of a MIME entity. A Header is an ordered
// list of fields keyed by their canonical name (see Headerize()). There is at
// most one field per name.
//
// The fields that decide how an entity is serialized (Content-Type,
// Content-Disposition, Content-Transfer-Encoding and Content-Description) have
// typed accessors that come in threes: a getter, a setter that parses the new
// value against the grammar for that field, and a delete method. Any other
// field may be read and written with Get(), Set() and Delete(). Setting a field
// to the empty string is the same as deleting it.
//
// Field bodies are stored as given. They are RFC 2047 word encoded only when
// the header is written out.
package header
