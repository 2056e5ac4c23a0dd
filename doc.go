// Package mimemessage is a library for building, changing and writing out
// MIME entities as described by RFC 2045 and RFC 2046.
//
// A message is held in memory as a tree of message.Entity values. Each entity
// has an ordered header.Header and a body, which is either a message.Leaf
// holding the decoded payload or a message.Composite holding the sub-parts of
// a multipart entity. Setting the body keeps the Content-Type in line with it,
// so a multipart entity always has a multipart Content-Type with a boundary
// and a leaf never does.
//
// Writing an entity out with Render() or WriteTo() produces RFC-compliant wire
// text: header fields with non-ASCII text in RFC 2047 encoded-words, a CRLF
// after every line and leaf bodies converted to their charset and
// Content-Transfer-Encoding. The base64 and quoted-printable codecs in
// message/transfer keep every line within 76 characters and never split a
// quoted-printable escape across a soft line break.
//
// The other direction is handled by message.Parse(), which turns wire text
// back into an entity tree. Anything written by this library parses back to
// the same leaf payloads and Content-Type values.
//
// For building messages from a description rather than code, see
// message/builder, which accepts flat field sets from JSON or TOML. To visit
// or rewrite the parts of a message, see message/walker and message/walk.
//
// The tools/mimemsg command exposes all of the above on the command line.
package mimemessage
