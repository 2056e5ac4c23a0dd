// Package message is the heart of this library. It provides the Entity, an
// in-memory MIME entity tree that can be built up piece by piece, rendered in
// wire format and parsed back from it.
//
// An Entity is a header plus a body. The body is a Leaf holding decoded
// content, a Composite holding sub-entities or a Structured value. Assigning a
// body keeps the Content-Type in step with it, so a message can be put
// together without thinking about boundaries:
//
//	msg := message.New()
//	msg.SetSubject("Fancy message")
//	_ = msg.SetParts(
//	  message.NewText("Hello *World*!"),
//	  attachment,
//	)
//
//	_, err := msg.WriteTo(w)
//
// Rendering applies the charset and Content-Transfer-Encoding of each leaf and
// RFC 2047 encodes header fields. Parse reads a message back into an Entity.
package message
