// Package transfer contains the codecs that turn entity bodies into wire-safe
// text and back. The Content-Transfer-Encoding header names the codec: only
// quoted-printable and base64 change the bytes. The 7bit, 8bit and binary
// encodings (and a missing header) leave the bytes as-is.
//
// For the sake of this package, "encoded" means the content has been
// transformed into the named Content-Transfer-Encoding and "decoded" means it
// has been turned back into the bytes of its charset. Moving between Go text
// and those bytes is the job of EncodeUTF8(), EncodeCharset() and their
// decoding counterparts.
//
// Every function here is pure. Decoding is best effort and never fails:
// characters that do not belong to the encoding are skipped or passed through.
package transfer
