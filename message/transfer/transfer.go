package transfer

import (
	"bytes"
	"errors"
	"io"
	"strings"
)

const (
	None            = ""                 // bytes will be left as-is
	Bit7            = "7bit"             // bytes will be left as-is
	Bit8            = "8bit"             // bytes will be left as-is
	Binary          = "binary"           // bytes will be left as-is
	QuotedPrintable = "quoted-printable" // bytes will be transformed between quoted-printable and binary data
	Base64          = "base64"           // bytes will be transformed between base64 and binary data
)

// ErrUnknownTransferEncoding is returned when a Content-Transfer-Encoding
// other than the ones listed above is requested.
var ErrUnknownTransferEncoding = errors.New("unknown content transfer encoding")

// Transcoding is a pair of functions that can be used to transform to and from
// a transfer encoding.
type Transcoding struct {
	// Encode turns binary data into its encoded textual form.
	Encode func([]byte) string

	// Decode turns the encoded textual form back into binary data. It must
	// accept anything Encode produces.
	Decode func(string) []byte
}

// AsIsTranscoder is just a shortcut to a no-op encoder/decoder.
var AsIsTranscoder = Transcoding{
	Encode: func(b []byte) string { return string(b) },
	Decode: func(s string) []byte { return []byte(s) },
}

// Transcodings defines the supported Content-Transfer-Encodings and how to
// handle them. Keys are lower-case.
var Transcodings = map[string]Transcoding{
	None:            AsIsTranscoder,
	Bit7:            AsIsTranscoder,
	Bit8:            AsIsTranscoder,
	Binary:          AsIsTranscoder,
	QuotedPrintable: {EncodeQP, DecodeQP},
	Base64:          {EncodeBase64, DecodeBase64},
}

// IsKnown returns true if cte names a supported Content-Transfer-Encoding.
// The comparison is case-insensitive. The empty string is not a name.
func IsKnown(cte string) bool {
	if cte == None {
		return false
	}
	_, known := Transcodings[strings.ToLower(cte)]
	return known
}

func lookup(cte string) (Transcoding, error) {
	tc, known := Transcodings[strings.ToLower(cte)]
	if !known {
		return AsIsTranscoder, ErrUnknownTransferEncoding
	}
	return tc, nil
}

// Encode applies the named transfer encoding to b. Unknown names leave the
// bytes as-is and return ErrUnknownTransferEncoding along with them.
func Encode(cte string, b []byte) (string, error) {
	tc, err := lookup(cte)
	return tc.Encode(b), err
}

// Decode reverses the named transfer encoding. Unknown names leave the text
// as-is and return ErrUnknownTransferEncoding along with it.
func Decode(cte string, s string) ([]byte, error) {
	tc, err := lookup(cte)
	return tc.Decode(s), err
}

// encoder buffers everything written to it and writes the encoded form on
// Close. Both codecs need to see whole lines to place their line breaks.
type encoder struct {
	buf bytes.Buffer
	enc func([]byte) string
	w   io.Writer
}

func (e *encoder) Write(p []byte) (int, error) {
	return e.buf.Write(p)
}

// Close encodes the buffered data and writes it out. It does not close the
// wrapped io.Writer.
func (e *encoder) Close() error {
	_, err := io.WriteString(e.w, e.enc(e.buf.Bytes()))
	e.buf.Reset()
	return err
}

// NewEncoder returns an io.WriteCloser that encodes everything written to it
// with the named transfer encoding and writes the result to w when closed. You
// must call Close() when you are finished writing.
func NewEncoder(cte string, w io.Writer) (io.WriteCloser, error) {
	tc, err := lookup(cte)
	if err != nil {
		return nil, err
	}
	return &encoder{enc: tc.Encode, w: w}, nil
}

// NewDecoder returns an io.Reader that yields the decoded form of everything
// read from r. The whole of r is read on the first call to Read.
func NewDecoder(cte string, r io.Reader) (io.Reader, error) {
	tc, err := lookup(cte)
	if err != nil {
		return nil, err
	}
	return &decoder{dec: tc.Decode, r: r}, nil
}

type decoder struct {
	dec  func(string) []byte
	r    io.Reader
	out  *bytes.Reader
	fail error
}

func (d *decoder) Read(p []byte) (int, error) {
	if d.out == nil && d.fail == nil {
		in, err := io.ReadAll(d.r)
		if err != nil {
			d.fail = err
		} else {
			d.out = bytes.NewReader(d.dec(string(in)))
		}
	}

	if d.fail != nil {
		return 0, d.fail
	}
	return d.out.Read(p)
}
