package header

import (
	"strings"

	"github.com/zostay/go-mimemessage/message/header/param"
)

func (h *Header) getParamValue(name string) (*param.Value, error) {
	f, err := h.GetField(name)
	if err != nil {
		return nil, err
	}

	if f.value == nil {
		return nil, ErrNoSuchFieldParameter
	}

	return f.value, nil
}

func (h *Header) getParamValueParam(name, p string) (string, error) {
	pv, err := h.getParamValue(name)
	if err != nil {
		return "", err
	}

	if !pv.HasParameter(p) {
		return "", ErrNoSuchFieldParameter
	}

	return pv.Parameter(p), nil
}

// GetContentType returns the parsed Content-Type or ErrNoSuchField.
func (h *Header) GetContentType() (*param.Value, error) {
	return h.getParamValue(ContentType)
}

// SetContentType parses and stores a new Content-Type, e.g.,
// "text/plain; charset=utf-8". The media type must have the form type/subtype.
// An empty string deletes the field.
func (h *Header) SetContentType(v string) error {
	return h.Set(ContentType, v)
}

// DeleteContentType removes the Content-Type.
func (h *Header) DeleteContentType() {
	h.Delete(ContentType)
}

// GetMediaType returns the lower-cased type/subtype of the Content-Type.
func (h *Header) GetMediaType() (string, error) {
	pv, err := h.GetContentType()
	if err != nil {
		return "", err
	}
	return pv.MediaType(), nil
}

// GetCharset returns the charset parameter of the Content-Type. It returns
// ErrNoSuchFieldParameter if the Content-Type has no charset.
func (h *Header) GetCharset() (string, error) {
	return h.getParamValueParam(ContentType, param.Charset)
}

// GetBoundary returns the boundary parameter of the Content-Type. It returns
// ErrNoSuchFieldParameter if the Content-Type has no boundary.
func (h *Header) GetBoundary() (string, error) {
	return h.getParamValueParam(ContentType, param.Boundary)
}

// SetBoundary sets the boundary parameter on the existing Content-Type. All
// other parameters are kept. It returns ErrNoSuchField if there is no
// Content-Type yet.
func (h *Header) SetBoundary(b string) error {
	f, err := h.GetField(ContentType)
	if err != nil {
		return err
	}

	segs := param.SplitOutsideQuotes(f.body, ';')
	kept := []string{segs[0]}
	for _, seg := range segs[1:] {
		k, _, _ := strings.Cut(seg, "=")
		if strings.EqualFold(strings.TrimSpace(k), param.Boundary) || strings.TrimSpace(seg) == "" {
			continue
		}
		kept = append(kept, seg)
	}

	body := strings.Join(kept, ";") + "; " + param.Boundary + "=" + param.Quote(b)
	return h.SetContentType(body)
}

// GetContentDisposition returns the parsed Content-Disposition or
// ErrNoSuchField.
func (h *Header) GetContentDisposition() (*param.Value, error) {
	return h.getParamValue(ContentDisposition)
}

// SetContentDisposition parses and stores a new Content-Disposition, e.g.,
// `attachment; filename="a.txt"`. An empty string deletes the field.
func (h *Header) SetContentDisposition(v string) error {
	return h.Set(ContentDisposition, v)
}

// DeleteContentDisposition removes the Content-Disposition.
func (h *Header) DeleteContentDisposition() {
	h.Delete(ContentDisposition)
}

// GetFilename returns the filename parameter of the Content-Disposition.
func (h *Header) GetFilename() (string, error) {
	return h.getParamValueParam(ContentDisposition, param.Filename)
}

// GetTransferEncoding returns the lower-cased Content-Transfer-Encoding or
// ErrNoSuchField.
func (h *Header) GetTransferEncoding() (string, error) {
	return h.Get(ContentTransferEncoding)
}

// SetTransferEncoding stores a new Content-Transfer-Encoding. The value is
// case-insensitive and stored lower-cased. Anything other than base64,
// quoted-printable, 7bit, 8bit or binary is rejected. An empty string deletes
// the field.
func (h *Header) SetTransferEncoding(cte string) error {
	return h.Set(ContentTransferEncoding, cte)
}

// DeleteTransferEncoding removes the Content-Transfer-Encoding.
func (h *Header) DeleteTransferEncoding() {
	h.Delete(ContentTransferEncoding)
}

// GetDescription returns the Content-Description or ErrNoSuchField.
func (h *Header) GetDescription() (string, error) {
	return h.Get(ContentDescription)
}

// SetDescription stores a new Content-Description. An empty string deletes
// the field.
func (h *Header) SetDescription(d string) error {
	return h.Set(ContentDescription, d)
}

// DeleteDescription removes the Content-Description.
func (h *Header) DeleteDescription() {
	h.Delete(ContentDescription)
}

// GetSubject returns the Subject or ErrNoSuchField.
func (h *Header) GetSubject() (string, error) {
	return h.Get(Subject)
}

// SetSubject sets the Subject. An empty string deletes the field.
func (h *Header) SetSubject(s string) {
	_ = h.Set(Subject, s)
}
