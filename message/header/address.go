package header

import (
	"github.com/zostay/go-addr/pkg/addr"
)

// ParseAddressList strictly parses a field body as an RFC 5322 address list.
func ParseAddressList(body string) (addr.AddressList, error) {
	return addr.ParseEmailAddressList(body)
}

// GetAddressList parses the named field as an address list. It returns
// ErrNoSuchField if the field is not set or the parse error if the body is not
// a valid address list.
func (h *Header) GetAddressList(name string) (addr.AddressList, error) {
	body, err := h.Get(name)
	if err != nil {
		return nil, err
	}
	return ParseAddressList(body)
}

// SetAddressList stores the given addresses in the named field. An empty list
// deletes the field.
func (h *Header) SetAddressList(name string, list ...addr.Address) error {
	return h.Set(name, addr.AddressList(list).String())
}

// SetAddresses parses body as an address list and stores the normalized list
// in the named field. Nothing is stored if the body does not parse.
func (h *Header) SetAddresses(name, body string) error {
	al, err := ParseAddressList(body)
	if err != nil {
		return &ParseError{Field: Headerize(name), Value: body, Err: err}
	}
	return h.SetAddressList(name, al...)
}
