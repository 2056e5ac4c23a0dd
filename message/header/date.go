package header

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/araddon/dateparse"
)

// Even more custom date formats, built from those seen in the wild that the
// usual parsers have trouble with.
const (
	// UnixDateWithEarlyYear is a weird one, eh?
	UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"
)

// DateFormat is the RFC 5322 layout used when writing the Date field.
const DateFormat = "Mon, 02 Jan 2006 15:04:05 -0700"

// ParseTime parses a date using the format specified by RFC 5322 first and
// falls back to parsing it in many other formats.
//
// It either returns a parsed time or the parse error.
func ParseTime(body string) (time.Time, error) {
	t, err := mail.ParseDate(body)
	if err == nil {
		return t, nil
	}

	t, err = dateparse.ParseAny(body)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(UnixDateWithEarlyYear, body)
	if err == nil {
		return t, nil
	}

	return t, fmt.Errorf("time string %q cannot be parsed", body)
}

// GetDate returns the parsed Date field. It returns ErrNoSuchField if there is
// no Date or an error if the date cannot be parsed in any known format.
func (h *Header) GetDate() (time.Time, error) {
	body, err := h.Get(Date)
	if err != nil {
		return time.Time{}, err
	}
	return ParseTime(body)
}

// SetDate sets the Date field to d in RFC 5322 format.
func (h *Header) SetDate(d time.Time) {
	_ = h.Set(Date, d.Format(DateFormat))
}
