package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/zostay/go-mimemessage/message"
	"github.com/zostay/go-mimemessage/message/builder"
)

// loadEntity reads an entity from path. Files ending in .json or .toml are
// builder descriptions. Anything else is parsed as a raw message. A path of
// "-" reads a raw message from stdin.
func loadEntity(path string, stdin io.Reader) (*message.Entity, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var (
		e   *message.Entity
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		e, err = builder.DecodeJSON(r)
	case ".toml":
		e, err = builder.DecodeTOML(r)
	default:
		e, err = message.Parse(r)
	}

	if err != nil {
		return nil, fmt.Errorf("unable to load %s: %w", path, err)
	}

	slog.Debug("loaded entity", "path", path, "multipart", e.IsMultipart(), "parts", len(e.Parts()))
	return e, nil
}

// isDescription reports whether path names a builder description rather than
// a raw message.
func isDescription(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".toml":
		return true
	}
	return false
}
