package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zostay/go-mimemessage/message"
)

var (
	roundtripCmd = &cobra.Command{
		Use:   "roundtrip message",
		Short: "Shows the diff of a single message round-trip",
		Long: `Serialize a message, parse the result and serialize it again. Any
difference between the two is printed as a patch and the command fails.

A .json or .toml file is built first. A raw message is also compared against
its original text, which fails only when --strict is given since parsing
normalizes some header formatting.`,
		Args: cobra.ExactArgs(1),
		RunE: RunRoundtrip,
	}

	roundtripStrict bool
)

// ErrRoundtripMismatch is returned when the re-serialized message differs.
var ErrRoundtripMismatch = errors.New("round-trip output differs")

func init() {
	roundtripCmd.Flags().BoolVar(&roundtripStrict, "strict", false, "also require a raw message to reproduce its original text exactly")
}

// diffText returns a patch turning a into b or an empty string when they are
// equal.
func diffText(a, b string) string {
	if a == b {
		return ""
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, true)
	return dmp.PatchToText(dmp.PatchMake(a, diffs))
}

func roundtrip(e *message.Entity) (string, string, error) {
	first, err := e.Render()
	if err != nil {
		return "", "", err
	}

	parsed, err := message.Parse(strings.NewReader(first))
	if err != nil {
		return "", "", fmt.Errorf("unable to parse serialized message: %w", err)
	}

	second, err := parsed.Render()
	if err != nil {
		return "", "", err
	}

	return first, second, nil
}

func RunRoundtrip(cmd *cobra.Command, args []string) error {
	path := args[0]
	e, err := loadEntity(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	first, second, err := roundtrip(e)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := false
	if d := diffText(first, second); d != "" {
		_, _ = fmt.Fprintf(out, "--- serialized\n+++ reparsed\n%s", d)
		failed = true
	}

	if !isDescription(path) && path != "-" {
		orig, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		if d := diffText(string(orig), first); d != "" {
			_, _ = fmt.Fprintf(out, "--- %s\n+++ serialized\n%s", path, d)
			if roundtripStrict {
				failed = true
			} else {
				slog.Info("original text was normalized", "path", path)
			}
		}
	}

	if failed {
		return ErrRoundtripMismatch
	}

	slog.Debug("round-trip ok", "path", path, "bytes", len(first))
	_, err = io.WriteString(out, "ok\n")
	return err
}
