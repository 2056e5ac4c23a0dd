package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mimemessage/message"
	"github.com/zostay/go-mimemessage/message/walk"
)

var (
	stripCmd = &cobra.Command{
		Use:   "strip message",
		Short: "Remove attachments from a message",
		Long: `Remove parts from a message and write the result to stdout.

By default every part with an attachment Content-Disposition is removed. With
--type only parts of the given media types are removed. Multipart containers
left with no parts are removed as well.`,
		Args: cobra.ExactArgs(1),
		RunE: RunStrip,
	}

	stripTypes []string
)

// ErrNothingLeft is returned when every part of the message was removed.
var ErrNothingLeft = errors.New("nothing left after stripping")

func init() {
	stripCmd.Flags().StringSliceVarP(&stripTypes, "type", "t", nil, "media types to remove")
}

func stripper(types []string) walk.Transformer {
	return func(part *message.Entity, parents []*message.Entity) ([]*message.Entity, error) {
		if len(parents) == 0 {
			return nil, walk.ErrCopy
		}

		if len(types) > 0 {
			mt, _ := part.GetMediaType()
			for _, t := range types {
				if strings.EqualFold(t, mt) {
					slog.Debug("removing part", "type", mt, "depth", len(parents))
					return nil, walk.ErrSkip
				}
			}
			return nil, walk.ErrCopy
		}

		if cd, err := part.GetContentDisposition(); err == nil && cd.Disposition() == "attachment" {
			fn, _ := part.GetFilename()
			slog.Debug("removing attachment", "filename", fn, "depth", len(parents))
			return nil, walk.ErrSkip
		}

		return nil, walk.ErrCopy
	}
}

func strip(e *message.Entity, types []string) (*message.Entity, error) {
	out, err := walk.AndTransform(stripper(types), e)
	if err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return nil, ErrNothingLeft
	}

	return out[0], nil
}

func RunStrip(cmd *cobra.Command, args []string) error {
	e, err := loadEntity(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	stripped, err := strip(e, stripTypes)
	if err != nil {
		return fmt.Errorf("unable to strip %s: %w", args[0], err)
	}

	out, err := stripped.Render()
	if err != nil {
		return err
	}

	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}
