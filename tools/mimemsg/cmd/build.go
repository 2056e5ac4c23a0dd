package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mimemessage/message"
	"github.com/zostay/go-mimemessage/message/header"
)

var (
	buildCmd = &cobra.Command{
		Use:   "build description",
		Short: "Build a message from a JSON or TOML description",
		Long: `Build a message from a JSON or TOML description and write it to stdout.

The description names contentType, contentDisposition, contentTransferEncoding
(or contentTransfer), a map of other headers and the body. A body given as a
list of descriptions builds a multipart message.`,
		Args: cobra.ExactArgs(1),
		RunE: RunBuild,
	}

	buildUnicode   bool
	buildNoHeaders bool
	buildFrom      string
	buildTo        string
	buildSubject   string
	buildDate      string
)

func init() {
	buildCmd.Flags().BoolVarP(&buildUnicode, "unicode", "u", false, "leave non-ASCII header text unencoded")
	buildCmd.Flags().BoolVar(&buildNoHeaders, "no-headers", false, "omit the top-level header block")
	buildCmd.Flags().StringVar(&buildFrom, "from", "", "set the From address list")
	buildCmd.Flags().StringVar(&buildTo, "to", "", "set the To address list")
	buildCmd.Flags().StringVar(&buildSubject, "subject", "", "set the Subject")
	buildCmd.Flags().StringVar(&buildDate, "date", "", "set the Date; most common date formats are accepted")
}

// applyEnvelope sets the message headers given on the command line.
func applyEnvelope(e *message.Entity) error {
	if buildFrom != "" {
		if err := e.SetAddresses(header.From, buildFrom); err != nil {
			return fmt.Errorf("bad --from: %w", err)
		}
	}

	if buildTo != "" {
		if err := e.SetAddresses(header.To, buildTo); err != nil {
			return fmt.Errorf("bad --to: %w", err)
		}
	}

	if buildSubject != "" {
		e.SetSubject(buildSubject)
	}

	if buildDate != "" {
		d, err := header.ParseTime(buildDate)
		if err != nil {
			return fmt.Errorf("bad --date: %w", err)
		}
		e.SetDate(d)
	}

	return nil
}

func renderOptions() []message.RenderOption {
	var opts []message.RenderOption
	if buildUnicode {
		opts = append(opts, message.WithUnicode())
	}
	if buildNoHeaders {
		opts = append(opts, message.WithoutHeaders())
	}
	return opts
}

func RunBuild(cmd *cobra.Command, args []string) error {
	e, err := loadEntity(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	if err := applyEnvelope(e); err != nil {
		return err
	}

	out, err := e.Render(renderOptions()...)
	if err != nil {
		return err
	}

	slog.Debug("rendered message", "bytes", len(out))
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}
