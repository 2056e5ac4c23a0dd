package cmd

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mimemessage/message/transfer"
)

var (
	encodeCmd = &cobra.Command{
		Use:   "encode",
		Short: "Transfer encode stdin to stdout",
		Args:  cobra.NoArgs,
		RunE:  RunEncode,
	}

	decodeCmd = &cobra.Command{
		Use:   "decode",
		Short: "Transfer decode stdin to stdout",
		Args:  cobra.NoArgs,
		RunE:  RunDecode,
	}

	encodeEncoding string
	decodeEncoding string
)

func init() {
	encodeCmd.Flags().StringVarP(&encodeEncoding, "encoding", "e", transfer.Base64, "the Content-Transfer-Encoding to apply")
	decodeCmd.Flags().StringVarP(&decodeEncoding, "encoding", "e", transfer.Base64, "the Content-Transfer-Encoding to remove")
}

func RunEncode(cmd *cobra.Command, _ []string) error {
	w, err := transfer.NewEncoder(encodeEncoding, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	n, err := io.Copy(w, cmd.InOrStdin())
	if err != nil {
		return err
	}

	slog.Debug("encoded input", "encoding", encodeEncoding, "bytes", n)
	return w.Close()
}

func RunDecode(cmd *cobra.Command, _ []string) error {
	r, err := transfer.NewDecoder(decodeEncoding, cmd.InOrStdin())
	if err != nil {
		return err
	}

	n, err := io.Copy(cmd.OutOrStdout(), r)
	if err != nil {
		return err
	}

	slog.Debug("decoded input", "encoding", decodeEncoding, "bytes", n)
	return nil
}
