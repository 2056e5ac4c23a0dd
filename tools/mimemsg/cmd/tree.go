package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mimemessage/message"
	"github.com/zostay/go-mimemessage/message/walker"
)

var treeCmd = &cobra.Command{
	Use:   "tree message",
	Short: "Print the part tree of a message",
	Args:  cobra.ExactArgs(1),
	RunE:  RunTree,
}

func describe(part *message.Entity) string {
	mt, err := part.GetMediaType()
	if err != nil {
		mt = "(no content type)"
	}

	desc := []string{mt}
	if cte, err := part.GetTransferEncoding(); err == nil {
		desc = append(desc, cte)
	}
	if fn, err := part.GetFilename(); err == nil {
		desc = append(desc, fmt.Sprintf("%q", fn))
	}

	switch b := part.Body().(type) {
	case message.Leaf:
		desc = append(desc, fmt.Sprintf("%d bytes", len(b)))
	case message.Composite:
		desc = append(desc, fmt.Sprintf("%d parts", len(b)))
	case message.Structured:
		desc = append(desc, fmt.Sprintf("%T", b.Value))
	}

	return strings.Join(desc, " ")
}

func printTree(w io.Writer, e *message.Entity) error {
	var pw walker.PartWalker = func(depth, i int, part *message.Entity) error {
		_, err := fmt.Fprintf(w, "%s%d. %s\n", strings.Repeat("   ", depth), i+1, describe(part))
		return err
	}
	return pw.Walk(e)
}

func RunTree(cmd *cobra.Command, args []string) error {
	e, err := loadEntity(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	return printTree(cmd.OutOrStdout(), e)
}
