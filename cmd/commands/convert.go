package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/langtable/langtable/internal/cli"
	"github.com/langtable/langtable/pkg/files"
)

var convertForce bool

// NewConvertCommand creates the convert command
func NewConvertCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a table between JSON and .lang",
		Long: `Rewrite a string table in the format named by the output extension.

Comments survive a .lang to .lang conversion. JSON has no comments, so
they are dropped when writing JSON.

Examples:
  # JSON to .lang
  langtable convert en_us.json en_US.lang

  # .lang to JSON, replacing an existing file
  langtable convert ja_JP.lang ja_jp.json --force`,
		Args: cobra.ExactArgs(2),
		RunE: runConvert,
	}

	cmd.Flags().BoolVarP(&convertForce, "force", "f", false, "Overwrite the output file")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	if err := cli.ValidateTablePath(in, true); err != nil {
		return err
	}
	if err := cli.ValidateTablePath(out, false); err != nil {
		return err
	}
	if !convertForce && cli.ValidateFilePath(out) == nil {
		ok, err := cli.Confirm(fmt.Sprintf("%s exists. Overwrite?", out), false)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	loaded, err := files.ReadTable(in)
	if err != nil {
		return err
	}
	c := commandContext(cmd)
	if err := files.WriteTable(out, loaded.Data, loaded.Comments, c.SaveOptions()); err != nil {
		return err
	}

	cli.PrintSuccess("Wrote %d entries to %s", loaded.Data.Len(), out)
	return nil
}
