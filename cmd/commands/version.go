package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/langtable/langtable/pkg/tui"
)

// NewVersionCommand creates the version command
func NewVersionCommand(version string) *cobra.Command {
	tui.Version = version
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "langtable %s (%s/%s, %s)\n", version, runtime.GOOS, runtime.GOARCH, runtime.Version())
			return nil
		},
	}
}
