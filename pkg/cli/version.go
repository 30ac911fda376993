package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mediaforge/ffbuild/pkg/global"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of ffbuild",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ffbuild version %s (built %s)\n", global.Version, global.BuildTime)
		},
	}
}
