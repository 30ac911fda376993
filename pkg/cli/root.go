package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mediaforge/ffbuild/pkg/global"
	"github.com/mediaforge/ffbuild/pkg/util/console"
)

func NewRootCommand() (*cobra.Command, error) {
	rootCmd := cobra.Command{
		Use:   "ffbuild",
		Short: "Build and publish FFmpeg Docker images from a git checkout",
		Long: `ffbuild reads the state of an FFmpeg git checkout and decides from it which
image to build and how to publish it.`,
		Version: fmt.Sprintf("%s (built %s)", global.Version, global.BuildTime),
		// This stops errors being printed because we print them in cmd/ffbuild/main.go
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if global.Verbose {
				console.SetLevel(console.DebugLevel)
			}
			cmd.SilenceUsage = true
		},
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("ffbuild version {{.Version}}\n")
	setPersistentFlags(&rootCmd)

	rootCmd.AddCommand(
		newBuildCommand(),
		newVersionCommand(),
	)

	return &rootCmd, nil
}

func setPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "Verbose output")
}
