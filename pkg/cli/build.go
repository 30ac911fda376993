package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mediaforge/ffbuild/pkg/docker"
	"github.com/mediaforge/ffbuild/pkg/global"
	"github.com/mediaforge/ffbuild/pkg/image"
	"github.com/mediaforge/ffbuild/pkg/util/console"
)

type buildFlags struct {
	projectDir  string
	configFile  string
	repository  string
	copy        bool
	ref         string
	release     string
	cloneTag    bool
	parallelism string

	username    string
	token       string
	usernameEnv string
	tokenEnv    string

	push       bool
	latestOnly bool
	noSHA      bool
	noTags     bool
	noBranches bool

	noCache        bool
	progressOutput string
	dryRun         bool
}

func newBuildCommand() *cobra.Command {
	flags := &buildFlags{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build an FFmpeg image from the current checkout and tag it",
		Long: `Build an FFmpeg image from the current checkout and tag it.

If the checked out commit carries a release tag like n4.3.1, the image is built from
that release's source archive and tagged 4.3.1. Otherwise the upstream repository is
cloned at the commit (or the checkout is copied, with -c) and the image is tagged with
the commit SHA, the tags at that commit and the branches pointing at it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return buildCommand(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.projectDir, "project-dir", "D", "", "Project directory, defaults to current working directory")
	cmd.Flags().StringVar(&flags.configFile, "config", "", "Config file, defaults to "+global.ConfigFilename+" in the project directory")
	cmd.Flags().StringVar(&flags.repository, "repository", "", "Image repository, e.g. 'org/ffmpeg'; derived from the git remote if not set")

	cmd.Flags().BoolVarP(&flags.copy, "copy", "c", false, "Copy the local checkout into the image instead of cloning upstream")
	cmd.Flags().StringVar(&flags.ref, "ref", "", "Git ref to build, defaults to HEAD")
	cmd.Flags().StringVarP(&flags.release, "release", "r", "", "Build from the source archive of this release version, e.g. 4.3.1")
	cmd.Flags().BoolVarP(&flags.cloneTag, "clone-release-tag", "R", false, "Clone a release-tagged commit instead of downloading its source archive")
	cmd.Flags().StringVarP(&flags.parallelism, "parallelism", "j", "", "Parallelism of make inside the image, defaults to $(nproc)")

	cmd.Flags().StringVarP(&flags.username, "username", "u", "", "Registry username, defaults to $"+global.DefaultUsernameEnv)
	cmd.Flags().StringVarP(&flags.token, "token", "t", "", "Registry token, defaults to $"+global.DefaultTokenEnv)
	cmd.Flags().StringVar(&flags.usernameEnv, "username-env", global.DefaultUsernameEnv, "Environment variable to read the registry username from")
	cmd.Flags().StringVar(&flags.tokenEnv, "token-env", global.DefaultTokenEnv, "Environment variable to read the registry token from")

	cmd.Flags().BoolVarP(&flags.push, "push", "P", false, "Push the image and its tags")
	cmd.Flags().BoolVarP(&flags.latestOnly, "latest-only", "l", false, "Only build (and push) the latest tag")
	cmd.Flags().BoolVarP(&flags.noSHA, "no-sha", "S", false, "Don't tag the image with the commit SHA")
	cmd.Flags().BoolVarP(&flags.noTags, "no-tags", "T", false, "Don't tag the image with the git tags at the commit")
	cmd.Flags().BoolVarP(&flags.noBranches, "no-branches", "B", false, "Don't tag the image with the branches pointing at the commit")

	addNoCacheFlag(cmd, flags)
	addBuildProgressOutputFlag(cmd, flags)
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the docker commands instead of running them")
	return cmd
}

func buildCommand(cmd *cobra.Command, flags *buildFlags) error {
	opts := image.Options{
		ProjectDir:      flags.projectDir,
		ConfigFile:      flags.configFile,
		Repository:      flags.repository,
		Copy:            flags.copy,
		Ref:             flags.ref,
		Release:         flags.release,
		CloneReleaseTag: flags.cloneTag,
		Parallelism:     flags.parallelism,
		Username:        flags.username,
		Token:           flags.token,
		UsernameEnv:     flags.usernameEnv,
		TokenEnv:        flags.tokenEnv,
		NoCache:         flags.noCache,
		ProgressOutput:  flags.progressOutput,
	}
	opts.Publish.Push = flags.push
	opts.Publish.LatestOnly = flags.latestOnly
	opts.Publish.TagSHA = !flags.noSHA
	opts.Publish.TagTags = !flags.noTags
	opts.Publish.TagBranches = !flags.noBranches

	dockerCommand := docker.NewDockerCommand(flags.dryRun)
	result, err := image.Run(cmd.Context(), opts, dockerCommand)
	if err != nil {
		return err
	}

	console.Info("")
	console.Info(result.Summary())
	for _, ref := range append([]string{result.Repository}, result.Plan.Refs()...) {
		console.Output(ref)
	}
	return nil
}

func addBuildProgressOutputFlag(cmd *cobra.Command, flags *buildFlags) {
	defaultOutput := "auto"
	if os.Getenv("TERM") == "dumb" {
		defaultOutput = "plain"
	}
	cmd.Flags().StringVar(&flags.progressOutput, "progress", defaultOutput, "Set type of build progress output, 'auto' (default), 'tty' or 'plain'")
}

func addNoCacheFlag(cmd *cobra.Command, flags *buildFlags) {
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "Do not use cache when building the image")
}
