// Package image builds FFmpeg images and runs the whole build-and-publish flow.
package image

import (
	"context"
	"fmt"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/mediaforge/ffbuild/pkg/checkout"
	"github.com/mediaforge/ffbuild/pkg/config"
	"github.com/mediaforge/ffbuild/pkg/docker/command"
	"github.com/mediaforge/ffbuild/pkg/dockerfile"
	"github.com/mediaforge/ffbuild/pkg/dockerignore"
	"github.com/mediaforge/ffbuild/pkg/source"
	"github.com/mediaforge/ffbuild/pkg/util/console"
)

type BuildOptions struct {
	Repository string
	Target     source.Target
	Config     *config.Config
	State      *checkout.RepoState
	// ProjectDir is searched for Dockerfile.base
	ProjectDir     string
	NoCache        bool
	ProgressOutput string
}

// Build renders the Dockerfile for options.Target and builds it as options.Repository.
// A local copy uses the checkout as its build context; every other target builds in an
// empty temporary directory that is removed before Build returns.
func Build(ctx context.Context, options BuildOptions, dockerCommand command.Command) error {
	generator, err := dockerfile.NewGenerator(options.Target, options.Config, options.ProjectDir)
	if err != nil {
		return err
	}
	dockerfileContents, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("Failed to generate Dockerfile: %w", err)
	}
	console.Debug(dockerfileContents)

	contextDir := options.State.Root
	if local, ok := options.Target.(source.CopyLocal); ok {
		if err := dockerignore.CheckCopyContext(contextDir, local.Ref != checkout.DefaultRef); err != nil {
			return err
		}
	} else {
		dir, cleanup, err := dockerfile.BuildTempDir()
		if err != nil {
			return fmt.Errorf("Failed to create build directory: %w", err)
		}
		defer cleanup()
		contextDir = dir
	}

	console.Infof("Building Docker image %s from %s...", options.Repository, options.Target)
	buildOpts := command.ImageBuildOptions{
		DockerfileContents: dockerfileContents,
		ImageName:          options.Repository,
		ContextDir:         contextDir,
		Labels:             Labels(options.Target, options.Config, options.State),
		NoCache:            options.NoCache,
		ProgressOutput:     options.ProgressOutput,
	}
	if err := dockerCommand.ImageBuild(ctx, buildOpts); err != nil {
		return fmt.Errorf("Failed to build Docker image: %w", err)
	}
	return nil
}

// Labels returns the OCI labels describing where an image's sources came from.
func Labels(target source.Target, conf *config.Config, state *checkout.RepoState) map[string]string {
	labels := map[string]string{
		ocispec.AnnotationRevision: state.SHA,
	}
	switch t := target.(type) {
	case source.SourceArchive:
		labels[ocispec.AnnotationVersion] = t.Version.String()
		labels[ocispec.AnnotationSource] = conf.ReleaseURL
	case source.CloneRemote:
		labels[ocispec.AnnotationVersion] = t.Ref
		labels[ocispec.AnnotationSource] = conf.UpstreamURL
	case source.CopyLocal:
		labels[ocispec.AnnotationVersion] = t.Ref
	}
	return labels
}
