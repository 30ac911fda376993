package command

import (
	"context"
)

type Command interface {
	// ImageBuild builds options.DockerfileContents in options.ContextDir and tags the result options.ImageName.
	ImageBuild(ctx context.Context, options ImageBuildOptions) error
	Tag(ctx context.Context, source string, target string) error
	// Login authenticates against registryHost. An empty registryHost is Docker Hub.
	Login(ctx context.Context, registryHost string, username string, token string) error
	Push(ctx context.Context, ref string) error
}

type ImageBuildOptions struct {
	DockerfileContents string
	ImageName          string
	ContextDir         string
	BuildArgs          map[string]string
	Labels             map[string]string
	NoCache            bool
	ProgressOutput     string
}
