package image

import (
	"context"
	"fmt"
	"strings"

	"github.com/mediaforge/ffbuild/pkg/checkout"
	"github.com/mediaforge/ffbuild/pkg/config"
	"github.com/mediaforge/ffbuild/pkg/docker"
	"github.com/mediaforge/ffbuild/pkg/docker/command"
	"github.com/mediaforge/ffbuild/pkg/publish"
	"github.com/mediaforge/ffbuild/pkg/release"
	"github.com/mediaforge/ffbuild/pkg/repository"
	"github.com/mediaforge/ffbuild/pkg/source"
	"github.com/mediaforge/ffbuild/pkg/util/console"
	"github.com/mediaforge/ffbuild/pkg/util/files"
)

// Options is everything the operator asked for on the command line.
type Options struct {
	ProjectDir string
	ConfigFile string
	// Repository overrides the config file and the git remote
	Repository string

	Copy            bool
	Ref             string
	Release         string
	CloneReleaseTag bool
	// Parallelism overrides the config file when set
	Parallelism string

	Username    string
	Token       string
	UsernameEnv string
	TokenEnv    string

	Publish        publish.Options
	NoCache        bool
	ProgressOutput string
}

// Result describes what a run decided, for reporting.
type Result struct {
	State      *checkout.RepoState
	Repository string
	Target     source.Target
	Plan       publish.Plan
}

// Run inspects the checkout, decides what to build and how to tag it, builds the image
// and publishes it. Every check that can fail happens before the first docker command.
func Run(ctx context.Context, opts Options, dockerCommand command.Command) (*Result, error) {
	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	if isDir, err := files.IsDir(projectDir); err != nil || !isDir {
		return nil, fmt.Errorf("Project directory %s does not exist or is not a directory", projectDir)
	}

	state, err := checkout.Inspect(ctx, projectDir, opts.Ref)
	if err != nil {
		return nil, err
	}

	conf, err := config.Load(projectDir, opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if opts.Parallelism != "" {
		conf.Parallelism = opts.Parallelism
		if err := conf.Validate(); err != nil {
			return nil, err
		}
	}

	explicitRepository := opts.Repository
	if explicitRepository == "" {
		explicitRepository = conf.Repository
	}
	repo, err := repository.Resolve(explicitRepository, state.Remotes)
	if err != nil {
		return nil, err
	}

	credentials := docker.ResolveCredentials(opts.Username, opts.Token, opts.UsernameEnv, opts.TokenEnv)
	if err := credentials.Require(opts.Publish.Push); err != nil {
		return nil, err
	}

	classified, err := release.Classify(state.SHA, state.Tags)
	if err != nil {
		return nil, err
	}
	target, err := source.Plan(source.Request{
		Copy:            opts.Copy,
		Ref:             opts.Ref,
		Release:         opts.Release,
		CloneReleaseTag: opts.CloneReleaseTag,
		Classified:      classified,
	})
	if err != nil {
		return nil, err
	}

	publishOpts := opts.Publish
	publishOpts.Credentials = credentials
	plan := publish.NewPlan(repo, target, state, publishOpts)

	result := &Result{State: state, Repository: repo, Target: target, Plan: plan}
	printSummary(result)

	err = Build(ctx, BuildOptions{
		Repository:     repo,
		Target:         target,
		Config:         conf,
		State:          state,
		ProjectDir:     projectDir,
		NoCache:        opts.NoCache,
		ProgressOutput: opts.ProgressOutput,
	}, dockerCommand)
	if err != nil {
		return nil, err
	}

	if err := publish.NewPublisher(dockerCommand).Publish(ctx, plan); err != nil {
		return nil, err
	}
	return result, nil
}

func printSummary(result *Result) {
	tags := "(none)"
	if len(result.Plan.Tags) > 0 {
		tags = strings.Join(result.Plan.Tags, ", ")
	}
	push := "no"
	if result.Plan.Push {
		push = "yes"
	}
	console.Info(console.Rule())
	console.Infof("Repository: %s", result.Repository)
	if host, err := repository.RegistryHost(result.Repository); err == nil {
		console.Infof("Registry:   %s", host)
	}
	console.Infof("Commit:     %s (%s)", result.State.SHA, result.State.Ref)
	console.Infof("Source:     %s", result.Target)
	console.Infof("Tags:       %s", tags)
	console.Infof("Push:       %s", push)
	console.Info(console.Rule())
}

// Summary is a one-line description of a finished run.
func (r *Result) Summary() string {
	verb := "Built"
	if r.Plan.Push {
		verb = "Built and pushed"
	}
	return fmt.Sprintf("%s %s (%d additional tags)", verb, r.Repository, len(r.Plan.Tags))
}
