package publish

import (
	"context"

	"github.com/mediaforge/ffbuild/pkg/docker"
	"github.com/mediaforge/ffbuild/pkg/docker/command"
	"github.com/mediaforge/ffbuild/pkg/util/console"
)

type Publisher struct {
	command command.Command
}

func NewPublisher(cmd command.Command) *Publisher {
	return &Publisher{command: cmd}
}

// Publish pushes the freshly built image (its implicit "latest" tag) if requested, then
// tags it with every tag in the plan, pushing each one as it goes.
func (p *Publisher) Publish(ctx context.Context, plan Plan) error {
	auth := docker.NewAuthenticator(p.command, plan.Credentials)

	if err := p.push(ctx, auth, plan, plan.Repository); err != nil {
		return err
	}
	if plan.LatestOnly {
		return nil
	}

	for _, ref := range plan.Refs() {
		console.Infof("Tagging %s", ref)
		if err := p.command.Tag(ctx, plan.Repository, ref); err != nil {
			return err
		}
		if err := p.push(ctx, auth, plan, ref); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) push(ctx context.Context, auth *docker.Authenticator, plan Plan, ref string) error {
	if !plan.Push {
		return nil
	}
	if err := auth.LoginFor(ctx, ref); err != nil {
		return err
	}
	console.Infof("Pushing %s", ref)
	return p.command.Push(ctx, ref)
}
