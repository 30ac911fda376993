// Package publish decides which tags a built image gets and applies and pushes them.
package publish

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"

	"github.com/mediaforge/ffbuild/pkg/checkout"
	"github.com/mediaforge/ffbuild/pkg/docker"
	"github.com/mediaforge/ffbuild/pkg/release"
	"github.com/mediaforge/ffbuild/pkg/source"
	"github.com/mediaforge/ffbuild/pkg/util/console"
)

// Docker tags are at most 128 characters, [A-Za-z0-9_.-], not starting with . or -
const maxTagLength = 128

var invalidTagChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

type Options struct {
	TagSHA      bool
	TagTags     bool
	TagBranches bool
	LatestOnly  bool
	Push        bool
	Credentials docker.Credentials
}

func DefaultOptions() Options {
	return Options{TagSHA: true, TagTags: true, TagBranches: true}
}

// Plan is what gets applied to the image once it has been built.
type Plan struct {
	Repository string
	// Tags in the order they are applied, without duplicates
	Tags        []string
	Push        bool
	LatestOnly  bool
	Credentials docker.Credentials
}

// Refs returns the full image references of every tag.
func (p Plan) Refs() []string {
	refs := make([]string, len(p.Tags))
	for i, tag := range p.Tags {
		refs[i] = p.Repository + ":" + tag
	}
	return refs
}

// NewPlan computes the tags for an image of repository built from target at state. Git tags
// and branches that cannot be turned into an image tag are skipped with a warning.
func NewPlan(repository string, target source.Target, state *checkout.RepoState, opts Options) Plan {
	plan := Plan{
		Repository:  repository,
		Tags:        []string{},
		Push:        opts.Push,
		LatestOnly:  opts.LatestOnly,
		Credentials: opts.Credentials,
	}
	if opts.LatestOnly {
		return plan
	}

	tags := []string{}
	if archive, ok := target.(source.SourceArchive); ok {
		tags = append(tags, archive.Version.String())
	} else {
		if opts.TagSHA {
			tags = append(tags, state.SHA)
		}
		if opts.TagTags {
			for _, tag := range state.Tags {
				tags = append(tags, release.Normalize(tag))
			}
		}
		if opts.TagBranches {
			tags = append(tags, state.BranchesAtSHA()...)
		}
	}

	seen := map[string]bool{}
	for _, ref := range tags {
		tag, err := sanitizeTag(repository, ref)
		if err != nil {
			console.Warnf("Skipping tag %q: %s", ref, err)
			continue
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		plan.Tags = append(plan.Tags, tag)
	}
	return plan
}

// sanitizeTag turns a git ref name into a docker tag, e.g. "release/4.3" into "release-4.3"
func sanitizeTag(repository, tag string) (string, error) {
	clean := invalidTagChars.ReplaceAllString(tag, "-")
	clean = strings.TrimLeft(clean, ".-")
	if len(clean) > maxTagLength {
		clean = clean[:maxTagLength]
	}
	if clean == "" {
		return "", fmt.Errorf("no valid characters for an image tag")
	}
	if _, err := name.NewTag(repository + ":" + clean); err != nil {
		return "", err
	}
	return clean, nil
}
