// Package checkout reads the state of the local git checkout that an image is built from.
package checkout

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/mediaforge/ffbuild/pkg/errors"
	"github.com/mediaforge/ffbuild/pkg/util/console"
)

const DefaultRef = "HEAD"

// RepoState is a read-only snapshot of a checkout, taken once per run.
type RepoState struct {
	// Root is the top-level directory of the working tree
	Root  string
	Clean bool
	// Remotes maps remote name to its configured URLs
	Remotes map[string][]string
	// Ref is the ref as requested, SHA the commit it resolved to
	Ref string
	SHA string
	// Tags pointing at SHA, sorted by name
	Tags []string
	// BranchHeads maps commit SHA to the short names of local branches whose head is that commit
	BranchHeads map[string][]string
}

// RemoteNames returns the names of all remotes, sorted.
func (s *RepoState) RemoteNames() []string {
	names := make([]string, 0, len(s.Remotes))
	for name := range s.Remotes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RemoteURL returns the first URL of the named remote.
func (s *RepoState) RemoteURL(name string) (string, bool) {
	urls, ok := s.Remotes[name]
	if !ok || len(urls) == 0 {
		return "", false
	}
	return urls[0], true
}

// BranchesAtSHA returns the branches whose head is the resolved commit.
func (s *RepoState) BranchesAtSHA() []string {
	return s.BranchHeads[s.SHA]
}

type Inspector struct {
	repo *git.Repository
	root string
}

// Open opens the git repository containing dir, searching parent directories for .git.
func Open(dir string) (*Inspector, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("Failed to open git repository at %s: %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("Failed to open working tree of %s: %w", dir, err)
	}
	return &Inspector{repo: repo, root: wt.Filesystem.Root()}, nil
}

// Inspect opens the repository containing dir and snapshots it at ref.
func Inspect(ctx context.Context, dir string, ref string) (*RepoState, error) {
	inspector, err := Open(dir)
	if err != nil {
		return nil, err
	}
	return inspector.Inspect(ctx, ref)
}

// Inspect fails with a DirtyWorkingTree error if the working tree has any tracked or
// untracked change. Otherwise it resolves ref (default HEAD) and collects the remotes,
// the tags at the resolved commit and all local branch heads.
func (i *Inspector) Inspect(ctx context.Context, ref string) (*RepoState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ref == "" {
		ref = DefaultRef
	}

	dirty, err := i.DirtyPaths()
	if err != nil {
		return nil, err
	}
	if len(dirty) > 0 {
		return nil, errors.DirtyWorkingTree(dirty)
	}

	state := &RepoState{Root: i.root, Clean: true, Ref: ref}

	if state.Remotes, err = i.remotes(); err != nil {
		return nil, err
	}

	hash, err := i.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, errors.UnknownRef(ref, err)
	}
	state.SHA = hash.String()
	console.Debugf("Resolved %s to %s", ref, state.SHA)

	if state.Tags, err = i.tagsPointingAt(*hash); err != nil {
		return nil, err
	}
	if state.BranchHeads, err = i.branchHeads(); err != nil {
		return nil, err
	}
	return state, nil
}

// DirtyPaths lists every path with a staged, unstaged or untracked change, sorted.
func (i *Inspector) DirtyPaths() ([]string, error) {
	wt, err := i.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("Failed to open working tree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("Failed to get working tree status: %w", err)
	}
	paths := []string{}
	for path, fs := range status {
		if fs.Staging != git.Unmodified || fs.Worktree != git.Unmodified {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (i *Inspector) remotes() (map[string][]string, error) {
	remotes, err := i.repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("Failed to list remotes: %w", err)
	}
	out := make(map[string][]string, len(remotes))
	for _, r := range remotes {
		cfg := r.Config()
		out[cfg.Name] = append([]string{}, cfg.URLs...)
	}
	return out, nil
}

func (i *Inspector) tagsPointingAt(hash plumbing.Hash) ([]string, error) {
	iter, err := i.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("Failed to list tags: %w", err)
	}
	tags := []string{}
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		target, err := i.peel(ref.Hash())
		if err != nil {
			return err
		}
		if target == hash {
			tags = append(tags, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Failed to read tags: %w", err)
	}
	sort.Strings(tags)
	return tags, nil
}

// peel follows annotated tag objects to the commit they point at
func (i *Inspector) peel(hash plumbing.Hash) (plumbing.Hash, error) {
	tag, err := i.repo.TagObject(hash)
	if err == plumbing.ErrObjectNotFound {
		return hash, nil
	}
	if err != nil {
		return plumbing.ZeroHash, err
	}
	commit, err := tag.Commit()
	if err != nil {
		// tags of trees or blobs never match a commit
		return plumbing.ZeroHash, nil
	}
	return commit.Hash, nil
}

func (i *Inspector) branchHeads() (map[string][]string, error) {
	iter, err := i.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("Failed to list branches: %w", err)
	}
	heads := map[string][]string{}
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		sha := ref.Hash().String()
		heads[sha] = append(heads[sha], ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Failed to read branches: %w", err)
	}
	for _, names := range heads {
		sort.Strings(names)
	}
	return heads, nil
}
