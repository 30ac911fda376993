// Package checkouttest builds throwaway git repositories for tests.
package checkouttest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

var signature = &object.Signature{
	Name:  "Build Bot",
	Email: "bot@example.com",
	When:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
}

type Repo struct {
	t    *testing.T
	Dir  string
	Repo *git.Repository
}

// New initializes an empty repository in a temporary directory.
func New(t *testing.T) *Repo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return &Repo{t: t, Dir: dir, Repo: repo}
}

func (r *Repo) WriteFile(name, content string) {
	r.t.Helper()
	path := filepath.Join(r.Dir, name)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(r.t, os.WriteFile(path, []byte(content), 0o644))
}

// Commit stages everything and commits it, returning the commit SHA.
func (r *Repo) Commit(msg string) string {
	r.t.Helper()
	wt, err := r.Repo.Worktree()
	require.NoError(r.t, err)
	require.NoError(r.t, wt.AddWithOptions(&git.AddOptions{All: true}))
	hash, err := wt.Commit(msg, &git.CommitOptions{Author: signature, AllowEmptyCommits: true})
	require.NoError(r.t, err)
	return hash.String()
}

func (r *Repo) Tag(name, sha string) {
	r.t.Helper()
	_, err := r.Repo.CreateTag(name, plumbing.NewHash(sha), nil)
	require.NoError(r.t, err)
}

func (r *Repo) AnnotatedTag(name, sha string) {
	r.t.Helper()
	_, err := r.Repo.CreateTag(name, plumbing.NewHash(sha), &git.CreateTagOptions{
		Tagger:  signature,
		Message: name,
	})
	require.NoError(r.t, err)
}

func (r *Repo) Branch(name, sha string) {
	r.t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), plumbing.NewHash(sha))
	require.NoError(r.t, r.Repo.Storer.SetReference(ref))
}

func (r *Repo) Remote(name, url string) {
	r.t.Helper()
	_, err := r.Repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}})
	require.NoError(r.t, err)
}
