// Package dockerignore checks that a checkout's .dockerignore keeps what a local copy build needs.
package dockerignore

import (
	"fmt"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/mediaforge/ffbuild/pkg/util/files"
)

const DockerIgnoreFilename = ".dockerignore"

// CreateMatcher compiles dir/.dockerignore, or returns nil if there is none.
func CreateMatcher(dir string) (*ignore.GitIgnore, error) {
	contents, ok, err := files.ReadFileIfExists(filepath.Join(dir, DockerIgnoreFilename))
	if err != nil || !ok {
		return nil, err
	}
	return ignore.CompileIgnoreLines(strings.Split(contents, "\n")...), nil
}

// CheckCopyContext fails if the .dockerignore in root excludes the configure script, or
// the .git directory when a ref other than the current one has to be checked out in the image.
func CheckCopyContext(root string, needsGit bool) error {
	matcher, err := CreateMatcher(root)
	if err != nil {
		return err
	}
	if matcher == nil {
		return nil
	}
	required := []string{"configure"}
	if needsGit {
		required = append(required, ".git")
	}
	for _, path := range required {
		// "dir/" patterns only match paths below the directory
		if matcher.MatchesPath(path) || matcher.MatchesPath(path+"/") {
			return fmt.Errorf("%s cannot be ignored in %s when copying the checkout into the image", path, DockerIgnoreFilename)
		}
	}
	return nil
}
