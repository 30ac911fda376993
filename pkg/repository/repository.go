// Package repository works out the image repository ("org/name") to build and publish.
package repository

import (
	"regexp"
	"sort"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"

	"github.com/mediaforge/ffbuild/pkg/errors"
	"github.com/mediaforge/ffbuild/pkg/util/console"
)

const DefaultRemote = "origin"

var remoteURLRegexes = []*regexp.Regexp{
	regexp.MustCompile(`^https://github\.com/(?P<org>[^/]+)/(?P<repo>.+?)(?:\.git)?$`),
	regexp.MustCompile(`^git@github\.com:(?P<org>[^/]+)/(?P<repo>.+?)(?:\.git)?$`),
}

// Resolve returns explicit unchanged if set. Otherwise it picks a remote (the only one, or
// "origin" among several) and derives the repository from that remote's URL.
func Resolve(explicit string, remotes map[string][]string) (string, error) {
	if explicit != "" {
		return explicit, Validate(explicit)
	}

	remote, err := pickRemote(remotes)
	if err != nil {
		return "", err
	}
	urls := remotes[remote]
	if len(urls) == 0 {
		return "", errors.UnrecognizedRemoteURL("")
	}
	console.Debugf("Using remote %q (%s)", remote, urls[0])

	repository, err := ParseRemoteURL(urls[0])
	if err != nil {
		return "", err
	}
	return repository, Validate(repository)
}

func pickRemote(remotes map[string][]string) (string, error) {
	switch len(remotes) {
	case 0:
		return "", errors.NoRemoteFound()
	case 1:
		for name := range remotes {
			return name, nil
		}
	}
	if _, ok := remotes[DefaultRemote]; ok {
		return DefaultRemote, nil
	}
	candidates := make([]string, 0, len(remotes))
	for name := range remotes {
		candidates = append(candidates, name)
	}
	sort.Strings(candidates)
	return "", errors.AmbiguousRemote(candidates)
}

// ParseRemoteURL extracts a lower-cased "org/repo" from an https or ssh GitHub remote URL.
func ParseRemoteURL(url string) (string, error) {
	for _, re := range remoteURLRegexes {
		m := re.FindStringSubmatch(url)
		if m == nil {
			continue
		}
		org := m[re.SubexpIndex("org")]
		repo := m[re.SubexpIndex("repo")]
		return strings.ToLower(org + "/" + repo), nil
	}
	return "", errors.UnrecognizedRemoteURL(url)
}

// Validate checks that repository is usable as a docker image repository.
func Validate(repository string) error {
	if _, err := name.NewRepository(repository); err != nil {
		return errors.InvalidRepository(repository, err)
	}
	return nil
}

// RegistryHost returns the registry that repository lives in, e.g. "index.docker.io".
func RegistryHost(repository string) (string, error) {
	repo, err := name.NewRepository(repository)
	if err != nil {
		return "", errors.InvalidRepository(repository, err)
	}
	return repo.RegistryStr(), nil
}
