// Package release recognizes FFmpeg release tags ("n4.3.1") among the tags at a commit.
package release

import (
	"regexp"

	"github.com/hashicorp/go-version"

	"github.com/mediaforge/ffbuild/pkg/errors"
	"github.com/mediaforge/ffbuild/pkg/global"
)

var (
	versionRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	tagRegex     = regexp.MustCompile(`^` + regexp.QuoteMeta(global.ReleasePrefix) + `(\d+\.\d+\.\d+)$`)
)

// Version is a release version, e.g. "4.3.1" for tag "n4.3.1".
type Version struct {
	*version.Version
	raw string
}

// String returns the version exactly as it appeared in the tag, without the prefix.
func (v *Version) String() string {
	return v.raw
}

// Tag returns the release tag this version is published under upstream.
func (v *Version) Tag() string {
	return global.ReleasePrefix + v.raw
}

// NewVersion parses a bare "<major>.<minor>.<patch>" version.
func NewVersion(s string) (*Version, error) {
	if !versionRegex.MatchString(s) {
		return nil, errors.InvalidReleaseVersion(s)
	}
	v, err := version.NewVersion(s)
	if err != nil {
		return nil, errors.InvalidReleaseVersion(s)
	}
	return &Version{Version: v, raw: s}, nil
}

// Parse returns the version a release tag names, or false if tag is not a release tag.
func Parse(tag string) (*Version, bool) {
	m := tagRegex.FindStringSubmatch(tag)
	if m == nil {
		return nil, false
	}
	v, err := NewVersion(m[1])
	if err != nil {
		return nil, false
	}
	return v, true
}

// Normalize returns the bare version for a release tag and tag itself otherwise.
func Normalize(tag string) string {
	if v, ok := Parse(tag); ok {
		return v.String()
	}
	return tag
}

// Classify returns the release version among tags, or nil if there is none. Several
// release tags at one commit is an error: there is no way to tell which one is authoritative.
func Classify(sha string, tags []string) (*Version, error) {
	var found []*Version
	for _, tag := range tags {
		if v, ok := Parse(tag); ok {
			found = append(found, v)
		}
	}
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	}
	candidates := make([]string, len(found))
	for i, v := range found {
		candidates[i] = v.String()
	}
	return nil, errors.AmbiguousReleaseTags(sha, candidates)
}
