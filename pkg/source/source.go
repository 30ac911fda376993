// Package source decides where the FFmpeg sources in the image come from.
package source

import (
	"fmt"

	"github.com/mediaforge/ffbuild/pkg/checkout"
	"github.com/mediaforge/ffbuild/pkg/errors"
	"github.com/mediaforge/ffbuild/pkg/release"
	"github.com/mediaforge/ffbuild/pkg/util/console"
)

// Target is exactly one of CopyLocal, CloneRemote or SourceArchive.
type Target interface {
	fmt.Stringer
	isTarget()
}

// CopyLocal copies the local checkout into the build context and checks out Ref there.
type CopyLocal struct {
	Ref string
}

// CloneRemote clones the upstream repository inside the image and checks out Ref.
type CloneRemote struct {
	Ref string
}

// SourceArchive downloads and unpacks the released source tarball for Version.
type SourceArchive struct {
	Version *release.Version
}

func (CopyLocal) isTarget()     {}
func (CloneRemote) isTarget()   {}
func (SourceArchive) isTarget() {}

func (t CopyLocal) String() string {
	return fmt.Sprintf("copy of local checkout at %s", t.Ref)
}

func (t CloneRemote) String() string {
	return fmt.Sprintf("clone of upstream at %s", t.Ref)
}

func (t SourceArchive) String() string {
	return fmt.Sprintf("source release %s", t.Version)
}

// Request holds the operator's intent plus whatever release the checkout is tagged with.
type Request struct {
	Copy bool
	// Ref is the explicitly requested ref, empty if none was given
	Ref string
	// Release is the explicitly requested release version, empty if none was given
	Release         string
	CloneReleaseTag bool
	// Classified is the release tagged at the resolved commit, if any
	Classified *release.Version
}

// Plan picks the build target for req.
func Plan(req Request) (Target, error) {
	autoRelease := req.Classified != nil && !req.CloneReleaseTag
	if (req.Release != "" || autoRelease) && (req.Copy || req.Ref != "") {
		return nil, conflict(req)
	}

	if autoRelease {
		if req.Release != "" {
			explicit, err := release.NewVersion(req.Release)
			if err != nil {
				return nil, err
			}
			if !explicit.Equal(req.Classified.Version) {
				console.Warnf("Ignoring --release %s: the checkout is tagged %s", req.Release, req.Classified.Tag())
			}
		}
		return SourceArchive{Version: req.Classified}, nil
	}
	if req.Copy {
		return CopyLocal{Ref: refOrHead(req.Ref)}, nil
	}
	if req.Release != "" {
		v, err := release.NewVersion(req.Release)
		if err != nil {
			return nil, err
		}
		return SourceArchive{Version: v}, nil
	}
	return CloneRemote{Ref: refOrHead(req.Ref)}, nil
}

func conflict(req Request) error {
	if req.Release != "" {
		return errors.ConflictingSourceMode("-r/--release (building from a source release) is exclusive with -c/--copy and/or --ref (copying/cloning source into image)")
	}
	return errors.ConflictingSourceMode(fmt.Sprintf(
		"%s is tagged %s, which selects its source release; pass -R/--clone-release-tag to combine it with -c/--copy and/or --ref",
		refOrHead(req.Ref), req.Classified.Tag()))
}

func refOrHead(ref string) string {
	if ref == "" {
		return checkout.DefaultRef
	}
	return ref
}

// Ref returns the git ref a target checks out, or "" for a source release.
func Ref(t Target) string {
	switch t := t.(type) {
	case CopyLocal:
		return t.Ref
	case CloneRemote:
		return t.Ref
	}
	return ""
}

// IsRelease reports whether t builds from a source release.
func IsRelease(t Target) bool {
	_, ok := t.(SourceArchive)
	return ok
}
