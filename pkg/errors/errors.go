package errors

import (
	"errors"
	"fmt"
	"strings"
)

const (
	CodeDirtyWorkingTree      = "DIRTY_WORKING_TREE"
	CodeUnknownRef            = "UNKNOWN_REF"
	CodeNoRemoteFound         = "NO_REMOTE_FOUND"
	CodeAmbiguousRemote       = "AMBIGUOUS_REMOTE"
	CodeUnrecognizedRemoteURL = "UNRECOGNIZED_REMOTE_URL"
	CodeInvalidRepository     = "INVALID_REPOSITORY"
	CodeAmbiguousReleaseTags  = "AMBIGUOUS_RELEASE_TAGS"
	CodeInvalidReleaseVersion = "INVALID_RELEASE_VERSION"
	CodeConflictingSourceMode = "CONFLICTING_SOURCE_MODE"
	CodeAuthRequired          = "AUTHENTICATION_REQUIRED"
	CodeBuildToolError        = "BUILD_TOOL_ERROR"
)

// Types ////////////////////////////////////////

type CodedError interface {
	error
	Code() string
}

type codedError struct {
	code string
	msg  string
	err  error
}

func (e *codedError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *codedError) Code() string {
	return e.code
}

func (e *codedError) Unwrap() error {
	return e.err
}

// Error Creators ///////////////////////////////

// The working tree has uncommitted or untracked changes
func DirtyWorkingTree(paths []string) error {
	return &codedError{
		code: CodeDirtyWorkingTree,
		msg:  fmt.Sprintf("Found uncommitted changes in %d path(s); refusing to build: %s", len(paths), strings.Join(paths, ", ")),
	}
}

// The requested ref could not be resolved to a commit
func UnknownRef(ref string, err error) error {
	return &codedError{
		code: CodeUnknownRef,
		msg:  fmt.Sprintf("Failed to resolve ref %q", ref),
		err:  err,
	}
}

func NoRemoteFound() error {
	return &codedError{
		code: CodeNoRemoteFound,
		msg:  "No --repository given and no git remotes found",
	}
}

func AmbiguousRemote(candidates []string) error {
	return &codedError{
		code: CodeAmbiguousRemote,
		msg:  fmt.Sprintf("No \"origin\" remote found; unsure which of %d candidates to choose: %s", len(candidates), strings.Join(candidates, ", ")),
	}
}

func UnrecognizedRemoteURL(url string) error {
	return &codedError{
		code: CodeUnrecognizedRemoteURL,
		msg:  fmt.Sprintf("Unrecognized remote URL: %s", url),
	}
}

func InvalidRepository(repository string, err error) error {
	return &codedError{
		code: CodeInvalidRepository,
		msg:  fmt.Sprintf("Invalid image repository %q", repository),
		err:  err,
	}
}

// More than one release tag points at the same commit
func AmbiguousReleaseTags(sha string, versions []string) error {
	return &codedError{
		code: CodeAmbiguousReleaseTags,
		msg:  fmt.Sprintf("Multiple release tags found at commit %s: %s", sha, strings.Join(versions, ", ")),
	}
}

func InvalidReleaseVersion(release string) error {
	return &codedError{
		code: CodeInvalidReleaseVersion,
		msg:  fmt.Sprintf("Release %q is not a <major>.<minor>.<patch> version", release),
	}
}

func ConflictingSourceMode(msg string) error {
	return &codedError{
		code: CodeConflictingSourceMode,
		msg:  msg,
	}
}

// Push was requested without a username and token
func AuthenticationRequired(usernameEnv, tokenEnv string) error {
	return &codedError{
		code: CodeAuthRequired,
		msg:  fmt.Sprintf("-u/--username and -t/--token (or $%s and $%s) are required in order to -P/--push", usernameEnv, tokenEnv),
	}
}

// An invocation of the external build tool exited unsuccessfully
func BuildToolError(argv []string, output string, err error) error {
	msg := fmt.Sprintf("Command failed: %s", strings.Join(argv, " "))
	if output = strings.TrimSpace(output); output != "" {
		msg += "\n" + output
	}
	return &codedError{
		code: CodeBuildToolError,
		msg:  msg,
		err:  err,
	}
}

// Helpers //////////////////////////////////////

func IsDirtyWorkingTree(err error) bool {
	return Code(err) == CodeDirtyWorkingTree
}

func IsAmbiguousReleaseTags(err error) bool {
	return Code(err) == CodeAmbiguousReleaseTags
}

func IsConflictingSourceMode(err error) bool {
	return Code(err) == CodeConflictingSourceMode
}

func IsAuthenticationRequired(err error) bool {
	return Code(err) == CodeAuthRequired
}

func IsBuildToolError(err error) bool {
	return Code(err) == CodeBuildToolError
}

// Return the error code, or the empty string
func Code(err error) string {
	var cerr CodedError
	if errors.As(err, &cerr) {
		return cerr.Code()
	}

	return ""
}
