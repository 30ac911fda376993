package config

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/mediaforge/ffbuild/pkg/repository"
)

// make -j accepts a number or a shell expansion producing one
var parallelismRegex = regexp.MustCompile(`^(\d+|\$\(nproc\)|\$\{?[A-Za-z_][A-Za-z0-9_]*\}?)$`)

// Validate returns ValidationErrors listing every invalid field, or nil.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Repository != "" {
		if err := repository.Validate(c.Repository); err != nil {
			errs = append(errs, &ValidationError{Field: "repository", Value: c.Repository, Message: err.Error()})
		}
	}
	if !parallelismRegex.MatchString(c.Parallelism) {
		errs = append(errs, &ValidationError{Field: "parallelism", Value: c.Parallelism, Message: "must be a number, $(nproc) or an environment variable"})
	}
	for _, field := range []struct{ name, value string }{
		{"upstream_url", c.UpstreamURL},
		{"release_url", c.ReleaseURL},
	} {
		if u, err := url.Parse(field.value); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, &ValidationError{Field: field.name, Value: field.value, Message: "must be an absolute URL"})
		}
	}

	known := map[string]bool{}
	for _, lib := range Libraries {
		known[lib.Name] = true
	}
	for _, name := range c.Libraries {
		if !known[name] {
			errs = append(errs, &ValidationError{Field: "libraries", Value: name, Message: "unknown library, expected one of " + knownLibraries()})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func knownLibraries() string {
	names := make([]string, len(Libraries))
	for i, lib := range Libraries {
		names[i] = lib.Name
	}
	return strings.Join(names, ", ")
}
