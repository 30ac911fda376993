package config

import (
	"github.com/mediaforge/ffbuild/pkg/global"
)

// Library is an optional external library FFmpeg is configured with.
type Library struct {
	Name    string
	Nonfree bool
}

// Libraries is every library the image knows how to build against, in configure order.
var Libraries = []Library{
	{Name: "gnutls"},
	{Name: "libaom"},
	{Name: "libass"},
	{Name: "libfdk-aac", Nonfree: true},
	{Name: "libfreetype"},
	{Name: "libmp3lame"},
	{Name: "libopus"},
	{Name: "libvorbis"},
	{Name: "libvpx"},
	{Name: "libx264"},
	{Name: "libx265"},
}

// Config is the optional ffbuild.yaml. Empty fields fall back to defaults.
type Config struct {
	Repository     string   `json:"repository,omitempty"`
	Parallelism    string   `json:"parallelism,omitempty"`
	BaseDockerfile string   `json:"base_dockerfile,omitempty"`
	UpstreamURL    string   `json:"upstream_url,omitempty"`
	ReleaseURL     string   `json:"release_url,omitempty"`
	Libraries      []string `json:"libraries,omitempty"`

	filename string
}

func DefaultConfig() *Config {
	libs := make([]string, len(Libraries))
	for i, lib := range Libraries {
		libs[i] = lib.Name
	}
	return &Config{
		Parallelism: "$(nproc)",
		UpstreamURL: global.UpstreamURL,
		ReleaseURL:  global.ReleaseURL,
		Libraries:   libs,
	}
}

// Filename is the file the config was loaded from, or "" for defaults.
func (c *Config) Filename() string {
	return c.filename
}

// EnabledLibraries returns the configured libraries in configure order.
func (c *Config) EnabledLibraries() []Library {
	enabled := map[string]bool{}
	for _, name := range c.Libraries {
		enabled[name] = true
	}
	out := []Library{}
	for _, lib := range Libraries {
		if enabled[lib.Name] {
			out = append(out, lib)
		}
	}
	return out
}

// merge fills any empty field of c from defaults
func (c *Config) merge(defaults *Config) {
	if c.Parallelism == "" {
		c.Parallelism = defaults.Parallelism
	}
	if c.UpstreamURL == "" {
		c.UpstreamURL = defaults.UpstreamURL
	}
	if c.ReleaseURL == "" {
		c.ReleaseURL = defaults.ReleaseURL
	}
	if c.Libraries == nil {
		c.Libraries = defaults.Libraries
	}
}
