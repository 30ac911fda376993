package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"sigs.k8s.io/yaml"

	"github.com/mediaforge/ffbuild/pkg/global"
	"github.com/mediaforge/ffbuild/pkg/util/console"
	"github.com/mediaforge/ffbuild/pkg/util/files"
)

// Load reads the config for a project. An explicit configFile must exist; otherwise
// ffbuild.yaml in projectDir is used if present, and defaults if not.
func Load(projectDir string, configFile string) (*Config, error) {
	path := configFile
	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("Failed to expand %s: %w", path, err)
		}
		path = expanded
	} else {
		path = filepath.Join(projectDir, global.ConfigFilename)
		exists, err := files.Exists(path)
		if err != nil {
			return nil, err
		}
		if !exists {
			console.Debugf("No %s in %s, using defaults", global.ConfigFilename, projectDir)
			return DefaultConfig(), nil
		}
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Failed to read %s: %w", path, err)
	}
	config, err := FromYAML(contents)
	if err != nil {
		return nil, &ParseError{Filename: path, Err: err}
	}
	config.filename = path
	if config.BaseDockerfile != "" {
		if config.BaseDockerfile, err = homedir.Expand(config.BaseDockerfile); err != nil {
			return nil, err
		}
		if !filepath.IsAbs(config.BaseDockerfile) {
			config.BaseDockerfile = filepath.Join(filepath.Dir(path), config.BaseDockerfile)
		}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	console.Debugf("Loaded config from %s", path)
	return config, nil
}

// FromYAML parses a config, rejecting unknown fields, and fills in defaults.
func FromYAML(contents []byte) (*Config, error) {
	config := &Config{}
	if err := yaml.UnmarshalStrict(contents, config); err != nil {
		return nil, err
	}
	config.merge(DefaultConfig())
	return config, nil
}
