package config

import (
	"time"
)

// Defaults.
const (
	DefaultVersion        = "1"
	DefaultTag            = "orm"
	DefaultDirective      = "orm:column"
	DefaultSuffix         = "Marshaller"
	DefaultFileSuffix     = "_marshaller.go"
	DefaultRuntimePackage = "marshaller-generator/orm"
	DefaultEntityBase     = DefaultRuntimePackage + ".Model"
	DefaultDebounce       = 200 * time.Millisecond
)

// Config controls annotation recognition and code generation.
type Config struct {
	Version          string      `yaml:"version"`
	Tag              string      `yaml:"tag"`
	Directive        string      `yaml:"directive"`
	Suffix           string      `yaml:"suffix"`
	FileSuffix       string      `yaml:"file_suffix"`
	RuntimePackage   string      `yaml:"runtime_package"`
	EntityBase       string      `yaml:"entity_base"`
	DebugUnformatted bool        `yaml:"debug_unformatted"`
	Comments         *bool       `yaml:"comments,omitempty"`
	Watch            WatchConfig `yaml:"watch"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// EmitComments reports whether generated declarations get doc comments.
func (c *Config) EmitComments() bool {
	return c.Comments == nil || *c.Comments
}

// EntityBaseName splits EntityBase into its package path and type name.
func (c *Config) EntityBaseName() (pkgPath, name string) {
	return splitQualified(c.EntityBase)
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = DefaultVersion
	}

	if c.Tag == "" {
		c.Tag = DefaultTag
	}

	if c.Directive == "" {
		c.Directive = DefaultDirective
	}

	if c.Suffix == "" {
		c.Suffix = DefaultSuffix
	}

	if c.FileSuffix == "" {
		c.FileSuffix = DefaultFileSuffix
	}

	if c.RuntimePackage == "" {
		c.RuntimePackage = DefaultRuntimePackage
	}

	if c.EntityBase == "" {
		c.EntityBase = c.RuntimePackage + ".Model"
	}

	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = DefaultDebounce
	}
}

// splitQualified splits "path/to/pkg.Name" at the last dot after the last slash.
func splitQualified(s string) (pkgPath, name string) {
	slash := -1

	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			slash = i

			break
		}
	}

	for i := len(s) - 1; i > slash; i-- {
		if s[i] == '.' {
			return s[:i], s[i+1:]
		}
	}

	return "", s
}
