package config

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

// Validate checks that every value can be used to recognise annotations and
// name generated code. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Version != DefaultVersion {
		errs = append(errs, fmt.Errorf("unsupported config version %q", c.Version))
	}

	if c.Tag == "" || strings.ContainsAny(c.Tag, " \t:\"`,") {
		errs = append(errs, fmt.Errorf("tag %q is not a valid struct tag key", c.Tag))
	}

	if c.Directive == "" || strings.ContainsAny(c.Directive, " \t") || strings.HasPrefix(c.Directive, "/") {
		errs = append(errs, fmt.Errorf("directive %q must be a single word such as orm:column", c.Directive))
	}

	if !token.IsIdentifier("X"+c.Suffix) {
		errs = append(errs, fmt.Errorf("suffix %q cannot extend a type name", c.Suffix))
	}

	if !strings.HasSuffix(c.FileSuffix, ".go") || strings.HasSuffix(c.FileSuffix, "_test.go") ||
		strings.ContainsAny(c.FileSuffix, `/\`) {
		errs = append(errs, fmt.Errorf("file_suffix %q must name a non-test .go file", c.FileSuffix))
	}

	if c.RuntimePackage == "" {
		errs = append(errs, errors.New("runtime_package is required"))
	}

	pkg, name := c.EntityBaseName()
	if pkg == "" || !token.IsIdentifier(name) {
		errs = append(errs, fmt.Errorf("entity_base %q must be a qualified type name such as %s", c.EntityBase, DefaultEntityBase))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}
