package common

import (
	"path"
	"regexp"
	"strings"
)

// UnknownStr is the String form of out of range enum values.
const UnknownStr = "unknown"

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// PkgAlias returns a usable import alias for pkgPath: its last element,
// skipping a major version suffix and dropping characters that cannot
// appear in an identifier.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if majorVersion.MatchString(base) && path.Dir(pkgPath) != "." {
		base = path.Base(path.Dir(pkgPath))
	}

	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}

	base = strings.Map(func(r rune) rune {
		if r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			return r
		}

		return -1
	}, base)

	if base == "" || ('0' <= base[0] && base[0] <= '9') {
		base = "pkg" + base
	}

	return base
}
