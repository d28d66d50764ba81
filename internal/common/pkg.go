package common

import (
	"path"
	"strings"
)

// PkgAlias returns the default package name for an import path: its last
// element, skipping a trailing major-version suffix ("github.com/x/y/v2" -> "y").
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if isMajorVersion(base) {
		if dir := path.Dir(pkgPath); dir != "." && dir != "/" {
			base = path.Base(dir)
		}
	}

	return strings.ReplaceAll(base, "-", "")
}

// Qualified renders name as seen from another package ("uuid.UUID").
func Qualified(pkgPath, name string) string {
	if alias := PkgAlias(pkgPath); alias != "" {
		return alias + "." + name
	}

	return name
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}

	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
