// # internal/index/modpath.go
package index

import (
	"path/filepath"
	"strings"
)

// PackageMarker is the sentinel file that makes a directory an importable
// package. Directories without one are still indexed by their relative path
// (namespace packages), since many real projects omit markers.
const PackageMarker = "__init__.py"

// ModulePath derives the dotted module path for a file relative to the
// project root. `app/services/user.py` becomes `app.services.user`,
// `app/__init__.py` becomes `app`. Returns "" for paths outside the root.
func ModulePath(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	last := strings.TrimSuffix(parts[len(parts)-1], ".py")
	if last == "__init__" {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = last
	}

	return strings.Join(parts, ".")
}

// IsPackagePath reports whether the file is a package marker, meaning its
// dotted path names the enclosing directory rather than the file itself.
func IsPackagePath(file string) bool {
	return filepath.Base(file) == PackageMarker
}
