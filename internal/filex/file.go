// Package filex contains small filesystem helpers used by exports.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and parents) if needed and returns its absolute
// path. A relative dir is resolved against the working directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return abs, nil
}

// WriteInto writes data to dir/name, creating dir first. Only the base
// element of name is used so a crafted name cannot escape dir.
// Returns the path of the written file.
func WriteInto(dir, name string, data []byte) (string, error) {
	base := filepath.Base(filepath.Clean(name))
	if base == "." || base == string(filepath.Separator) || base == ".." {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	abs, err := EnsureDir(dir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(abs, base)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
