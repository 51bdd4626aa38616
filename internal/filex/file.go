package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppDirName is the per-user directory holding client state.
const AppDirName = "myblog"

// EnsureParentDir creates the directory that will contain filePath (owner-only
// permissions) and returns it. Relative paths are resolved against the
// working directory.
func EnsureParentDir(filePath string) (string, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", filePath, err)
	}

	dir := filepath.Dir(abs)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// DefaultDataPath returns <user config dir>/myblog/<name>. If the user config
// directory cannot be determined, name is returned relative to the working
// directory.
func DefaultDataPath(name string) string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return name
	}
	return filepath.Join(base, AppDirName, name)
}
