package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	// DataDirEnv overrides the data directory.
	DataDirEnv = "JOT_DATA_DIR"
	// LocalDirName marks a project-local notebook (e.g. ./.jot).
	LocalDirName = ".jot"
)

// ResolveDataDir picks the data directory.
// Order: explicit path, JOT_DATA_DIR, the nearest .jot directory above the
// working directory, then the OS-specific default.
func ResolveDataDir(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if custom := os.Getenv(DataDirEnv); custom != "" {
		return custom, nil
	}
	if wd, err := os.Getwd(); err == nil {
		if root, err := FindRoot(wd); err == nil {
			return filepath.Join(root, LocalDirName), nil
		}
	}
	return defaultDataDir()
}

func defaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return filepath.Join(appdata, "jot"), nil
		}
		return "", errors.New("APPDATA not set")
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			return filepath.Join(home, "Library", "Application Support", "jot"), nil
		}
		return "", errors.New("home directory not found")
	default: // linux and others
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "jot"), nil
		}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			return filepath.Join(home, ".local", "share", "jot"), nil
		}
		return "", errors.New("home directory not found")
	}
}

// FindRoot recursively looks upwards for a directory containing a .jot
// directory and returns its absolute path.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if isDir(filepath.Join(dir, LocalDirName)) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no %s directory found above %s", LocalDirName, abs)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// SandboxPath re-roots userPath under <tmp>/jot-dev/<base> when sandbox is
// set. Paths already inside the system temp dir (e.g. from t.TempDir) are
// trusted as they are.
func SandboxPath(userPath string, sandbox bool) string {
	if !sandbox {
		return userPath
	}

	clean := filepath.Clean(userPath)
	if rel, err := filepath.Rel(os.TempDir(), clean); err == nil && !strings.HasPrefix(rel, "..") {
		return clean
	}

	name := filepath.Base(clean)
	if name == "." || name == string(os.PathSeparator) || name == "" {
		name = "default"
	}
	return filepath.Join(os.TempDir(), "jot-dev", name)
}
