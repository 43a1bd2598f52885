package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const configFileName = "config.toml"

// DefaultConfigPathFor returns the per-user config file location for the
// given OS. Split out from ResolveConfigPath so tests can pin the inputs.
func DefaultConfigPathFor(goos, homeDir, xdgConfigHome string) (string, error) {
	if homeDir == "" {
		return "", errors.New("home directory is empty")
	}

	switch goos {
	case "linux":
		if xdgConfigHome != "" {
			return filepath.Join(xdgConfigHome, "distill", configFileName), nil
		}
		return filepath.Join(homeDir, ".config", "distill", configFileName), nil
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "distill", configFileName), nil
	default:
		return "", fmt.Errorf("unsupported OS: %s", goos)
	}
}

// ResolveConfigPath returns the per-user config file location for the
// current process.
func ResolveConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}

	return DefaultConfigPathFor(runtime.GOOS, homeDir, os.Getenv("XDG_CONFIG_HOME"))
}

// ExpandTilde rewrites a leading ~/ to the user's home directory. Other
// tilde forms (~user) are returned unchanged.
func ExpandTilde(path string) (string, error) {
	if path != "~" && !startsWithTildeSlash(path) {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home: %w", err)
	}

	if path == "~" {
		return homeDir, nil
	}
	return filepath.Join(homeDir, path[2:]), nil
}

func startsWithTildeSlash(path string) bool {
	return len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator)
}
