// Package storage persists perft results between runs.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chess"

// CacheDirEnv names the environment variable that overrides the perft
// cache directory.
const CacheDirEnv = "CHESS_PERFT_CACHE"

// GetDataDir returns the platform-specific data directory for the application.
// - macOS: ~/Library/Application Support/chess/
// - Linux: ~/.local/share/chess/
// - Windows: %APPDATA%/chess/
func GetDataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		// Check XDG_DATA_HOME first
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// PerftCacheDir returns the directory of the perft database: $CHESS_PERFT_CACHE
// when set, otherwise "perft" under the data directory. The directory is
// created if missing.
func PerftCacheDir() (string, error) {
	dir := os.Getenv(CacheDirEnv)
	if dir == "" {
		dataDir, err := GetDataDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(dataDir, "perft")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
