package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DataDir returns the path to the authdash data directory.
// - Windows: %APPDATA%\authdash
// - Other OS: ~/.authdash
// AUTHDASH_HOME overrides both.
func DataDir() string {
	if dir := os.Getenv("AUTHDASH_HOME"); dir != "" {
		return dir
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "authdash")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".authdash"
	}
	return filepath.Join(home, ".authdash")
}

// DBPath returns the path to the SQLite database holding the session entries.
func DBPath() string {
	return filepath.Join(DataDir(), "authdash.db")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0700)
}
