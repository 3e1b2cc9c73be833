package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "curlmonkey"

// Dir returns the per-user data directory, creating it if needed. Settings,
// history, collections, environments, and the log file all live here.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(home, "AppData", "Roaming")
		}
	case "darwin":
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			base = filepath.Join(home, ".local", "share")
		}
	}

	dir := filepath.Join(base, appDirName)
	_ = os.MkdirAll(dir, 0o755)
	return dir
}

func HistoryPath() string {
	return filepath.Join(Dir(), "history.json")
}

func CollectionsPath() string {
	return filepath.Join(Dir(), "collections.json")
}

func EnvironmentsPath() string {
	return filepath.Join(Dir(), "environments.json")
}

func LogPath() string {
	return filepath.Join(Dir(), "curlmonkey.log")
}
