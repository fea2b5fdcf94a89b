// Package paths resolves configuration and schema file locations for the
// modelsafe CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// LocalConfigDirName is the CWD-relative configuration directory.
const LocalConfigDirName = ".modelsafe"

// Environment variable names for overrides.
const (
	EnvConfigDir = "MODELSAFE_CONFIG_DIR"
	EnvSchema    = "MODELSAFE_SCHEMA"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/modelsafe (fallback ~/.config/modelsafe)
// macOS:   ~/Library/Application Support/modelsafe
// Windows: %APPDATA%/modelsafe
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "modelsafe"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "modelsafe"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "modelsafe"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > MODELSAFE_CONFIG_DIR env > $(CWD)/.modelsafe when
// it exists > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	if info, err := os.Stat(LocalConfigDirName); err == nil && info.IsDir() {
		return filepath.Abs(LocalConfigDirName)
	}
	return DefaultConfigDir()
}
