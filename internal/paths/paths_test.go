package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDirLinux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-specific behavior")
	}

	t.Run("xdg set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		dir, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/tmp/xdg", "modelsafe"), dir)
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		orig := platformDir.homeDir
		platformDir.homeDir = func() (string, error) { return "/home/ada", nil }
		defer func() { platformDir.homeDir = orig }()

		dir, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/home/ada", ".config", "modelsafe"), dir)
	})
}

func TestResolveConfigDirPrecedence(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/tmp/env-dir")
		dir, err := ResolveConfigDir("/tmp/flag-dir")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/flag-dir", dir)
	})

	t.Run("env over default", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/tmp/env-dir")
		dir, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Equal(t, "/tmp/env-dir", dir)
	})

	t.Run("local directory when present", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		tmp := t.TempDir()
		cwd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(tmp))
		defer func() { _ = os.Chdir(cwd) }()

		require.NoError(t, os.Mkdir(LocalConfigDirName, 0o755))
		dir, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Base(dir), LocalConfigDirName)
	})
}
