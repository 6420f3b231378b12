package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	t.Run("absolute paths are kept", func(t *testing.T) {
		base := t.TempDir()
		paths, err := NewPaths(PathsConfig{
			OutputDir: filepath.Join(base, "out"),
			LogsDir:   filepath.Join(base, "logs"),
		})
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(base, "out"), paths.OutputDir)
		assert.Equal(t, filepath.Join(base, "logs"), paths.LogsDir)
	})

	t.Run("relative paths resolve against the working directory", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)

		paths, err := NewPaths(PathsConfig{OutputDir: "output", LogsDir: "logs"})
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(wd, "output"), paths.OutputDir)
		assert.Equal(t, filepath.Join(wd, "logs"), paths.LogsDir)
		assert.True(t, filepath.IsAbs(paths.OutputDir))
	})
}

func TestPaths_EnsureDirectories(t *testing.T) {
	base := t.TempDir()
	paths, err := NewPaths(PathsConfig{
		OutputDir: filepath.Join(base, "nested", "out"),
		LogsDir:   filepath.Join(base, "logs"),
	})
	require.NoError(t, err)

	require.NoError(t, paths.EnsureDirectories())
	assert.DirExists(t, paths.OutputDir)
	assert.DirExists(t, paths.LogsDir)

	// Idempotent
	assert.NoError(t, paths.EnsureDirectories())
}

func TestPaths_EnsureDirectoriesFailsOnFile(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	paths, err := NewPaths(PathsConfig{OutputDir: filepath.Join(blocker, "out"), LogsDir: filepath.Join(base, "logs")})
	require.NoError(t, err)

	err = paths.EnsureDirectories()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create directory")
}

func TestPaths_FilePaths(t *testing.T) {
	paths := &Paths{OutputDir: "/srv/out", LogsDir: "/srv/logs"}

	assert.Equal(t, filepath.Join("/srv/out", "customers1.csv"), paths.GetOutputPath("customers1.csv"))
	assert.Equal(t, filepath.Join("/srv/logs", "custexport.log"), paths.GetLogPath("custexport.log"))
}
