package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"RHQ_ROOT", "RHQ_DEFAULT_HOST", "RHQ_PROTOCOL", "RHQ_CLONE_BACKEND", "RHQ_EXCLUDES"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return home
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	home := withTempHome(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "src"), cfg.Root)
	assert.Equal(t, DefaultHost, cfg.DefaultHost)
	assert.Equal(t, "", cfg.Protocol)
	assert.Equal(t, BackendGit, cfg.CloneBackend)
	assert.Empty(t, cfg.Excludes)
	assert.Empty(t, ValidateConfig(cfg))
}

func TestSaveAndLoad(t *testing.T) {
	home := withTempHome(t)

	require.NoError(t, Save(Config{
		Root:         "~/code",
		DefaultHost:  "gitlab.com",
		Protocol:     "ssh",
		CloneBackend: BackendGoGit,
		Excludes:     []string{"node_modules", "vendor"},
	}))

	file, err := File()
	require.NoError(t, err)
	assert.FileExists(t, file)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "code"), cfg.Root)
	assert.Equal(t, "gitlab.com", cfg.DefaultHost)
	assert.Equal(t, "ssh", cfg.Protocol)
	assert.Equal(t, BackendGoGit, cfg.CloneBackend)
	assert.Equal(t, []string{"node_modules", "vendor"}, cfg.Excludes)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := withTempHome(t)
	require.NoError(t, Save(Config{Root: "~/code", DefaultHost: DefaultHost, CloneBackend: BackendGit}))

	override := filepath.Join(home, "elsewhere")
	t.Setenv("RHQ_ROOT", override)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, override, cfg.Root)
}

func TestLoad_InvalidYAML(t *testing.T) {
	withTempHome(t)
	require.NoError(t, EnsureDir())

	file, err := File()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, []byte("root: [unterminated\n"), 0o600))

	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestExpandPath(t *testing.T) {
	home := withTempHome(t)
	t.Setenv("RHQ_TEST_DIR", "/opt/repos")

	tests := []struct {
		input string
		want  string
	}{
		{"~", home},
		{"~/src", filepath.Join(home, "src")},
		{"$RHQ_TEST_DIR/work", "/opt/repos/work"},
		{"  /abs/path  ", "/abs/path"},
		{"relative/dir", "relative/dir"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateConfig(t *testing.T) {
	valid := Config{Root: "/src", DefaultHost: "github.com", CloneBackend: BackendGit}

	t.Run("valid config passes", func(t *testing.T) {
		cfg := valid
		assert.Empty(t, ValidateConfig(&cfg))
	})

	t.Run("empty root fails", func(t *testing.T) {
		cfg := valid
		cfg.Root = " "
		assert.Contains(t, strings.Join(ValidateConfig(&cfg), "\n"), "root must not be empty")
	})

	t.Run("host with path fails", func(t *testing.T) {
		cfg := valid
		cfg.DefaultHost = "github.com/peco"
		assert.Contains(t, strings.Join(ValidateConfig(&cfg), "\n"), "invalid default_host")
	})

	t.Run("unknown protocol fails", func(t *testing.T) {
		cfg := valid
		cfg.Protocol = "ftp"
		assert.Contains(t, strings.Join(ValidateConfig(&cfg), "\n"), "invalid protocol")
	})

	t.Run("unknown backend fails", func(t *testing.T) {
		cfg := valid
		cfg.CloneBackend = "svn"
		assert.Contains(t, strings.Join(ValidateConfig(&cfg), "\n"), "invalid clone_backend")
	})
}
