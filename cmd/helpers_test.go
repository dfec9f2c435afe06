package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rhq/internal/config"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"
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

// setTestRoot 写入只修改了 root 的默认配置，并创建 root 目录。
func setTestRoot(t *testing.T, root string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, config.Save(config.Config{
		Root:         root,
		DefaultHost:  config.DefaultHost,
		CloneBackend: config.DefaultCloneBackend,
	}))
}

func executeCommand(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func mkdirs(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(p, 0o755))
	}
}

func createRepoWithCommits(t *testing.T, path string, commits int) {
	t.Helper()

	require.NoError(t, os.MkdirAll(path, 0o755))

	r, err := git.PlainInit(path, false)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	for i := 0; i < commits; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(path, "file.txt"), []byte{byte('a' + i)}, 0o644))

		_, err := wt.Add("file.txt")
		require.NoError(t, err)

		sig := &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  base.Add(time.Duration(i) * time.Minute),
		}
		_, err = wt.Commit("test commit", &git.CommitOptions{Author: sig, Committer: sig})
		require.NoError(t, err)
	}
}
