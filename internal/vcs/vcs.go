// Package vcs 负责真正执行 clone，支持调用 git 命令和 go-git 两种后端。
package vcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"rhq/internal/config"
	"rhq/internal/logging"

	"github.com/go-git/go-git/v5"
)

// ErrExtraArgs 表示 go-git 后端不支持额外的 git 参数。
var ErrExtraArgs = errors.New("extra git arguments require the git backend")

// Cloner 将 remote clone 到 dest。
type Cloner interface {
	Clone(ctx context.Context, remote, dest string, args []string) error
}

// GitCommand 通过外部 git 命令执行 clone。
type GitCommand struct {
	Binary string
	Stdout io.Writer
	Stderr io.Writer
}

func (g *GitCommand) Clone(ctx context.Context, remote, dest string, args []string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	binary := g.Binary
	if binary == "" {
		binary = "git"
	}

	argv := cloneArgs(remote, dest, args)
	logging.Logger.Debug("run git", "binary", binary, "args", argv)

	cmd := exec.CommandContext(ctx, binary, argv...)
	cmd.Stdout = g.Stdout
	cmd.Stderr = g.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git clone %s: %w", remote, err)
	}
	return nil
}

func cloneArgs(remote, dest string, args []string) []string {
	argv := make([]string, 0, len(args)+3)
	argv = append(argv, "clone")
	argv = append(argv, args...)
	return append(argv, remote, dest)
}

// GoGit 使用 go-git 在进程内执行 clone。
type GoGit struct {
	Progress io.Writer
}

func (g *GoGit) Clone(ctx context.Context, remote, dest string, args []string) error {
	if len(args) > 0 {
		return ErrExtraArgs
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	logging.Logger.Debug("go-git clone", "remote", remote, "dest", dest)
	_, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
		URL:      remote,
		Progress: g.Progress,
	})
	if err != nil {
		// go-git 只清理它自己创建的目录，已有目录中的文件保持不变
		return fmt.Errorf("clone %s: %w", remote, err)
	}
	return nil
}

// New 根据后端名称创建 Cloner。
func New(backend string, stdout, stderr io.Writer) (Cloner, error) {
	switch backend {
	case config.BackendGit, "":
		return &GitCommand{Stdout: stdout, Stderr: stderr}, nil
	case config.BackendGoGit:
		return &GoGit{Progress: stderr}, nil
	default:
		return nil, fmt.Errorf("unsupported clone backend %q", backend)
	}
}
