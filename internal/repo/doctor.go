package repo

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

const (
	repoCountWarnThreshold = 500
	metaSizeWarnThreshold  = int64(1 << 30) // 1GB
)

// CheckHeadReachable 检查 git 仓库的 HEAD 是否指向可读取的提交。
// 非 git 仓库直接返回 nil。
func CheckHeadReachable(repoPath string) error {
	if marker, _ := Detect(repoPath); marker != ".git" {
		return nil
	}

	r, err := git.PlainOpen(repoPath)
	if err != nil {
		return fmt.Errorf("cannot open repo: %w", err)
	}

	headRef, err := r.Head()
	if err != nil {
		return fmt.Errorf("cannot resolve HEAD: %w", err)
	}
	if headRef.Hash().IsZero() {
		return fmt.Errorf("HEAD has no commits")
	}
	if _, err := r.CommitObject(headRef.Hash()); err != nil {
		return fmt.Errorf("HEAD commit is unreachable: %w", err)
	}
	return nil
}

// CheckPermissions 检查仓库元数据目录是否可读。
func CheckPermissions(repoPath string) error {
	marker, ok := Detect(repoPath)
	if !ok {
		return fmt.Errorf("no repository metadata found")
	}

	metaPath := filepath.Join(repoPath, marker)
	st, err := os.Stat(metaPath)
	if err != nil {
		return fmt.Errorf("cannot stat %s: %w", marker, err)
	}
	// worktree 和 submodule 的 .git 是文件
	if !st.IsDir() {
		f, err := os.Open(metaPath)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", marker, err)
		}
		_ = f.Close()
		return nil
	}

	if _, err := os.ReadDir(metaPath); err != nil {
		return fmt.Errorf("cannot read %s: %w", marker, err)
	}
	return nil
}

// CheckPerformance 检查性能预警项：仓库数量过多或元数据目录过大。
func CheckPerformance(repos []string) []string {
	warnings := make([]string, 0)

	if len(repos) > repoCountWarnThreshold {
		warnings = append(warnings, fmt.Sprintf("large number of repos (%d) may slow down listing", len(repos)))
	}

	for _, repoPath := range repos {
		size, err := metadataSize(repoPath)
		if err != nil {
			continue
		}
		if size > metaSizeWarnThreshold {
			warnings = append(warnings, fmt.Sprintf("%s is large (%.1f GB), may be slow", repoPath, float64(size)/float64(1<<30)))
		}
	}

	return warnings
}

func metadataSize(repoPath string) (int64, error) {
	marker, ok := Detect(repoPath)
	if !ok {
		return 0, fmt.Errorf("no repository metadata in %s", repoPath)
	}

	var size int64
	err := filepath.WalkDir(filepath.Join(repoPath, marker), func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}

	return size, nil
}
