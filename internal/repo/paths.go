package repo

import (
	"errors"
	"path/filepath"
	"strings"

	"rhq/internal/config"
)

// normalizePath 标准化路径：
// 1. 去除首尾空白
// 2. 展开 ~ 和环境变量
// 3. 转换为绝对路径并清理
func normalizePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", errors.New("empty path")
	}

	expanded, err := config.ExpandPath(p)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}
