package repo

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"rhq/internal/logging"
)

// Markers 是判定仓库根目录的元数据目录名，按检查顺序排列。
var Markers = []string{".git", ".svn", ".hg", "_darcs"}

// Repository 是扫描得到的一个仓库根目录。
type Repository struct {
	Path string
}

func (r Repository) String() string {
	return r.Path
}

// ScanOptions 控制扫描行为。
type ScanOptions struct {
	// Depth 是最大递归深度，-1 表示不限制。
	Depth int
	// Excludes 中的目录不会被进入，可以是目录名、相对 root 的路径或绝对路径。
	Excludes []string
}

// Scan 返回 root 下所有仓库的惰性序列。
// 遍历会跟随符号链接；一旦某个目录被识别为仓库，就不再进入其子目录。
// 多个链接指向同一目录时各自报告一次，指回祖先目录的链接会被跳过。
// 读取失败的目录会被跳过并记录 debug 日志，不会中断遍历。
// 每次 range 返回的序列都会重新遍历一次文件系统。
func Scan(root string, opts ScanOptions) (iter.Seq[Repository], error) {
	rootPath, err := normalizePath(root)
	if err != nil {
		return nil, err
	}

	st, err := os.Stat(rootPath)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", rootPath)
	}

	resolvedRoot, err := filepath.EvalSymlinks(rootPath)
	if err != nil {
		return nil, err
	}
	excludes := compileExcludes(rootPath, opts.Excludes)

	return func(yield func(Repository) bool) {
		s := &scanner{
			depthLimit: opts.Depth,
			excludes:   excludes,
			ancestors:  map[string]struct{}{resolvedRoot: {}},
		}
		s.walk(rootPath, 0, yield)
	}, nil
}

// ScanRepos 扫描 root 并返回排序后的仓库路径列表。
func ScanRepos(root string, depth int, excludes []string) ([]string, error) {
	seq, err := Scan(root, ScanOptions{Depth: depth, Excludes: excludes})
	if err != nil {
		return nil, err
	}

	var repos []string
	for r := range seq {
		repos = append(repos, r.Path)
	}
	slices.Sort(repos)
	return repos, nil
}

// Detect 返回 dir 下第一个存在的元数据目录名。
func Detect(dir string) (marker string, ok bool) {
	for _, m := range Markers {
		if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
			return m, true
		}
	}
	return "", false
}

// IsRepository 判断 dir 是否直接包含任一元数据目录。
func IsRepository(dir string) bool {
	_, ok := Detect(dir)
	return ok
}

type scanner struct {
	depthLimit int
	excludes   []exclude
	// ancestors 是当前下降路径上各目录的真实路径，返回时移除
	ancestors map[string]struct{}
}

// walk 深度优先遍历 dir，返回 false 表示调用方已停止消费。
func (s *scanner) walk(dir string, depth int, yield func(Repository) bool) bool {
	if IsRepository(dir) {
		return yield(Repository{Path: dir})
	}

	if s.depthLimit >= 0 && depth >= s.depthLimit {
		return true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.Logger.Debug("skip unreadable directory", "path", dir, "error", err)
		return true
	}

	for _, entry := range entries {
		name := entry.Name()
		if slices.Contains(Markers, name) {
			continue
		}

		child := filepath.Join(dir, name)
		if !isDir(entry, child) {
			continue
		}
		resolved, err := filepath.EvalSymlinks(child)
		if err != nil {
			logging.Logger.Debug("skip unresolvable directory", "path", child, "error", err)
			continue
		}
		if s.excluded(child, resolved, name) {
			continue
		}
		if _, loop := s.ancestors[resolved]; loop {
			// 指回自身祖先的链接才是回环；指向兄弟目录的别名照常遍历
			logging.Logger.Debug("skip symlink loop", "path", child, "target", resolved)
			continue
		}

		s.ancestors[resolved] = struct{}{}
		more := s.walk(child, depth+1, yield)
		delete(s.ancestors, resolved)
		if !more {
			return false
		}
	}

	return true
}

func (s *scanner) excluded(path, resolved, name string) bool {
	for _, ex := range s.excludes {
		if ex.match(path, name) || (resolved != path && ex.match(resolved, "")) {
			return true
		}
	}
	return false
}

// isDir 判断目录项是否为目录，符号链接按其指向判断。
func isDir(entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	st, err := os.Stat(path)
	if err != nil {
		logging.Logger.Debug("skip broken symlink", "path", path, "error", err)
		return false
	}
	return st.IsDir()
}

// exclude 是一条预处理过的排除规则。
// name 非空时按目录名匹配；path 是规则对应的绝对路径，匹配它本身及其下所有目录。
type exclude struct {
	name string
	path string
	// resolved 是 path 解析符号链接后的真实路径，与 path 相同时为空
	resolved string
}

func (ex exclude) match(path, name string) bool {
	if name != "" && ex.name == name {
		return true
	}
	return within(path, ex.path) || (ex.resolved != "" && within(path, ex.resolved))
}

func within(path, dir string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(os.PathSeparator))
}

// compileExcludes 去掉空白规则，并把 ~、相对 rootPath 的路径展开为绝对路径。
func compileExcludes(rootPath string, raw []string) []exclude {
	out := make([]exclude, 0, len(raw))
	for _, ex := range raw {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		var rule exclude
		switch {
		case ex == "~" || strings.HasPrefix(ex, "~/"):
			expanded, err := normalizePath(ex)
			if err != nil {
				logging.Logger.Debug("ignore exclude", "exclude", ex, "error", err)
				continue
			}
			rule.path = expanded
		case filepath.IsAbs(ex):
			rule.path = filepath.Clean(ex)
		default:
			if filepath.Base(ex) == ex {
				rule.name = ex
			}
			rule.path = filepath.Join(rootPath, filepath.Clean(ex))
		}

		if resolved, err := filepath.EvalSymlinks(rule.path); err == nil && resolved != rule.path {
			rule.resolved = resolved
		}
		out = append(out, rule)
	}
	return out
}
