// Package clone 根据解析后的 Locator 计算 clone 的远程地址和本地目标目录。
package clone

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"rhq/internal/config"
	"rhq/internal/query"
)

var (
	errMissingPath = errors.New("missing repository path")
	errUnsafePath  = errors.New("destination escapes root")
)

// Options 控制远程地址的生成方式。
type Options struct {
	// Protocol 强制使用 https、git 或 ssh；为空时沿用输入本身的地址。
	Protocol string
	// DefaultHost 用于没有主机名的裸路径。
	DefaultHost string
}

// Plan 是一次 clone 所需的全部信息。
type Plan struct {
	Remote      string
	Host        string
	Path        string
	Destination string
}

// NewPlan 计算 loc 在 root 下的目标目录 root/<host>/<path> 和远程地址。
func NewPlan(loc query.Locator, root string, opts Options) (*Plan, error) {
	if opts.Protocol != "" && !slices.Contains(config.Protocols, opts.Protocol) {
		return nil, fmt.Errorf("unsupported protocol %q (supported: %s)", opts.Protocol, strings.Join(config.Protocols, ", "))
	}

	host, repoPath := hostAndPath(loc, opts.DefaultHost)
	repoPath = strings.Trim(repoPath, "/")
	if repoPath == "" {
		return nil, fmt.Errorf("%w in %q", errMissingPath, loc.String())
	}
	if host == "" {
		return nil, fmt.Errorf("no host for %q and no default host configured", loc.String())
	}

	if !safeSegment(host) || slices.ContainsFunc(strings.Split(repoPath, "/"), unsafeSegment) {
		return nil, fmt.Errorf("%w: %q", errUnsafePath, loc.String())
	}

	dest := filepath.Join(root, host, filepath.FromSlash(repoPath))
	if !within(root, dest) {
		return nil, fmt.Errorf("%w: %q", errUnsafePath, loc.String())
	}

	return &Plan{
		Remote:      remoteURL(loc, host, repoPath, opts.Protocol),
		Host:        host,
		Path:        repoPath,
		Destination: dest,
	}, nil
}

// safeSegment 拒绝 "."、".." 以及带路径分隔符的片段。
func safeSegment(seg string) bool {
	return seg != "." && seg != ".." && !strings.ContainsAny(seg, `/\`)
}

func unsafeSegment(seg string) bool { return !safeSegment(seg) }

// within 判断 dest 是否位于 root 之下（不等于 root 本身）。
func within(root, dest string) bool {
	rel, err := filepath.Rel(root, dest)
	if err != nil || rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// hostAndPath 对裸路径：首段包含 "." 时视为主机名，否则使用默认主机。
func hostAndPath(loc query.Locator, defaultHost string) (string, string) {
	if host, ok := loc.Host(); ok {
		return host, loc.Path()
	}

	p, ok := loc.(query.Path)
	if ok && len(p) > 1 && strings.Contains(p[0], ".") {
		return p[0], strings.Join(p[1:], "/")
	}
	return defaultHost, loc.Path()
}

func remoteURL(loc query.Locator, host, repoPath, protocol string) string {
	switch protocol {
	case "https":
		return "https://" + host + "/" + repoPath + ".git"
	case "git":
		return "git://" + host + "/" + repoPath + ".git"
	case "ssh":
		return "ssh://" + sshUser(loc) + "@" + host + "/" + repoPath + ".git"
	}

	switch l := loc.(type) {
	case *query.URL, *query.SCP:
		return l.String()
	default:
		return "https://" + host + "/" + repoPath + ".git"
	}
}

func sshUser(loc query.Locator) string {
	switch l := loc.(type) {
	case *query.SCP:
		return l.Username
	case *query.URL:
		if u := l.Username(); u != "" {
			return u
		}
	}
	return "git"
}
