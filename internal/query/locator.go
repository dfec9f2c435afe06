package query

import (
	"net/url"
	"strings"
)

const (
	gitSuffix       = ".git"
	defaultSCPUser  = "git"
	pathSeparator   = "/"
	schemeSeparator = "://"
)

// Locator 是解析后的仓库引用，只有 *URL、*SCP、Path 三种实现。
type Locator interface {
	// Host 返回主机名；Path 形式没有主机，返回 ok=false。
	Host() (host string, ok bool)
	// Path 返回不含首尾 / 且不含 .git 后缀的仓库路径；URL 形式保留原有的百分号编码。
	Path() string
	// String 返回可交给 VCS 使用的地址。
	String() string

	locator()
}

// URL 对应 <scheme>://... 形式的输入。
type URL struct {
	u *url.URL
}

// Scheme 返回小写的 scheme。
func (l *URL) Scheme() string { return l.u.Scheme }

// Username 返回 URL 中的用户名，没有时为空串。
func (l *URL) Username() string { return l.u.User.Username() }

// Password 返回 URL 中的密码。
func (l *URL) Password() (string, bool) {
	if l.u.User == nil {
		return "", false
	}
	return l.u.User.Password()
}

// Port 返回端口，未指定时为空串。
func (l *URL) Port() string { return l.u.Port() }

func (l *URL) Host() (string, bool) { return l.u.Hostname(), true }

func (l *URL) Path() string {
	p := strings.TrimPrefix(l.u.EscapedPath(), pathSeparator)
	p = strings.TrimRight(p, pathSeparator)
	return strings.TrimSuffix(p, gitSuffix)
}

func (l *URL) String() string { return l.u.String() }

func (*URL) locator() {}

// SCP 对应 [user@]host:path 形式的输入。
type SCP struct {
	Username string
	Hostname string
	// RepoPath 在解析时已去掉 .git 后缀。
	RepoPath string
}

func (l *SCP) Host() (string, bool) { return l.Hostname, true }

func (l *SCP) Path() string { return l.RepoPath }

func (l *SCP) String() string {
	return l.Username + "@" + l.Hostname + ":" + l.RepoPath + gitSuffix
}

func (*SCP) locator() {}

// Path 对应裸路径输入，保存按 / 切分后的原始片段。
type Path []string

func (Path) Host() (string, bool) { return "", false }

func (p Path) Path() string { return strings.Join(p, pathSeparator) }

func (p Path) String() string { return p.Path() }

func (Path) locator() {}
