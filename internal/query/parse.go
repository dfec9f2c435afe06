package query

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

var (
	urlPattern = regexp.MustCompile(`^([^:]+)` + schemeSeparator)
	scpPattern = regexp.MustCompile(`^((?:[^@]+@)?)([^:@]+):/?(.+)$`)
)

// relativePrefixes 是裸路径不允许使用的开头。
var relativePrefixes = []string{"./", "../", `.\`, `..\`}

// Parse 按 URL、SCP、裸路径的顺序尝试匹配，返回第一个匹配的 Locator。
// URL 形式一旦匹配到 scheme，就不会再回退到其他形式。
func Parse(s string) (Locator, error) {
	if strings.TrimSpace(s) == "" {
		return nil, &ParseError{Input: s, Err: ErrEmptyQuery}
	}

	if m := urlPattern.FindStringSubmatch(s); m != nil {
		return parseURL(s, m[1])
	}

	if m := scpPattern.FindStringSubmatch(s); m != nil {
		username := strings.TrimSuffix(m[1], "@")
		if username == "" {
			username = defaultSCPUser
		}
		return &SCP{
			Username: username,
			Hostname: m[2],
			RepoPath: strings.TrimSuffix(strings.TrimRight(m[3], pathSeparator), gitSuffix),
		}, nil
	}

	if isRelative(s) {
		return nil, &ParseError{Input: s, Err: ErrRelativePath}
	}
	return Path(strings.Split(s, pathSeparator)), nil
}

// MustParse 与 Parse 相同，解析失败时 panic。仅用于测试和常量输入。
func MustParse(s string) Locator {
	l, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return l
}

func parseURL(s, scheme string) (Locator, error) {
	switch scheme {
	case "http", "https", "ssh", "git":
	default:
		return nil, &ParseError{Input: s, Token: scheme, Err: ErrInvalidScheme}
	}

	u, err := url.Parse(s)
	if err != nil {
		reason := err.Error()
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			reason = urlErr.Err.Error()
		}
		return nil, &ParseError{Input: s, Token: reason, Err: ErrMalformedURL}
	}
	if u.Hostname() == "" {
		return nil, &ParseError{Input: s, Token: "empty host", Err: ErrMalformedURL}
	}
	return &URL{u: u}, nil
}

func isRelative(s string) bool {
	if s == "." || s == ".." {
		return true
	}
	for _, prefix := range relativePrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
