package query

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidScheme 表示 URL 形式的输入使用了不支持的 scheme。
	ErrInvalidScheme = errors.New("invalid scheme")
	// ErrRelativePath 表示路径形式的输入以 ./ 或 ../ 等相对路径标记开头。
	ErrRelativePath = errors.New("relative path not allowed")
	// ErrMalformedURL 表示 scheme 合法但 URL 本身无法解析。
	ErrMalformedURL = errors.New("malformed url")
	// ErrEmptyQuery 表示输入为空。
	ErrEmptyQuery = errors.New("empty query")
)

// ParseError 描述一次解析失败，携带原始输入和出错的片段。
type ParseError struct {
	Input string
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInvalidScheme):
		return fmt.Sprintf("%q is invalid scheme (supported: http, https, ssh, git)", e.Token)
	case errors.Is(e.Err, ErrRelativePath):
		return fmt.Sprintf("the path must not be a relative path: %q", e.Input)
	case errors.Is(e.Err, ErrMalformedURL):
		return fmt.Sprintf("malformed url %q: %s", e.Input, e.Token)
	default:
		return e.Err.Error()
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
