package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName 用于配置目录名和环境变量前缀。
	AppName = "rhq"

	DefaultRoot         = "~/src"
	DefaultHost         = "github.com"
	DefaultCloneBackend = BackendGit
)

const (
	BackendGit   = "git"
	BackendGoGit = "go-git"
)

// Protocols 是 clone 时可强制使用的协议。
var Protocols = []string{"https", "git", "ssh"}

// Backends 是支持的 clone 后端。
var Backends = []string{BackendGit, BackendGoGit}

type Config struct {
	// Root 是所有仓库所在的根目录，Load 后已展开 ~ 和环境变量。
	Root         string
	DefaultHost  string
	Protocol     string
	CloneBackend string
	Excludes     []string
}

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// Load 读取配置文件，文件不存在时返回默认配置。
// RHQ_ROOT 等环境变量优先于配置文件。
func Load() (*Config, error) {
	configFile, err := File()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(AppName)
	v.AutomaticEnv()
	v.SetDefault("root", DefaultRoot)
	v.SetDefault("default_host", DefaultHost)
	v.SetDefault("protocol", "")
	v.SetDefault("clone_backend", DefaultCloneBackend)
	v.SetDefault("excludes", []string{})

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("read config %s: %w", configFile, err)
	}

	root, err := ExpandPath(v.GetString("root"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Root:         root,
		DefaultHost:  strings.TrimSpace(v.GetString("default_host")),
		Protocol:     strings.TrimSpace(v.GetString("protocol")),
		CloneBackend: strings.TrimSpace(v.GetString("clone_backend")),
		Excludes:     v.GetStringSlice("excludes"),
	}, nil
}

func Save(config Config) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile, err := File()
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("root", config.Root)
	v.Set("default_host", config.DefaultHost)
	v.Set("protocol", config.Protocol)
	v.Set("clone_backend", config.CloneBackend)
	v.Set("excludes", config.Excludes)

	return v.WriteConfigAs(configFile)
}

// ValidateConfig 检查配置合法性，返回问题描述列表。
func ValidateConfig(cfg *Config) []string {
	issues := make([]string, 0)

	if strings.TrimSpace(cfg.Root) == "" {
		issues = append(issues, "root must not be empty")
	}
	if cfg.DefaultHost == "" {
		issues = append(issues, "default_host must not be empty")
	} else if strings.ContainsAny(cfg.DefaultHost, "/:@") {
		issues = append(issues, fmt.Sprintf("invalid default_host %q: must be a bare host name", cfg.DefaultHost))
	}
	if cfg.Protocol != "" && !slices.Contains(Protocols, cfg.Protocol) {
		issues = append(issues, fmt.Sprintf("invalid protocol %q (supported: %s)", cfg.Protocol, strings.Join(Protocols, ", ")))
	}
	if !slices.Contains(Backends, cfg.CloneBackend) {
		issues = append(issues, fmt.Sprintf("invalid clone_backend %q (supported: %s)", cfg.CloneBackend, strings.Join(Backends, ", ")))
	}

	return issues
}

// ExpandPath 展开路径中的环境变量和开头的 ~。
func ExpandPath(p string) (string, error) {
	p = os.ExpandEnv(strings.TrimSpace(p))
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if p == "~" {
		return home, nil
	}
	return filepath.Join(home, p[2:]), nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
