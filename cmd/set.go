package cmd

import (
	"fmt"
	"io"
	"strings"

	"rhq/internal/config"

	"github.com/spf13/cobra"
)

// setKeys 是 set 命令支持的配置项。
var setKeys = []string{"root", "default_host", "protocol", "clone_backend", "excludes"}

// setCmd 实现 set 子命令，用于查看或修改默认配置。
// 支持两种模式：
// 1. rhq set - 显示当前配置
// 2. rhq set <key> <value> - 设置配置项
var setCmd = newSetCmd()

// newSetCmd 构建 set 命令，便于在测试中复用。
func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set or show default configuration",
		Long: `View or modify default configuration.

Without arguments, displays the current configuration.
With key/value, sets the specified option.
Keys: root, default_host, protocol, clone_backend, excludes (comma-separated).`,
		Example: `  rhq set
  rhq set root ~/src
  rhq set protocol ssh
  rhq set clone_backend go-git
  rhq set excludes node_modules,vendor`,
		Args: validateSetArgs,
		RunE: runSet,
	}
}

// validateSetArgs 校验 set 参数格式。
func validateSetArgs(cmd *cobra.Command, args []string) error {
	// 无参数：显示配置
	if len(args) == 0 {
		return nil
	}
	// 设置配置需要正好两个参数
	if len(args) != 2 {
		return fmt.Errorf("usage: rhq set [%s] <value>", strings.Join(setKeys, "|"))
	}
	return nil
}

// runSet 执行 set 逻辑（显示或设置配置项）。
func runSet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		printConfig(cmd.OutOrStdout(), cfg)
		return nil
	}

	key := args[0]
	val := strings.TrimSpace(args[1])

	// 根据 key 修改对应配置项
	switch key {
	case "root":
		cfg.Root = val
	case "default_host":
		cfg.DefaultHost = val
	case "protocol":
		cfg.Protocol = val
	case "clone_backend":
		cfg.CloneBackend = val
	case "excludes":
		cfg.Excludes = splitList(val)
	default:
		return fmt.Errorf("unsupported key %q (supported: %s)", key, strings.Join(setKeys, ", "))
	}

	if issues := config.ValidateConfig(cfg); len(issues) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(issues, "; "))
	}

	// 保存修改后的配置
	return config.Save(*cfg)
}

// printConfig 输出当前配置。
func printConfig(out io.Writer, cfg *config.Config) {
	protocol := cfg.Protocol
	if protocol == "" {
		protocol = "(input)"
	}
	excludes := "(none)"
	if len(cfg.Excludes) > 0 {
		excludes = strings.Join(cfg.Excludes, ", ")
	}

	fmt.Fprintf(out, "root: %s\n", cfg.Root)
	fmt.Fprintf(out, "default_host: %s\n", cfg.DefaultHost)
	fmt.Fprintf(out, "protocol: %s\n", protocol)
	fmt.Fprintf(out, "clone_backend: %s\n", cfg.CloneBackend)
	fmt.Fprintf(out, "excludes: %s\n", excludes)
}

// splitList 将逗号分隔的字符串拆成去空白的列表。
func splitList(s string) []string {
	out := make([]string, 0)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(setCmd)
}
