package cmd

import (
	"fmt"
	"io"
	"os"

	"rhq/internal/config"
	"rhq/internal/repo"

	"github.com/spf13/cobra"
)

// doctorCmd 实现 doctor 子命令，一站式诊断环境和配置问题。
// 有错误时返回非零退出码，仅警告时返回 0。
// 用法: rhq doctor
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose environment and configuration issues",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

// init 注册 doctor 命令。
func init() {
	rootCmd.AddCommand(doctorCmd)
}

// runDoctor 是 doctor 命令的核心逻辑，按顺序执行诊断检查：
//  1. 配置合法性（root、default_host、protocol、clone_backend）
//  2. root 目录存在且为目录
//  3. 扫描 root 下的仓库
//  4. git 仓库 HEAD 可达性
//  5. 元数据目录读权限
//  6. 性能预警（仓库数量或元数据体积过大）
//
// 输出使用 ✅/⚠️/❌ 分类显示，有错误时返回 error（exit 非零）。
func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Running diagnostics...")

	hasError := false

	// 1. 配置合法性检查
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		fmt.Fprintf(out, "❌ Config: %v\n", cfgErr)
		return fmt.Errorf("doctor found issues")
	}
	issues := config.ValidateConfig(cfg)
	if len(issues) == 0 {
		fmt.Fprintln(out, "✅ Config: OK")
	} else {
		hasError = true
		fmt.Fprintf(out, "❌ Config: %d issue(s)\n", len(issues))
		printLines(out, issues)
	}

	// 2. root 目录检查
	st, err := os.Stat(cfg.Root)
	switch {
	case err != nil:
		fmt.Fprintf(out, "❌ Root: %v\n", err)
		return fmt.Errorf("doctor found issues")
	case !st.IsDir():
		fmt.Fprintf(out, "❌ Root: not a directory: %s\n", cfg.Root)
		return fmt.Errorf("doctor found issues")
	default:
		fmt.Fprintf(out, "✅ Root: %s\n", cfg.Root)
	}

	// 3. 扫描仓库
	repos, err := repo.ScanRepos(cfg.Root, -1, cfg.Excludes)
	if err != nil {
		fmt.Fprintf(out, "❌ Repositories: %v\n", err)
		return fmt.Errorf("doctor found issues")
	}
	if len(repos) == 0 {
		fmt.Fprintln(out, "⚠️  Repositories: no repositories found")
	} else {
		fmt.Fprintf(out, "✅ Repositories: %d found\n", len(repos))
	}

	// 4. HEAD 可达性与 5. 读权限
	headErrors := make([]string, 0)
	permissionErrors := make([]string, 0)
	bar := newRepoProgressBar(len(repos), "checking repositories")
	for _, repoPath := range repos {
		if err := repo.CheckHeadReachable(repoPath); err != nil {
			headErrors = append(headErrors, fmt.Sprintf("%s: %v", repoPath, err))
		}
		if err := repo.CheckPermissions(repoPath); err != nil {
			permissionErrors = append(permissionErrors, fmt.Sprintf("%s: %v", repoPath, err))
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if len(repos) == 0 {
		fmt.Fprintln(out, "⚠️  HEAD reachability: skipped (no repositories)")
		fmt.Fprintln(out, "⚠️  Permissions: skipped (no repositories)")
	} else {
		if len(headErrors) == 0 {
			fmt.Fprintln(out, "✅ HEAD reachability: OK")
		} else {
			hasError = true
			fmt.Fprintf(out, "❌ HEAD reachability: %d issue(s)\n", len(headErrors))
			printLines(out, headErrors)
		}
		if len(permissionErrors) == 0 {
			fmt.Fprintln(out, "✅ Permissions: OK")
		} else {
			hasError = true
			fmt.Fprintf(out, "❌ Permissions: %d issue(s)\n", len(permissionErrors))
			printLines(out, permissionErrors)
		}
	}

	// 6. 性能预警
	performanceWarnings := repo.CheckPerformance(repos)
	if len(performanceWarnings) == 0 {
		fmt.Fprintln(out, "✅ Performance: OK")
	} else {
		fmt.Fprintf(out, "⚠️  Performance: %d warning(s)\n", len(performanceWarnings))
		printLines(out, performanceWarnings)
	}

	if hasError {
		return fmt.Errorf("doctor found issues")
	}
	return nil
}

// printLines 将字符串列表以缩进列表形式输出，每行前加 "   - " 前缀。
func printLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintf(out, "   - %s\n", line)
	}
}
