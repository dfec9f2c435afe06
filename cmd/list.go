package cmd

import (
	"fmt"
	"path/filepath"

	"rhq/internal/config"
	"rhq/internal/repo"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
)

type listOptions struct {
	depth    int
	excludes []string
	relative bool
}

// newListCmd 构建 list 命令：扫描 root 下的仓库并逐个输出。
// 用法: rhq list [pattern] [--depth N] [--exclude DIR] [--relative]
func newListCmd() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list [pattern]",
		Short: "List local repositories in the root directory",
		Long: `Walk the root directory and print every repository found.

A directory is a repository when it contains .git, .svn, .hg or _darcs.
Repositories nested inside another repository are not listed.
An optional pattern fuzzy-filters the printed paths.`,
		Example: `  rhq list
  rhq list --relative peco
  rhq list --depth 3 --exclude node_modules`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := ""
			if len(args) == 1 {
				pattern = args[0]
			}
			return runList(cmd, opts, pattern)
		},
	}

	cmd.Flags().IntVarP(&opts.depth, "depth", "d", -1, "Maximum recursion depth (-1 for unlimited)")
	cmd.Flags().StringArrayVarP(&opts.excludes, "exclude", "x", nil, "Exclude directories (repeatable)")
	cmd.Flags().BoolVarP(&opts.relative, "relative", "r", false, "Print paths relative to the root directory")
	return cmd
}

func runList(cmd *cobra.Command, opts *listOptions, pattern string) error {
	if opts.depth < -1 {
		return fmt.Errorf("depth must be >= -1, got %d", opts.depth)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	excludes := append(append([]string{}, cfg.Excludes...), opts.excludes...)
	seq, err := repo.Scan(cfg.Root, repo.ScanOptions{Depth: opts.depth, Excludes: excludes})
	if err != nil {
		return fmt.Errorf("scan root: %w", err)
	}

	rootPath, err := filepath.Abs(cfg.Root)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for r := range seq {
		display := r.Path
		if opts.relative {
			if rel, err := filepath.Rel(rootPath, r.Path); err == nil {
				display = filepath.ToSlash(rel)
			}
		}
		if pattern != "" && len(fuzzy.Find(pattern, []string{display})) == 0 {
			continue
		}
		fmt.Fprintln(out, display)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newListCmd())
}
