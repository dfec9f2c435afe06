package cmd

import (
	"fmt"

	"rhq/internal/clone"
	"rhq/internal/config"
	"rhq/internal/query"
	"rhq/internal/repo"
	"rhq/internal/vcs"

	"github.com/spf13/cobra"
)

// newCloner 在测试中可替换。
var newCloner = vcs.New

type cloneOptions struct {
	protocol string
	backend  string
	dryRun   bool
}

// newCloneCmd 构建 clone 命令。
// 目标目录为 <root>/<host>/<path>，已存在仓库时跳过。
// "--" 之后的参数原样传给 git。
func newCloneCmd() *cobra.Command {
	opts := &cloneOptions{}

	cmd := &cobra.Command{
		Use:   "clone <query> [-- git-args...]",
		Short: "Clone a remote repository into the root directory",
		Long: `Clone a remote repository into <root>/<host>/<path>.

The query may be a URL (http, https, ssh, git), an SCP-style address
such as git@github.com:peco/peco, or a path such as github.com/peco/peco
or peco/peco (the default host is used when no host is given).`,
		Example: `  rhq clone https://github.com/peco/peco.git
  rhq clone git@github.com:peco/peco
  rhq clone -p ssh peco/peco
  rhq clone peco/peco -- --depth 1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClone(cmd, opts, args[0], args[1:])
		},
	}

	cmd.Flags().StringVarP(&opts.protocol, "protocol", "p", "", "Force protocol of the remote URL (https, git, ssh)")
	cmd.Flags().StringVar(&opts.backend, "backend", "", "Clone backend (git, go-git)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the remote and destination without cloning")
	return cmd
}

func runClone(cmd *cobra.Command, opts *cloneOptions, input string, gitArgs []string) error {
	loc, err := query.Parse(input)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	protocol := opts.protocol
	if protocol == "" {
		protocol = cfg.Protocol
	}
	backend := opts.backend
	if backend == "" {
		backend = cfg.CloneBackend
	}

	plan, err := clone.NewPlan(loc, cfg.Root, clone.Options{
		Protocol:    protocol,
		DefaultHost: cfg.DefaultHost,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.dryRun {
		fmt.Fprintf(out, "remote: %s\ndestination: %s\n", plan.Remote, plan.Destination)
		return nil
	}

	if repo.IsRepository(plan.Destination) {
		fmt.Fprintf(out, "already exists: %s\n", plan.Destination)
		return nil
	}

	cloner, err := newCloner(backend, out, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := cloner.Clone(cmd.Context(), plan.Remote, plan.Destination, gitArgs); err != nil {
		return err
	}

	fmt.Fprintln(out, plan.Destination)
	return nil
}

func init() {
	rootCmd.AddCommand(newCloneCmd())
}
