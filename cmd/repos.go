package cmd

import (
	"fmt"
	"strings"
	"time"

	"rankviz/internal/colorize"
	"rankviz/internal/config"
	"rankviz/internal/dataset"
	"rankviz/internal/repo"

	"github.com/spf13/cobra"
)

type reposOptions struct {
	depth    int
	excludes []string
	emails   []string
	since    string
	top      int
	format   string
	encoding string
	palette  string
	mode     string
}

// newReposCmd 构建 repos 命令：扫描目录下的 git 仓库，按提交数排名并配色。
// 用法: rankviz repos <folder> [-d depth] [-x exclude] [-e email] [--since date] [-n top] [-f format]
func newReposCmd() *cobra.Command {
	opts := &reposOptions{}
	cmd := &cobra.Command{
		Use:   "repos <folder>",
		Short: "Rank local git repositories by commits and color them",
		Example: `  rankviz repos ~/code
  rankviz repos ~/code -e me@example.com --since 2025-01-01 -n 5 -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepos(cmd, args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.depth, "depth", "d", -1, "Max scan depth (-1 for unlimited)")
	cmd.Flags().StringArrayVarP(&opts.excludes, "exclude", "x", nil, "Exclude directory name or path (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.emails, "email", "e", nil, "Author email filter (repeatable)")
	cmd.Flags().StringVar(&opts.since, "since", "", "Only count commits on or after this date (YYYY-MM-DD)")
	cmd.Flags().IntVarP(&opts.top, "top", "n", 0, "Repositories to show (0: config value, -1: all)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "Output format: table/json/csv/yaml")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "", "Color encoding: hex or rgb (default: config value)")
	cmd.Flags().StringVar(&opts.palette, "palette", "", "Palette preset (default: config value)")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "Gradient mode: rank or value (default: config value)")
	return cmd
}

func runRepos(cmd *cobra.Command, args []string, opts *reposOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	enc, err := colorEncoding(opts.encoding, cfg)
	if err != nil {
		return err
	}
	defaults, err := defaultSpec(cfg)
	if err != nil {
		return err
	}
	spec, err := config.BuildSpec(opts.palette, "", "", "", opts.mode, defaults)
	if err != nil {
		return err
	}

	var since time.Time
	if s := strings.TrimSpace(opts.since); s != "" {
		if since, err = dataset.ParseDate(s); err != nil {
			return fmt.Errorf("invalid --since: %w", err)
		}
	}

	repos, err := repo.ScanRepos(args[0], opts.depth, opts.excludes)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(repos) == 0 {
		fmt.Fprintln(out, "no repositories found")
		return nil
	}

	counts, countErr := repo.CommitCounts(repos, opts.emails, since)
	if countErr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", countErr)
	}

	top := opts.top
	if top == 0 {
		top = cfg.Top
	}
	entries := dataset.Top(repo.Series(counts, repo.DisplayPath), top)
	if len(entries) == 0 || dataset.Total(entries) == 0 {
		fmt.Fprintln(out, "no commits found")
		return nil
	}

	colors, err := colorize.Colorize(entries, spec)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Top %d repositories by commits", len(entries))
	if !since.IsZero() {
		title += " since " + since.Format("2006-01-02")
	}
	return writeColors(out, opts.format, title, entries, colors, enc)
}

func init() {
	rootCmd.AddCommand(newReposCmd())
}
