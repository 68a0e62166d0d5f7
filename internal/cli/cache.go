package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ssnmovie/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
		Long: `Manage the file layout cache used by 'ssnmovie sweep --cache file'.
Shared redis or mongo caches expire entries on their own.`,
	}
	cmd.PersistentFlags().StringVar(&dir, "cache-dir", "", "cache directory (default: user cache dir)")

	cmd.AddCommand(c.cacheClearCommand(&dir))
	cmd.AddCommand(c.cachePathCommand(&dir))
	cmd.AddCommand(c.cacheStatsCommand(&dir))

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := openFileCache(*dir)
			if err != nil {
				return err
			}
			entries, _, err := fc.Stats()
			if err != nil {
				return fmt.Errorf("scan cache: %w", err)
			}
			if entries == 0 {
				printInfo("Cache is empty")
				return nil
			}
			if err := fc.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared %d cached layouts", entries)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cacheDir(*dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// cacheStatsCommand creates the "cache stats" subcommand.
func (c *CLI) cacheStatsCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number and size of cached layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := openFileCache(*dir)
			if err != nil {
				return err
			}
			entries, size, err := fc.Stats()
			if err != nil {
				return fmt.Errorf("scan cache: %w", err)
			}
			printKeyValue("Directory", fc.Dir())
			printKeyValue("Layouts", fmt.Sprintf("%d", entries))
			printKeyValue("Size", formatBytes(size))
			return nil
		},
	}
}

// cacheDir returns dir, or the per-user default when dir is empty.
func cacheDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	d, err := cache.DefaultDir()
	if err != nil {
		return "", fmt.Errorf("get cache dir: %w", err)
	}
	return d, nil
}

func openFileCache(dir string) (*cache.FileCache, error) {
	path, err := cacheDir(dir)
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(path)
}

// formatBytes renders n with a binary unit, e.g. "1.5 KiB".
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
