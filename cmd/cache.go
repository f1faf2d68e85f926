package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spiffcs/folio/internal/cache"
)

// NewCmdCache creates the cache command with subcommands.
func NewCmdCache() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the profile and calendar cache",
	}

	cmd.AddCommand(newCmdCacheClear())
	cmd.AddCommand(newCmdCacheStats())

	return cmd
}

// newCmdCacheClear creates the cache clear subcommand.
func newCmdCacheClear() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached profile and calendar",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := cache.NewCache()
			if err != nil {
				return fmt.Errorf("failed to access cache: %w", err)
			}
			return runCacheClear(cmd.OutOrStdout(), c)
		},
	}
}

// newCmdCacheStats creates the cache stats subcommand.
func newCmdCacheStats() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := cache.NewCache()
			if err != nil {
				return fmt.Errorf("failed to access cache: %w", err)
			}
			return runCacheStats(cmd.OutOrStdout(), c)
		},
	}
}

func runCacheClear(out io.Writer, c *cache.Cache) error {
	if err := c.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	fmt.Fprintln(out, "Cache cleared.")
	return nil
}

func runCacheStats(out io.Writer, c *cache.Cache) error {
	stats, err := c.DetailedStats()
	if err != nil {
		return fmt.Errorf("failed to get cache stats: %w", err)
	}

	total, valid := stats.Totals()
	fmt.Fprintf(out, "Cache statistics (%s):\n", c.Dir())
	fmt.Fprintf(out, "  %d entries, %d valid\n", total, valid)
	for _, kind := range cache.AllKinds() {
		ks := stats.Kinds[kind]
		fmt.Fprintf(out, "  %s:\n", kind)
		fmt.Fprintf(out, "    Total: %d\n", ks.Total)
		fmt.Fprintf(out, "    Valid: %d\n", ks.Valid)
		fmt.Fprintf(out, "    Expired: %d\n", ks.Total-ks.Valid)
	}
	return nil
}
