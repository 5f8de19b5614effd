package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spiffcs/ghlens/config"
	"github.com/spiffcs/ghlens/internal/cache"
	"github.com/spiffcs/ghlens/internal/duration"
	"github.com/spiffcs/ghlens/internal/format"
)

// NewCmdCache creates the cache command with subcommands.
func NewCmdCache() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the AI analysis cache",
		Long: `Manage the on-disk cache of AI repository analyses. Contribution
calendars are never written to disk.`,
	}

	cmd.AddCommand(newCmdCacheClear())
	cmd.AddCommand(newCmdCacheStats())
	cmd.AddCommand(newCmdCachePrune())

	return cmd
}

// newCmdCacheClear creates the cache clear subcommand.
func newCmdCacheClear() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached analysis",
		RunE:  runCacheClear,
	}
}

// newCmdCacheStats creates the cache stats subcommand.
func newCmdCacheStats() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE:  runCacheStats,
	}
}

// newCmdCachePrune creates the cache prune subcommand.
func newCmdCachePrune() *cobra.Command {
	var olderThan string

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove cached analyses older than a duration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCachePrune(cmd, olderThan)
		},
	}

	cmd.Flags().StringVar(&olderThan, "older-than", "1w", "Remove entries cached before this long ago (e.g., 1d, 2w, 6mo)")
	return cmd
}

func openCache() (*cache.Cache, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	ttl, err := cfg.CacheTTL()
	if err != nil {
		return nil, err
	}
	c, err := cache.NewCache(ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to access cache: %w", err)
	}
	return c, nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	c, err := openCache()
	if err != nil {
		return err
	}

	if err := c.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
	return nil
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	c, err := openCache()
	if err != nil {
		return err
	}

	stats, err := c.DetailedStats()
	if err != nil {
		return fmt.Errorf("failed to get cache stats: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Cache statistics (%s):\n", stats.Dir)
	for _, kind := range cache.AllKinds() {
		ks := stats.Kinds[kind]
		fmt.Fprintf(w, "  %s:\n", kind)
		fmt.Fprintf(w, "    Total: %d\n", ks.Total)
		fmt.Fprintf(w, "    Valid: %d\n", ks.Valid)
		fmt.Fprintf(w, "    Expired: %d\n", ks.Total-ks.Valid)
	}
	total, valid := stats.Total()
	fmt.Fprintf(w, "  %s, %d valid, %s on disk\n",
		format.Plural(total, "entry", "entries"), valid, format.Bytes(stats.Bytes))
	return nil
}

func runCachePrune(cmd *cobra.Command, olderThan string) error {
	cutoff, err := duration.Since(olderThan)
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}

	c, err := openCache()
	if err != nil {
		return err
	}

	removed, err := c.Prune(cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune cache: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", format.Plural(removed, "entry", "entries"))
	return nil
}
