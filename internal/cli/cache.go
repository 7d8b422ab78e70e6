package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/certifyme/certrender/internal/config"
	"github.com/certifyme/certrender/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached artifacts and assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.Cache != config.CacheFile {
				printWarning("Cache backend is %q; only the file cache can be cleared here", c.Config.Cache)
				return nil
			}
			dir := c.cacheDir()
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			count, err := fc.Clear()
			if err != nil {
				return err
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(c.cacheDir())
			return nil
		},
	}
}

// cacheDir returns the configured cache directory, falling back to the
// XDG location.
func (c *CLI) cacheDir() string {
	if c.Config.CacheDir != "" {
		return c.Config.CacheDir
	}
	return config.CacheDir()
}
