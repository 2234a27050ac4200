package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/censusplot/pkg/cache"
)

// cacheSubdirs are the cache directories under cacheDir: downloaded datasets
// and rendered artifacts.
var cacheSubdirs = []string{"http", "artifacts"}

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage downloaded datasets and rendered artifacts",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached dataset and artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			count, err := clearCache(dir)
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo("Cache is empty")
			} else {
				printSuccess("Cleared %d cached entries", count)
			}
			printDetail("Directory: %s", dir)
			if c.Config.Cache.Redis != "" {
				printDetail("Redis entries at %s expire after %s", c.Config.Cache.Redis, cache.TTLArtifact)
			}
			return nil
		},
	}
}

// clearCache empties every cache subdirectory of dir.
func clearCache(dir string) (int, error) {
	total := 0
	for _, sub := range cacheSubdirs {
		fc, err := cache.NewFileCache(filepath.Join(dir, sub))
		if err != nil {
			return total, err
		}
		n, err := fc.Clear()
		total += n
		if err != nil {
			return total, fmt.Errorf("clear %s: %w", fc.Dir(), err)
		}
	}
	return total, nil
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
