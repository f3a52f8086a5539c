package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pardot/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached Pardot artifacts",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var forms, dynamicContent []string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached artifacts",
		Long: `Remove cached artifacts.

For the file backend every cached file is removed. Shared backends (redis,
mongo) only lose the credential, campaign list and tracking code, plus the
forms and dynamic-content items named with --form and --dynamic-content.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := c.newSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			if fc, ok := sess.cache.(*cache.FileCache); ok {
				n, err := fc.Clear()
				if err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
				printSuccess("Cleared %d cached entries", n)
				printDetail("Directory: %s", fc.Dir())
				return nil
			}

			if err := sess.client.Purge(ctx, forms, dynamicContent); err != nil {
				return fmt.Errorf("purge cache: %w", err)
			}
			printSuccess("Purged cached artifacts")
			printDetail("Backend: %s", sess.cfg.Cache.Backend)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&forms, "form", nil, "form ids to purge")
	cmd.Flags().StringSliceVar(&dynamicContent, "dynamic-content", nil, "dynamic-content ids to purge")

	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			dir := cfg.Cache.Dir
			if dir == "" {
				if dir, err = cacheDir(); err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
