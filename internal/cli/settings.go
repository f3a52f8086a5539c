package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pardot/pkg/settings"
)

// settingsCommand creates the settings command.
func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change site settings",
	}

	cmd.AddCommand(c.settingsShowCommand())
	cmd.AddCommand(c.settingsSetCommand())

	return cmd
}

func (c *CLI) settingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.settingsStore()
			if err != nil {
				return err
			}
			st, err := store.Get(cmd.Context())
			if err != nil {
				return err
			}

			campaign := st.CampaignID
			if campaign == "" {
				campaign = StyleDim.Render("(none)")
			}
			printKeyValue(settings.KeyCampaignID, campaign)
			printKeyValue(settings.KeyForceHTTPS, strconv.FormatBool(st.ForceHTTPS))
			printDetail("File: %s", store.Path())
			return nil
		},
	}
}

func (c *CLI) settingsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting (campaign_id, force_https)",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return []string{settings.KeyCampaignID, settings.KeyForceHTTPS}, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.settingsStore()
			if err != nil {
				return err
			}
			st, err := store.Get(ctx)
			if err != nil {
				return err
			}
			if err := st.Apply(args[0], args[1]); err != nil {
				return err
			}
			if err := store.Set(ctx, st); err != nil {
				return fmt.Errorf("save settings: %w", err)
			}
			printSuccess("Set %s = %s", args[0], args[1])
			return nil
		},
	}
}
