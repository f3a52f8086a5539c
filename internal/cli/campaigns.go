package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pardot/pkg/integrations/pardot"
)

type campaignsOptions struct {
	selectOne bool
	json      bool
}

// campaignsCommand creates the campaigns command.
func (c *CLI) campaignsCommand() *cobra.Command {
	var opts campaignsOptions

	cmd := &cobra.Command{
		Use:   "campaigns",
		Short: "List campaigns",
		Long: `List the account's campaigns.

With --select, pick the campaign used by the tracking code interactively
and store it in the settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCampaigns(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.selectOne, "select", false, "pick the tracked campaign interactively")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print campaigns as JSON")

	return cmd
}

func (c *CLI) runCampaigns(ctx context.Context, out io.Writer, opts campaignsOptions) error {
	sess, err := c.newSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	res := c.fetchCampaigns(ctx, sess.client, !opts.json)
	if !res.OK {
		if opts.json {
			return fmt.Errorf("campaigns unavailable")
		}
		printUnavailable("Campaigns", sess.client.Enabled())
		return nil
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Value)
	}

	store, err := c.settingsStore()
	if err != nil {
		return err
	}
	st, err := store.Get(ctx)
	if err != nil {
		return err
	}

	if !opts.selectOne {
		fmt.Fprintln(out, renderCampaigns(res.Value, st.CampaignID))
		printDetail("%d campaigns · %s", len(res.Value), sourceLabel(res.Source, res.Cached()))
		return nil
	}

	final, err := tea.NewProgram(NewCampaignListModel(res.Value, st.CampaignID)).Run()
	if err != nil {
		return fmt.Errorf("campaign picker: %w", err)
	}
	picked := final.(CampaignListModel).Selected
	if picked == nil {
		printInfo("No campaign selected")
		return nil
	}
	st.CampaignID = picked.ID
	if err := store.Set(ctx, st); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	printSuccess("Tracking campaign %s (%s)", StyleNumber.Render(picked.ID), picked.Name)
	return nil
}

func (c *CLI) fetchCampaigns(ctx context.Context, client *pardot.Client, spin bool) pardot.Result[[]pardot.Campaign] {
	prog := newProgress(c.Logger)
	if !spin {
		return client.Campaigns(ctx)
	}
	spinner := newSpinnerWithContext(ctx, "Fetching campaigns...")
	spinner.Start()
	res := client.Campaigns(ctx)
	spinner.Stop()
	prog.done(fmt.Sprintf("fetched %d campaigns", len(res.Value)))
	return res
}
