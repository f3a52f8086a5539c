package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pardot/pkg/embed"
	"github.com/matzehuels/pardot/pkg/integrations/pardot"
)

// formCommand creates the form command.
func (c *CLI) formCommand() *cobra.Command {
	var opts embed.FormOptions
	var raw bool

	cmd := &cobra.Command{
		Use:   "form <id>",
		Short: "Print the embed code of a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEmbed(cmd.Context(), cmd.OutOrStdout(), "Form", func(ctx context.Context, cl *pardot.Client) (pardot.Result[string], string) {
				res := cl.FormEmbedCode(ctx, args[0])
				if raw {
					return res, res.Value
				}
				return res, embed.FormHTML(res.Value, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Height, "height", "", "iframe height")
	cmd.Flags().StringVar(&opts.Width, "width", "", "iframe width")
	cmd.Flags().StringVar(&opts.Class, "class", "", "extra CSS class")
	cmd.Flags().StringVar(&opts.QueryString, "querystring", "", "query string appended to the form URL")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the embed code as returned by the API")

	return cmd
}

// dynamicContentCommand creates the dynamic-content command.
func (c *CLI) dynamicContentCommand() *cobra.Command {
	var opts embed.DynamicContentOptions
	var raw bool

	cmd := &cobra.Command{
		Use:     "dynamic-content <id>",
		Aliases: []string{"dc"},
		Short:   "Print the embed markup of a dynamic-content item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEmbed(cmd.Context(), cmd.OutOrStdout(), "Dynamic content", func(ctx context.Context, cl *pardot.Client) (pardot.Result[string], string) {
				res := cl.DynamicContentURL(ctx, args[0])
				if raw {
					return res, res.Value
				}
				return res, embed.DynamicContentHTML(res.Value, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Height, "height", "", "CSS height (default auto)")
	cmd.Flags().StringVar(&opts.Width, "width", "", "CSS width (default auto)")
	cmd.Flags().StringVar(&opts.Class, "class", "", "CSS class (default pardotdc)")
	cmd.Flags().StringVar(&opts.Default, "default", "", "fallback HTML shown before the content loads")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the embed URL only")

	return cmd
}

// trackingCodeCommand creates the tracking-code command.
func (c *CLI) trackingCodeCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "tracking-code",
		Short: "Print the tracking code for the selected campaign",
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
			if st.CampaignID == "" && !raw {
				printWarning("No campaign selected")
				printNextStep("Pick one", "pardot campaigns --select")
				return nil
			}
			return c.runEmbed(ctx, cmd.OutOrStdout(), "Tracking code", func(ctx context.Context, cl *pardot.Client) (pardot.Result[string], string) {
				res := cl.TrackingCodeTemplate(ctx)
				if raw {
					return res, res.Value
				}
				return res, embed.TrackingCode(res.Value, st)
			})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the template with its placeholder")

	return cmd
}

// runEmbed fetches one artifact and prints the rendered markup to out.
// Status goes to stdout only when nothing could be rendered.
func (c *CLI) runEmbed(ctx context.Context, out io.Writer, what string, fetch func(context.Context, *pardot.Client) (pardot.Result[string], string)) error {
	sess, err := c.newSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	prog := newProgress(c.Logger)
	res, html := fetch(ctx, sess.client)
	if !res.OK || html == "" {
		printUnavailable(what, sess.client.Enabled())
		return nil
	}
	prog.done(fmt.Sprintf("%s from %s", what, res.Source))
	if res.CacheErr != nil {
		c.Logger.Warn("value was not cached", "err", res.CacheErr)
	}
	_, err = fmt.Fprintln(out, html)
	return err
}
