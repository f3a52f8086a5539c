package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pardot/internal/server"
	"github.com/matzehuels/pardot/pkg/config"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve embeds over HTTP",
		Long: `Serve cached Pardot artifacts over HTTP.

Routes:
  GET /healthz
  GET /api/campaigns
  GET /embed/forms/{id}?height=&width=&class=&querystring=
  GET /embed/dynamic-content/{id}?height=&width=&class=&default=
  GET /embed/tracking-code`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := c.newSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			store, err := c.settingsStore()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = sess.cfg.Server.Addr
			}
			if !sess.client.Enabled() {
				c.Logger.Warn("credentials incomplete, serving cached values only")
			}
			return server.New(sess.client, store, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config or "+config.DefaultServerAddr+")")

	return cmd
}
