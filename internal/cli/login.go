package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pardot/pkg/config"
	errs "github.com/matzehuels/pardot/pkg/errors"
	"github.com/matzehuels/pardot/pkg/integrations/pardot"
)

// loginTimeout bounds the login request including the spinner.
const loginTimeout = 45 * time.Second

type loginOptions struct {
	email    string
	password string
	userKey  string
	save     bool
}

// loginCommand creates the login command.
func (c *CLI) loginCommand() *cobra.Command {
	var opts loginOptions

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and refresh the cached API key",
		Long: `Log in to the Pardot API with the configured email, password and user key.

The returned API key and protocol version are cached for one hour. Pass
--email, --password and --user-key to override the config file, and --save
to write them to it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLogin(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "account email")
	cmd.Flags().StringVar(&opts.password, "password", "", "account password (prefer "+config.EnvPassword+")")
	cmd.Flags().StringVar(&opts.userKey, "user-key", "", "account user key")
	cmd.Flags().BoolVar(&opts.save, "save", false, "store the given credentials in the config file")

	return cmd
}

func (c *CLI) runLogin(ctx context.Context, opts loginOptions) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.email != "" {
		cfg.API.Email = opts.email
	}
	if opts.password != "" {
		cfg.API.Password = opts.password
	}
	if opts.userKey != "" {
		cfg.API.UserKey = opts.userKey
	}
	if !cfg.Credentials().Complete() {
		return errs.New(errs.ErrCodeConfigMissing,
			"email, password and user key are required (set them in the config file or %s, %s, %s)",
			config.EnvEmail, config.EnvPassword, config.EnvUserKey)
	}

	if opts.save {
		path, err := c.resolvedConfigPath()
		if err != nil {
			return err
		}
		// store the credentials only, not the command-line cache overrides
		stored, err := config.Load(path)
		if err != nil {
			return err
		}
		stored.API.Email, stored.API.Password, stored.API.UserKey = cfg.API.Email, cfg.API.Password, cfg.API.UserKey
		if err := config.Write(path, stored); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		printSuccess("Saved credentials")
		printDetail("Config: %s", path)
	}

	sess, err := c.sessionFor(ctx, cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	spinner := newSpinnerWithContext(ctx, "Logging in...")
	spinner.Start()
	prog := newProgress(c.Logger)

	cred, err := sess.client.Credentials().Login(ctx)
	if err != nil {
		spinner.StopWithError("Login failed")
		return fmt.Errorf("login: %s", errs.UserMessage(err))
	}
	spinner.Stop()
	prog.done("logged in")

	printSuccess("Logged in as %s", cfg.API.Email)
	printKeyValue("API version", StyleNumber.Render(fmt.Sprint(cred.Version)))
	printKeyValue("Key expires", cred.FetchedAt.Add(pardot.CredentialTTL).Format(time.Kitchen))
	return nil
}

func (c *CLI) resolvedConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.DefaultPath()
}
