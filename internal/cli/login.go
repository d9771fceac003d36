package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tansive/firebase/pkg/firebase"
)

// newLoginCmd creates and returns a new login command
func newLoginCmd(opts *rootOptions) *cobra.Command {
	var password string
	var save bool
	cmd := &cobra.Command{
		Use:   "login EMAIL --password PASSWORD [--save]",
		Short: "Log in as a Simple Login user",
		Long: `Log in with an email and password to obtain an auth token.
With --save the token is stored in the configuration file and sent with
every later request.

Example:
  fbcli login email@example.com --password secret --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client(cmd.Context())
			if err != nil {
				return err
			}
			resp, err := client.AuthWithPassword(cmd.Context(), args[0], password)
			if err != nil {
				return fmt.Errorf("login request failed: %w", err)
			}
			value, err := checkResponse(resp)
			if err != nil {
				return err
			}
			var auth firebase.AuthData
			if err := value.Decode(&auth); err != nil {
				return fmt.Errorf("failed to parse login response: %w", err)
			}

			if save {
				cfg := *opts.config
				cfg.Auth = auth.Token
				if err := cfg.WriteConfig(opts.configFile); err != nil {
					return fmt.Errorf("failed to save configuration: %w", err)
				}
			}

			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(w, map[string]any{
					"status":   "success",
					"provider": auth.Provider,
					"uid":      auth.UID,
					"token":    auth.Token,
					"saved":    save,
				})
			}
			okLabel.Fprintln(w, "✓ Login successful")
			printf(w, "UID: %s\n", auth.UID)
			if save {
				printf(w, "Token saved to %s\n", opts.configFile)
			} else {
				printf(w, "Token: %s\n", auth.Token)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password for authentication")
	cmd.Flags().BoolVar(&save, "save", false, "Store the token in the configuration file")
	cmd.MarkFlagRequired("password")
	return cmd
}
