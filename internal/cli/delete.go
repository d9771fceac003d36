package cli

import (
	"github.com/spf13/cobra"
)

// newDeleteCmd creates the delete command
func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete PATH",
		Short: "Delete the data at a path",
		Long: `Delete the data at a path.

Examples:
  fbcli delete users/info`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client(cmd.Context())
			if err != nil {
				return err
			}
			resp, err := client.Delete(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			if err := resp.Err(); err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]any{"result": 1})
			}
			okLabel.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", args[0])
			return nil
		},
	}
}
