package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newGetCmd creates the get command
func newGetCmd(opts *rootOptions) *cobra.Command {
	var query []string
	var field string
	var canonical bool
	cmd := &cobra.Command{
		Use:   "get PATH [flags]",
		Short: "Read the data at a path",
		Long: `Read the data at a path and print it as YAML, or as JSON with -j.

Examples:
  # Read a subtree
  fbcli get users/info

  # Read only the keys of a large object
  fbcli get users -q shallow=true

  # Order and filter
  fbcli get dinosaurs -q 'orderBy="height"' -q limitToFirst=2

  # Print a single field
  fbcli get users/info --field name

  # Print canonical JSON (RFC 8785), suitable for hashing or diffing
  fbcli get users/info --canonical`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuery(query)
			if err != nil {
				return err
			}
			client, err := opts.client(cmd.Context())
			if err != nil {
				return err
			}
			resp, err := client.Get(cmd.Context(), args[0], q)
			if err != nil {
				return err
			}
			value, err := checkResponse(resp)
			if err != nil {
				return err
			}
			if field != "" {
				value = value.Get(field)
				if value.IsNoContent() {
					return fmt.Errorf("field %q not found", field)
				}
			}
			if canonical {
				return printCanonical(cmd.OutOrStdout(), value)
			}
			return opts.printValue(cmd.OutOrStdout(), value)
		},
	}
	cmd.Flags().StringArrayVarP(&query, "query", "q", nil, "Query option, key=value")
	cmd.Flags().StringVar(&field, "field", "", "Print only this field of the result (gjson path syntax)")
	cmd.Flags().BoolVar(&canonical, "canonical", false, "Print the result as canonical JSON")
	return cmd
}
