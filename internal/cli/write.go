package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/tansive/firebase/pkg/firebase"
)

type writeFunc func(c *firebase.Client, ctx context.Context, path string, data any, q firebase.Query) (*firebase.Response, error)

// newWriteCmd builds one of the commands that send a payload.
func newWriteCmd(opts *rootOptions, use, short, long string, write writeFunc) *cobra.Command {
	var payload payloadFlags
	var query []string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := payload.build()
			if err != nil {
				return err
			}
			q, err := parseQuery(query)
			if err != nil {
				return err
			}
			client, err := opts.client(cmd.Context())
			if err != nil {
				return err
			}
			resp, err := write(client, cmd.Context(), args[0], data, q)
			if err != nil {
				return err
			}
			value, err := checkResponse(resp)
			if err != nil {
				return err
			}
			return opts.printValue(cmd.OutOrStdout(), value)
		},
	}
	payload.register(cmd)
	cmd.Flags().StringArrayVarP(&query, "query", "q", nil, "Query option, key=value")
	return cmd
}

func newSetCmd(opts *rootOptions) *cobra.Command {
	return newWriteCmd(opts, "set PATH [flags]", "Replace the data at a path",
		`Replace the data at a path. Children that are not in the new data are removed.

Examples:
  # Write inline JSON
  fbcli set users/info -d '{"name":"Oscar","age":18}'

  # Write a file, expanding {{ .ENV.VAR }} placeholders
  fbcli set config/service -f service.json

  # Build the document from fields
  fbcli set users/info --set name=Oscar --set age=18`,
		(*firebase.Client).Set)
}

func newPushCmd(opts *rootOptions) *cobra.Command {
	return newWriteCmd(opts, "push PATH [flags]", "Append data under a generated key",
		`Append data as a new child of a path. The server picks the key and returns it as name.

Examples:
  fbcli push messages --set text=hello`,
		(*firebase.Client).Push)
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	return newWriteCmd(opts, "update PATH [flags]", "Merge data into a path",
		`Write the given children of a path and leave the others untouched.

Examples:
  fbcli update users/info --set age=19`,
		(*firebase.Client).Update)
}
