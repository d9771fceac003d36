package cli

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tansive/firebase/pkg/firebase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	envAdminEmail    = "FIREBASE_ADMIN_EMAIL"
	envAdminPassword = "FIREBASE_ADMIN_PASSWORD"
)

// newUserCmd creates the user command and its subcommands
func newUserCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage Simple Login users",
		Long: `Manage the email and password users of the database's Simple Login.

Examples:
  fbcli user create email@example.com --password secret
  fbcli user change-password email@example.com --old secret --new better
  FIREBASE_ADMIN_EMAIL=me@example.com FIREBASE_ADMIN_PASSWORD=pw fbcli user list`,
	}
	cmd.AddCommand(newUserCreateCmd(opts))
	cmd.AddCommand(newUserRemoveCmd(opts))
	cmd.AddCommand(newUserListCmd(opts))
	cmd.AddCommand(newUserChangeEmailCmd(opts))
	cmd.AddCommand(newUserChangePasswordCmd(opts))
	return cmd
}

// runSimpleLogin runs call with a client and prints the result.
func (opts *rootOptions) runSimpleLogin(cmd *cobra.Command, call func(*firebase.Client) (*firebase.Response, error)) error {
	client, err := opts.client(cmd.Context())
	if err != nil {
		return err
	}
	resp, err := call(client)
	if err != nil {
		return err
	}
	value, err := checkResponse(resp)
	if err != nil {
		return err
	}
	return opts.printValue(cmd.OutOrStdout(), value)
}

func newUserCreateCmd(opts *rootOptions) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "create EMAIL --password PASSWORD",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runSimpleLogin(cmd, func(c *firebase.Client) (*firebase.Response, error) {
				return c.CreateUser(cmd.Context(), args[0], password)
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password of the new user")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newUserRemoveCmd(opts *rootOptions) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "remove EMAIL --password PASSWORD",
		Short: "Remove a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runSimpleLogin(cmd, func(c *firebase.Client) (*firebase.Response, error) {
				return c.RemoveUser(cmd.Context(), args[0], password)
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password of the user")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newUserChangeEmailCmd(opts *rootOptions) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "change-email OLD_EMAIL NEW_EMAIL --password PASSWORD",
		Short: "Change the email of a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runSimpleLogin(cmd, func(c *firebase.Client) (*firebase.Response, error) {
				return c.ChangeEmail(cmd.Context(), args[0], args[1], password)
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password of the user")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newUserChangePasswordCmd(opts *rootOptions) *cobra.Command {
	var oldPassword, newPassword string
	cmd := &cobra.Command{
		Use:   "change-password EMAIL --old PASSWORD --new PASSWORD",
		Short: "Change the password of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runSimpleLogin(cmd, func(c *firebase.Client) (*firebase.Response, error) {
				return c.ChangePassword(cmd.Context(), args[0], oldPassword, newPassword)
			})
		},
	}
	cmd.Flags().StringVar(&oldPassword, "old", "", "Current password")
	cmd.Flags().StringVar(&newPassword, "new", "", "New password")
	cmd.MarkFlagRequired("old")
	cmd.MarkFlagRequired("new")
	return cmd
}

func newUserListCmd(opts *rootOptions) *cobra.Command {
	var limit, offset int
	var adminEmail, adminPassword string
	cmd := &cobra.Command{
		Use:   "list [flags]",
		Short: "List users",
		Long: `List users. Listing needs the credentials of a database administrator,
taken from --admin-email and --admin-password or from the ` + envAdminEmail + ` and
` + envAdminPassword + ` environment variables (a .env file works too).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if adminEmail == "" {
				adminEmail = os.Getenv(envAdminEmail)
			}
			if adminPassword == "" {
				adminPassword = os.Getenv(envAdminPassword)
			}
			if adminEmail == "" || adminPassword == "" {
				return errors.New("admin credentials are required. Use --admin-email and --admin-password or set " + envAdminEmail + " and " + envAdminPassword)
			}

			client, err := opts.client(cmd.Context())
			if err != nil {
				return err
			}
			resp, err := client.ListUsers(cmd.Context(), limit, offset, adminEmail, adminPassword)
			if err != nil {
				return err
			}
			value, err := checkResponse(resp)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return opts.printValue(cmd.OutOrStdout(), value)
			}
			var list firebase.UserList
			if err := value.Decode(&list); err != nil {
				return err
			}
			printUserList(cmd.OutOrStdout(), list)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of users")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of users to skip")
	cmd.Flags().StringVar(&adminEmail, "admin-email", "", "Admin email, defaults to $"+envAdminEmail)
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "Admin password, defaults to $"+envAdminPassword)
	return cmd
}

func printUserList(w io.Writer, list firebase.UserList) {
	printf(w, "%s:\n", cases.Title(language.English).String("users"))
	if len(list.Users) == 0 {
		printf(w, "  (none)\n")
	}
	for _, u := range list.Users {
		printf(w, "  %-24s %s\n", u.UID, u.Email)
	}
	printf(w, "Showing %d of %d (offset %d)\n", len(list.Users), list.Metadata.Total, list.Metadata.Offset)
}
