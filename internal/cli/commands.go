// Package cli implements fbcli, a command line client for a Firebase
// realtime database and its Simple Login endpoints.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tansive/firebase/internal/common/logtrace"
	"github.com/tansive/firebase/pkg/firebase"
)

var ErrAlreadyHandled = errors.New("already handled")

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)

const defaultTimeout = 30 * time.Second

// rootOptions holds the persistent flags and the state shared by all
// commands of one invocation.
type rootOptions struct {
	configFile string
	jsonOutput bool
	url        string
	auth       string
	debug      bool

	config *Config
	doer   firebase.Doer
}

// newRootCmd builds the command tree.
func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fbcli [command] [flags]",
		Short: "fbcli - A command line client for Firebase realtime databases",
		Long: `fbcli reads and writes the JSON tree of a Firebase realtime database
over its REST API and manages Simple Login users.

Examples:
  # Point fbcli at a database
  fbcli config --url https://test.firebaseio.com --auth SECRET

  # Write and read a subtree
  fbcli set users/info -d '{"name":"Oscar"}'
  fbcli get users/info

  # Append to a list
  fbcli push messages --set text=hello --set sent=true

  # Create a Simple Login user
  fbcli user create email@example.com --password secret`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.preRun(cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "", "", "Path to configuration file to override default")
	cmd.PersistentFlags().BoolVarP(&opts.jsonOutput, "json", "j", false, "Output in JSON format")
	cmd.PersistentFlags().StringVarP(&opts.url, "url", "", "", "Database URL, overrides the config file")
	cmd.PersistentFlags().StringVarP(&opts.auth, "auth", "", "", "Auth token or secret, overrides the config file")
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "", false, "Log requests to stderr")

	cmd.AddCommand(newVersionCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newGetCmd(opts))
	cmd.AddCommand(newSetCmd(opts))
	cmd.AddCommand(newPushCmd(opts))
	cmd.AddCommand(newUpdateCmd(opts))
	cmd.AddCommand(newDeleteCmd(opts))
	cmd.AddCommand(newUserCmd(opts))
	cmd.AddCommand(newLoginCmd(opts))
	return cmd
}

// Execute runs the command line and exits the process on failure.
// This is called by main.main().
func Execute() {
	opts := &rootOptions{}
	rootCmd := newRootCmd(opts)
	rootCmd.SilenceErrors = true // Prevent Cobra from printing the error
	rootCmd.SilenceUsage = true  // Prevent Cobra from printing usage on error

	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		if errors.Is(err, ErrAlreadyHandled) {
			os.Exit(1)
		}
		if opts.jsonOutput {
			printJSON(os.Stdout, map[string]string{
				"error": err.Error(),
			})
		} else {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// preRun loads .env and the configuration before any command that talks
// to the database.
func (opts *rootOptions) preRun(cmd *cobra.Command) error {
	_ = godotenv.Load() // no error if .env doesn't exist

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.debug {
		logtrace.InitLoggerWithWriter(cmd.ErrOrStderr(), zerolog.DebugLevel)
		ctx = log.Logger.WithContext(ctx)
	}
	cmd.SetContext(ctx)

	if opts.configFile == "" {
		var err error
		opts.configFile, err = GetDefaultConfigPath()
		if err != nil {
			return err
		}
	}

	if !cmd.HasParent() {
		return nil
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" || c.Name() == "version" {
			return nil
		}
	}

	cfg, err := LoadConfig(opts.configFile)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && opts.url != "":
		cfg = &Config{Version: configVersion}
	case errors.Is(err, os.ErrNotExist):
		return errors.New("config file not found. Configure fbcli with \"fbcli config --url <database url>\" first")
	default:
		return err
	}
	if opts.url != "" {
		cfg.URL = opts.url
	}
	if opts.auth != "" {
		cfg.Auth = opts.auth
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	opts.config = cfg
	return nil
}

// client creates a database client from the loaded configuration.
func (opts *rootOptions) client(ctx context.Context) (*firebase.Client, error) {
	cfg := opts.config
	if cfg == nil {
		return nil, errors.New("no configuration loaded")
	}
	clientOpts := []firebase.ClientOption{
		firebase.WithAuth(cfg.Auth),
		firebase.WithTimeout(defaultTimeout),
	}
	if cfg.AuthURL != "" {
		clientOpts = append(clientOpts, firebase.WithAuthURL(cfg.AuthURL))
	}
	if cfg.AdminURL != "" {
		clientOpts = append(clientOpts, firebase.WithAdminURL(cfg.AdminURL))
	}
	if opts.doer != nil {
		clientOpts = append(clientOpts, firebase.WithHTTPClient(opts.doer))
	}
	client, err := firebase.NewClient(cfg.URL, clientOpts...)
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().
		Str("url", client.Request().BaseURL().String()).
		Str("namespace", client.Namespace()).
		Bool("auth", client.Auth() != "").
		Msg("database client ready")
	return client, nil
}

// newVersionCmd creates and returns a new version command
func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of fbcli",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.printVersion(cmd.OutOrStdout())
		},
	}
}

func (opts *rootOptions) printVersion(w io.Writer) error {
	configPath := opts.configFile
	if configPath == "" {
		configPath = "unknown"
	}
	if opts.jsonOutput {
		return printJSON(w, map[string]string{
			"version":     getCLIVersion(),
			"config_file": configPath,
		})
	}
	printf(w, "fbcli %s\n", getCLIVersion())
	printf(w, "Config file: %s\n", configPath)
	return nil
}

// getCLIVersion returns the current CLI version
func getCLIVersion() string {
	return "v0.1.0"
}
