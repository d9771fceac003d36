package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.yaml"

const configVersion = "0.1.0"

// configVersionConstraint accepts config files written by any 0.1.x release.
var configVersionConstraint *semver.Constraints

func init() {
	var err error
	configVersionConstraint, err = semver.NewConstraint("~" + configVersion)
	if err != nil {
		panic(err)
	}
}

// checkConfigVersion reports whether a config file of the given version can
// be read. Files without a version are accepted.
func checkConfigVersion(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid config file version %q: %w", version, err)
	}
	if !configVersionConstraint.Check(v) {
		return fmt.Errorf("unsupported config file version %s, expected %s", v, configVersionConstraint)
	}
	return nil
}

// Config is the fbcli configuration. Files ending in .toml are read and
// written as TOML, anything else as YAML.
type Config struct {
	// Version of the configuration file format
	Version string `yaml:"version" toml:"version"`
	// URL is the database base URL, such as https://test.firebaseio.com
	URL string `yaml:"url" toml:"url" validate:"required,url,startswith=https://"`
	// Auth is the secret or token sent with data requests
	Auth string `yaml:"auth,omitempty" toml:"auth,omitempty"`
	// AuthURL overrides the Simple Login endpoint
	AuthURL string `yaml:"auth_url,omitempty" toml:"auth_url,omitempty" validate:"omitempty,url,startswith=https://"`
	// AdminURL overrides the admin login endpoint used by "user list"
	AdminURL string `yaml:"admin_url,omitempty" toml:"admin_url,omitempty" validate:"omitempty,url,startswith=https://"`
}

var configValidator *validator.Validate

func getValidator() *validator.Validate {
	if configValidator == nil {
		configValidator = validator.New(validator.WithRequiredStructEnabled())
		configValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
	return configValidator
}

// GetDefaultConfigPath returns the default path for the config file
// It uses the OS-specific config directory (e.g., ~/.config/firebase on Linux)
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "firebase", DefaultConfigFile), nil
}

func isTOML(file string) bool {
	return strings.EqualFold(filepath.Ext(file), ".toml")
}

// LoadConfig reads the configuration from file. A missing file is reported
// with an error matching os.ErrNotExist.
func LoadConfig(file string) (*Config, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	var c Config
	if isTOML(file) {
		if _, err := toml.Decode(string(content), &c); err != nil {
			return nil, fmt.Errorf("unable to parse config file: %w", err)
		}
	} else if err := yaml.Unmarshal(content, &c); err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}
	if err := checkConfigVersion(c.Version); err != nil {
		return nil, err
	}
	c.URL = strings.TrimRight(c.URL, "/")
	return &c, nil
}

// WriteConfig writes the configuration to file, creating its directory.
func (cfg *Config) WriteConfig(file string) error {
	if file == "" {
		return errors.New("file path cannot be empty")
	}

	err := os.MkdirAll(filepath.Dir(file), 0o700)
	if err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}

	var content []byte
	if isTOML(file) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("unable to generate configuration: %w", err)
		}
		content = buf.Bytes()
	} else {
		content, err = yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("unable to generate configuration: %w", err)
		}
	}

	err = os.WriteFile(file, content, os.FileMode(0600))
	if err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}
	return nil
}

// Validate checks for required fields and proper formatting
func (cfg *Config) Validate() error {
	err := getValidator().Struct(cfg)
	if err == nil {
		return nil
	}
	var validatorErrors validator.ValidationErrors
	if !errors.As(err, &validatorErrors) {
		return err
	}
	var msgs []string
	for _, e := range validatorErrors {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s must be a valid https url", e.Field()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// Print prints the configuration in a human-readable format. The auth
// token is masked.
func (cfg *Config) Print(w io.Writer) {
	printf(w, "URL: %s\n", cfg.URL)
	printf(w, "Auth: %s\n", maskSecret(cfg.Auth))
	if cfg.AuthURL != "" {
		printf(w, "Auth URL: %s\n", cfg.AuthURL)
	}
	if cfg.AdminURL != "" {
		printf(w, "Admin URL: %s\n", cfg.AdminURL)
	}
}

func maskSecret(s string) string {
	switch {
	case s == "":
		return "(none)"
	case len(s) <= 4:
		return "****"
	default:
		return s[:4] + strings.Repeat("*", 8)
	}
}

// newConfigCmd creates the config command and its subcommands
func newConfigCmd(opts *rootOptions) *cobra.Command {
	var authURL, adminURL string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long: `Manage CLI configuration settings like the database URL and authentication.

Examples:
  # Configure the database and its secret
  fbcli config --url https://test.firebaseio.com --auth SECRET

  # Show the current configuration
  fbcli config show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.url == "" {
				return cmd.Help()
			}
			return opts.writeServerConfig(cmd.OutOrStdout(), authURL, adminURL)
		},
	}
	cmd.Flags().StringVar(&authURL, "auth-url", "", "Simple Login endpoint")
	cmd.Flags().StringVar(&adminURL, "admin-url", "", "Admin login endpoint")

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(opts.configFile)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]string{
					"url":         cfg.URL,
					"auth":        maskSecret(cfg.Auth),
					"auth_url":    cfg.AuthURL,
					"admin_url":   cfg.AdminURL,
					"config_file": opts.configFile,
				})
			}
			cfg.Print(cmd.OutOrStdout())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the stored auth token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(opts.configFile)
			if err != nil {
				return err
			}
			cfg.Auth = ""
			if err := cfg.WriteConfig(opts.configFile); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]int{"result": 1})
			}
			okLabel.Fprintln(cmd.OutOrStdout(), "✓ Auth token cleared")
			return nil
		},
	})
	return cmd
}

// writeServerConfig replaces the configuration file with the --url and
// --auth values.
func (opts *rootOptions) writeServerConfig(w io.Writer, authURL, adminURL string) error {
	cfg := &Config{
		Version:  configVersion,
		URL:      strings.TrimRight(opts.url, "/"),
		Auth:     opts.auth,
		AuthURL:  authURL,
		AdminURL: adminURL,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.WriteConfig(opts.configFile); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if opts.jsonOutput {
		return printJSON(w, map[string]string{
			"url":         cfg.URL,
			"config_file": opts.configFile,
		})
	}
	printf(w, "Database configured: %s\n", cfg.URL)
	printf(w, "Config file: %s\n", opts.configFile)
	return nil
}
