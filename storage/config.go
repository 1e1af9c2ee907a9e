package storage

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for storage configuration, allowing callers
// to customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	BackendType    string
	Endpoint       string
	TimeoutSeconds string
	MaxRetries     string
	RetryDelay     string
	UseTLS         string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{Flags: f}
}

// Credentials holds optional backend authentication material. Collecting
// these from environment or a secrets store is a collaborator contract
// (spec.md §6); Config only carries the fields through.
type Credentials struct {
	Username string
	Password string
	Token    string
}

// Config holds CLI flag values for storage configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Call [Config.Validate] once flags are parsed.
type Config struct {
	BackendType    string
	Endpoint       string
	TimeoutSeconds int
	MaxRetries     int
	RetryDelaySeconds int
	UseTLS         bool
	Credentials    Credentials

	Flags Flags
}

// NewConfig returns a new [Config] with default flag names. Use
// [Config.RegisterFlags] to add CLI flags, or set values directly.
func NewConfig() *Config {
	f := Flags{
		BackendType:    "storage-backend",
		Endpoint:       "storage-endpoint",
		TimeoutSeconds: "storage-timeout-seconds",
		MaxRetries:     "storage-max-retries",
		RetryDelay:     "storage-retry-delay-seconds",
		UseTLS:         "storage-use-tls",
	}

	return f.NewConfig()
}

// RegisterFlags adds storage flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.BackendType, c.Flags.BackendType, "memstore", "storage backend type")
	flags.StringVar(&c.Endpoint, c.Flags.Endpoint, "", "backend endpoint in host:port form")
	flags.IntVar(&c.TimeoutSeconds, c.Flags.TimeoutSeconds, 30, "per-operation timeout in seconds (1-300)")
	flags.IntVar(&c.MaxRetries, c.Flags.MaxRetries, 3, "max retries for idempotent operations (0-10)")
	flags.IntVar(&c.RetryDelaySeconds, c.Flags.RetryDelay, 1, "fixed retry delay in seconds")
	flags.BoolVar(&c.UseTLS, c.Flags.UseTLS, false, "use TLS when connecting to the backend")
}

// RegisterCompletions registers shell completions for storage flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.BackendType,
		cobra.FixedCompletions([]string{"memstore"}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering storage-backend completion: %w", err)
	}

	return nil
}

// Validate checks already-populated values against spec.md §6's storage
// configuration contract (1-300s timeout, 0-10 retries). It does not parse
// environment or flags itself -- that is the CLI collaborator's job.
func (c *Config) Validate() error {
	if c.TimeoutSeconds < 1 || c.TimeoutSeconds > 300 {
		return ConfigurationError(fmt.Sprintf("timeout_seconds must be in [1, 300], got %d", c.TimeoutSeconds), nil)
	}

	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return ConfigurationError(fmt.Sprintf("max_retries must be in [0, 10], got %d", c.MaxRetries), nil)
	}

	if c.BackendType == "" {
		return ConfigurationError("backend_type is required", nil)
	}

	return nil
}
