package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultServerEndpoint = "localhost:50051"
	DefaultTimeout        = 10 * time.Second
	DefaultRetries        = 3
	DefaultHeader         = "x-api-key"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RESOURCECTL_"

// Config is the top-level client configuration.
type Config struct {
	Client ClientConfig `yaml:"client"`
}

// ClientConfig holds all client-side settings.
type ClientConfig struct {
	// ServerEndpoint is the gRPC address of resourcesvc-server (host:port).
	ServerEndpoint string `yaml:"server_endpoint" env:"SERVER_ENDPOINT"`

	// Timeout bounds each individual call attempt.
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`

	// Retries is how many times a call is retried when the server is
	// unavailable. Other failures are never retried.
	Retries int `yaml:"retries" env:"RETRIES"`

	// ServerAuth configures how the client authenticates to the server.
	ServerAuth AuthConfig `yaml:"server_auth" envPrefix:"AUTH_"`
}

// AuthConfig specifies how the client authenticates.
type AuthConfig struct {
	// Mode is one of: mtls | apikey | none.
	Mode string `yaml:"mode" env:"MODE"`

	// mTLS fields, used when Mode == "mtls". resourcesvc-server listens in
	// plaintext, so mtls only works through a TLS-terminating proxy in front
	// of it.
	CertFile string `yaml:"cert_file" env:"CERT_FILE"`
	KeyFile  string `yaml:"key_file" env:"KEY_FILE"`
	CAFile   string `yaml:"ca_file" env:"CA_FILE"`

	// API key fields, used when Mode == "apikey".
	// Header is the gRPC metadata key to send the key in.
	Header string `yaml:"header" env:"HEADER"`
	// KeyEnv is the name of the environment variable that holds the key value.
	KeyEnv string `yaml:"key_env" env:"KEY_ENV"`
}

// Key returns the API key value resolved from the environment.
// Returns empty string if KeyEnv is unset or the variable is not found.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// EffectiveHeader returns the configured header name, or DefaultHeader.
func (a AuthConfig) EffectiveHeader() string {
	if a.Header != "" {
		return a.Header
	}
	return DefaultHeader
}

// Load reads and parses the YAML config file at path. An empty path skips
// the file and uses defaults plus environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("client config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("client config: parse yaml: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg.Client, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("client config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Client: ClientConfig{
			ServerEndpoint: DefaultServerEndpoint,
			Timeout:        DefaultTimeout,
			Retries:        DefaultRetries,
		},
	}
}

// Validate checks required fields and structural constraints.
func (cfg *Config) Validate() error {
	c := cfg.Client
	if c.ServerEndpoint == "" {
		return fmt.Errorf("client config: client.server_endpoint is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("client config: client.timeout must be positive")
	}
	if c.Retries < 0 {
		return fmt.Errorf("client config: client.retries must not be negative")
	}
	switch c.ServerAuth.Mode {
	case "mtls":
		if c.ServerAuth.CertFile == "" || c.ServerAuth.KeyFile == "" {
			return fmt.Errorf("client config: client.server_auth.cert_file and key_file are required for mtls")
		}
	case "apikey":
		if c.ServerAuth.KeyEnv == "" {
			return fmt.Errorf("client config: client.server_auth.key_env is required for apikey")
		}
	case "none", "":
	default:
		return fmt.Errorf("client config: client.server_auth.mode %q unknown: want mtls|apikey|none", c.ServerAuth.Mode)
	}
	return nil
}
