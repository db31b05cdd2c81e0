package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Default values for the server configuration.
const (
	DefaultGRPCPort        = 50051
	DefaultHTTPPort        = 8080
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultMaxRecvMsgBytes = 4 << 20
	DefaultStreamInterval  = 5 * time.Second
	DefaultNotifyTimeout   = 10 * time.Second
	DefaultNotifyInFlight  = 16
	DefaultNotifyQueued    = 256
)

// EnvPrefix prefixes every environment override, e.g. RESOURCESVC_GRPC_PORT.
const EnvPrefix = "RESOURCESVC_"

// Config holds the server-side configuration parsed from the `server:` section
// of config.yaml. The `client:` key in the same file is ignored.
type Config struct {
	Server ServerConfig `yaml:"server"`
}

// ServerConfig holds all server-side settings.
type ServerConfig struct {
	// GRPCPort is the port the gRPC service listens on (default 50051).
	GRPCPort int `yaml:"grpc_port" env:"GRPC_PORT"`

	// HTTPPort is the port the REST API, WebSocket stream and /metrics
	// listen on (default 8080).
	HTTPPort int `yaml:"http_port" env:"HTTP_PORT"`

	// Auth configures how the server authenticates gRPC and REST clients.
	Auth AuthConfig `yaml:"auth" envPrefix:"AUTH_"`

	// Log controls the process logger.
	Log LogConfig `yaml:"log" envPrefix:"LOG_"`

	// Limits bounds request sizes.
	Limits LimitsConfig `yaml:"limits" envPrefix:"LIMITS_"`

	// Stream controls the WebSocket change stream.
	Stream StreamConfig `yaml:"stream" envPrefix:"STREAM_"`

	// Notify configures webhook delivery of resource change events.
	Notify NotifyConfig `yaml:"notify" envPrefix:"NOTIFY_"`
}

// AuthConfig controls client authentication on the server side.
type AuthConfig struct {
	// Mode is one of: apikey | none.
	Mode string `yaml:"mode" env:"MODE"`

	// KeyEnv is the name of the environment variable that holds the expected API key.
	// Used when Mode == "apikey".
	KeyEnv string `yaml:"key_env" env:"KEY_ENV"`

	// Header is the gRPC metadata key (and HTTP header name) to read the key from.
	// Defaults to "x-api-key" if empty.
	Header string `yaml:"header" env:"HEADER"`
}

// Key returns the expected API key resolved from the environment.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// EffectiveHeader returns the configured header name, or the default "x-api-key".
func (a AuthConfig) EffectiveHeader() string {
	if a.Header != "" {
		return a.Header
	}
	return "x-api-key"
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is one of: debug | info | warn | error. Reloadable.
	Level string `yaml:"level" env:"LEVEL"`

	// Format is one of: json | text.
	Format string `yaml:"format" env:"FORMAT"`
}

// LimitsConfig bounds what clients may send.
type LimitsConfig struct {
	// MaxPayloadBytes rejects saves whose payload is longer. 0 = unlimited.
	MaxPayloadBytes int `yaml:"max_payload_bytes" env:"MAX_PAYLOAD_BYTES"`

	// MaxRecvMsgBytes is the largest gRPC message the server accepts
	// (default 4 MiB).
	MaxRecvMsgBytes int `yaml:"max_recv_msg_bytes" env:"MAX_RECV_MSG_BYTES"`
}

// StreamConfig controls the WebSocket change stream.
type StreamConfig struct {
	// Interval is how often the hub checks the store for changes (default 5s).
	Interval time.Duration `yaml:"interval" env:"INTERVAL"`
}

// NotifyConfig lists webhook targets that receive resource change events.
type NotifyConfig struct {
	// Timeout bounds each webhook POST (default 10s).
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`

	// MaxInFlight caps concurrent event deliveries (default 16).
	MaxInFlight int `yaml:"max_in_flight" env:"MAX_IN_FLIGHT"`

	// MaxQueued caps events waiting for a delivery slot (default 256).
	// Events beyond it are dropped with a warning.
	MaxQueued int `yaml:"max_queued" env:"MAX_QUEUED"`

	Webhooks []WebhookConfig `yaml:"webhooks"`
}

// WebhookConfig defines one webhook delivery target.
type WebhookConfig struct {
	// Type is one of: slack | teams | http.
	Type string `yaml:"type"`

	// URLEnv is the name of the environment variable that holds the webhook URL.
	URLEnv string `yaml:"url_env"`
}

// URL returns the webhook URL resolved from the environment.
func (w WebhookConfig) URL() string {
	if w.URLEnv == "" {
		return ""
	}
	return os.Getenv(w.URLEnv)
}

// Load reads and parses the config file at path, returning the server configuration.
// Defaults are applied first, then the YAML file, then RESOURCESVC_* environment
// overrides, and the result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("server config: read %q: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("server config: parse yaml: %w", err)
	}

	if err := env.ParseWithOptions(&cfg.Server, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("server config: environment: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			GRPCPort: DefaultGRPCPort,
			HTTPPort: DefaultHTTPPort,
			Log: LogConfig{
				Level:  DefaultLogLevel,
				Format: DefaultLogFormat,
			},
			Limits: LimitsConfig{
				MaxRecvMsgBytes: DefaultMaxRecvMsgBytes,
			},
			Stream: StreamConfig{
				Interval: DefaultStreamInterval,
			},
			Notify: NotifyConfig{
				Timeout:     DefaultNotifyTimeout,
				MaxInFlight: DefaultNotifyInFlight,
				MaxQueued:   DefaultNotifyQueued,
			},
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	s := cfg.Server
	if s.GRPCPort <= 0 || s.GRPCPort > 65535 {
		return fmt.Errorf("server.grpc_port %d is out of range [1, 65535]", s.GRPCPort)
	}
	if s.HTTPPort <= 0 || s.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", s.HTTPPort)
	}
	if s.GRPCPort == s.HTTPPort {
		return fmt.Errorf("server.grpc_port and server.http_port must differ (both %d)", s.GRPCPort)
	}
	switch s.Auth.Mode {
	case "apikey", "none", "":
	default:
		return fmt.Errorf("server.auth.mode %q unknown: want apikey|none", s.Auth.Mode)
	}
	if s.Auth.Mode == "apikey" && s.Auth.KeyEnv == "" {
		return fmt.Errorf("server.auth.key_env is required when mode is apikey")
	}
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("server.log.level %q unknown: want debug|info|warn|error", s.Log.Level)
	}
	switch s.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("server.log.format %q unknown: want json|text", s.Log.Format)
	}
	if s.Limits.MaxPayloadBytes < 0 {
		return fmt.Errorf("server.limits.max_payload_bytes must not be negative")
	}
	if s.Limits.MaxRecvMsgBytes <= 0 {
		return fmt.Errorf("server.limits.max_recv_msg_bytes must be positive")
	}
	if s.Stream.Interval <= 0 {
		return fmt.Errorf("server.stream.interval must be positive")
	}
	if s.Notify.Timeout <= 0 {
		return fmt.Errorf("server.notify.timeout must be positive")
	}
	if s.Notify.MaxInFlight <= 0 {
		return fmt.Errorf("server.notify.max_in_flight must be positive")
	}
	if s.Notify.MaxQueued < 0 {
		return fmt.Errorf("server.notify.max_queued must not be negative")
	}
	for i, wh := range s.Notify.Webhooks {
		switch wh.Type {
		case "slack", "teams", "http":
		default:
			return fmt.Errorf("server.notify.webhooks[%d].type %q unknown: want slack|teams|http", i, wh.Type)
		}
		if wh.URLEnv == "" {
			return fmt.Errorf("server.notify.webhooks[%d].url_env is required", i)
		}
	}
	return nil
}
