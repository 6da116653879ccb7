package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Response modes select the shape of the JSON bodies and which diagnostic routes exist.
const (
	ModeVerbose = "verbose"
	ModeMinimal = "minimal"
)

// Environment variable names read by [ApplyEnv].
const (
	EnvPort         = "PORT"
	EnvMode         = "RESPONSE_MODE"
	EnvClientID     = "SPOTIFY_CLIENT_ID"
	EnvClientSecret = "SPOTIFY_CLIENT_SECRET"
	EnvRefreshToken = "SPOTIFY_REFRESH_TOKEN"
)

// Config represents the application configuration loaded from a TOML file and the environment.
//
// A Config is built once at startup and shared read-only by every handler.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Credentials CredentialsConfig `toml:"credentials"`
	Upstream    UpstreamConfig    `toml:"upstream"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	Mode           string   `toml:"mode"`
	StaticDir      string   `toml:"static_dir"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RefreshToken string `toml:"refresh_token"`
	RedirectURI  string `toml:"redirect_uri"`
}

// UpstreamConfig points at the Spotify accounts and Web API hosts.
type UpstreamConfig struct {
	AuthURL        string `toml:"auth_url"`
	TokenURL       string `toml:"token_url"`
	APIURL         string `toml:"api_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Addr returns the listen address as host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Verbose reports whether the full response bodies and diagnostic routes are enabled.
func (s ServerConfig) Verbose() bool {
	return s.Mode != ModeMinimal
}

// Timeout returns the per-call upstream timeout, defaulting to 10 seconds.
func (u UpstreamConfig) Timeout() time.Duration {
	if u.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// Missing returns the names of required credentials that are not set.
func (s SpotifyConfig) Missing() []string {
	var missing []string
	if s.ClientID == "" {
		missing = append(missing, "client_id")
	}
	if s.ClientSecret == "" {
		missing = append(missing, "client_secret")
	}
	if s.RefreshToken == "" {
		missing = append(missing, "refresh_token")
	}
	return missing
}

// Validate returns [ErrMissingCredentials] naming every unset credential.
func (s SpotifyConfig) Validate() error {
	if missing := s.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}
	return nil
}

// Validate checks values that would make the server unusable.
//
// Missing credentials are not reported here; they surface when a route is invoked.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	switch c.Server.Mode {
	case ModeVerbose, ModeMinimal:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Server.Mode)
	}
	if c.Upstream.TokenURL == "" || c.Upstream.APIURL == "" {
		return fmt.Errorf("%w: upstream token_url and api_url are required", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys absent from the file keep the values from [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig writes config to path as TOML, replacing any existing file.
func SaveConfig(path string, config *Config) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// LoadDotEnv loads KEY=value pairs from a .env file into the process environment.
//
// A missing file is not an error. Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values with environment variables found through lookup.
//
// Pass [os.LookupEnv] in production.
func ApplyEnv(config *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvPort, v)
		}
		config.Server.Port = port
	}
	if v, ok := lookup(EnvMode); ok && v != "" {
		config.Server.Mode = strings.ToLower(v)
	}
	if v, ok := lookup(EnvClientID); ok {
		config.Credentials.Spotify.ClientID = v
	}
	if v, ok := lookup(EnvClientSecret); ok {
		config.Credentials.Spotify.ClientSecret = v
	}
	if v, ok := lookup(EnvRefreshToken); ok {
		config.Credentials.Spotify.RefreshToken = v
	}
	return nil
}
