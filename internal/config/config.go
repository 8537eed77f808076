package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the root configuration for punch, stored in ~/.punch/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	// APIBaseURL is the root URL of the time-and-attendance API.
	APIBaseURL string `json:"api_base_url"`
	// Email is the default login used by `punch login`.
	Email string `json:"email"`
	// StatusTTLSeconds is how long a fetched clock status is reused.
	StatusTTLSeconds int `json:"status_ttl_seconds"`
	// Color is one of "auto", "always" or "never".
	Color string `json:"color"`
}

const (
	DefaultAPIBaseURL       = "http://localhost:3000"
	DefaultStatusTTLSeconds = 60
	DefaultColor            = ColorAuto

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	// EnvHome overrides the ~/.punch data directory.
	EnvHome = "PUNCH_HOME"
	// EnvAPIURL overrides api_base_url from the config file.
	EnvAPIURL = "PUNCH_API_URL"
)

// StatusTTL returns the status cache lifetime.
func (c Config) StatusTTL() time.Duration {
	return time.Duration(c.StatusTTLSeconds) * time.Second
}

func defaultConfig() Config {
	return Config{
		APIBaseURL:       DefaultAPIBaseURL,
		StatusTTLSeconds: DefaultStatusTTLSeconds,
		Color:            DefaultColor,
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing.
const configTemplate = `// punch configuration – ~/.punch/config.json
//
// All settings are optional; edit this file to point punch at your server.
{
  // Root URL of the clock-in API. Can be overridden with $PUNCH_API_URL.
  "api_base_url": "http://localhost:3000",

  // Email used by 'punch login' when --email is not given.
  "email": "",

  // Seconds a fetched clock status is reused before asking the server again.
  "status_ttl_seconds": 60,

  // Colored output: "auto" (only on a terminal), "always" or "never".
  "color": "auto"
}
`

// BaseDir returns the root data directory: $PUNCH_HOME or ~/.punch.
func BaseDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".punch"), nil
}

// FilePath returns the config file location inside base.
func FilePath(base string) string {
	return filepath.Join(base, "config.json")
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads <base>/config.json, creating it with annotated defaults on first
// run. Zero-valued fields fall back to the built-in defaults and
// $PUNCH_API_URL wins over the file.
func Load(base string) (Config, error) {
	path := FilePath(base)
	cfg, err := load(path)
	if err != nil {
		return cfg, err
	}
	if url := os.Getenv(EnvAPIURL); url != "" {
		cfg.APIBaseURL = url
	}
	return cfg, nil
}

func load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.StatusTTLSeconds <= 0 {
		cfg.StatusTTLSeconds = DefaultStatusTTLSeconds
	}
	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	case "":
		cfg.Color = DefaultColor
	default:
		return defaultConfig(), fmt.Errorf("config file %s: color must be %q, %q or %q, got %q",
			path, ColorAuto, ColorAlways, ColorNever, cfg.Color)
	}
	return cfg, nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
