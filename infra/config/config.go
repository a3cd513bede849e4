package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application-level configuration.
type Config struct {
	APIURL          string        `yaml:"api_url"`          // e.g. "https://api.tradefeed.dev"
	TokenPath       string        `yaml:"token_path"`       // File containing the bearer token
	Stream          bool          `yaml:"stream"`           // Subscribe to the websocket push channel
	SimulateSignals time.Duration `yaml:"simulate_signals"` // Fake "new posts" ticker; 0 disables
	LogPath         string        `yaml:"log_path"`
	PageSize        int           `yaml:"page_size"`
	MetricsAddr     string        `yaml:"metrics_addr"` // Empty disables the /metrics listener
	UIStatePath     string        `yaml:"ui_state_path"`
	ViewerID        string        `yaml:"viewer_id"` // Own posts are never locked for this account
}

const (
	defaultAPIURL   = "https://api.tradefeed.dev"
	defaultPageSize = 50
	maxPageSize     = 200
)

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. A .env file in the working
// directory is loaded first when present.
//
//	TRADEFEED_CONFIG           : YAML file path (optional)
//	TRADEFEED_API_URL          : backend base URL, https (http only for localhost)
//	TRADEFEED_TOKEN            : token file path (default: ~/.config/tradefeed/token)
//	TRADEFEED_STREAM           : "true" to subscribe to the push channel
//	TRADEFEED_SIMULATE_SIGNALS : Go duration for the simulated new-posts ticker
//	TRADEFEED_LOG              : log file path (default: ~/.config/tradefeed/tradefeed.log)
//	TRADEFEED_PAGE_SIZE        : posts per fetch (1..200)
//	TRADEFEED_METRICS_ADDR     : listen address for /metrics
//	TRADEFEED_STATE            : UI state file (default: ~/.config/tradefeed/ui_state.json)
//	TRADEFEED_VIEWER_ID        : account id of the signed-in viewer
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg, err := defaults()
	if err != nil {
		return Config{}, err
	}

	if path := os.Getenv("TRADEFEED_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	cfg.APIURL, err = normalizeAPIURL(cfg.APIURL)
	if err != nil {
		return Config{}, err
	}
	if cfg.PageSize < 1 || cfg.PageSize > maxPageSize {
		return Config{}, fmt.Errorf("invalid page size %d: must be between 1 and %d", cfg.PageSize, maxPageSize)
	}
	if cfg.SimulateSignals < 0 {
		return Config{}, errors.New("invalid simulate_signals: must not be negative")
	}
	return cfg, nil
}

func defaults() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
	}
	dir := filepath.Join(home, ".config", "tradefeed")
	return Config{
		APIURL:      defaultAPIURL,
		TokenPath:   filepath.Join(dir, "token"),
		LogPath:     filepath.Join(dir, "tradefeed.log"),
		PageSize:    defaultPageSize,
		UIStatePath: filepath.Join(dir, "ui_state.json"),
	}, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("TRADEFEED_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("TRADEFEED_TOKEN"); v != "" {
		cfg.TokenPath = v
	}
	if v := os.Getenv("TRADEFEED_STREAM"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid TRADEFEED_STREAM: %w", err)
		}
		cfg.Stream = b
	}
	if v := os.Getenv("TRADEFEED_SIMULATE_SIGNALS"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TRADEFEED_SIMULATE_SIGNALS: %w", err)
		}
		cfg.SimulateSignals = d
	}
	if v := os.Getenv("TRADEFEED_LOG"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("TRADEFEED_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TRADEFEED_PAGE_SIZE: %w", err)
		}
		cfg.PageSize = n
	}
	if v := os.Getenv("TRADEFEED_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("TRADEFEED_STATE"); v != "" {
		cfg.UIStatePath = v
	}
	if v := os.Getenv("TRADEFEED_VIEWER_ID"); v != "" {
		cfg.ViewerID = strings.TrimSpace(v)
	}
	return nil
}

func normalizeAPIURL(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid TRADEFEED_API_URL: must be an absolute URL")
	}
	switch parsed.Scheme {
	case "https":
	case "http":
		if !isLoopback(parsed.Hostname()) {
			return "", fmt.Errorf("invalid TRADEFEED_API_URL: only https is allowed outside localhost")
		}
	default:
		return "", fmt.Errorf("invalid TRADEFEED_API_URL: unsupported scheme %q", parsed.Scheme)
	}
	return strings.TrimRight(parsed.String(), "/"), nil
}

func isLoopback(host string) bool {
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}
