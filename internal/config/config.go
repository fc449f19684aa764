package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/glabrego/recipe-cli/internal/recipes"
)

const (
	defaultConfigPath = "~/.config/recipes/config.toml"
	defaultTheme      = "mocha"
)

var knownThemes = map[string]struct{}{"mocha": {}, "latte": {}}

// Config holds runtime settings for the CLI app.
type Config struct {
	APIURL       string
	FetchTimeout time.Duration
	LogPath      string
	Theme        string
}

type fileConfig struct {
	APIURL       string `toml:"api_url"`
	FetchTimeout string `toml:"fetch_timeout"`
	LogPath      string `toml:"log_path"`
	Theme        string `toml:"theme"`
}

func Default() Config {
	return Config{
		APIURL: recipes.DefaultCatalogURL,
		Theme:  defaultTheme,
	}
}

// Load resolves settings from defaults, the TOML file at path (or the default
// location when path is empty) and RECIPES_* environment variables, in that
// order. A missing default file is not an error. The result is not
// validated so callers can layer flag overrides first; call Validate once
// every source is merged.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := cfg.mergeFile(path); err != nil {
		return Config{}, err
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = defaultConfigPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(raw.FetchTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config fetch_timeout: %w", err)
		}
		c.FetchTimeout = d
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		c.LogPath = v
	}
	if v := strings.TrimSpace(raw.Theme); v != "" {
		c.Theme = v
	}
	return nil
}

func (c *Config) mergeEnv() error {
	if v := strings.TrimSpace(os.Getenv("RECIPES_API_URL")); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv("RECIPES_FETCH_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("RECIPES_FETCH_TIMEOUT: %w", err)
		}
		c.FetchTimeout = d
	}
	if v := strings.TrimSpace(os.Getenv("RECIPES_LOG_PATH")); v != "" {
		c.LogPath = v
	}
	if v := strings.TrimSpace(os.Getenv("RECIPES_THEME")); v != "" {
		c.Theme = v
	}
	return nil
}

func (c Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("APIURL is required")
	}
	parsed, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("APIURL is invalid: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("APIURL must use http or https: %s", c.APIURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("APIURL has no host: %s", c.APIURL)
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("FetchTimeout must not be negative: %s", c.FetchTimeout)
	}
	if _, ok := knownThemes[c.Theme]; !ok {
		return fmt.Errorf("Theme must be mocha or latte: %s", c.Theme)
	}
	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
