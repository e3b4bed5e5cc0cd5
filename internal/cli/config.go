package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/awis/pkg/errors"
	"github.com/matzehuels/awis/pkg/integrations"
	"github.com/matzehuels/awis/pkg/integrations/awis"
)

// Environment variables that override the config file.
const (
	envAccessKeyID     = "AWIS_ACCESS_KEY_ID"
	envSecretAccessKey = "AWIS_SECRET_ACCESS_KEY"
	envEndpoint        = "AWIS_ENDPOINT"
)

// Config is the on-disk configuration, ~/.config/awis/config.toml:
//
//	access_key_id     = "AKID..."
//	secret_access_key = "..."
//	endpoint          = "https://awis.amazonaws.com/"
//	timeout           = "10s"
//	default_groups    = ["Rank", "SiteData"]
type Config struct {
	AccessKeyID     string   `toml:"access_key_id"`
	SecretAccessKey string   `toml:"secret_access_key"`
	Endpoint        string   `toml:"endpoint"`
	Timeout         string   `toml:"timeout"`
	DefaultGroups   []string `toml:"default_groups"`
}

// configPath returns the config file location using XDG standard
// (~/.config/awis/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads path and applies environment overrides from getenv.
// A missing file is only an error when the path was given explicitly.
func loadConfig(path string, explicit bool, getenv func(string) string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errs.New(errs.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read config")
	}

	if v := getenv(envAccessKeyID); v != "" {
		cfg.AccessKeyID = v
	}
	if v := getenv(envSecretAccessKey); v != "" {
		cfg.SecretAccessKey = v
	}
	if v := getenv(envEndpoint); v != "" {
		cfg.Endpoint = v
	}
	return cfg, nil
}

func (c *Config) credentials() awis.Credentials {
	return awis.Credentials{
		AccessKeyID:     strings.TrimSpace(c.AccessKeyID),
		SecretAccessKey: strings.TrimSpace(c.SecretAccessKey),
	}
}

func (c *Config) timeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 0, errs.New(errs.ErrCodeInvalidInput, "invalid timeout %q", c.Timeout)
	}
	return d, nil
}

// options converts the config into client options.
func (c *Config) options(logger *log.Logger) ([]awis.Option, error) {
	timeout, err := c.timeout()
	if err != nil {
		return nil, err
	}
	groups, err := awis.ParseResponseGroups(strings.Join(c.DefaultGroups, ","))
	if err != nil {
		return nil, fmt.Errorf("config default_groups: %w", err)
	}
	return []awis.Option{
		awis.WithEndpoint(c.Endpoint),
		awis.WithHTTPClient(integrations.NewHTTPClient(timeout)),
		awis.WithDefaultGroups(groups...),
		awis.WithLogger(logger),
	}, nil
}
