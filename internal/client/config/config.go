package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/daybook-hq/daybook/internal/utils"
	"github.com/goccy/go-json"
)

var (
	home, _            = os.UserHomeDir()
	DefaultConfigPath  = filepath.Join(home, ".daybook", "config.json")
	DefaultDataDir     = filepath.Join(home, "Daybook")
	DefaultServerURL   = "https://journal.daybook.sh"
	DefaultLogFilePath = filepath.Join(home, "Daybook", "logs", "daybook.log")
)

type Config struct {
	DataDir      string `json:"data_dir"`
	Email        string `json:"email"`
	ServerURL    string `json:"server_url"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Path         string `json:"-"`
}

func (c *Config) Validate() error {
	if c.Email == "" {
		return fmt.Errorf("config: email is required, run `daybook login`")
	}
	if c.DataDir == "" {
		return fmt.Errorf("config: data_dir is required")
	}
	if err := utils.ValidateURL(c.ServerURL); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Config) Save(path string) error {
	if err := utils.EnsureParent(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// contains the refresh token, keep it private
	return os.WriteFile(path, data, 0o600)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.Path = path
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}

	return &cfg, nil
}
