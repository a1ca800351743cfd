package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	API struct {
		BaseURL    string `yaml:"base_url"`
		Timeout    string `yaml:"timeout"`
		MaxRetries int    `yaml:"max_retries"`
	} `yaml:"api"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Quiz struct {
		Amount     int    `yaml:"amount"`
		Category   int    `yaml:"category"`
		Difficulty string `yaml:"difficulty"`
		Type       string `yaml:"type"`
	} `yaml:"quiz"`
	Categories struct {
		TTL string `yaml:"ttl"`
	} `yaml:"categories"`
}

// Default returns the config used when no file overrides it.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.API.BaseURL = "https://opentdb.com"
	cfg.API.Timeout = "10s"
	cfg.API.MaxRetries = 2
	cfg.Quiz.Amount = 10
	cfg.Quiz.Category = 11
	cfg.Categories.TTL = "10m"
	return cfg
}

// Load reads YAML config from path over the defaults. A missing file is not
// an error; the defaults stand.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty or
// malformed.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
