package main

import (
	"fmt"
	"time"

	"github.com/creasty/defaults"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// appConfig is the file/env configuration for everything outside the UI.
type appConfig struct {
	Backend struct {
		URL     string        `mapstructure:"url"`
		APIKey  string        `mapstructure:"api_key"`
		Timeout time.Duration `mapstructure:"timeout" default:"15s"`
	} `mapstructure:"backend"`

	Agent struct {
		URL               string  `mapstructure:"url"`
		RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"1"`
	} `mapstructure:"agent"`

	Speech struct {
		Engine     string  `mapstructure:"engine" default:"espeak"`
		Binary     string  `mapstructure:"binary" default:"espeak-ng"`
		Language   string  `mapstructure:"language" default:"en-US"`
		Pitch      float64 `mapstructure:"pitch" default:"1"`
		Rate       float64 `mapstructure:"rate" default:"1"`
		CacheDir   string  `mapstructure:"cache_dir" default:"~/.cache/wayfarer/audio"`
		CacheMaxMB int     `mapstructure:"cache_max_mb" default:"64"`
	} `mapstructure:"speech"`

	Drafts struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"drafts"`

	Chat struct {
		Sender string `mapstructure:"sender" default:"traveler"`
	} `mapstructure:"chat"`

	Share struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"share"`
}

// loadAppConfig merges defaults with whatever viper picked up from the config
// file and environment. Paths get ~ expanded.
func loadAppConfig() (appConfig, error) {
	var cfg appConfig
	if err := defaults.Set(&cfg); err != nil {
		return cfg, fmt.Errorf("unable to apply config defaults: %w", err)
	}
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unable to parse configuration: %w", err)
	}

	var err error
	if cfg.Speech.CacheDir, err = homedir.Expand(cfg.Speech.CacheDir); err != nil {
		return cfg, fmt.Errorf("unable to expand cache dir: %w", err)
	}
	if cfg.Drafts.Dir != "" {
		if cfg.Drafts.Dir, err = homedir.Expand(cfg.Drafts.Dir); err != nil {
			return cfg, fmt.Errorf("unable to expand drafts dir: %w", err)
		}
	}
	return cfg, nil
}
