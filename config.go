package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Config holds all configuration from config.json
type Config struct {
	Monitor  MonitorConfig  `json:"monitor"`
	Paths    PathsConfig    `json:"paths"`
	Telegram TelegramConfig `json:"telegram"`
	Price    PriceConfig    `json:"price"`
}

// MonitorConfig is immutable after load.
type MonitorConfig struct {
	CPUThresholdPercent  float64 `json:"cpu_threshold_percent"`
	CheckIntervalSeconds int     `json:"check_interval_seconds"`
}

type PathsConfig struct {
	Disk string `json:"disk"`
}

type TelegramConfig struct {
	Enabled         bool   `json:"enabled"`
	BotToken        string `json:"bot_token"`
	ChatID          int64  `json:"chat_id"`
	CooldownMinutes int    `json:"cooldown_minutes"`
}

type PriceConfig struct {
	APIURL         string `json:"api_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func defaultConfig() Config {
	return Config{
		Monitor:  MonitorConfig{CPUThresholdPercent: 90, CheckIntervalSeconds: 10},
		Paths:    PathsConfig{Disk: "/"},
		Telegram: TelegramConfig{Enabled: false, CooldownMinutes: 30},
		Price: PriceConfig{
			APIURL:         "https://api.coindesk.com/v1/bpi/currentprice/USD.json",
			TimeoutSeconds: 10,
		},
	}
}

// loadConfig reads configuration from path with defaults for missing fields.
// A missing file is not an error; the defaults apply as-is.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			applyEnvOverrides(&cfg)
			return &cfg, cfg.validate()
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	fillMissingConfigFields(&raw, cfg)

	merged, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("merging %s: %w", path, err)
	}
	if err := json.Unmarshal(merged, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	cfg.sanitize()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides lets secrets come from the environment instead of
// sitting in config.json.
func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("BOT_TOKEN"); token != "" {
		cfg.Telegram.BotToken = token
	}
}

// sanitize fixes out-of-range optional values without failing the load.
func (c *Config) sanitize() {
	if c.Telegram.CooldownMinutes <= 0 {
		c.Telegram.CooldownMinutes = 30
	}
	if c.Price.TimeoutSeconds <= 0 {
		c.Price.TimeoutSeconds = 10
	}
	if c.Price.APIURL == "" {
		c.Price.APIURL = defaultConfig().Price.APIURL
	}
	if c.Paths.Disk == "" {
		c.Paths.Disk = "/"
	}
}

// validate rejects configurations the monitor cannot run with.
func (c *Config) validate() error {
	if c.Monitor.CheckIntervalSeconds <= 0 {
		return fmt.Errorf("monitor.check_interval_seconds must be positive, got %d", c.Monitor.CheckIntervalSeconds)
	}
	if c.Monitor.CPUThresholdPercent < 0 || c.Monitor.CPUThresholdPercent > 100 {
		return fmt.Errorf("monitor.cpu_threshold_percent must be in 0-100, got %g", c.Monitor.CPUThresholdPercent)
	}
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return errors.New("telegram.enabled is set but no bot token configured")
		}
		if c.Telegram.ChatID == 0 {
			return errors.New("telegram.enabled is set but chat_id is empty")
		}
	}
	return nil
}

// fillMissingConfigFields merges default values into keys absent from the
// user's config so partial files keep working across upgrades.
func fillMissingConfigFields(configMap *map[string]interface{}, defaults Config) bool {
	if *configMap == nil {
		*configMap = map[string]interface{}{}
	}
	defaultBytes, err := json.Marshal(defaults)
	if err != nil {
		return false
	}
	var defaultMap map[string]interface{}
	if err := json.Unmarshal(defaultBytes, &defaultMap); err != nil {
		return false
	}
	return fillMissingMap(*configMap, defaultMap)
}

func fillMissingMap(configMap, defaultMap map[string]interface{}) bool {
	changed := false
	for key, defaultValue := range defaultMap {
		currentValue, exists := configMap[key]
		if !exists || currentValue == nil {
			configMap[key] = defaultValue
			changed = true
			continue
		}

		currentMap, currentIsMap := currentValue.(map[string]interface{})
		defaultSubMap, defaultIsMap := defaultValue.(map[string]interface{})
		if currentIsMap && defaultIsMap {
			if fillMissingMap(currentMap, defaultSubMap) {
				changed = true
			}
		}
	}
	return changed
}
