package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port          int              `json:"port"`
	LogConfig     logger.LogConfig `json:"log_config"`
	Store         StoreConfig      `json:"store"`
	Cache         CacheConfig      `json:"cache"`
	Backup        BackupConfig     `json:"backup"`
	CORSAllowlist []string         `json:"cors_allowlist"`
}

// StoreConfig selects a store backing by type; Data carries the
// backing-specific options and is decoded by the chosen factory.
type StoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type CacheConfig struct {
	Size       int `json:"size"`
	TTLSeconds int `json:"ttl_seconds"`
}

type BackupConfig struct {
	Enable bool         `json:"enable"`
	Cron   string       `json:"cron"`
	Target TargetConfig `json:"target"`
}

type TargetConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = "file"
	}
	if cfg.Cache.Size == 0 {
		cfg.Cache.Size = 256
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 600
	}
	if cfg.Backup.Enable {
		if cfg.Backup.Cron == "" {
			cfg.Backup.Cron = "*/30 * * * *"
		}
		if cfg.Backup.Target.Type == "" {
			return nil, fmt.Errorf("backup.target.type is required when backup is enabled")
		}
	}
	return &cfg, nil
}
