package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

// Config holds sharded client configuration
type Config struct {
	Shards        []ShardConfig `json:"shards" yaml:"shards"`
	Pool          PoolConfig    `json:"pool" yaml:"pool"`
	KeyTagPattern string        `json:"key_tag_pattern" yaml:"key_tag_pattern"`
	TimeoutMS     int           `json:"timeout_ms" yaml:"timeout_ms"`
	Inspect       InspectConfig `json:"inspect" yaml:"inspect"`
	Logger        logger.Config `json:"logger" yaml:"logger"`
}

// ShardConfig describes one backend shard. Name is optional but strongly
// recommended: named shards keep their keys when the list is reordered,
// unnamed shards do not.
type ShardConfig struct {
	Name   string `json:"name" yaml:"name"`
	Addr   string `json:"addr" yaml:"addr"`
	Weight int    `json:"weight" yaml:"weight"`
}

type PoolConfig struct {
	MaxActive     int `json:"max_active" yaml:"max_active"`
	MaxIdle       int `json:"max_idle" yaml:"max_idle"`
	IdleTimeoutMS int `json:"idle_timeout_ms" yaml:"idle_timeout_ms"`
}

type InspectConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func (p PoolConfig) IdleTimeout() time.Duration {
	return time.Duration(p.IdleTimeoutMS) * time.Millisecond
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Shards: []ShardConfig{
			{Name: "kv-01", Addr: "localhost:6379", Weight: 1},
			{Name: "kv-02", Addr: "localhost:6380", Weight: 1},
			{Name: "kv-03", Addr: "localhost:6381", Weight: 1},
		},
		Pool: PoolConfig{
			MaxActive:     8,
			MaxIdle:       4,
			IdleTimeoutMS: 60000,
		},
		TimeoutMS: 2000,
		Inspect: InspectConfig{
			Addr: ":8091",
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Load loads configuration from file
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "client", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		log.Printf("Config file not found or failed to parse, using defaults if file not specified. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		return cfg, nil
	}

	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
