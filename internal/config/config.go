// Package config holds application configuration with viper-backed
// overrides.
package config

import (
	"errors"

	"github.com/spf13/viper"
)

var (
	ErrInvalidChunkSize   = errors.New("chunk size must be greater than 0")
	ErrInvalidMaxParallel = errors.New("max parallel transfers must be greater than 0")
	ErrInvalidListenAddr  = errors.New("listen address must be set")
)

// Config holds all application configuration.
type Config struct {
	Transfer TransferConfig `json:"transfer"`
}

// TransferConfig holds transfer-engine configuration.
type TransferConfig struct {
	ChunkSize   int    `json:"chunk_size"`
	MaxParallel int    `json:"max_parallel"`
	ListenAddr  string `json:"listen_addr"`
}

// NewDefaultConfig returns a configuration with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Transfer: TransferConfig{
			ChunkSize:   1 << 20, // 1 MiB
			MaxParallel: 5,
			ListenAddr:  "0.0.0.0:8080",
		},
	}
}

// Load builds the configuration from defaults overridden by whatever
// viper picked up from the config file and environment.
func Load() (*Config, error) {
	cfg := NewDefaultConfig()
	viper.SetDefault("transfer.chunk_size", cfg.Transfer.ChunkSize)
	viper.SetDefault("transfer.max_parallel", cfg.Transfer.MaxParallel)
	viper.SetDefault("transfer.listen_addr", cfg.Transfer.ListenAddr)

	cfg.Transfer.ChunkSize = viper.GetInt("transfer.chunk_size")
	cfg.Transfer.MaxParallel = viper.GetInt("transfer.max_parallel")
	cfg.Transfer.ListenAddr = viper.GetString("transfer.listen_addr")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the configuration is valid.
func (c *Config) Validate() error {
	if c.Transfer.ChunkSize <= 0 {
		return ErrInvalidChunkSize
	}
	if c.Transfer.MaxParallel <= 0 {
		return ErrInvalidMaxParallel
	}
	if c.Transfer.ListenAddr == "" {
		return ErrInvalidListenAddr
	}
	return nil
}
