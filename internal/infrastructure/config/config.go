package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/updateos/binmgr/internal/shared/paths"
	"github.com/updateos/binmgr/internal/shared/types"
)

// Config holds all binary manager configuration.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Kernel    KernelConfig
	Queue     QueueConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8600"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// StorageConfig holds the binary storage directory location.
type StorageConfig struct {
	Dir string `envconfig:"STORAGE_DIR" default:"/storage/binaries"`
}

// KernelConfig describes the kernel slot's partition banks.
//
// Partitions is a comma-separated list of partition numbers; InUse indexes
// that list at the currently running bank. An empty list means the system
// has no dual-bank kernel and kernel updates answer NOT_FOUND.
type KernelConfig struct {
	DevnameFmt string `envconfig:"DEVNAME_FMT" default:"/dev/mtdblock%d"`
	Partitions string `envconfig:"KERNEL_PARTS" default:""`
	InUse      int    `envconfig:"KERNEL_INUSE" default:"0"`
}

// QueueConfig holds response queue settings.
type QueueConfig struct {
	Capacity int `envconfig:"QUEUE_CAPACITY" default:"16"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from BINMGR_-prefixed environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("binmgr", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if _, err := cfg.Kernel.Info(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8600",
			Host: "0.0.0.0",
		},
		Storage: StorageConfig{
			Dir: paths.DefaultStorageDir,
		},
		Kernel: KernelConfig{
			DevnameFmt: "/dev/mtdblock%d",
		},
		Queue: QueueConfig{
			Capacity: 16,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}

// Info parses the partition list into the kernel descriptor set.
// ok-style absence is represented by a nil Partitions slice.
func (k KernelConfig) Info() (types.KernelInfo, error) {
	info := types.KernelInfo{InUse: k.InUse}
	if strings.TrimSpace(k.Partitions) == "" {
		return info, nil
	}

	for _, field := range strings.Split(k.Partitions, ",") {
		num, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return types.KernelInfo{}, fmt.Errorf("invalid kernel partition %q: %w", field, err)
		}
		info.Partitions = append(info.Partitions, types.Partition{Num: num})
	}

	if len(info.Partitions) > 2 {
		return types.KernelInfo{}, fmt.Errorf("kernel holds at most two banks, got %d partitions", len(info.Partitions))
	}
	if k.InUse < 0 || k.InUse >= len(info.Partitions) {
		return types.KernelInfo{}, fmt.Errorf("kernel in-use index %d out of range for %d partitions", k.InUse, len(info.Partitions))
	}
	return info, nil
}
