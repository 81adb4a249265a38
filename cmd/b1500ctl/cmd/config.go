package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/go-b1500/analyzer"
	"github.com/arloliu/go-b1500/logger"
)

// Config is the b1500ctl configuration file.
type Config struct {
	Connection ConnectionConfig           `yaml:"connection"`
	SMUSlot    int                        `yaml:"smu_slot"`
	Log        LogConfig                  `yaml:"log"`
	Timing     *analyzer.TimingParameters `yaml:"timing,omitempty"`
}

type ConnectionConfig struct {
	// Transport is "tcp" or "serial".
	Transport   string        `yaml:"transport"`
	Address     string        `yaml:"address"`
	Baud        int           `yaml:"baud"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Connection: ConnectionConfig{
			Transport:   "tcp",
			Baud:        9600,
			ReadTimeout: 30 * time.Second,
			DialTimeout: 5 * time.Second,
		},
		SMUSlot: 1,
		Log:     LogConfig{Level: "info"},
	}
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the values a connection cannot be opened without.
func (c *Config) Validate() error {
	switch c.Connection.Transport {
	case "tcp", "serial":
	default:
		return fmt.Errorf("unknown transport %q, expecting tcp or serial", c.Connection.Transport)
	}
	if c.SMUSlot < 1 || c.SMUSlot > 10 {
		return fmt.Errorf("smu_slot %d out of range [1, 10]", c.SMUSlot)
	}
	if _, ok := logger.ParseLevel(c.Log.Level); !ok {
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if c.Timing != nil {
		if err := c.Timing.Validate(); err != nil {
			return fmt.Errorf("timing: %w", err)
		}
	}

	return nil
}

func (c *Config) requireAddress() error {
	if c.Connection.Address == "" {
		return errors.New("no instrument address, use --address or the config file")
	}
	return nil
}
