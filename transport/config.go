package transport

import (
	"errors"
	"time"

	"github.com/arloliu/go-b1500/logger"
)

// Config holds the settings of a line-oriented instrument connection.
type Config struct {
	// readTimeout bounds the wait for one response line. It should be between
	// 100 milliseconds and 10 minutes, sampling measurements can take long.
	// Defaults to 30 seconds.
	readTimeout time.Duration

	// writeTimeout bounds the write of one command line. It should be between
	// 100 milliseconds and 60 seconds.
	// Defaults to 5 seconds.
	writeTimeout time.Duration

	// dialTimeout bounds the TCP connect. It should be between 1 and 60 seconds.
	// Defaults to 5 seconds.
	//
	// This field is only relevant for TCP.
	dialTimeout time.Duration

	// writeTerm is appended to each command. Defaults to "\r\n".
	writeTerm string
	// readTerm ends each response line. Defaults to '\n'.
	readTerm byte

	// baudRate of the serial line. Defaults to 9600.
	//
	// This field is only relevant for serial ports.
	baudRate int

	logger logger.Logger
}

// NewConfig creates a Config with default values and applies opts.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		readTimeout:  30 * time.Second,
		writeTimeout: 5 * time.Second,
		dialTimeout:  5 * time.Second,
		writeTerm:    "\r\n",
		readTerm:     '\n',
		baudRate:     9600,
		logger:       logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

// ReadTimeout returns the response line timeout.
func (cfg *Config) ReadTimeout() time.Duration { return cfg.readTimeout }

func (cfg *Config) WriteTimeout() time.Duration { return cfg.writeTimeout }

func (cfg *Config) DialTimeout() time.Duration { return cfg.dialTimeout }

func (cfg *Config) WriteTerminator() string { return cfg.writeTerm }

func (cfg *Config) ReadTerminator() byte { return cfg.readTerm }

func (cfg *Config) BaudRate() int { return cfg.baudRate }

func (cfg *Config) Logger() logger.Logger { return cfg.logger }

// Option represents a functional option for configuring a Config.
type Option interface {
	apply(*Config) error
}

type optFunc struct {
	name      string
	applyFunc func(*Config) error
}

func (o *optFunc) apply(cfg *Config) error {
	if cfg == nil {
		return ErrConfigNil
	}
	return o.applyFunc(cfg)
}

func newOptFunc(name string, f func(*Config) error) *optFunc {
	return &optFunc{name: name, applyFunc: f}
}

// WithReadTimeout sets the time to wait for one response line.
// An error is returned if the timeout is outside [100ms, 10m].
//
// The default value is 30 seconds.
func WithReadTimeout(val time.Duration) Option {
	return newOptFunc("WithReadTimeout", func(cfg *Config) error {
		if val < 100*time.Millisecond || val > 10*time.Minute {
			return errors.New("read timeout out of range [100ms, 10m]")
		}
		cfg.readTimeout = val

		return nil
	})
}

// WithWriteTimeout sets the time allowed to write one command line.
// An error is returned if the timeout is outside [100ms, 60s].
//
// The default value is 5 seconds.
func WithWriteTimeout(val time.Duration) Option {
	return newOptFunc("WithWriteTimeout", func(cfg *Config) error {
		if val < 100*time.Millisecond || val > 60*time.Second {
			return errors.New("write timeout out of range [100ms, 60s]")
		}
		cfg.writeTimeout = val

		return nil
	})
}

// WithDialTimeout sets the TCP connect timeout.
// An error is returned if the timeout is outside [1s, 60s].
//
// The default value is 5 seconds.
func WithDialTimeout(val time.Duration) Option {
	return newOptFunc("WithDialTimeout", func(cfg *Config) error {
		if val < 1*time.Second || val > 60*time.Second {
			return errors.New("dial timeout out of range [1s, 60s]")
		}
		cfg.dialTimeout = val

		return nil
	})
}

// WithTerminators sets the suffix appended to every command and the byte
// that ends every response line.
//
// The defaults are "\r\n" and '\n'.
func WithTerminators(write string, read byte) Option {
	return newOptFunc("WithTerminators", func(cfg *Config) error {
		if write == "" {
			return errors.New("write terminator is empty")
		}
		cfg.writeTerm = write
		cfg.readTerm = read

		return nil
	})
}

// WithBaudRate sets the serial line speed.
// An error is returned if the rate is not positive.
//
// The default value is 9600.
func WithBaudRate(val int) Option {
	return newOptFunc("WithBaudRate", func(cfg *Config) error {
		if val <= 0 {
			return errors.New("baud rate must be positive")
		}
		cfg.baudRate = val

		return nil
	})
}

// WithLogger sets the logger used for command tracing.
//
// The default value is logger.GetLogger().
func WithLogger(l logger.Logger) Option {
	return newOptFunc("WithLogger", func(cfg *Config) error {
		if l == nil {
			return errors.New("logger is nil")
		}
		cfg.logger = l

		return nil
	})
}
