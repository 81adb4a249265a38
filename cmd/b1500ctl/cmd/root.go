package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/go-b1500/analyzer"
	"github.com/arloliu/go-b1500/logger"
	"github.com/arloliu/go-b1500/transport"
)

var (
	// Global flags
	configPath string
	address    string
	serialPort bool
	smuSlot    int
	logLevel   string

	cfg *Config
)

var rootCmd = &cobra.Command{
	Use:   "b1500ctl",
	Short: "Keysight B1500 semiconductor analyzer control",
	Long: `Control a Keysight B1500 mainframe and its B1517A SMU modules over
LAN or RS-232.

Examples:
  b1500ctl idn --address 192.168.1.20                 # Identify the instrument
  b1500ctl force-voltage 1.5 --compliance 1e-3        # Force 1.5 V on the SMU
  b1500ctl sample --interval 0.01 --number 100 --json # Run a sampling measurement`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&address, "address", "a", "", "instrument address, host[:port] or serial device")
	rootCmd.PersistentFlags().BoolVar(&serialPort, "serial", false, "address is a serial device")
	rootCmd.PersistentFlags().IntVarP(&smuSlot, "slot", "s", 0, "slot of the SMU (1-10)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
}

// loadConfig merges the configuration file with the flags set on the
// command line.
func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("address") {
		c.Connection.Address = address
	}
	if flags.Changed("serial") && serialPort {
		c.Connection.Transport = "serial"
	}
	if flags.Changed("slot") {
		c.SMUSlot = smuSlot
	}
	if flags.Changed("log-level") {
		c.Log.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return err
	}

	level, _ := logger.ParseLevel(c.Log.Level)
	logger.SetDefault(logger.NewSlogWithWriter(os.Stderr, level, false))
	cfg = c

	return nil
}

// openMainframe connects to the configured instrument and registers the
// configured SMU. The caller closes the mainframe.
func openMainframe(ctx context.Context) (*analyzer.Mainframe, *analyzer.SMU, error) {
	if err := cfg.requireAddress(); err != nil {
		return nil, nil, err
	}

	opts := []transport.Option{
		transport.WithReadTimeout(cfg.Connection.ReadTimeout),
		transport.WithLogger(logger.GetLogger()),
	}

	var (
		tr  transport.Transport
		err error
	)
	switch cfg.Connection.Transport {
	case "serial":
		tr, err = transport.OpenSerial(cfg.Connection.Address,
			append(opts, transport.WithBaudRate(cfg.Connection.Baud))...)
	default:
		tr, err = transport.DialTCP(ctx, cfg.Connection.Address,
			append(opts, transport.WithDialTimeout(cfg.Connection.DialTimeout))...)
	}
	if err != nil {
		return nil, nil, err
	}

	m, err := analyzer.NewMainframe(tr)
	if err != nil {
		_ = tr.Close()
		return nil, nil, err
	}
	if err := m.Initialize(); err != nil {
		_ = m.Close()
		return nil, nil, fmt.Errorf("initialize: %w", err)
	}

	smu, err := m.AddSMU(cfg.SMUSlot)
	if err != nil {
		_ = m.Close()
		return nil, nil, err
	}

	return m, smu, nil
}

// withMainframe runs fn against a connected mainframe and reports the
// instrument error queue afterwards.
func withMainframe(cmd *cobra.Command, fn func(m *analyzer.Mainframe, smu *analyzer.SMU) error) error {
	m, smu, err := openMainframe(cmd.Context())
	if err != nil {
		return err
	}
	defer m.Close()

	if err := fn(m, smu); err != nil {
		return err
	}

	return m.Errors()
}
