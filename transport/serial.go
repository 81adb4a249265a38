package transport

import (
	"fmt"

	"github.com/tarm/serial"
)

// OpenSerial opens an RS-232 port such as "/dev/ttyUSB0" or "COM3" with
// 8 data bits, no parity and one stop bit.
func OpenSerial(name string, opts ...Option) (*LineConn, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        cfg.BaudRate(),
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
		ReadTimeout: cfg.ReadTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("transport: open serial port %s: %w", name, err)
	}

	cfg.logger = cfg.logger.With("port", name)
	cfg.logger.Info("connected", "transport", "serial", "baud", cfg.BaudRate())

	return newLineConn(port, cfg), nil
}
