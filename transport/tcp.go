package transport

import (
	"context"
	"fmt"
	"net"
	"strconv"
)

// DefaultPort is the raw socket port of the B1500 LAN interface.
const DefaultPort = 5025

// DialTCP connects to the raw socket interface of an instrument.
// address is "host:port"; a bare host gets DefaultPort.
func DialTCP(ctx context.Context, address string, opts ...Option) (*LineConn, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	if _, _, err := net.SplitHostPort(address); err != nil {
		address = net.JoinHostPort(address, strconv.Itoa(DefaultPort))
	}

	dialer := net.Dialer{Timeout: cfg.DialTimeout()}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", address, err)
	}

	cfg.logger = cfg.logger.With("remote", address)
	cfg.logger.Info("connected", "transport", "tcp")

	return newLineConn(conn, cfg), nil
}
