package transport

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arloliu/go-b1500/logger"
)

// Transport is a line-oriented request/response channel to an instrument.
//
// Implementations must be safe for concurrent use; a Write and an Ask never
// interleave on the wire.
type Transport interface {
	// Write sends one command line.
	Write(cmd string) error
	// Ask sends one command line and returns the next response line without
	// its terminator.
	Ask(cmd string) (string, error)
	// Close releases the underlying connection.
	Close() error
}

// deadliner is implemented by net.Conn.
type deadliner interface {
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

// LineConn implements Transport over any byte stream.
//
// Read and write timeouts are applied through deadlines when the stream is a
// net.Conn. Serial ports carry their read timeout in the port configuration.
type LineConn struct {
	mu      sync.Mutex
	rwc     io.ReadWriteCloser
	reader  *bufio.Reader
	cfg     *Config
	logger  logger.Logger
	metrics Metrics
	closed  atomic.Bool
}

var _ Transport = (*LineConn)(nil)

// NewLineConn wraps rwc into a LineConn configured by opts.
func NewLineConn(rwc io.ReadWriteCloser, opts ...Option) (*LineConn, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return newLineConn(rwc, cfg), nil
}

func newLineConn(rwc io.ReadWriteCloser, cfg *Config) *LineConn {
	return &LineConn{
		rwc:    rwc,
		reader: bufio.NewReader(rwc),
		cfg:    cfg,
		logger: cfg.Logger(),
	}
}

// Metrics returns the counters of the connection.
func (c *LineConn) Metrics() *Metrics {
	return &c.metrics
}

// Write sends cmd followed by the write terminator.
func (c *LineConn) Write(cmd string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.write(cmd)
}

// Ask sends cmd and reads one response line.
func (c *LineConn) Ask(cmd string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.write(cmd); err != nil {
		return "", err
	}

	return c.readLine(cmd)
}

// Close closes the underlying stream. Calling Close more than once is a no-op.
func (c *LineConn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	c.logger.Debug("close transport")

	return c.rwc.Close()
}

func (c *LineConn) write(cmd string) error {
	if c.closed.Load() {
		return ErrClosed
	}

	if d, ok := c.rwc.(deadliner); ok {
		_ = d.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout()))
	}

	line := cmd + c.cfg.WriteTerminator()
	n, err := io.WriteString(c.rwc, line)
	if err != nil {
		c.metrics.incErrCount()
		c.logger.Error("failed to write command", "cmd", cmd, "error", err)

		return fmt.Errorf("transport: write %q: %w", cmd, err)
	}

	c.metrics.incWriteCount(n)
	c.logger.Debug("command written", "cmd", cmd)

	return nil
}

func (c *LineConn) readLine(cmd string) (string, error) {
	if d, ok := c.rwc.(deadliner); ok {
		_ = d.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout()))
	}

	raw, err := c.reader.ReadString(c.cfg.ReadTerminator())
	if err != nil {
		c.metrics.incErrCount()
		c.logger.Error("failed to read response", "cmd", cmd, "error", err)

		return "", fmt.Errorf("transport: read response to %q: %w", cmd, err)
	}
	c.metrics.incQueryCount(len(raw))

	resp := strings.TrimRight(raw, "\r\n")
	c.logger.Debug("response read", "cmd", cmd, "response", resp)

	return resp, nil
}
