package analyzer

import (
	"errors"

	"github.com/arloliu/go-b1500/logger"
)

// Option represents a functional option for configuring a Mainframe.
type Option interface {
	apply(*Mainframe) error
}

type optFunc struct {
	name      string
	applyFunc func(*Mainframe) error
}

func (o *optFunc) apply(m *Mainframe) error { return o.applyFunc(m) }

func newOptFunc(name string, f func(*Mainframe) error) *optFunc {
	return &optFunc{name: name, applyFunc: f}
}

// WithLogger sets the logger of the mainframe and of the modules added to it.
//
// The default value is logger.GetLogger().
func WithLogger(l logger.Logger) Option {
	return newOptFunc("WithLogger", func(m *Mainframe) error {
		if l == nil {
			return errors.New("logger is nil")
		}
		m.logger = l

		return nil
	})
}

// WithMaxErrorQueries bounds the number of ERRX? queries of one Errors call.
// An error is returned if the value is outside [1, 1000].
//
// The default value is 100.
func WithMaxErrorQueries(n int) Option {
	return newOptFunc("WithMaxErrorQueries", func(m *Mainframe) error {
		if n < 1 || n > 1000 {
			return errors.New("max error queries out of range [1, 1000]")
		}
		m.maxErrors = n

		return nil
	})
}
