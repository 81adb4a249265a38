package transport

import (
	"sync/atomic"
)

// Metrics contains atomic counters of a connection.
// They can be used as the value of a prometheus CounterFunc.
type Metrics struct {
	// WriteCount indicates the number of command lines written.
	WriteCount atomic.Uint64
	// QueryCount indicates the number of response lines read.
	QueryCount atomic.Uint64
	// ErrCount indicates the number of failed writes and reads.
	ErrCount atomic.Uint64

	// BytesSent indicates the number of bytes written, terminators included.
	BytesSent atomic.Uint64
	// BytesRecv indicates the number of bytes read, terminators included.
	BytesRecv atomic.Uint64
}

func (m *Metrics) incWriteCount(n int) {
	m.WriteCount.Add(1)
	m.BytesSent.Add(uint64(n))
}

func (m *Metrics) incQueryCount(n int) {
	m.QueryCount.Add(1)
	m.BytesRecv.Add(uint64(n))
}

func (m *Metrics) incErrCount() {
	m.ErrCount.Add(1)
}
