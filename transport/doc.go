// Package transport provides the line-oriented byte channel between a driver
// and an instrument.
//
// A Transport writes one command line per call and, for queries, reads back
// exactly one response line. LineConn implements it over a TCP raw socket
// (DialTCP) or an RS-232 port (OpenSerial); NewLineConn wraps any other
// io.ReadWriteCloser, such as a GPIB bridge.
//
// Usage Example:
//
//	tr, err := transport.DialTCP(ctx, "192.168.1.20:5025",
//		transport.WithReadTimeout(2*time.Minute),
//	)
//	if err != nil {
//	    // Handle error
//	}
//	defer tr.Close()
//
//	idn, err := tr.Ask("*IDN?")
//
// Calls on one LineConn are serialized, so several drivers may share it.
package transport
