// Package analyzer drives a Keysight B1500 semiconductor device analyzer
// and its B1517A high resolution SMU modules.
//
// A Mainframe owns the transport and addresses the whole instrument; an SMU
// is obtained from it per slot and shares its transport:
//
//	tr, err := transport.DialTCP(ctx, "192.168.1.20")
//	if err != nil {
//		return err
//	}
//	m, err := analyzer.NewMainframe(tr)
//	if err != nil {
//		return err
//	}
//	defer m.Close()
//
//	smu, _ := m.AddSMU(1)
//	_ = smu.ConfigureSource(b1500.VOutputMin2V, analyzer.WithCompliance(1e-3))
//	_ = m.EnableChannels(smu.Channel())
//	_ = smu.ForceVoltage(1.5)
//	i, err := smu.MeasureCurrent()
//
// The source, measure and timing configuration of an SMU is kept on the host
// in its ConfigState. Operations that depend on a configuration check its
// kind first and return b1500.ErrTypeMismatch without sending anything when
// it does not fit, e.g. ForceCurrent while a voltage output range is set.
//
// A sampling measurement is configured with ConfigureTiming and run with
// SamplingTrace. Its TraceParameter reports the trace shape to the shape
// package, so the shape always follows the configured number of samples.
package analyzer
