// Package b1500 implements the FLEX command set of the Keysight B1500
// semiconductor parameter analyzer as pure functions: building command lines
// and decoding the responses of queries. It performs no I/O.
//
// Commands are plain ASCII lines of the form "MNEMONIC arg1,arg2,...". Query
// responses come in two shapes:
//
//   - Learned settings (*LRN?): ';' separated entries such as "RI 1,11;RI 2,18",
//     decoded by ParseLearnedSettings, ParseChannelValuePairs and ParseSweepDelays.
//
//   - Measurement data in FMT1 ASCII format: elements such as "NAI+000.005E-06",
//     where the three header characters carry the status, the channel and the
//     data type. They are decoded by ParseSpotMeasurement and ParseDataElements.
//
// Ranges are typed: the voltage and current variants of output and measure
// ranges are distinct types, so a current range cannot be passed where the
// instrument expects a voltage range.
//
// Usage Example:
//
//	cmd, err := b1500.ForceVoltage(b1500.ChannelOfSlot(1), b1500.VOutputAuto, 1.5,
//		b1500.Compliance[b1500.IOutputRange]{Limit: b1500.Some(1e-3)})
//	// cmd == "DV 1,0,1.5,0.001"
//
//	m, err := b1500.ParseSpotMeasurement("NAI+000.005E-06\r\n")
//	if err != nil {
//	    // Handle error
//	}
//	// m.Value == 5e-9
//
// All failures wrap one of ErrValidation, ErrTypeMismatch, ErrState or
// ErrParse and can be tested with errors.Is.
package b1500
