package b1500

import (
	"testing"
)

// FuzzParseDataElements fuzzes the FMT1 data decoder.
//
// The invariant is: ParseDataElements must never panic, and every decoded
// element carries a known header.
func FuzzParseDataElements(f *testing.F) {
	f.Add("NAI+000.005E-06")
	f.Add("NAI+1.000E-03,NAI+2.000E-03;\r\n")
	f.Add("WZT+0.000000E+00,EbI-4.2E-12")
	f.Add("VAI+199.999E+99")
	f.Add("NAI")
	f.Add(",;")
	f.Add("")

	f.Fuzz(func(t *testing.T, line string) {
		elems, err := ParseDataElements(line)
		if err != nil {
			return
		}
		for _, e := range elems {
			if !e.Status.valid() || !e.Channel.valid() || !e.Type.valid() {
				t.Fatalf("invalid header accepted in %q: %+v", line, e)
			}
		}
	})
}

// FuzzParseLearnedSettings fuzzes the learned-settings lexer and parser.
//
// The invariant is: parsing must never panic, and every entry has a tag.
func FuzzParseLearnedSettings(f *testing.F) {
	f.Add("RI 1,11;RI 2,18")
	f.Add("WT1,2,3,4,5;")
	f.Add("CMM 1,4;CMM 2,0\r\n")
	f.Add("CL")
	f.Add("RI 1,,2")
	f.Add("RI 1e,.")
	f.Add(";;;")

	f.Fuzz(func(t *testing.T, line string) {
		entries, err := ParseLearnedSettings(line)
		if err != nil {
			return
		}
		for _, e := range entries {
			if e.Tag == "" {
				t.Fatalf("entry without tag in %q", line)
			}
		}

		_, _ = ParseCurrentMeasurementRanges(line)
		_, _ = ParseSweepDelays(line)
	})
}

// FuzzParseError fuzzes the ERRX? reply decoder. It must never panic.
func FuzzParseError(f *testing.F) {
	f.Add(`0,"No Error."`)
	f.Add(`100,"Undefined GPIB command."` + "\r\n")
	f.Add(`0,"`)
	f.Add(",")

	f.Fuzz(func(_ *testing.T, line string) {
		_, _, _ = ParseError(line)
	})
}
