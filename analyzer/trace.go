package analyzer

import (
	"fmt"

	"github.com/arloliu/go-b1500/b1500"
	"github.com/arloliu/go-b1500/shape"
)

// Trace is the result of a sampling measurement.
type Trace struct {
	// Time holds the sampling instants, in seconds.
	Time []float64
	// Values holds the measured values, one per sampling instant.
	Values []float64
	// Elements holds the decoded data elements behind Values, with their
	// status.
	Elements []b1500.SpotMeasurement
}

// SamplingTrace runs the sampling measurement configured by ConfigureTiming
// and returns one value per sample.
//
// The channel is switched to b1500.ModeSampling first when needed.
// b1500.ErrState is returned when no timing parameters are set, and
// b1500.ErrParse when the instrument returns a different number of samples.
func (s *SMU) SamplingTrace() (Trace, error) {
	n, err := s.state.SampleCount()
	if err != nil {
		return Trace{}, err
	}
	axis, err := s.state.TimeAxisValues()
	if err != nil {
		return Trace{}, err
	}

	if s.MeasurementMode() != b1500.ModeSampling {
		if err := s.SetMeasurementMode(b1500.ModeSampling); err != nil {
			return Trace{}, err
		}
	}

	resp, err := s.ask(b1500.Execute())
	if err != nil {
		return Trace{}, err
	}

	elems, err := b1500.ParseDataElements(resp)
	if err != nil {
		return Trace{}, err
	}

	// time stamps are only present when enabled by TSC
	samples := make([]b1500.SpotMeasurement, 0, len(elems))
	for _, e := range elems {
		if e.Type != b1500.DataTime {
			samples = append(samples, e)
		}
	}
	if len(samples) != n {
		return Trace{}, fmt.Errorf("analyzer: got %d samples, expecting %d: %w", len(samples), n, b1500.ErrParse)
	}

	tr := Trace{
		Time:     axis,
		Values:   make([]float64, n),
		Elements: samples,
	}
	abnormal := 0
	for i, e := range samples {
		tr.Values[i] = e.Value
		if !e.Status.IsNormal() {
			abnormal++
		}
	}
	if abnormal > 0 {
		s.logger.Warn("sampling trace has abnormal samples", "count", abnormal, "samples", n)
	}

	return tr, nil
}

// TraceParameter describes the sampling trace of an SMU for shape
// detection. Its shape follows the configured number of samples.
type TraceParameter struct {
	smu *SMU
}

var _ shape.Shaped = TraceParameter{}

// TraceParameter returns the shape descriptor of the sampling trace.
func (s *SMU) TraceParameter() TraceParameter {
	return TraceParameter{smu: s}
}

func (p TraceParameter) FullName() string {
	return p.smu.name + "_sampling_measurement_trace"
}

func (p TraceParameter) Shape() ([]int, error) {
	n, err := p.smu.state.SampleCount()
	if err != nil {
		return nil, err
	}

	return []int{n}, nil
}
