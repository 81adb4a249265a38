package analyzer

import (
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/arloliu/go-b1500/b1500"
)

// SourceConfig is the output configuration of an SMU: the output range and
// the optional compliance applied to the opposite quantity.
//
// A SourceConfig is immutable; build it with NewSourceConfig.
type SourceConfig struct {
	outputRange        b1500.OutputRange
	compliance         b1500.Optional[float64]
	compliancePolarity b1500.Optional[b1500.CompliancePolarity]
	minComplianceRange b1500.OutputRange
}

// SourceOption sets an optional field of a SourceConfig.
type SourceOption func(*SourceConfig)

// WithCompliance sets the compliance value, in A when forcing voltage and
// in V when forcing current.
func WithCompliance(limit float64) SourceOption {
	return func(c *SourceConfig) { c.compliance = b1500.Some(limit) }
}

// WithCompliancePolarity sets how the compliance polarity is determined.
func WithCompliancePolarity(p b1500.CompliancePolarity) SourceOption {
	return func(c *SourceConfig) { c.compliancePolarity = b1500.Some(p) }
}

// WithMinComplianceRange sets the lowest range used for the compliance
// quantity. Its kind must be the opposite of the output range kind.
func WithMinComplianceRange(r b1500.OutputRange) SourceOption {
	return func(c *SourceConfig) { c.minComplianceRange = r }
}

// NewSourceConfig validates and builds a SourceConfig.
func NewSourceConfig(outputRange b1500.OutputRange, opts ...SourceOption) (SourceConfig, error) {
	if outputRange == nil {
		return SourceConfig{}, fmt.Errorf("analyzer: output range is required: %w", b1500.ErrValidation)
	}

	cfg := SourceConfig{outputRange: outputRange}
	for _, opt := range opts {
		opt(&cfg)
	}

	if pol, ok := cfg.compliancePolarity.Get(); ok && !pol.Valid() {
		return SourceConfig{}, fmt.Errorf("analyzer: unknown compliance polarity %d: %w", int(pol), b1500.ErrValidation)
	}
	if cfg.minComplianceRange != nil && cfg.minComplianceRange.Kind() == outputRange.Kind() {
		return SourceConfig{}, fmt.Errorf(
			"analyzer: min compliance range %s must be of the opposite kind of output range %s (%s): %w",
			cfg.minComplianceRange, outputRange, outputRange.Kind(), b1500.ErrValidation)
	}

	return cfg, nil
}

func (c SourceConfig) OutputRange() b1500.OutputRange { return c.outputRange }

func (c SourceConfig) Compliance() b1500.Optional[float64] { return c.compliance }

func (c SourceConfig) CompliancePolarity() b1500.Optional[b1500.CompliancePolarity] {
	return c.compliancePolarity
}

// MinComplianceRange returns the minimum compliance range, or nil when unset.
func (c SourceConfig) MinComplianceRange() b1500.OutputRange { return c.minComplianceRange }

// complianceFor builds the trailing DV/DI fields. R is the range type of the
// compliance side.
func complianceFor[R b1500.OutputRange](c SourceConfig) b1500.Compliance[R] {
	comp := b1500.Compliance[R]{
		Limit:    c.compliance,
		Polarity: c.compliancePolarity,
	}
	if r, ok := c.minComplianceRange.(R); ok {
		comp.Range = b1500.Some(r)
	}

	return comp
}

// MeasureConfig is the measurement range of spot measurements.
// A nil range leaves the choice to the instrument.
type MeasureConfig struct {
	MeasureRange b1500.MeasureRange
}

// TimingParameters is the timing of a sampling measurement.
type TimingParameters struct {
	// HoldBias is the hold time of the bias output, in seconds.
	HoldBias float64 `json:"h_bias" yaml:"h_bias"`
	// Interval is the sampling interval, in seconds.
	Interval float64 `json:"interval" yaml:"interval"`
	// Number is the number of samples.
	Number int `json:"number" yaml:"number"`
	// HoldBase is the hold time of the base output, in seconds.
	HoldBase b1500.Optional[float64] `json:"-" yaml:"-"`
}

// Validate checks the parameters against the limits of the MT command.
func (p TimingParameters) Validate() error {
	return b1500.ValidateTimingParameters(p.HoldBias, p.Interval, p.Number, p.HoldBase)
}

// Command builds the MT command for p.
func (p TimingParameters) Command() (b1500.Command, error) {
	return b1500.SetTimingParameters(p.HoldBias, p.Interval, p.Number, p.HoldBase)
}

// ConfigState holds the source, measure and timing configuration of a
// module. Each configuration starts unset and is replaced as a whole; a
// reader never observes a partially applied configuration.
type ConfigState struct {
	source  atomic.Pointer[SourceConfig]
	measure atomic.Pointer[MeasureConfig]
	timing  atomic.Pointer[TimingParameters]
}

// SetSourceConfig replaces the source configuration.
func (s *ConfigState) SetSourceConfig(c SourceConfig) {
	s.source.Store(&c)
}

// SourceConfig returns the source configuration and whether it is set.
func (s *ConfigState) SourceConfig() (SourceConfig, bool) {
	return load(&s.source)
}

// SetMeasureConfig replaces the measure configuration.
func (s *ConfigState) SetMeasureConfig(c MeasureConfig) {
	s.measure.Store(&c)
}

// MeasureConfig returns the measure configuration and whether it is set.
func (s *ConfigState) MeasureConfig() (MeasureConfig, bool) {
	return load(&s.measure)
}

// SetTimingParameters validates p and replaces the timing parameters.
// On failure the previous parameters are kept.
func (s *ConfigState) SetTimingParameters(p TimingParameters) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.timing.Store(&p)

	return nil
}

// TimingParameters returns the timing parameters and whether they are set.
func (s *ConfigState) TimingParameters() (TimingParameters, bool) {
	return load(&s.timing)
}

// SampleCount returns the number of samples of the sampling measurement.
func (s *ConfigState) SampleCount() (int, error) {
	p, err := s.requireTiming()
	if err != nil {
		return 0, err
	}

	return p.Number, nil
}

// TotalMeasurementTime returns interval x number, in seconds.
func (s *ConfigState) TotalMeasurementTime() (float64, error) {
	p, err := s.requireTiming()
	if err != nil {
		return 0, err
	}

	return p.Interval * float64(p.Number), nil
}

// TimeAxis returns the sampling instants 0, interval, 2*interval, ... of
// the configured measurement, one per sample. The sequence can be iterated
// any number of times and always reflects the parameters at call time.
func (s *ConfigState) TimeAxis() (iter.Seq[float64], error) {
	p, err := s.requireTiming()
	if err != nil {
		return nil, err
	}

	return func(yield func(float64) bool) {
		for i := 0; i < p.Number; i++ {
			if !yield(float64(i) * p.Interval) {
				return
			}
		}
	}, nil
}

// TimeAxisValues materializes TimeAxis.
func (s *ConfigState) TimeAxisValues() ([]float64, error) {
	seq, err := s.TimeAxis()
	if err != nil {
		return nil, err
	}

	p, _ := s.TimingParameters()
	values := make([]float64, 0, p.Number)
	for t := range seq {
		values = append(values, t)
	}

	return values, nil
}

func (s *ConfigState) requireTiming() (TimingParameters, error) {
	p, ok := s.TimingParameters()
	if !ok {
		return TimingParameters{}, fmt.Errorf("analyzer: timing parameters not set: %w", b1500.ErrState)
	}

	return p, nil
}

func load[T any](p *atomic.Pointer[T]) (T, bool) {
	v := p.Load()
	if v == nil {
		var zero T
		return zero, false
	}

	return *v, true
}
