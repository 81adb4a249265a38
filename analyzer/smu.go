package analyzer

import (
	"fmt"
	"sync/atomic"

	"github.com/arloliu/go-b1500/b1500"
	"github.com/arloliu/go-b1500/logger"
	"github.com/arloliu/go-b1500/transport"
)

// SMU drives a B1517A high resolution source/measurement unit.
//
// The source, measure and timing configuration is cached on the host side
// in a ConfigState and applied by the force and measure operations.
type SMU struct {
	slot    int
	channel b1500.ChNr
	name    string
	tr      transport.Transport
	logger  logger.Logger
	state   ConfigState
	mode    atomic.Int64
}

var _ Module = (*SMU)(nil)

// NewSMU creates the driver of the SMU installed in slot.
//
// Mainframe.AddSMU is the usual way to get one; NewSMU is useful when the
// transport is owned elsewhere.
func NewSMU(tr transport.Transport, slot int, l logger.Logger) (*SMU, error) {
	ch := b1500.ChannelOfSlot(slot)
	if !ch.Valid() {
		return nil, fmt.Errorf("analyzer: slot %d out of range [1, 10]: %w", slot, b1500.ErrValidation)
	}
	if l == nil {
		l = logger.GetLogger()
	}

	s := &SMU{
		slot:    slot,
		channel: ch,
		name:    fmt.Sprintf("smu%d", slot),
		tr:      tr,
		logger:  l.With("module", "B1517A", "slot", slot),
	}
	s.mode.Store(int64(b1500.ModeSpot))

	return s, nil
}

func (s *SMU) Slot() int { return s.slot }

func (s *SMU) Channel() b1500.ChNr { return s.channel }

func (s *SMU) Name() string { return s.name }

func (s *SMU) Model() string { return "B1517A" }

// State returns the cached configuration of the module.
func (s *SMU) State() *ConfigState { return &s.state }

// ConfigureSource validates and caches the output configuration used by
// ForceVoltage and ForceCurrent. Nothing is sent to the instrument.
func (s *SMU) ConfigureSource(outputRange b1500.OutputRange, opts ...SourceOption) error {
	cfg, err := NewSourceConfig(outputRange, opts...)
	if err != nil {
		return err
	}
	s.state.SetSourceConfig(cfg)

	return nil
}

// ConfigureMeasure caches the range used by MeasureVoltage and
// MeasureCurrent. A nil range leaves the choice to the instrument.
func (s *SMU) ConfigureMeasure(measureRange b1500.MeasureRange) {
	s.state.SetMeasureConfig(MeasureConfig{MeasureRange: measureRange})
}

// ConfigureTiming sets the timing of the sampling measurement (MT).
// The parameters are cached only once the command was written.
func (s *SMU) ConfigureTiming(p TimingParameters) error {
	cmd, err := p.Command()
	if err != nil {
		return err
	}
	if err := s.write(cmd); err != nil {
		return err
	}

	return s.state.SetTimingParameters(p)
}

// ForceVoltage applies voltage from the channel (DV) using the cached
// source configuration. Without a source configuration the output range is
// auto ranging and no compliance is sent.
//
// b1500.ErrTypeMismatch is returned when the configured output range is a
// current range.
func (s *SMU) ForceVoltage(voltage float64) error {
	cfg, _ := s.state.SourceConfig()

	vRange, ok := cfg.outputRange.(b1500.VOutputRange)
	if !ok && cfg.outputRange == nil {
		vRange, ok = b1500.VOutputAuto, true
	}
	if !ok {
		return fmt.Errorf("analyzer: asked to force voltage, but the source output range %s is a %s range: %w",
			cfg.outputRange, cfg.outputRange.Kind(), b1500.ErrTypeMismatch)
	}

	comp := complianceFor[b1500.IOutputRange](cfg)
	s.warnIncomplete(comp.Complete())

	cmd, err := b1500.ForceVoltage(s.channel, vRange, voltage, comp)
	if err != nil {
		return err
	}

	return s.write(cmd)
}

// ForceCurrent applies current from the channel (DI), the counterpart of
// ForceVoltage.
func (s *SMU) ForceCurrent(current float64) error {
	cfg, _ := s.state.SourceConfig()

	iRange, ok := cfg.outputRange.(b1500.IOutputRange)
	if !ok && cfg.outputRange == nil {
		iRange, ok = b1500.IOutputAuto, true
	}
	if !ok {
		return fmt.Errorf("analyzer: asked to force current, but the source output range %s is a %s range: %w",
			cfg.outputRange, cfg.outputRange.Kind(), b1500.ErrTypeMismatch)
	}

	comp := complianceFor[b1500.VOutputRange](cfg)
	s.warnIncomplete(comp.Complete())

	cmd, err := b1500.ForceCurrent(s.channel, iRange, current, comp)
	if err != nil {
		return err
	}

	return s.write(cmd)
}

func (s *SMU) warnIncomplete(complete bool) {
	if !complete {
		s.logger.Warn("compliance polarity or range dropped, they need the preceding compliance fields")
	}
}

// SpotCurrent runs a high speed spot current measurement (TI).
func (s *SMU) SpotCurrent() (b1500.SpotMeasurement, error) {
	var iRange b1500.Optional[b1500.IMeasRange]
	if cfg, ok := s.state.MeasureConfig(); ok && cfg.MeasureRange != nil {
		r, ok := cfg.MeasureRange.(b1500.IMeasRange)
		if !ok {
			return b1500.SpotMeasurement{}, fmt.Errorf("analyzer: asked to measure current, but the measure range %s is a %s range: %w",
				cfg.MeasureRange, cfg.MeasureRange.Kind(), b1500.ErrTypeMismatch)
		}
		iRange = b1500.Some(r)
	}

	return s.spot(b1500.SpotCurrent(s.channel, iRange))
}

// SpotVoltage runs a high speed spot voltage measurement (TV).
func (s *SMU) SpotVoltage() (b1500.SpotMeasurement, error) {
	var vRange b1500.Optional[b1500.VMeasRange]
	if cfg, ok := s.state.MeasureConfig(); ok && cfg.MeasureRange != nil {
		r, ok := cfg.MeasureRange.(b1500.VMeasRange)
		if !ok {
			return b1500.SpotMeasurement{}, fmt.Errorf("analyzer: asked to measure voltage, but the measure range %s is a %s range: %w",
				cfg.MeasureRange, cfg.MeasureRange.Kind(), b1500.ErrTypeMismatch)
		}
		vRange = b1500.Some(r)
	}

	return s.spot(b1500.SpotVoltage(s.channel, vRange))
}

// MeasureCurrent returns the value of SpotCurrent, in A.
func (s *SMU) MeasureCurrent() (float64, error) {
	m, err := s.SpotCurrent()
	return m.Value, err
}

// MeasureVoltage returns the value of SpotVoltage, in V.
func (s *SMU) MeasureVoltage() (float64, error) {
	m, err := s.SpotVoltage()
	return m.Value, err
}

func (s *SMU) spot(cmd b1500.Command) (b1500.SpotMeasurement, error) {
	resp, err := s.ask(cmd)
	if err != nil {
		return b1500.SpotMeasurement{}, err
	}

	m, err := b1500.ParseSpotMeasurement(resp)
	if err != nil {
		return b1500.SpotMeasurement{}, err
	}
	if !m.Status.IsNormal() {
		s.logger.Warn("abnormal measurement status", "cmd", cmd, "status", m.Status.String())
	}

	return m, nil
}

// SetCurrentMeasurementRange sets the current measurement range or ranging
// type (RI).
func (s *SMU) SetCurrentMeasurementRange(r b1500.IMeasRange) error {
	return s.write(b1500.SetCurrentMeasurementRange(s.channel, r))
}

// CurrentMeasurementRanges reads back the current measurement ranges of all
// channels (*LRN? 32).
func (s *SMU) CurrentMeasurementRanges() ([]b1500.ChannelValue[b1500.IMeasRange], error) {
	resp, err := s.ask(b1500.LearnQuery(b1500.LRNMeasurementRangingStatus))
	if err != nil {
		return nil, err
	}

	return b1500.ParseCurrentMeasurementRanges(resp)
}

// SetMeasurementMode sets the measurement mode (MM) for this channel.
// The instrument cannot report the mode, so the last value set is cached.
func (s *SMU) SetMeasurementMode(mode b1500.MeasurementMode) error {
	cmd, err := b1500.SetMeasurementMode(mode, s.channel)
	if err != nil {
		return err
	}
	if err := s.write(cmd); err != nil {
		return err
	}
	s.mode.Store(int64(mode))

	return nil
}

// MeasurementMode returns the cached measurement mode. It starts as
// b1500.ModeSpot.
func (s *SMU) MeasurementMode() b1500.MeasurementMode {
	return b1500.MeasurementMode(s.mode.Load())
}

// SetMeasurementOperationMode selects what the channel measures (CMM).
func (s *SMU) SetMeasurementOperationMode(mode b1500.OperationMode) error {
	cmd, err := b1500.SetMeasurementOperationMode(s.channel, mode)
	if err != nil {
		return err
	}

	return s.write(cmd)
}

// MeasurementOperationModes reads back the operation mode of all channels
// (*LRN? 46).
func (s *SMU) MeasurementOperationModes() ([]b1500.ChannelValue[b1500.OperationMode], error) {
	resp, err := s.ask(b1500.LearnQuery(b1500.LRNSMUMeasurementOperation))
	if err != nil {
		return nil, err
	}

	return b1500.ParseMeasurementOperationModes(resp)
}

// UseHighSpeedADC selects the high-speed ADC for this channel.
func (s *SMU) UseHighSpeedADC() error {
	return s.setADCType(b1500.ADCHighSpeed)
}

// UseHighResolutionADC selects the high-resolution ADC for this channel.
func (s *SMU) UseHighResolutionADC() error {
	return s.setADCType(b1500.ADCHighResolution)
}

func (s *SMU) setADCType(adc b1500.ADCType) error {
	cmd, err := b1500.SetADCType(s.channel, adc)
	if err != nil {
		return err
	}

	return s.write(cmd)
}

// SetAverageSamplesForHighSpeedADC sets the averaging of the high-speed ADC
// (AV). It has no effect on the high-resolution ADC nor on pulsed
// measurements.
func (s *SMU) SetAverageSamplesForHighSpeedADC(number int, mode b1500.AverageMode) error {
	cmd, err := b1500.SetAverageSamples(number, mode)
	if err != nil {
		return err
	}

	return s.write(cmd)
}

// SetFilter connects or disconnects the output filter (FL) of the given
// channels, or of all channels when none is given.
func (s *SMU) SetFilter(enable bool, channels ...b1500.ChNr) error {
	cmd, err := b1500.SetFilter(enable, channels...)
	if err != nil {
		return err
	}

	return s.write(cmd)
}

// SetSweepDelays sets the staircase sweep timing (WT).
func (s *SMU) SetSweepDelays(d b1500.SweepDelays) error {
	cmd, err := b1500.SetSweepDelays(d)
	if err != nil {
		return err
	}

	return s.write(cmd)
}

// SweepDelays reads back the staircase sweep timing (*LRN? 33).
func (s *SMU) SweepDelays() (b1500.SweepDelays, error) {
	resp, err := s.ask(b1500.LearnQuery(b1500.LRNStaircaseSweepMeasurementSettings))
	if err != nil {
		return b1500.SweepDelays{}, err
	}

	return b1500.ParseSweepDelays(resp)
}

// TimeAxis returns the sampling instants of the configured sampling
// measurement, in seconds.
func (s *SMU) TimeAxis() ([]float64, error) {
	return s.state.TimeAxisValues()
}

func (s *SMU) write(cmd b1500.Command) error {
	s.logger.Debug("write", "cmd", cmd.String())
	return s.tr.Write(cmd.String())
}

func (s *SMU) ask(cmd b1500.Command) (string, error) {
	s.logger.Debug("ask", "cmd", cmd.String())
	return s.tr.Ask(cmd.String())
}
