package b1500

import (
	"fmt"
	"strconv"
	"strings"
)

// Timing limits of the MT command and the WT command, in seconds.
const (
	MinSamplingInterval = 0.0001
	MaxSamplingInterval = 65.535

	MaxHoldBias         = 655.35
	MinNegativeHoldBias = -0.09
	MaxNegativeHoldBias = -0.0001
	MaxHoldBase         = 655.35
	// fastSamplingInterval is the interval below which a negative hold bias
	// is accepted by MT.
	fastSamplingInterval = 0.002

	MaxSamples = 100001

	MaxSweepHold         = 655.35
	MaxSweepDelay        = 65.535
	MaxSweepStepDelay    = 1.0
	MaxSweepMeasureDelay = 65.535

	MinAverageSamples    = 1
	MaxAverageSamples    = 1023
	MinAveragePLCSamples = -100
	MaxAveragePLCSamples = -1
)

// Command is one FLEX command line without its terminator.
type Command string

func (c Command) String() string { return string(c) }

// Optional is an optional trailing command field. The zero value is absent.
type Optional[T any] struct {
	val T
	ok  bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{val: v, ok: true}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.val, o.ok
}

// IsSet reports whether the value is present.
func (o Optional[T]) IsSet() bool { return o.ok }

// Compliance holds the optional trailing fields of the DV and DI commands.
// R is the range type of the compliance side, which is always the opposite
// kind of the forced quantity.
//
// The fields are positional: Polarity is only sent when Limit is set, and
// Range only when Polarity is set as well.
type Compliance[R OutputRange] struct {
	Limit    Optional[float64]
	Polarity Optional[CompliancePolarity]
	Range    Optional[R]
}

// Validate checks that the compliance polarity is a known mode.
func (c Compliance[R]) Validate() error {
	if pol, ok := c.Polarity.Get(); ok && !pol.Valid() {
		return fmt.Errorf("b1500: unknown compliance polarity %d: %w", int(pol), ErrValidation)
	}
	return nil
}

// Complete reports whether every field set in c is also sent.
func (c Compliance[R]) Complete() bool {
	if c.Range.IsSet() && !c.Polarity.IsSet() {
		return false
	}
	if c.Polarity.IsSet() && !c.Limit.IsSet() {
		return false
	}
	return true
}

func (c Compliance[R]) appendTo(b *cmdBuilder) {
	limit, ok := c.Limit.Get()
	if !ok {
		return
	}
	b.addFloat(limit)

	pol, ok := c.Polarity.Get()
	if !ok {
		return
	}
	b.addInt(int(pol))

	if r, ok := c.Range.Get(); ok {
		b.addInt(r.Code())
	}
}

// SweepDelays are the timing values of the WT command, in seconds.
type SweepDelays struct {
	Hold         float64 `json:"hold" yaml:"hold"`
	Delay        float64 `json:"delay" yaml:"delay"`
	StepDelay    float64 `json:"step_delay" yaml:"step_delay"`
	TriggerDelay float64 `json:"trigger_delay" yaml:"trigger_delay"`
	MeasureDelay float64 `json:"measure_delay" yaml:"measure_delay"`
}

// Validate checks each delay against the range accepted by the instrument.
func (d SweepDelays) Validate() error {
	if err := checkRange("hold", d.Hold, 0, MaxSweepHold); err != nil {
		return err
	}
	if err := checkRange("delay", d.Delay, 0, MaxSweepDelay); err != nil {
		return err
	}
	if err := checkRange("step delay", d.StepDelay, 0, MaxSweepStepDelay); err != nil {
		return err
	}
	if err := checkRange("trigger delay", d.TriggerDelay, 0, d.Delay); err != nil {
		return err
	}
	return checkRange("measure delay", d.MeasureDelay, 0, MaxSweepMeasureDelay)
}

// ForceVoltage builds DV, which forces voltage from channel ch.
func ForceVoltage(ch ChNr, vRange VOutputRange, voltage float64, comp Compliance[IOutputRange]) (Command, error) {
	if err := comp.Validate(); err != nil {
		return "", err
	}

	b := newCommand("DV").addInt(int(ch)).addInt(vRange.Code()).addFloat(voltage)
	comp.appendTo(b)

	return b.command(), nil
}

// ForceCurrent builds DI, which forces current from channel ch.
func ForceCurrent(ch ChNr, iRange IOutputRange, current float64, comp Compliance[VOutputRange]) (Command, error) {
	if err := comp.Validate(); err != nil {
		return "", err
	}

	b := newCommand("DI").addInt(int(ch)).addInt(iRange.Code()).addFloat(current)
	comp.appendTo(b)

	return b.command(), nil
}

// SpotCurrent builds TI, a high speed spot current measurement.
func SpotCurrent(ch ChNr, iRange Optional[IMeasRange]) Command {
	b := newCommand("TI").addInt(int(ch))
	if r, ok := iRange.Get(); ok {
		b.addInt(r.Code())
	}

	return b.command()
}

// SpotVoltage builds TV, a high speed spot voltage measurement.
func SpotVoltage(ch ChNr, vRange Optional[VMeasRange]) Command {
	b := newCommand("TV").addInt(int(ch))
	if r, ok := vRange.Get(); ok {
		b.addInt(r.Code())
	}

	return b.command()
}

// SetCurrentMeasurementRange builds RI.
func SetCurrentMeasurementRange(ch ChNr, iRange IMeasRange) Command {
	return newCommand("RI").addInt(int(ch)).addInt(iRange.Code()).command()
}

// SetVoltageMeasurementRange builds RV.
func SetVoltageMeasurementRange(ch ChNr, vRange VMeasRange) Command {
	return newCommand("RV").addInt(int(ch)).addInt(vRange.Code()).command()
}

// LearnQuery builds *LRN?, which asks for the active settings of category t.
func LearnQuery(t LRNType) Command {
	return newCommand("*LRN?").addInt(int(t)).command()
}

// SetMeasurementMode builds MM for the given channels.
func SetMeasurementMode(mode MeasurementMode, channels ...ChNr) (Command, error) {
	if !mode.Valid() {
		return "", fmt.Errorf("b1500: unknown measurement mode %d: %w", int(mode), ErrValidation)
	}
	if err := checkChannels(channels); err != nil {
		return "", err
	}

	b := newCommand("MM").addInt(int(mode))
	for _, ch := range channels {
		b.addInt(int(ch))
	}

	return b.command(), nil
}

// SetMeasurementOperationMode builds CMM.
func SetMeasurementOperationMode(ch ChNr, mode OperationMode) (Command, error) {
	if !mode.Valid() {
		return "", fmt.Errorf("b1500: unknown measurement operation mode %d: %w", int(mode), ErrValidation)
	}

	return newCommand("CMM").addInt(int(ch)).addInt(int(mode)).command(), nil
}

// SetTimingParameters builds MT, the timing of the sampling measurement.
//
// hBias and hBase are hold times in seconds, interval the sampling interval
// in seconds and number the number of samples.
func SetTimingParameters(hBias, interval float64, number int, hBase Optional[float64]) (Command, error) {
	if err := ValidateTimingParameters(hBias, interval, number, hBase); err != nil {
		return "", err
	}

	b := newCommand("MT").addFloat(hBias).addFloat(interval).addInt(number)
	if v, ok := hBase.Get(); ok {
		b.addFloat(v)
	}

	return b.command(), nil
}

// ValidateTimingParameters checks the MT arguments without building the command.
func ValidateTimingParameters(hBias, interval float64, number int, hBase Optional[float64]) error {
	if err := checkRange("interval", interval, MinSamplingInterval, MaxSamplingInterval); err != nil {
		return err
	}

	if hBias < 0 && interval < fastSamplingInterval {
		if err := checkRange("negative h_bias", hBias, MinNegativeHoldBias, MaxNegativeHoldBias); err != nil {
			return err
		}
	} else if err := checkRange("h_bias", hBias, 0, MaxHoldBias); err != nil {
		return err
	}

	if number < 1 || number > MaxSamples {
		return fmt.Errorf("b1500: number of samples %d out of range [1, %d]: %w", number, MaxSamples, ErrValidation)
	}

	if v, ok := hBase.Get(); ok {
		return checkRange("h_base", v, 0, MaxHoldBase)
	}

	return nil
}

// SetADCType builds AAD.
func SetADCType(ch ChNr, adc ADCType) (Command, error) {
	if !adc.Valid() {
		return "", fmt.Errorf("b1500: unknown ADC type %d: %w", int(adc), ErrValidation)
	}

	return newCommand("AAD").addInt(int(ch)).addInt(int(adc)).command(), nil
}

// SetAverageSamples builds AV, the averaging of the high-speed ADC.
//
// A positive number is a sample count, a negative number a count of power
// line cycles. mode is meaningless for a negative number but is sent anyway.
func SetAverageSamples(number int, mode AverageMode) (Command, error) {
	validPLC := number >= MinAveragePLCSamples && number <= MaxAveragePLCSamples
	validCount := number >= MinAverageSamples && number <= MaxAverageSamples
	if !validPLC && !validCount {
		return "", fmt.Errorf("b1500: average samples %d not in [-100, -1] or [1, 1023]: %w", number, ErrValidation)
	}
	if !mode.Valid() {
		return "", fmt.Errorf("b1500: unknown average mode %d: %w", int(mode), ErrValidation)
	}

	return newCommand("AV").addInt(number).addInt(int(mode)).command(), nil
}

// SetFilter builds FL, which connects or disconnects the SMU output filter.
// Without channels the mode applies to all channels.
func SetFilter(enable bool, channels ...ChNr) (Command, error) {
	if err := checkChannels(channels); err != nil {
		return "", err
	}

	b := newCommand("FL").addBool(enable)
	for _, ch := range channels {
		b.addInt(int(ch))
	}

	return b.command(), nil
}

// SetSweepDelays builds WT.
func SetSweepDelays(d SweepDelays) (Command, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}

	return newCommand("WT").
		addFloat(d.Hold).
		addFloat(d.Delay).
		addFloat(d.StepDelay).
		addFloat(d.TriggerDelay).
		addFloat(d.MeasureDelay).
		command(), nil
}

// EnableChannels builds CN. Without channels all channels are enabled.
func EnableChannels(channels ...ChNr) (Command, error) {
	return channelCommand("CN", channels)
}

// DisableChannels builds CL. Without channels all channels are disabled.
func DisableChannels(channels ...ChNr) (Command, error) {
	return channelCommand("CL", channels)
}

// SetAutoZero builds AZ.
func SetAutoZero(enable bool) Command {
	return newCommand("AZ").addBool(enable).command()
}

// SetDataFormat builds "FMT 1,0": ASCII data with header, no source data.
// The data parsers of this package expect this format.
func SetDataFormat() Command {
	return newCommand("FMT").addInt(1).addInt(0).command()
}

// Execute builds XE, which triggers the configured measurement.
func Execute() Command { return "XE" }

// Reset builds *RST.
func Reset() Command { return "*RST" }

// Identify builds *IDN?.
func Identify() Command { return "*IDN?" }

// ErrorQuery builds ERRX?, which pops the oldest error with its message.
func ErrorQuery() Command { return "ERRX?" }

func channelCommand(mnemonic string, channels []ChNr) (Command, error) {
	if err := checkChannels(channels); err != nil {
		return "", err
	}

	b := newCommand(mnemonic)
	for _, ch := range channels {
		b.addInt(int(ch))
	}

	return b.command(), nil
}

func checkChannels(channels []ChNr) error {
	if len(channels) > MaxChannelsPerCommand {
		return fmt.Errorf("b1500: %d channels given, at most %d allowed: %w",
			len(channels), MaxChannelsPerCommand, ErrValidation)
	}
	for _, ch := range channels {
		if !ch.Valid() {
			return fmt.Errorf("b1500: invalid channel number %d: %w", int(ch), ErrValidation)
		}
	}

	return nil
}

func checkRange(name string, v, lower, upper float64) error {
	if !(v >= lower && v <= upper) {
		return fmt.Errorf("b1500: %s %v out of range [%v, %v]: %w", name, v, lower, upper, ErrValidation)
	}
	return nil
}

// FormatNumber renders v the way numeric command fields are sent.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// cmdBuilder renders "MNEMONIC arg1,arg2,...".
type cmdBuilder struct {
	sb    strings.Builder
	nargs int
}

func newCommand(mnemonic string) *cmdBuilder {
	b := &cmdBuilder{}
	b.sb.WriteString(mnemonic)

	return b
}

func (b *cmdBuilder) arg(s string) *cmdBuilder {
	if b.nargs == 0 {
		b.sb.WriteByte(' ')
	} else {
		b.sb.WriteByte(',')
	}
	b.sb.WriteString(s)
	b.nargs++

	return b
}

func (b *cmdBuilder) addInt(v int) *cmdBuilder { return b.arg(strconv.Itoa(v)) }

func (b *cmdBuilder) addFloat(v float64) *cmdBuilder { return b.arg(FormatNumber(v)) }

func (b *cmdBuilder) addBool(v bool) *cmdBuilder {
	if v {
		return b.arg("1")
	}
	return b.arg("0")
}

func (b *cmdBuilder) command() Command { return Command(b.sb.String()) }
