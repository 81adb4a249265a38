package b1500

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
)

// MaxChannelsPerCommand is the number of channels a single CN, CL, MM or FL
// command accepts.
const MaxChannelsPerCommand = 10

// ChNr is a module channel number as used in FLEX commands.
//
// For the first channel of a module the channel number equals the slot
// number (1 to 10). The long form is slot*100 + channel, e.g. 102 for the
// second channel of the module in slot 1.
type ChNr int

// ChannelOfSlot returns the first channel number of the module in slot.
func ChannelOfSlot(slot int) ChNr {
	return ChNr(slot)
}

// Slot returns the slot number the channel belongs to.
func (ch ChNr) Slot() int {
	if ch > 100 {
		return int(ch) / 100
	}
	return int(ch)
}

// Valid reports whether ch addresses a channel of slots 1 to 10.
func (ch ChNr) Valid() bool {
	switch {
	case ch >= 1 && ch <= 10:
		return true
	case ch >= 101 && ch <= 1002:
		sub := int(ch) % 100
		slot := int(ch) / 100
		return slot <= 10 && (sub == 1 || sub == 2)
	default:
		return false
	}
}

func (ch ChNr) String() string {
	sub := 1
	if ch > 100 {
		sub = int(ch) % 100
	}
	return fmt.Sprintf("SLOT_%02d_CH%d", ch.Slot(), sub)
}

// enum is a set of named integer codes shared by the enumeration types below.
type enum[T ~int] map[T]string

func (e enum[T]) name(v T) string {
	if n, ok := e[v]; ok {
		return n
	}
	return strconv.Itoa(int(v))
}

// values returns the known codes in ascending order.
func (e enum[T]) values() []T {
	return slices.Sorted(maps.Keys(e))
}

func (e enum[T]) decode(kind string, code int) (T, error) {
	v := T(code)
	if _, ok := e[v]; !ok {
		return v, fmt.Errorf("b1500: unknown %s code %d: %w", kind, code, ErrParse)
	}
	return v, nil
}

// CompliancePolarity selects how the compliance polarity is determined.
type CompliancePolarity int

const (
	// CompliancePolarityAuto uses the polarity of the output value.
	CompliancePolarityAuto CompliancePolarity = 0
	// CompliancePolarityManual uses the polarity of the compliance value.
	CompliancePolarityManual CompliancePolarity = 1
)

var compliancePolarityNames = enum[CompliancePolarity]{
	CompliancePolarityAuto:   "AUTO",
	CompliancePolarityManual: "MANUAL",
}

func (p CompliancePolarity) String() string { return compliancePolarityNames.name(p) }

// Valid reports whether p is a known compliance polarity.
func (p CompliancePolarity) Valid() bool {
	_, ok := compliancePolarityNames[p]
	return ok
}

// MeasurementMode is the MM command mode.
type MeasurementMode int

const (
	ModeSpot                     MeasurementMode = 1
	ModeStaircaseSweep           MeasurementMode = 2
	ModePulsedSpot               MeasurementMode = 3
	ModePulsedSweep              MeasurementMode = 4
	ModeStaircaseSweepPulsedBias MeasurementMode = 5
	ModeQuasiPulsedSpot          MeasurementMode = 9
	ModeSampling                 MeasurementMode = 10
	ModeQuasiStaticCV            MeasurementMode = 13
	ModeLinearSearch             MeasurementMode = 14
	ModeBinarySearch             MeasurementMode = 15
	ModeMultiChannelSweep        MeasurementMode = 16
	ModeSpotC                    MeasurementMode = 17
	ModeCVSweep                  MeasurementMode = 18
	ModePulsedSpotC              MeasurementMode = 19
	ModePulsedSweepCV            MeasurementMode = 20
	ModeMultiChannelPulsedSpot   MeasurementMode = 22
	ModeCFSweep                  MeasurementMode = 23
	ModeCTSampling               MeasurementMode = 26
	ModeMultiChannelPulsedSweep  MeasurementMode = 27
)

var measurementModeNames = enum[MeasurementMode]{
	ModeSpot:                     "SPOT",
	ModeStaircaseSweep:           "STAIRCASE_SWEEP",
	ModePulsedSpot:               "PULSED_SPOT",
	ModePulsedSweep:              "PULSED_SWEEP",
	ModeStaircaseSweepPulsedBias: "STAIRCASE_SWEEP_PULSED_BIAS",
	ModeQuasiPulsedSpot:          "QUASI_PULSED_SPOT",
	ModeSampling:                 "SAMPLING",
	ModeQuasiStaticCV:            "QUASI_STATIC_CV",
	ModeLinearSearch:             "LINEAR_SEARCH",
	ModeBinarySearch:             "BINARY_SEARCH",
	ModeMultiChannelSweep:        "MULTI_CHANNEL_SWEEP",
	ModeSpotC:                    "SPOT_C",
	ModeCVSweep:                  "CV_SWEEP",
	ModePulsedSpotC:              "PULSED_SPOT_C",
	ModePulsedSweepCV:            "PULSED_SWEEP_CV",
	ModeMultiChannelPulsedSpot:   "MULTI_CHANNEL_PULSED_SPOT",
	ModeCFSweep:                  "CF_SWEEP",
	ModeCTSampling:               "CT_SAMPLING",
	ModeMultiChannelPulsedSweep:  "MULTI_CHANNEL_PULSED_SWEEP",
}

func (m MeasurementMode) String() string { return measurementModeNames.name(m) }

// Valid reports whether m is a known MM mode.
func (m MeasurementMode) Valid() bool {
	_, ok := measurementModeNames[m]
	return ok
}

// OperationMode is the SMU measurement operation mode set by CMM.
type OperationMode int

const (
	OperationComplianceSide         OperationMode = 0
	OperationCurrent                OperationMode = 1
	OperationVoltage                OperationMode = 2
	OperationForceSide              OperationMode = 3
	OperationComplianceAndForceSide OperationMode = 4
)

var operationModeNames = enum[OperationMode]{
	OperationComplianceSide:         "COMPLIANCE_SIDE",
	OperationCurrent:                "CURRENT",
	OperationVoltage:                "VOLTAGE",
	OperationForceSide:              "FORCE_SIDE",
	OperationComplianceAndForceSide: "COMPLIANCE_AND_FORCE_SIDE",
}

func (m OperationMode) String() string { return operationModeNames.name(m) }

// Valid reports whether m is a known CMM operation mode.
func (m OperationMode) Valid() bool {
	_, ok := operationModeNames[m]
	return ok
}

// DecodeOperationMode maps a CMM mode code to an OperationMode.
func DecodeOperationMode(code int) (OperationMode, error) {
	return operationModeNames.decode("measurement operation mode", code)
}

// ADCType selects the A/D converter used by a channel (AAD command).
type ADCType int

const (
	ADCHighSpeed      ADCType = 0
	ADCHighResolution ADCType = 1
	ADCHighSpeedPulse ADCType = 2
)

var adcTypeNames = enum[ADCType]{
	ADCHighSpeed:      "HIGH_SPEED",
	ADCHighResolution: "HIGH_RESOLUTION",
	ADCHighSpeedPulse: "HIGH_SPEED_PULSED",
}

func (t ADCType) String() string { return adcTypeNames.name(t) }

// Valid reports whether t is a known AAD converter type.
func (t ADCType) Valid() bool {
	_, ok := adcTypeNames[t]
	return ok
}

// AverageMode is the averaging mode of the AV command.
type AverageMode int

const (
	// AverageAuto averages number x initial number of samples.
	AverageAuto AverageMode = 0
	// AverageManual averages exactly number samples.
	AverageManual AverageMode = 1
)

var averageModeNames = enum[AverageMode]{
	AverageAuto:   "AUTO",
	AverageManual: "MANUAL",
}

func (m AverageMode) String() string { return averageModeNames.name(m) }

// Valid reports whether m is a known AV averaging mode.
func (m AverageMode) Valid() bool {
	_, ok := averageModeNames[m]
	return ok
}

// LRNType selects the settings category returned by the *LRN? query.
type LRNType int

const (
	LRNOutputSwitch                      LRNType = 0
	LRNFilterAndAutoZeroSettings         LRNType = 30
	LRNMeasurementMode                   LRNType = 31
	LRNMeasurementRangingStatus          LRNType = 32
	LRNStaircaseSweepMeasurementSettings LRNType = 33
	LRNPulseSettings                     LRNType = 34
	LRNSMUMeasurementOperation           LRNType = 46
	LRNSamplingMeasurementSettings       LRNType = 47
	LRNADCSettings                       LRNType = 55
)

var lrnTypeNames = enum[LRNType]{
	LRNOutputSwitch:                      "OUTPUT_SWITCH",
	LRNFilterAndAutoZeroSettings:         "FILTER_AND_AUTO_ZERO_SETTINGS",
	LRNMeasurementMode:                   "MEASUREMENT_MODE",
	LRNMeasurementRangingStatus:          "MEASUREMENT_RANGING_STATUS",
	LRNStaircaseSweepMeasurementSettings: "STAIRCASE_SWEEP_MEASUREMENT_SETTINGS",
	LRNPulseSettings:                     "PULSE_SETTINGS",
	LRNSMUMeasurementOperation:           "SMU_MEASUREMENT_OPERATION",
	LRNSamplingMeasurementSettings:       "SAMPLING_MEASUREMENT_SETTINGS",
	LRNADCSettings:                       "ADC_SETTINGS",
}

func (t LRNType) String() string { return lrnTypeNames.name(t) }

// MeasurementStatus is the first header character of an FMT1 data element.
type MeasurementStatus byte

const (
	StatusNormal             MeasurementStatus = 'N'
	StatusOtherCompliance    MeasurementStatus = 'T'
	StatusCompliance         MeasurementStatus = 'C'
	StatusOverRange          MeasurementStatus = 'V'
	StatusOscillating        MeasurementStatus = 'X'
	StatusTargetNotFound     MeasurementStatus = 'G'
	StatusSearchStopped      MeasurementStatus = 'S'
	StatusNullLoopUnbalanced MeasurementStatus = 'U'
	StatusAmplifierSaturated MeasurementStatus = 'D'
	StatusFirstOrMiddleStep  MeasurementStatus = 'W'
	StatusLastStep           MeasurementStatus = 'E'
)

var measurementStatusNames = map[MeasurementStatus]string{
	StatusNormal:             "NORMAL",
	StatusOtherCompliance:    "OTHER_CHANNEL_COMPLIANCE",
	StatusCompliance:         "COMPLIANCE",
	StatusOverRange:          "OVER_RANGE",
	StatusOscillating:        "OSCILLATING",
	StatusTargetNotFound:     "TARGET_NOT_FOUND",
	StatusSearchStopped:      "SEARCH_STOPPED",
	StatusNullLoopUnbalanced: "NULL_LOOP_UNBALANCED",
	StatusAmplifierSaturated: "AMPLIFIER_SATURATED",
	StatusFirstOrMiddleStep:  "FIRST_OR_MIDDLE_STEP",
	StatusLastStep:           "LAST_STEP",
}

func (s MeasurementStatus) String() string {
	if n, ok := measurementStatusNames[s]; ok {
		return n
	}
	return string(rune(s))
}

func (s MeasurementStatus) valid() bool {
	_, ok := measurementStatusNames[s]
	return ok
}

// IsNormal reports whether the element carries no error condition.
func (s MeasurementStatus) IsNormal() bool {
	return s == StatusNormal || s == StatusFirstOrMiddleStep || s == StatusLastStep
}

// ChannelName is the second header character of an FMT1 data element.
// 'A' to 'J' name the first channel of slots 1 to 10, 'a' to 'j' the
// second channel, 'V' is the ground unit and 'Z' marks data without a
// channel, such as time stamps.
type ChannelName byte

const (
	ChannelGroundUnit ChannelName = 'V'
	ChannelNone       ChannelName = 'Z'
)

// Channel returns the channel number addressed by the name.
// ok is false for the ground unit and for channel-less data.
func (c ChannelName) Channel() (ch ChNr, ok bool) {
	switch {
	case c >= 'A' && c <= 'J':
		return ChNr(c - 'A' + 1), true
	case c >= 'a' && c <= 'j':
		return ChNr(int(c-'a'+1)*100 + 2), true
	default:
		return 0, false
	}
}

func (c ChannelName) valid() bool {
	_, ok := c.Channel()
	return ok || c == ChannelGroundUnit || c == ChannelNone
}

func (c ChannelName) String() string { return string(rune(c)) }

// DataType is the third header character of an FMT1 data element.
type DataType byte

const (
	DataVoltage       DataType = 'V'
	DataCurrent       DataType = 'I'
	DataFrequency     DataType = 'F'
	DataTime          DataType = 'T'
	DataInvalid       DataType = 'Z'
	DataVoltageOutput DataType = 'v'
	DataCurrentOutput DataType = 'i'
	DataCapacitance   DataType = 'C'
	DataResistance    DataType = 'R'
	DataInductance    DataType = 'L'
	DataReactance     DataType = 'X'
	DataAdmittance    DataType = 'Y'
	DataPhase         DataType = 'P'
	DataDissipation   DataType = 'D'
	DataQuality       DataType = 'Q'
)

var dataTypeNames = map[DataType]string{
	DataVoltage:       "VOLTAGE",
	DataCurrent:       "CURRENT",
	DataFrequency:     "FREQUENCY",
	DataTime:          "TIME",
	DataInvalid:       "INVALID",
	DataVoltageOutput: "VOLTAGE_OUTPUT",
	DataCurrentOutput: "CURRENT_OUTPUT",
	DataCapacitance:   "CAPACITANCE",
	DataResistance:    "RESISTANCE",
	DataInductance:    "INDUCTANCE",
	DataReactance:     "REACTANCE",
	DataAdmittance:    "ADMITTANCE",
	DataPhase:         "PHASE",
	DataDissipation:   "DISSIPATION",
	DataQuality:       "QUALITY",
}

func (t DataType) String() string {
	if n, ok := dataTypeNames[t]; ok {
		return n
	}
	return string(rune(t))
}

func (t DataType) valid() bool {
	_, ok := dataTypeNames[t]
	return ok
}
