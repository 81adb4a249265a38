package b1500

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForceVoltage(t *testing.T) {
	ch := ChannelOfSlot(1)

	tests := []struct {
		description string
		comp        Compliance[IOutputRange]
		expected    Command
		complete    bool
	}{
		{
			description: "no compliance",
			expected:    "DV 1,0,1.5",
			complete:    true,
		},
		{
			description: "compliance only",
			comp:        Compliance[IOutputRange]{Limit: Some(1e-3)},
			expected:    "DV 1,0,1.5,0.001",
			complete:    true,
		},
		{
			description: "compliance and polarity",
			comp: Compliance[IOutputRange]{
				Limit:    Some(1e-3),
				Polarity: Some(CompliancePolarityManual),
			},
			expected: "DV 1,0,1.5,0.001,1",
			complete: true,
		},
		{
			description: "all fields",
			comp: Compliance[IOutputRange]{
				Limit:    Some(1e-3),
				Polarity: Some(CompliancePolarityAuto),
				Range:    Some(IOutputMin10mA),
			},
			expected: "DV 1,0,1.5,0.001,0,18",
			complete: true,
		},
		{
			description: "range without polarity is dropped",
			comp: Compliance[IOutputRange]{
				Limit: Some(1e-3),
				Range: Some(IOutputMin10mA),
			},
			expected: "DV 1,0,1.5,0.001",
			complete: false,
		},
		{
			description: "polarity without limit is dropped",
			comp:        Compliance[IOutputRange]{Polarity: Some(CompliancePolarityManual)},
			expected:    "DV 1,0,1.5",
			complete:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			require := require.New(t)
			cmd, err := ForceVoltage(ch, VOutputAuto, 1.5, tt.comp)
			require.NoError(err)
			require.Equal(tt.expected, cmd)
			require.Equal(tt.complete, tt.comp.Complete())
		})
	}
}

func TestForceCurrent(t *testing.T) {
	require := require.New(t)

	cmd, err := ForceCurrent(ChannelOfSlot(2), IOutputMin1nA, -1e-9, Compliance[VOutputRange]{
		Limit:    Some(2.0),
		Polarity: Some(CompliancePolarityManual),
		Range:    Some(VOutputMin20V),
	})
	require.NoError(err)
	require.Equal(Command("DI 2,11,-1e-09,2,1,200"), cmd)
	require.Equal("DI 2,11,-1e-09,2,1,200", cmd.String())

	cmd, err = ForceCurrent(ChannelOfSlot(2), IOutputAuto, 0, Compliance[VOutputRange]{})
	require.NoError(err)
	require.Equal(Command("DI 2,0,0"), cmd)
}

func TestForceUnknownPolarity(t *testing.T) {
	require := require.New(t)

	_, err := ForceVoltage(1, VOutputAuto, 1, Compliance[IOutputRange]{
		Limit:    Some(1e-3),
		Polarity: Some(CompliancePolarity(2)),
	})
	require.ErrorIs(err, ErrValidation)

	// the polarity is checked even when it would be dropped
	_, err = ForceCurrent(1, IOutputAuto, 0, Compliance[VOutputRange]{Polarity: Some(CompliancePolarity(-1))})
	require.ErrorIs(err, ErrValidation)
}

func TestSpotMeasurementCommands(t *testing.T) {
	require := require.New(t)

	require.Equal(Command("TI 1"), SpotCurrent(1, Optional[IMeasRange]{}))
	require.Equal(Command("TI 1,11"), SpotCurrent(1, Some(IMeasMin1nA)))
	require.Equal(Command("TI 1,-11"), SpotCurrent(1, Some(IMeasFix1nA)))
	require.Equal(Command("TV 3"), SpotVoltage(3, Optional[VMeasRange]{}))
	require.Equal(Command("TV 3,20"), SpotVoltage(3, Some(VMeasMin2V)))
	require.Equal(Command("RI 1,18"), SetCurrentMeasurementRange(1, IMeasMin10mA))
	require.Equal(Command("RV 1,-20"), SetVoltageMeasurementRange(1, VMeasFix2V))
}

func TestSimpleCommands(t *testing.T) {
	require := require.New(t)

	require.Equal(Command("*LRN? 32"), LearnQuery(LRNMeasurementRangingStatus))
	require.Equal(Command("*LRN? 33"), LearnQuery(LRNStaircaseSweepMeasurementSettings))
	require.Equal(Command("AZ 1"), SetAutoZero(true))
	require.Equal(Command("AZ 0"), SetAutoZero(false))
	require.Equal(Command("FMT 1,0"), SetDataFormat())
	require.Equal(Command("XE"), Execute())
	require.Equal(Command("*RST"), Reset())
	require.Equal(Command("*IDN?"), Identify())
	require.Equal(Command("ERRX?"), ErrorQuery())
}

func TestEnumCommands(t *testing.T) {
	require := require.New(t)

	cmd, err := SetMeasurementOperationMode(1, OperationComplianceAndForceSide)
	require.NoError(err)
	require.Equal(Command("CMM 1,4"), cmd)

	cmd, err = SetADCType(1, ADCHighSpeed)
	require.NoError(err)
	require.Equal(Command("AAD 1,0"), cmd)

	cmd, err = SetADCType(1, ADCHighResolution)
	require.NoError(err)
	require.Equal(Command("AAD 1,1"), cmd)

	_, err = SetMeasurementOperationMode(1, OperationMode(99))
	require.ErrorIs(err, ErrValidation)

	_, err = SetADCType(1, ADCType(3))
	require.ErrorIs(err, ErrValidation)

	_, err = SetAverageSamples(10, AverageMode(2))
	require.ErrorIs(err, ErrValidation)
}

func TestSetMeasurementMode(t *testing.T) {
	require := require.New(t)

	cmd, err := SetMeasurementMode(ModeSampling, 1)
	require.NoError(err)
	require.Equal(Command("MM 10,1"), cmd)

	cmd, err = SetMeasurementMode(ModeSpot)
	require.NoError(err)
	require.Equal(Command("MM 1"), cmd)

	_, err = SetMeasurementMode(MeasurementMode(6), 1)
	require.ErrorIs(err, ErrValidation)

	_, err = SetMeasurementMode(ModeSpot, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 101)
	require.ErrorIs(err, ErrValidation)

	_, err = SetMeasurementMode(ModeSpot, 11)
	require.ErrorIs(err, ErrValidation)
}

func TestSetTimingParameters(t *testing.T) {
	tests := []struct {
		description string
		hBias       float64
		interval    float64
		number      int
		hBase       Optional[float64]
		expected    Command
		expectedErr error
	}{
		{description: "minimal", hBias: 0, interval: 0.002, number: 1000, expected: "MT 0,0.002,1000"},
		{description: "with h_base", hBias: 1, interval: 0.1, number: 5, hBase: Some(0.5), expected: "MT 1,0.1,5,0.5"},
		{description: "negative h_bias with fast sampling", hBias: -0.01, interval: 0.001, number: 10, expected: "MT -0.01,0.001,10"},
		{description: "negative h_bias with slow sampling", hBias: -0.01, interval: 0.002, number: 10, expectedErr: ErrValidation},
		{description: "negative h_bias too low", hBias: -0.1, interval: 0.001, number: 10, expectedErr: ErrValidation},
		{description: "h_bias too high", hBias: 655.36, interval: 0.1, number: 10, expectedErr: ErrValidation},
		{description: "interval too short", hBias: 0, interval: 0.00001, number: 10, expectedErr: ErrValidation},
		{description: "interval too long", hBias: 0, interval: 66, number: 10, expectedErr: ErrValidation},
		{description: "zero samples", hBias: 0, interval: 0.1, number: 0, expectedErr: ErrValidation},
		{description: "too many samples", hBias: 0, interval: 0.1, number: MaxSamples + 1, expectedErr: ErrValidation},
		{description: "h_base too high", hBias: 0, interval: 0.1, number: 1, hBase: Some(700.0), expectedErr: ErrValidation},
		{description: "NaN interval", hBias: 0, interval: math.NaN(), number: 10, expectedErr: ErrValidation},
		{description: "NaN h_bias", hBias: math.NaN(), interval: 0.001, number: 10, expectedErr: ErrValidation},
		{description: "NaN h_base", hBias: 0, interval: 0.1, number: 1, hBase: Some(math.NaN()), expectedErr: ErrValidation},
		{description: "infinite interval", hBias: 0, interval: math.Inf(1), number: 10, expectedErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			require := require.New(t)

			cmd, err := SetTimingParameters(tt.hBias, tt.interval, tt.number, tt.hBase)
			if tt.expectedErr != nil {
				require.ErrorIs(err, tt.expectedErr)
				require.Empty(cmd)
				return
			}
			require.NoError(err)
			require.Equal(tt.expected, cmd)
		})
	}
}

func TestSetAverageSamples(t *testing.T) {
	require := require.New(t)

	cmd, err := SetAverageSamples(10, AverageManual)
	require.NoError(err)
	require.Equal(Command("AV 10,1"), cmd)

	// the mode is sent even though it means nothing for PLC averaging
	cmd, err = SetAverageSamples(-50, AverageAuto)
	require.NoError(err)
	require.Equal(Command("AV -50,0"), cmd)

	for _, n := range []int{0, 1024, -101} {
		_, err = SetAverageSamples(n, AverageAuto)
		require.ErrorIs(err, ErrValidation, "number %d", n)
	}
}

func TestSetFilter(t *testing.T) {
	require := require.New(t)

	cmd, err := SetFilter(true)
	require.NoError(err)
	require.Equal(Command("FL 1"), cmd)

	cmd, err = SetFilter(false, 1, 102)
	require.NoError(err)
	require.Equal(Command("FL 0,1,102"), cmd)
}

func TestSetSweepDelays(t *testing.T) {
	require := require.New(t)

	cmd, err := SetSweepDelays(SweepDelays{Hold: 1, Delay: 2, StepDelay: 0.5, TriggerDelay: 1.5, MeasureDelay: 4})
	require.NoError(err)
	require.Equal(Command("WT 1,2,0.5,1.5,4"), cmd)

	bad := []SweepDelays{
		{Hold: 656},
		{Delay: 66},
		{StepDelay: 1.5},
		{Delay: 1, TriggerDelay: 2},
		{MeasureDelay: 70},
		{Hold: -1},
		{Hold: math.NaN()},
		{Delay: math.NaN()},
		{StepDelay: math.NaN()},
		{Delay: 1, TriggerDelay: math.NaN()},
		{MeasureDelay: math.NaN()},
	}
	for _, d := range bad {
		_, err := SetSweepDelays(d)
		require.ErrorIs(err, ErrValidation, "%+v", d)
	}
}

func TestChannelCommands(t *testing.T) {
	require := require.New(t)

	cmd, err := EnableChannels()
	require.NoError(err)
	require.Equal(Command("CN"), cmd)

	cmd, err = EnableChannels(1, 2)
	require.NoError(err)
	require.Equal(Command("CN 1,2"), cmd)

	cmd, err = DisableChannels(3)
	require.NoError(err)
	require.Equal(Command("CL 3"), cmd)

	_, err = DisableChannels(0)
	require.ErrorIs(err, ErrValidation)
}

func TestChNr(t *testing.T) {
	require := require.New(t)

	require.True(ChNr(1).Valid())
	require.True(ChNr(10).Valid())
	require.True(ChNr(102).Valid())
	require.True(ChNr(1002).Valid())
	require.False(ChNr(0).Valid())
	require.False(ChNr(11).Valid())
	require.False(ChNr(103).Valid())
	require.False(ChNr(1101).Valid())

	require.Equal(3, ChNr(302).Slot())
	require.Equal("SLOT_01_CH1", ChNr(1).String())
	require.Equal("SLOT_03_CH2", ChNr(302).String())
}

func TestRanges(t *testing.T) {
	require := require.New(t)

	require.Equal(CurrentKind, IOutputMin1nA.Kind())
	require.Equal(VoltageKind, VMeasFix2V.Kind())
	require.Equal("MIN_1nA", IMeasMin1nA.String())
	require.Equal("AUTO", VOutputAuto.String())

	r, err := DecodeIMeasRange(18)
	require.NoError(err)
	require.Equal(IMeasMin10mA, r)

	_, err = DecodeIMeasRange(7)
	require.ErrorIs(err, ErrParse)

	_, err = DecodeOperationMode(9)
	require.ErrorIs(err, ErrParse)
}
