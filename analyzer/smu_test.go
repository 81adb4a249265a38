package analyzer

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/go-b1500/b1500"
	"github.com/arloliu/go-b1500/logger"
	"github.com/arloliu/go-b1500/transport"
)

func discardLogger() logger.Logger {
	return logger.NewSlogWithWriter(io.Discard, logger.DebugLevel, false)
}

func newTestSMU(t *testing.T, slot int) (*SMU, *transport.MockTransport) {
	t.Helper()

	tr := transport.NewMockTransport()
	tr.Test(t)
	smu, err := NewSMU(tr, slot, discardLogger())
	require.NoError(t, err)

	return smu, tr
}

func TestNewSMU(t *testing.T) {
	require := require.New(t)

	smu, _ := newTestSMU(t, 3)
	require.Equal(3, smu.Slot())
	require.Equal(b1500.ChNr(3), smu.Channel())
	require.Equal("smu3", smu.Name())
	require.Equal("B1517A", smu.Model())
	require.Equal(b1500.ModeSpot, smu.MeasurementMode())

	for _, slot := range []int{0, 11, -1} {
		_, err := NewSMU(transport.NewMockTransport(), slot, nil)
		require.ErrorIs(err, b1500.ErrValidation)
	}
}

func TestSMU_ForceVoltage(t *testing.T) {
	tests := []struct {
		description string
		outputRange b1500.OutputRange
		opts        []SourceOption
		voltage     float64
		expected    string
	}{
		{
			description: "no source config",
			voltage:     1.5,
			expected:    "DV 1,0,1.5",
		},
		{
			description: "range and compliance",
			outputRange: b1500.VOutputMin2V,
			opts:        []SourceOption{WithCompliance(1e-3)},
			voltage:     1.5,
			expected:    "DV 1,20,1.5,0.001",
		},
		{
			description: "all compliance fields",
			outputRange: b1500.VOutputMin20V,
			opts: []SourceOption{
				WithCompliance(1e-3),
				WithCompliancePolarity(b1500.CompliancePolarityAuto),
				WithMinComplianceRange(b1500.IOutputMin10mA),
			},
			voltage:  -5,
			expected: "DV 1,200,-5,0.001,0,18",
		},
		{
			description: "min compliance range without polarity is dropped",
			outputRange: b1500.VOutputAuto,
			opts:        []SourceOption{WithCompliance(1e-3), WithMinComplianceRange(b1500.IOutputMin10mA)},
			voltage:     1.5,
			expected:    "DV 1,0,1.5,0.001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			require := require.New(t)

			smu, tr := newTestSMU(t, 1)
			if tt.outputRange != nil {
				require.NoError(smu.ConfigureSource(tt.outputRange, tt.opts...))
			}
			tr.On("Write", tt.expected).Return(nil).Once()

			require.NoError(smu.ForceVoltage(tt.voltage))
			tr.AssertExpectations(t)
		})
	}
}

func TestSMU_ForceCurrent(t *testing.T) {
	require := require.New(t)

	smu, tr := newTestSMU(t, 2)
	require.NoError(smu.ConfigureSource(b1500.IOutputMin1nA,
		WithCompliance(2),
		WithCompliancePolarity(b1500.CompliancePolarityManual),
		WithMinComplianceRange(b1500.VOutputMin20V),
	))
	tr.On("Write", "DI 2,11,-1e-09,2,1,200").Return(nil).Once()

	require.NoError(smu.ForceCurrent(-1e-9))
	tr.AssertExpectations(t)
}

func TestSMU_ForceTypeMismatch(t *testing.T) {
	require := require.New(t)

	smu, tr := newTestSMU(t, 1)

	require.NoError(smu.ConfigureSource(b1500.VOutputMin2V))
	require.ErrorIs(smu.ForceCurrent(1e-6), b1500.ErrTypeMismatch)

	require.NoError(smu.ConfigureSource(b1500.IOutputMin1uA))
	require.ErrorIs(smu.ForceVoltage(1), b1500.ErrTypeMismatch)

	tr.AssertNotCalled(t, "Write")
}

func TestSMU_ConfigureSourceInvalidKeepsState(t *testing.T) {
	require := require.New(t)

	smu, _ := newTestSMU(t, 1)
	require.NoError(smu.ConfigureSource(b1500.VOutputMin2V, WithCompliance(1e-3)))

	err := smu.ConfigureSource(b1500.VOutputMin5V, WithMinComplianceRange(b1500.VOutputMin2V))
	require.ErrorIs(err, b1500.ErrValidation)

	cfg, ok := smu.State().SourceConfig()
	require.True(ok)
	require.Equal(b1500.VOutputMin2V, cfg.OutputRange())
}

func TestSMU_Spot(t *testing.T) {
	require := require.New(t)

	smu, tr := newTestSMU(t, 1)
	tr.On("Ask", "TI 1").Return("NAI+000.005E-06", nil).Once()

	m, err := smu.SpotCurrent()
	require.NoError(err)
	require.Equal(b1500.StatusNormal, m.Status)
	require.Equal(b1500.DataCurrent, m.Type)
	require.InDelta(5e-9, m.Value, 1e-20)

	smu.ConfigureMeasure(b1500.VMeasMin2V)
	tr.On("Ask", "TV 1,20").Return("CAV+1.500000E+00", nil).Once()

	v, err := smu.MeasureVoltage()
	require.NoError(err)
	require.InDelta(1.5, v, 1e-12)

	_, err = smu.MeasureCurrent()
	require.ErrorIs(err, b1500.ErrTypeMismatch)

	tr.AssertExpectations(t)
}

func TestSMU_SpotErrors(t *testing.T) {
	require := require.New(t)

	smu, tr := newTestSMU(t, 1)
	tr.On("Ask", "TI 1").Return("garbage", nil).Once()

	_, err := smu.SpotCurrent()
	require.ErrorIs(err, b1500.ErrParse)

	ioErr := errors.New("link down")
	tr.On("Ask", "TV 1").Return("", ioErr).Once()

	_, err = smu.SpotVoltage()
	require.ErrorIs(err, ioErr)
}

func TestSMU_LearnedSettings(t *testing.T) {
	require := require.New(t)

	smu, tr := newTestSMU(t, 1)
	tr.On("Ask", "*LRN? 32").Return("RI 1,11;RI 2,18", nil).Once()
	tr.On("Ask", "*LRN? 46").Return("CMM 1,1;CMM 2,3", nil).Once()
	tr.On("Ask", "*LRN? 33").Return("WT 1,2,0.5,1.5,4", nil).Once()

	ranges, err := smu.CurrentMeasurementRanges()
	require.NoError(err)
	require.Equal([]b1500.ChannelValue[b1500.IMeasRange]{
		{Channel: 1, Value: b1500.IMeasMin1nA},
		{Channel: 2, Value: b1500.IMeasMin10mA},
	}, ranges)

	modes, err := smu.MeasurementOperationModes()
	require.NoError(err)
	require.Equal([]b1500.ChannelValue[b1500.OperationMode]{
		{Channel: 1, Value: b1500.OperationCurrent},
		{Channel: 2, Value: b1500.OperationForceSide},
	}, modes)

	delays, err := smu.SweepDelays()
	require.NoError(err)
	require.Equal(b1500.SweepDelays{Hold: 1, Delay: 2, StepDelay: 0.5, TriggerDelay: 1.5, MeasureDelay: 4}, delays)

	tr.AssertExpectations(t)
}

func TestSMU_Settings(t *testing.T) {
	require := require.New(t)

	smu, tr := newTestSMU(t, 1)
	for _, cmd := range []string{
		"RI 1,-11",
		"CMM 1,1",
		"AAD 1,0",
		"AAD 1,1",
		"AV 10,1",
		"FL 1",
		"WT 1,2,0.5,1.5,4",
	} {
		tr.On("Write", cmd).Return(nil).Once()
	}

	require.NoError(smu.SetCurrentMeasurementRange(b1500.IMeasFix1nA))
	require.NoError(smu.SetMeasurementOperationMode(b1500.OperationCurrent))
	require.NoError(smu.UseHighSpeedADC())
	require.NoError(smu.UseHighResolutionADC())
	require.NoError(smu.SetAverageSamplesForHighSpeedADC(10, b1500.AverageManual))
	require.NoError(smu.SetFilter(true))
	require.NoError(smu.SetSweepDelays(b1500.SweepDelays{Hold: 1, Delay: 2, StepDelay: 0.5, TriggerDelay: 1.5, MeasureDelay: 4}))

	require.ErrorIs(smu.SetAverageSamplesForHighSpeedADC(0, b1500.AverageAuto), b1500.ErrValidation)
	require.ErrorIs(smu.SetAverageSamplesForHighSpeedADC(10, b1500.AverageMode(7)), b1500.ErrValidation)
	require.ErrorIs(smu.SetMeasurementOperationMode(b1500.OperationMode(99)), b1500.ErrValidation)
	require.ErrorIs(smu.SetSweepDelays(b1500.SweepDelays{Delay: 1, TriggerDelay: 2}), b1500.ErrValidation)

	tr.AssertExpectations(t)
}

func TestSMU_MeasurementMode(t *testing.T) {
	require := require.New(t)

	smu, tr := newTestSMU(t, 1)
	tr.On("Write", "MM 10,1").Return(nil).Once()

	require.NoError(smu.SetMeasurementMode(b1500.ModeSampling))
	require.Equal(b1500.ModeSampling, smu.MeasurementMode())

	require.ErrorIs(smu.SetMeasurementMode(b1500.MeasurementMode(99)), b1500.ErrValidation)
	require.Equal(b1500.ModeSampling, smu.MeasurementMode())

	writeErr := errors.New("write failed")
	tr.On("Write", "MM 1,1").Return(writeErr).Once()
	require.ErrorIs(smu.SetMeasurementMode(b1500.ModeSpot), writeErr)
	require.Equal(b1500.ModeSampling, smu.MeasurementMode())
}

func TestSMU_ConfigureTiming(t *testing.T) {
	require := require.New(t)

	smu, tr := newTestSMU(t, 1)

	writeErr := errors.New("write failed")
	tr.On("Write", "MT 0,0.01,5").Return(writeErr).Once()
	require.ErrorIs(smu.ConfigureTiming(TimingParameters{Interval: 0.01, Number: 5}), writeErr)
	_, ok := smu.State().TimingParameters()
	require.False(ok)

	tr.On("Write", "MT 0,0.01,5").Return(nil).Once()
	require.NoError(smu.ConfigureTiming(TimingParameters{Interval: 0.01, Number: 5}))

	axis, err := smu.TimeAxis()
	require.NoError(err)
	require.Equal([]float64{0.0, 0.01, 0.02, 0.03, 0.04}, axis)

	require.ErrorIs(smu.ConfigureTiming(TimingParameters{Interval: 100, Number: 5}), b1500.ErrValidation)
	tr.AssertExpectations(t)
}

func TestSMU_LogsDroppedCompliance(t *testing.T) {
	require := require.New(t)

	l := logger.NewMockLogger().Permissive()
	tr := transport.NewMockTransport()
	smu, err := NewSMU(tr, 1, l)
	require.NoError(err)

	dropped := mock.MatchedBy(func(msg string) bool { return strings.Contains(msg, "dropped") })

	tr.On("Write", "DV 1,0,1,0.001").Return(nil).Once()
	require.NoError(smu.ConfigureSource(b1500.VOutputAuto, WithCompliance(1e-3)))
	require.NoError(smu.ForceVoltage(1))
	l.AssertNotCalled(t, "Warn", dropped, mock.Anything)

	tr.On("Write", "DV 1,0,1").Return(nil).Once()
	require.NoError(smu.ConfigureSource(b1500.VOutputAuto, WithMinComplianceRange(b1500.IOutputMin1nA)))
	require.NoError(smu.ForceVoltage(1))
	l.AssertCalled(t, "Warn", dropped, mock.Anything)

	l.AssertCalled(t, "With", []any{"module", "B1517A", "slot", 1})
	tr.AssertExpectations(t)
}
