package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arloliu/go-b1500/analyzer"
	"github.com/arloliu/go-b1500/b1500"
)

var (
	outputRangeCode  int
	compliance       float64
	manualPolarity   bool
	complianceRange  int
	measureRangeCode int
	enableOutput     bool
)

var forceVoltageCmd = &cobra.Command{
	Use:   "force-voltage <volts>",
	Short: "Force voltage from the SMU (DV)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid voltage %q: %w", args[0], err)
		}
		r, err := b1500.DecodeVOutputRange(outputRangeCode)
		if err != nil {
			return err
		}
		opts, err := sourceOptions(cmd, b1500.DecodeIOutputRange)
		if err != nil {
			return err
		}

		return withMainframe(cmd, func(m *analyzer.Mainframe, smu *analyzer.SMU) error {
			if err := smu.ConfigureSource(r, opts...); err != nil {
				return err
			}
			if err := enableSMU(m, smu); err != nil {
				return err
			}

			return smu.ForceVoltage(v)
		})
	},
}

var forceCurrentCmd = &cobra.Command{
	Use:   "force-current <amperes>",
	Short: "Force current from the SMU (DI)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid current %q: %w", args[0], err)
		}
		r, err := b1500.DecodeIOutputRange(outputRangeCode)
		if err != nil {
			return err
		}
		opts, err := sourceOptions(cmd, b1500.DecodeVOutputRange)
		if err != nil {
			return err
		}

		return withMainframe(cmd, func(m *analyzer.Mainframe, smu *analyzer.SMU) error {
			if err := smu.ConfigureSource(r, opts...); err != nil {
				return err
			}
			if err := enableSMU(m, smu); err != nil {
				return err
			}

			return smu.ForceCurrent(i)
		})
	},
}

var measureCurrentCmd = &cobra.Command{
	Use:   "measure-current",
	Short: "Run a spot current measurement (TI)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var r b1500.MeasureRange
		if cmd.Flags().Changed("range") {
			ir, err := b1500.DecodeIMeasRange(measureRangeCode)
			if err != nil {
				return err
			}
			r = ir
		}

		return withMainframe(cmd, func(_ *analyzer.Mainframe, smu *analyzer.SMU) error {
			smu.ConfigureMeasure(r)
			return printSpot(cmd, smu.SpotCurrent)
		})
	},
}

var measureVoltageCmd = &cobra.Command{
	Use:   "measure-voltage",
	Short: "Run a spot voltage measurement (TV)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var r b1500.MeasureRange
		if cmd.Flags().Changed("range") {
			vr, err := b1500.DecodeVMeasRange(measureRangeCode)
			if err != nil {
				return err
			}
			r = vr
		}

		return withMainframe(cmd, func(_ *analyzer.Mainframe, smu *analyzer.SMU) error {
			smu.ConfigureMeasure(r)
			return printSpot(cmd, smu.SpotVoltage)
		})
	},
}

// sourceOptions builds the compliance options from the flags. decode maps
// the --compliance-range code to a range of the compliance quantity.
func sourceOptions[R b1500.OutputRange](cmd *cobra.Command, decode func(int) (R, error)) ([]analyzer.SourceOption, error) {
	var opts []analyzer.SourceOption

	flags := cmd.Flags()
	if flags.Changed("compliance") {
		opts = append(opts, analyzer.WithCompliance(compliance))
	}
	if flags.Changed("manual-polarity") {
		pol := b1500.CompliancePolarityAuto
		if manualPolarity {
			pol = b1500.CompliancePolarityManual
		}
		opts = append(opts, analyzer.WithCompliancePolarity(pol))
	}
	if flags.Changed("compliance-range") {
		r, err := decode(complianceRange)
		if err != nil {
			return nil, err
		}
		opts = append(opts, analyzer.WithMinComplianceRange(r))
	}

	return opts, nil
}

func enableSMU(m *analyzer.Mainframe, smu *analyzer.SMU) error {
	if !enableOutput {
		return nil
	}
	return m.EnableChannels(smu.Channel())
}

func printSpot(cmd *cobra.Command, measure func() (b1500.SpotMeasurement, error)) error {
	res, err := measure()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%g\t%s\n", res.Value, res.Status)

	return nil
}

func init() {
	for _, c := range []*cobra.Command{forceVoltageCmd, forceCurrentCmd} {
		c.Flags().IntVarP(&outputRangeCode, "range", "r", 0, "output range code, 0 is auto ranging")
		c.Flags().Float64Var(&compliance, "compliance", 0, "compliance value, A when forcing voltage and V when forcing current")
		c.Flags().BoolVar(&manualPolarity, "manual-polarity", false, "use the polarity of the compliance value")
		c.Flags().IntVar(&complianceRange, "compliance-range", 0, "minimum compliance range code")
		c.Flags().BoolVar(&enableOutput, "enable", true, "enable the SMU output first (CN)")
	}
	for _, c := range []*cobra.Command{measureCurrentCmd, measureVoltageCmd} {
		c.Flags().IntVarP(&measureRangeCode, "range", "r", 0, "measurement range code, negative codes are fixed ranges")
	}

	rootCmd.AddCommand(forceVoltageCmd, forceCurrentCmd, measureCurrentCmd, measureVoltageCmd)
}
