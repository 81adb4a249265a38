package cmd

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/go-b1500/analyzer"
	"github.com/arloliu/go-b1500/b1500"
)

var delays b1500.SweepDelays

var sweepDelaysCmd = &cobra.Command{
	Use:   "sweep-delays",
	Short: "Read or set the staircase sweep timing (WT)",
}

var sweepDelaysGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the staircase sweep timing as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMainframe(cmd, func(_ *analyzer.Mainframe, smu *analyzer.SMU) error {
			d, err := smu.SweepDelays()
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()

			return enc.Encode(d)
		})
	},
}

var sweepDelaysSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the staircase sweep timing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := delays.Validate(); err != nil {
			return err
		}

		return withMainframe(cmd, func(_ *analyzer.Mainframe, smu *analyzer.SMU) error {
			return smu.SetSweepDelays(delays)
		})
	},
}

func init() {
	f := sweepDelaysSetCmd.Flags()
	f.Float64Var(&delays.Hold, "hold", 0, "hold time, s")
	f.Float64Var(&delays.Delay, "delay", 0, "delay time, s")
	f.Float64Var(&delays.StepDelay, "step-delay", 0, "step delay time, s")
	f.Float64Var(&delays.TriggerDelay, "trigger-delay", 0, "step source trigger delay time, s")
	f.Float64Var(&delays.MeasureDelay, "measure-delay", 0, "step measurement trigger delay time, s")

	sweepDelaysCmd.AddCommand(sweepDelaysGetCmd, sweepDelaysSetCmd)
	rootCmd.AddCommand(sweepDelaysCmd)
}
