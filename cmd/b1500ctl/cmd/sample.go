package cmd

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/arloliu/go-b1500/analyzer"
	"github.com/arloliu/go-b1500/b1500"
)

var (
	timing     analyzer.TimingParameters
	holdBase   float64
	outputJSON bool
)

// samplePoint is one sample of the JSON output. Invalid data is null.
type samplePoint struct {
	Time   float64  `json:"time"`
	Value  *float64 `json:"value"`
	Status string   `json:"status"`
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Run a sampling measurement of the SMU current",
	Long: `Run a sampling measurement (MM 10) of the SMU current and print
one line per sample. The timing comes from the flags, or from the timing
section of the configuration file when no timing flag is set.

Examples:
  b1500ctl sample --interval 0.01 --number 100
  b1500ctl sample --config bench.yaml --json`,
	Args: cobra.NoArgs,
	RunE: runSample,
}

func init() {
	f := sampleCmd.Flags()
	f.Float64Var(&timing.HoldBias, "hold", 0, "hold time of the bias output, s")
	f.Float64Var(&timing.Interval, "interval", 0.002, "sampling interval, s")
	f.IntVar(&timing.Number, "number", 1000, "number of samples")
	f.Float64Var(&holdBase, "hold-base", 0, "hold time of the base output, s")
	f.BoolVar(&outputJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, _ []string) error {
	p := timing
	flags := cmd.Flags()
	timingFlags := flags.Changed("hold") || flags.Changed("interval") || flags.Changed("number")
	if cfg.Timing != nil && !timingFlags {
		p = *cfg.Timing
	}
	if flags.Changed("hold-base") {
		p.HoldBase = b1500.Some(holdBase)
	}
	if err := p.Validate(); err != nil {
		return err
	}

	return withMainframe(cmd, func(m *analyzer.Mainframe, smu *analyzer.SMU) error {
		if err := m.EnableChannels(smu.Channel()); err != nil {
			return err
		}
		if err := smu.ConfigureTiming(p); err != nil {
			return err
		}

		trace, err := smu.SamplingTrace()
		if err != nil {
			return err
		}

		return printTrace(cmd, trace)
	})
}

func printTrace(cmd *cobra.Command, trace analyzer.Trace) error {
	out := cmd.OutOrStdout()

	if outputJSON {
		points := make([]samplePoint, len(trace.Values))
		for i, v := range trace.Values {
			points[i] = samplePoint{Time: trace.Time[i], Status: trace.Elements[i].Status.String()}
			if !math.IsNaN(v) {
				points[i].Value = &v
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(points)
	}

	for i, v := range trace.Values {
		fmt.Fprintf(out, "%g\t%g\t%s\n", trace.Time[i], v, trace.Elements[i].Status)
	}

	return nil
}
