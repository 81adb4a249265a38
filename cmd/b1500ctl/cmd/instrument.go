package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/go-b1500/analyzer"
)

var idnCmd = &cobra.Command{
	Use:   "idn",
	Short: "Print the instrument identification",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMainframe(cmd, func(m *analyzer.Mainframe, _ *analyzer.SMU) error {
			idn, err := m.Identify()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), idn)

			return nil
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the instrument to its initial settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMainframe(cmd, func(m *analyzer.Mainframe, _ *analyzer.SMU) error {
			return m.Reset()
		})
	},
}

var errorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "Drain and print the instrument error queue",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		m, _, err := openMainframe(cmd.Context())
		if err != nil {
			return err
		}
		defer m.Close()

		if err := m.Errors(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "no error")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(idnCmd, resetCmd, errorsCmd)
}
