// Fee-collector administration for the keeper CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	feeCollectorCaller string
	feeCollectorAddr   string
)

var feeCollectorCmd = &cobra.Command{
	Use:   "fee-collector",
	Short: "Show or change the fee recipient address",
}

var feeCollectorGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current fee recipient",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, keeper, _, err := attachKeeper()
		if err != nil {
			failSys("fee-collector get", err)
		}
		defer backend.Detach()

		addr, err := keeper.FeeCollector()
		if err != nil {
			fail("fee-collector get", err)
		}

		printResult(map[string]any{"fee_collector": addr}, func() {
			if addr == "" {
				fmt.Println("No fee collector configured; fees are forfeit")
			} else {
				fmt.Println("Fee collector:", addr)
			}
		})
		return nil
	},
}

var feeCollectorSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the fee recipient (administrator only)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if feeCollectorCaller == "" || feeCollectorAddr == "" {
			fail("fee-collector set", fmt.Errorf("--caller and --address are required"))
		}

		backend, keeper, _, err := attachKeeper()
		if err != nil {
			failSys("fee-collector set", err)
		}
		defer backend.Detach()

		if err := keeper.SetFeeCollector(feeCollectorCaller, feeCollectorAddr); err != nil {
			fail("fee-collector set", err)
		}

		fmt.Println("Fee collector set to", feeCollectorAddr)
		return nil
	},
}

func init() {
	feeCollectorSetCmd.Flags().StringVar(&feeCollectorCaller, "caller", "", "administrator address (required)")
	feeCollectorSetCmd.Flags().StringVar(&feeCollectorAddr, "address", "", "new fee recipient (required)")
	feeCollectorCmd.AddCommand(feeCollectorGetCmd)
	feeCollectorCmd.AddCommand(feeCollectorSetCmd)
}
