// Successors command for the keeper CLI.
package main

import (
	"fmt"

	"github.com/mesh-intelligence/heirloom/pkg/types"
	"github.com/spf13/cobra"
)

var (
	successorsOwner      string
	successorsShares     []string
	successorsDeedHeir   string
	successorsBundleHeir string
)

var successorsCmd = &cobra.Command{
	Use:   "successors",
	Short: "Manage a property's succession registry",
}

var successorsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace the succession registry wholesale",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if successorsOwner == "" {
			fail("successors set", fmt.Errorf("--owner is required"))
		}
		shares, err := parseShares(successorsShares)
		if err != nil {
			fail("successors set", err)
		}

		backend, keeper, _, err := attachKeeper()
		if err != nil {
			failSys("successors set", err)
		}
		defer backend.Detach()

		successors := types.SuccessorSet{
			Shares:     shares,
			DeedHeir:   successorsDeedHeir,
			BundleHeir: successorsBundleHeir,
		}
		if err := keeper.SetSuccessors(successorsOwner, successors); err != nil {
			fail("successors set", err)
		}

		printResult(successors, func() {
			fmt.Println("Successors replaced for", successorsOwner)
		})
		return nil
	},
}

func init() {
	successorsSetCmd.Flags().StringVar(&successorsOwner, "owner", "", "owner address (required)")
	successorsSetCmd.Flags().StringArrayVar(&successorsShares, "successor", nil, "successor as address:share, repeatable; shares sum to 10000")
	successorsSetCmd.Flags().StringVar(&successorsDeedHeir, "deed-heir", "", "sole recipient of deed-class assets")
	successorsSetCmd.Flags().StringVar(&successorsBundleHeir, "bundle-heir", "", "sole recipient of bundle-class assets")

	successorsCmd.AddCommand(successorsSetCmd)
}
