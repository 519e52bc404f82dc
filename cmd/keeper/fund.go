// Fund and balance commands for the keeper CLI, operating on the
// simulated ledger.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	fundOwner      string
	fundAsset      string
	fundAmount     uint64
	fundDeed       string
	fundCollection string
	fundBundleID   string

	balanceOwner string
	balanceAsset string
)

var fundCmd = &cobra.Command{
	Use:   "fund",
	Short: "Credit simulated assets to an account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if fundOwner == "" {
			fail("fund", fmt.Errorf("--owner is required"))
		}

		backend, _, ledger, err := attachKeeper()
		if err != nil {
			failSys("fund", err)
		}
		defer backend.Detach()

		switch {
		case fundDeed != "":
			collection, tokenID, ok := cutDeed(fundDeed)
			if !ok {
				fail("fund", fmt.Errorf("deed %q: want collection:token-id", fundDeed))
			}
			if err := ledger.GrantDeed(fundOwner, collection, tokenID); err != nil {
				fail("fund", err)
			}
			fmt.Printf("Granted deed %s to %s\n", fundDeed, fundOwner)
		case fundCollection != "" && fundBundleID != "":
			if err := ledger.MintBundle(fundOwner, fundCollection, fundBundleID, fundAmount); err != nil {
				fail("fund", err)
			}
			fmt.Printf("Minted %d of bundle %s/%s to %s\n", fundAmount, fundCollection, fundBundleID, fundOwner)
		case fundAsset != "":
			if err := ledger.Mint(fundOwner, fundAsset, fundAmount); err != nil {
				fail("fund", err)
			}
			fmt.Printf("Minted %d %s to %s\n", fundAmount, fundAsset, fundOwner)
		default:
			fail("fund", fmt.Errorf("one of --asset, --deed, or --collection with --id is required"))
		}
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show an account's simulated balance of an asset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if balanceOwner == "" || balanceAsset == "" {
			fail("balance", fmt.Errorf("--owner and --asset are required"))
		}

		backend, _, ledger, err := attachKeeper()
		if err != nil {
			failSys("balance", err)
		}
		defer backend.Detach()

		amount, err := ledger.BalanceOf(balanceOwner, balanceAsset)
		if err != nil {
			fail("balance", err)
		}

		printResult(map[string]any{"owner": balanceOwner, "asset": balanceAsset, "amount": amount}, func() {
			fmt.Printf("%s holds %d %s\n", balanceOwner, amount, balanceAsset)
		})
		return nil
	},
}

func init() {
	fundCmd.Flags().StringVar(&fundOwner, "owner", "", "account to credit (required)")
	fundCmd.Flags().StringVar(&fundAsset, "asset", "", "fungible asset name")
	fundCmd.Flags().Uint64Var(&fundAmount, "amount", 0, "amount to credit")
	fundCmd.Flags().StringVar(&fundDeed, "deed", "", "deed as collection:token-id")
	fundCmd.Flags().StringVar(&fundCollection, "collection", "", "bundle collection")
	fundCmd.Flags().StringVar(&fundBundleID, "id", "", "bundle token id")

	balanceCmd.Flags().StringVar(&balanceOwner, "owner", "", "account to query (required)")
	balanceCmd.Flags().StringVar(&balanceAsset, "asset", "", "fungible asset name (required)")
}
