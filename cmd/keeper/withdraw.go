// Withdrawal commands for the keeper CLI: fungible shares, deeds, and
// bundles.
package main

import (
	"fmt"

	"github.com/mesh-intelligence/heirloom/pkg/custody"
	"github.com/spf13/cobra"
)

var (
	withdrawOwner  string
	withdrawCaller string
	withdrawAssets []string

	withdrawDeedItems []string

	withdrawBundleCollection string
	withdrawBundleIDs        []string
)

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Withdraw a successor's share of fungible assets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if withdrawOwner == "" || withdrawCaller == "" {
			fail("withdraw", fmt.Errorf("--owner and --successor are required"))
		}

		backend, keeper, _, err := attachKeeper()
		if err != nil {
			failSys("withdraw", err)
		}
		defer backend.Detach()

		payouts, err := keeper.Withdraw(withdrawOwner, withdrawCaller, withdrawAssets)
		if err != nil {
			fail("withdraw", err)
		}

		printResult(payouts, func() {
			for _, p := range payouts {
				if p.Skipped {
					fmt.Printf("  %s: already claimed\n", p.Asset)
					continue
				}
				fmt.Printf("  %s: %d\n", p.Asset, p.Amount)
			}
		})
		return nil
	},
}

var withdrawDeedsCmd = &cobra.Command{
	Use:   "withdraw-deeds",
	Short: "Withdraw deed-class assets as the designated heir",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if withdrawOwner == "" || withdrawCaller == "" {
			fail("withdraw-deeds", fmt.Errorf("--owner and --successor are required"))
		}
		items := make([]custody.DeedItem, 0, len(withdrawDeedItems))
		for _, raw := range withdrawDeedItems {
			collection, tokenID, ok := cutDeed(raw)
			if !ok {
				fail("withdraw-deeds", fmt.Errorf("deed %q: want collection:token-id", raw))
			}
			items = append(items, custody.DeedItem{Collection: collection, TokenID: tokenID})
		}

		backend, keeper, _, err := attachKeeper()
		if err != nil {
			failSys("withdraw-deeds", err)
		}
		defer backend.Detach()

		if err := keeper.WithdrawDeeds(withdrawOwner, withdrawCaller, items); err != nil {
			fail("withdraw-deeds", err)
		}

		fmt.Printf("Transferred %d deeds to %s\n", len(items), withdrawCaller)
		return nil
	},
}

var withdrawBundlesCmd = &cobra.Command{
	Use:   "withdraw-bundles",
	Short: "Withdraw bundle-class assets as the designated heir",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if withdrawOwner == "" || withdrawCaller == "" || withdrawBundleCollection == "" {
			fail("withdraw-bundles", fmt.Errorf("--owner, --successor, and --collection are required"))
		}

		backend, keeper, _, err := attachKeeper()
		if err != nil {
			failSys("withdraw-bundles", err)
		}
		defer backend.Detach()

		if err := keeper.WithdrawBundles(withdrawOwner, withdrawCaller, withdrawBundleCollection, withdrawBundleIDs); err != nil {
			fail("withdraw-bundles", err)
		}

		fmt.Printf("Transferred %d bundle ids to %s\n", len(withdrawBundleIDs), withdrawCaller)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{withdrawCmd, withdrawDeedsCmd, withdrawBundlesCmd} {
		c.Flags().StringVar(&withdrawOwner, "owner", "", "owner address (required)")
		c.Flags().StringVar(&withdrawCaller, "successor", "", "claiming successor address (required)")
	}
	withdrawCmd.Flags().StringArrayVar(&withdrawAssets, "asset", nil, "asset name, repeatable")
	withdrawDeedsCmd.Flags().StringArrayVar(&withdrawDeedItems, "deed", nil, "deed as collection:token-id, repeatable")
	withdrawBundlesCmd.Flags().StringVar(&withdrawBundleCollection, "collection", "", "bundle collection (required)")
	withdrawBundlesCmd.Flags().StringArrayVar(&withdrawBundleIDs, "id", nil, "bundle token id, repeatable")
}
