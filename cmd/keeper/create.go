// Create command for the keeper CLI.
package main

import (
	"fmt"

	"github.com/mesh-intelligence/heirloom/pkg/types"
	"github.com/spf13/cobra"
)

var (
	createOwner      string
	createSuccessors []string
	createDeedHeir   string
	createBundleHeir string
	createGuardians  []string
	createQuorum     int
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a property with successors and optional guardians",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if createOwner == "" {
			fail("create", fmt.Errorf("--owner is required"))
		}
		shares, err := parseShares(createSuccessors)
		if err != nil {
			fail("create", err)
		}

		backend, keeper, _, err := attachKeeper()
		if err != nil {
			failSys("create", err)
		}
		defer backend.Detach()

		successors := types.SuccessorSet{
			Shares:     shares,
			DeedHeir:   createDeedHeir,
			BundleHeir: createBundleHeir,
		}
		p, err := keeper.CreateProperty(createOwner, successors, createQuorum, createGuardians)
		if err != nil {
			fail("create", err)
		}

		printResult(p, func() {
			fmt.Println("Property created for", p.Owner)
			fmt.Println("  expires:  ", p.ExpirationTime.Format("2006-01-02 15:04:05"))
			fmt.Println("  successors:", len(p.Successors.Shares))
			fmt.Println("  guardians: ", len(p.Tally.Guardians), "quorum", p.Tally.Quorum)
		})
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createOwner, "owner", "", "owner address (required)")
	createCmd.Flags().StringArrayVar(&createSuccessors, "successor", nil, "successor as address:share, repeatable; shares sum to 10000")
	createCmd.Flags().StringVar(&createDeedHeir, "deed-heir", "", "sole recipient of deed-class assets")
	createCmd.Flags().StringVar(&createBundleHeir, "bundle-heir", "", "sole recipient of bundle-class assets")
	createCmd.Flags().StringArrayVar(&createGuardians, "guardian", nil, "guardian address, repeatable")
	createCmd.Flags().IntVar(&createQuorum, "quorum", 0, "votes required to confirm lost access")
}
