// Guardians command for the keeper CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	guardiansOwner  string
	guardiansList   []string
	guardiansQuorum int
)

var guardiansCmd = &cobra.Command{
	Use:   "guardians",
	Short: "Manage a property's guardian set",
}

var guardiansSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace guardians and quorum, resetting any vote in progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if guardiansOwner == "" {
			fail("guardians set", fmt.Errorf("--owner is required"))
		}

		backend, keeper, _, err := attachKeeper()
		if err != nil {
			failSys("guardians set", err)
		}
		defer backend.Detach()

		if err := keeper.SetGuardians(guardiansOwner, guardiansQuorum, guardiansList); err != nil {
			fail("guardians set", err)
		}

		fmt.Printf("Guardians replaced for %s: %d guardians, quorum %d\n",
			guardiansOwner, len(guardiansList), guardiansQuorum)
		return nil
	},
}

func init() {
	guardiansSetCmd.Flags().StringVar(&guardiansOwner, "owner", "", "owner address (required)")
	guardiansSetCmd.Flags().StringArrayVar(&guardiansList, "guardian", nil, "guardian address, repeatable")
	guardiansSetCmd.Flags().IntVar(&guardiansQuorum, "quorum", 0, "votes required to confirm lost access")

	guardiansCmd.AddCommand(guardiansSetCmd)
}
