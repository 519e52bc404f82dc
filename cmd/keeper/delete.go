// Delete command for the keeper CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteOwner string

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a property before it unlocks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if deleteOwner == "" {
			fail("delete", fmt.Errorf("--owner is required"))
		}

		backend, keeper, _, err := attachKeeper()
		if err != nil {
			failSys("delete", err)
		}
		defer backend.Detach()

		if err := keeper.DeleteProperty(deleteOwner); err != nil {
			fail("delete", err)
		}

		fmt.Println("Property deleted for", deleteOwner)
		return nil
	},
}

func init() {
	deleteCmd.Flags().StringVar(&deleteOwner, "owner", "", "owner address (required)")
}
