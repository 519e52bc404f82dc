// Status command for the keeper CLI.
package main

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/heirloom/pkg/types"
	"github.com/spf13/cobra"
)

var statusOwner string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a property's derived state and record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if statusOwner == "" {
			fail("status", fmt.Errorf("--owner is required"))
		}

		backend, keeper, _, err := attachKeeper()
		if err != nil {
			failSys("status", err)
		}
		defer backend.Detach()

		state, err := keeper.State(statusOwner)
		if err != nil {
			fail("status", err)
		}

		p, err := keeper.Property(statusOwner)
		if errors.Is(err, types.ErrNotFound) {
			printResult(map[string]any{"state": state.String()}, func() {
				fmt.Println("state:", state)
			})
			return nil
		}
		if err != nil {
			fail("status", err)
		}

		printResult(map[string]any{"state": state.String(), "property": p}, func() {
			fmt.Println("state:  ", state)
			fmt.Println("expires:", p.ExpirationTime.Format("2006-01-02 15:04:05"))
			fmt.Printf("successors: %d  deed heir: %q  bundle heir: %q\n",
				len(p.Successors.Shares), p.Successors.DeedHeir, p.Successors.BundleHeir)
			if len(p.Tally.Guardians) > 0 {
				fmt.Printf("guardians: %d  quorum: %d  votes: %d\n",
					len(p.Tally.Guardians), p.Tally.Quorum, p.Tally.VoteCount())
				if voters := p.Tally.Voters(); len(voters) > 0 {
					fmt.Println("voted:", voters)
				}
			}
		})
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusOwner, "owner", "", "owner address (required)")
}
