// Vote command for the keeper CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	voteOwner string
	voteVoter string
)

var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "Cast a guardian vote confirming the owner lost access",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if voteOwner == "" || voteVoter == "" {
			fail("vote", fmt.Errorf("--owner and --voter are required"))
		}

		backend, keeper, _, err := attachKeeper()
		if err != nil {
			failSys("vote", err)
		}
		defer backend.Detach()

		p, err := keeper.CastVote(voteOwner, voteVoter)
		if err != nil {
			fail("vote", err)
		}

		printResult(p.Tally, func() {
			fmt.Printf("Vote recorded: %d/%d\n", p.Tally.VoteCount(), p.Tally.Quorum)
			if !p.Tally.ConfirmationTime.IsZero() {
				fmt.Println("  confirmation at:", p.Tally.ConfirmationTime.Format("2006-01-02 15:04:05"))
			}
		})
		return nil
	},
}

func init() {
	voteCmd.Flags().StringVar(&voteOwner, "owner", "", "owner address (required)")
	voteCmd.Flags().StringVar(&voteVoter, "voter", "", "guardian address casting the vote (required)")
}
