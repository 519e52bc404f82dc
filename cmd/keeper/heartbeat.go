// Heartbeat command for the keeper CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var heartbeatOwner string

var heartbeatCmd = &cobra.Command{
	Use:   "heartbeat",
	Short: "Record owner activity, extending the lock one period",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if heartbeatOwner == "" {
			fail("heartbeat", fmt.Errorf("--owner is required"))
		}

		backend, keeper, _, err := attachKeeper()
		if err != nil {
			failSys("heartbeat", err)
		}
		defer backend.Detach()

		p, err := keeper.Heartbeat(heartbeatOwner)
		if err != nil {
			fail("heartbeat", err)
		}

		printResult(p, func() {
			fmt.Println("Heartbeat recorded for", p.Owner)
			fmt.Println("  expires:", p.ExpirationTime.Format("2006-01-02 15:04:05"))
		})
		return nil
	},
}

func init() {
	heartbeatCmd.Flags().StringVar(&heartbeatOwner, "owner", "", "owner address (required)")
}
