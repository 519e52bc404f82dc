// Events command for the keeper CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var eventsOwner string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List the recorded events for a property, oldest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if eventsOwner == "" {
			fail("events", fmt.Errorf("--owner is required"))
		}

		backend, keeper, _, err := attachKeeper()
		if err != nil {
			failSys("events", err)
		}
		defer backend.Detach()

		events, err := keeper.Events(eventsOwner)
		if err != nil {
			fail("events", err)
		}

		printResult(events, func() {
			for _, e := range events {
				fmt.Printf("%s  %-22s  actor=%s\n",
					e.CreatedAt.Format("2006-01-02 15:04:05"), e.Kind, e.Actor)
			}
			if len(events) == 0 {
				fmt.Println("no events")
			}
		})
		return nil
	},
}

func init() {
	eventsCmd.Flags().StringVar(&eventsOwner, "owner", "", "owner address (required)")
}
