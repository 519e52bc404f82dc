// Version command for the keeper CLI.
package main

import (
	"fmt"

	"github.com/mesh-intelligence/heirloom/pkg/heirloom"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the keeper version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("keeper", heirloom.Version)
	},
}
