package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kmarsh/beaconmesh"
)

func GetDiscoverCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover <name>",
		Short: "Discover an advertised service by name",
		Args:  cobra.ExactArgs(1),
		RunE:  runDiscover,
	}
	cmd.Flags().Duration("wait", 5*time.Second, "how long to wait for a matching advertisement")
	return cmd
}

func runDiscover(cmd *cobra.Command, args []string) error {
	wait, err := cmd.Flags().GetDuration("wait")
	if err != nil {
		return err
	}

	address, err := beaconmesh.Discover(args[0], wait.Seconds())
	if err != nil {
		return err
	}
	if address == "" {
		return printResult(nil)
	}
	return printResult(address)
}
