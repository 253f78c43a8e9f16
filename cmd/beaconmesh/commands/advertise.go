package commands

import (
	"github.com/spf13/cobra"

	"github.com/kmarsh/beaconmesh"
)

func GetAdvertiseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advertise <name> <address>",
		Short: "Advertise a named service at an address",
		Args:  cobra.ExactArgs(2),
		RunE:  runAdvertise,
	}
	return cmd
}

func runAdvertise(cmd *cobra.Command, args []string) error {
	ack, err := beaconmesh.Advertise(args[0], args[1])
	if err != nil {
		return err
	}
	return printResult(ack)
}

func GetUnadvertiseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unadvertise <name> <address>",
		Short: "Withdraw a previously advertised service",
		Args:  cobra.ExactArgs(2),
		RunE:  runUnadvertise,
	}
	return cmd
}

func runUnadvertise(cmd *cobra.Command, args []string) error {
	if err := beaconmesh.Unadvertise(args[0], args[1]); err != nil {
		return err
	}
	return printResult("ok")
}
