package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kmarsh/beaconmesh"
)

func GetPublishCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish <address> <topic> [data]",
		Short: "Publish a notification under a topic",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  runPublish,
	}
	return cmd
}

func runPublish(cmd *cobra.Command, args []string) error {
	var data interface{} = beaconmesh.Empty
	if len(args) == 3 {
		data = args[2]
	}
	if err := beaconmesh.SendNotificationTo(args[0], args[1], data); err != nil {
		return err
	}
	return printResult("ok")
}

func GetSubscribeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscribe <address>... <topic>",
		Short: "Wait for one notification under a topic from one or more addresses",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runSubscribe,
	}
	cmd.Flags().Duration("wait", 5*time.Second, "how long to wait for a notification")
	return cmd
}

func runSubscribe(cmd *cobra.Command, args []string) error {
	wait, err := cmd.Flags().GetDuration("wait")
	if err != nil {
		return err
	}

	topic := args[len(args)-1]
	addresses := args[:len(args)-1]

	var addrArg interface{} = addresses
	if len(addresses) == 1 {
		addrArg = addresses[0]
	}

	gotTopic, value, err := beaconmesh.WaitForNotificationFrom(addrArg, topic, wait)
	if err != nil {
		return err
	}
	if gotTopic == "" {
		return printResult(nil)
	}
	return printResult(map[string]interface{}{
		"topic": gotTopic,
		"value": value,
	})
}
