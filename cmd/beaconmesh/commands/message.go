package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kmarsh/beaconmesh"
)

func GetSendCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <address> [message]",
		Short: "Send a request and print the reply",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runSend,
	}
	cmd.Flags().Duration("wait", time.Second, "how long to wait for a reply")
	return cmd
}

func runSend(cmd *cobra.Command, args []string) error {
	wait, err := cmd.Flags().GetDuration("wait")
	if err != nil {
		return err
	}

	var message interface{} = beaconmesh.Empty
	if len(args) == 2 {
		message = args[1]
	}

	reply, err := beaconmesh.SendMessageTo(args[0], message, wait)
	if err != nil {
		return err
	}
	return printResult(reply)
}

func GetListenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listen <address>",
		Short: "Wait for one request and echo it back as the reply",
		Args:  cobra.ExactArgs(1),
		RunE:  runListen,
	}
	cmd.Flags().Bool("autoreply", false, "reply with the empty marker automatically")
	cmd.Flags().Duration("wait", waitForever, "how long to wait for a request")
	return cmd
}

func runListen(cmd *cobra.Command, args []string) error {
	autoreply, err := cmd.Flags().GetBool("autoreply")
	if err != nil {
		return err
	}
	wait, err := cmd.Flags().GetDuration("wait")
	if err != nil {
		return err
	}

	message, err := beaconmesh.WaitForMessageFrom(args[0], wait, autoreply)
	if err != nil {
		return err
	}
	if message == nil {
		return printResult(nil)
	}

	if !autoreply {
		if err := beaconmesh.SendReplyTo(args[0], message); err != nil {
			return err
		}
	}
	return printResult(message)
}

// waitForever is a generous default for interactive CLI use; the
// library itself has no notion of "forever", only a caller-chosen
// duration.
const waitForever = 24 * time.Hour
