package commands

import "github.com/spf13/cobra"

func GetRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "beaconmesh",
		Short: "beaconmesh is a command line tool for zero-configuration LAN peer messaging.",
		Long: `beaconmesh advertises and discovers named services on the local network
and exchanges messages with them over request/reply and publish/subscribe
primitives. There is no configuration file and no central broker: every
process running this tool is both a discovery beacon and a message peer.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		GetAdvertiseCommand(),
		GetUnadvertiseCommand(),
		GetDiscoverCommand(),
		GetSendCommand(),
		GetListenCommand(),
		GetPublishCommand(),
		GetSubscribeCommand(),
	)

	return cmd
}
