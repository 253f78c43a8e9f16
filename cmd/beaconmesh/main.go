package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/kmarsh/beaconmesh/cmd/beaconmesh/commands"
)

func main() {
	if err := commands.GetRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("beaconmesh: command failed")
		os.Exit(1)
	}
}
