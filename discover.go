package beaconmesh

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/kmarsh/beaconmesh/beacon"
	"github.com/kmarsh/beaconmesh/netutil"
)

// Advertise announces name at address (either "ip:port" or a bare
// "port", which resolves to this host's routable IP) on the local
// beacon and returns the beacon's acknowledgement string. A shutdown
// hook is registered so Shutdown() unadvertises it automatically.
func Advertise(name, address string) (string, error) {
	ip, portStr := netutil.SplitAddress(address)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	ack, err := beacon.Advertise(name, port, ip)
	if err != nil {
		return "", err
	}
	shutdown.register(logUnadvertiseOnShutdown(name, address))
	logrus.WithField("name", name).WithField("address", address).Debug("beaconmesh: advertised")
	return ack, nil
}

// Unadvertise withdraws a previously advertised (name, address) pair.
// Unadvertising something never advertised is logged, not an error.
func Unadvertise(name, address string) error {
	ip, portStr := netutil.SplitAddress(address)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	if err := beacon.Unadvertise(name, port, ip); err != nil {
		return err
	}
	logrus.WithField("name", name).WithField("address", address).Debug("beaconmesh: unadvertised")
	return nil
}

// Discover waits up to waitForSecs for at least one peer advertising
// name, returning ("", nil) on a miss. A negative waitForSecs performs
// exactly one lookup.
func Discover(name string, waitForSecs float64) (string, error) {
	address, err := beacon.Discover(name, waitForSecs)
	if err != nil {
		return "", err
	}
	if address == "" {
		logrus.WithField("name", name).Debug("beaconmesh: discover miss")
	}
	return address, nil
}
