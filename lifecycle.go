package beaconmesh

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/kmarsh/beaconmesh/beacon"
)

// shutdownCoordinator replaces the original's implicit atexit hooks
// (REDESIGN FLAGS: "Exit hooks for unadvertise") with an explicit,
// in-process LIFO stack of callbacks. Advertise pushes an Unadvertise
// callback onto it; Shutdown runs the stack in LIFO order and swallows
// every error, since the beacon may already have stopped by the time
// shutdown runs.
type shutdownCoordinator struct {
	mu    sync.Mutex
	hooks []func()
}

var shutdown = &shutdownCoordinator{}

func (c *shutdownCoordinator) register(hook func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, hook)
}

func (c *shutdownCoordinator) runAll() {
	c.mu.Lock()
	hooks := c.hooks
	c.hooks = nil
	c.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

// Shutdown runs every registered shutdown callback (in LIFO order) and
// stops the locally owned beacon, if any, waiting for the beacon loop
// to finish its current cycle. Call it once, late in process teardown.
func Shutdown() {
	shutdown.runAll()
	beacon.Stop()
}

func logUnadvertiseOnShutdown(name, address string) func() {
	return func() {
		if err := Unadvertise(name, address); err != nil {
			logrus.WithError(err).Debug("beaconmesh: unadvertise during shutdown failed, ignoring")
		}
	}
}
