// Package beacon implements the discovery beacon: a background worker
// that broadcasts this process's advertisements on the LAN, absorbs
// advertisements from peers, and serves the local control RPC channel
// that the messaging primitives use to advertise, unadvertise, and
// discover services.
//
// This is a generalization of the teacher's pkg/beacon (a single-UDP-
// socket, SO_BROADCAST-based sibling of its multicast beacon/beacon.go)
// collapsed from two goroutines (listen + signal) into the single
// three-phase cycle spec.md requires, so that broadcasting happens
// before receiving within one tick and a same-host advertise is
// visible to a same-host discover in one cycle.
package beacon

import (
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kmarsh/beaconmesh/netutil"
	"github.com/kmarsh/beaconmesh/transport"
	"github.com/kmarsh/beaconmesh/wire"
)

const (
	// ControlPort is the fixed port the control RPC replier binds.
	ControlPort = 9998
	// BroadcastPort is the fixed UDP port advertisements travel over.
	BroadcastPort = 9999

	broadcastAddr = "255.255.255.255"

	// DefaultInterval is how often the worker re-broadcasts its own
	// advertisements.
	DefaultInterval = 2 * time.Second
	// DefaultFinderTimeout bounds each poll of the UDP socket for
	// incoming advertisements.
	DefaultFinderTimeout = 500 * time.Millisecond

	// discoverPollInterval bounds how long doDiscover blocks between
	// checks of the discovered set.
	discoverPollInterval = 50 * time.Millisecond
)

// Worker owns the advertisement table, the discovered table, the UDP
// broadcast socket, and the control RPC replier. There is exactly one
// Worker per process that successfully binds both sockets.
type Worker struct {
	mu             sync.Mutex
	advertisements map[string]map[int]struct{}
	discovered     map[string]map[netutil.Endpoint]struct{}

	udpConn *net.UDPConn
	control *transport.Socket

	Interval      time.Duration
	FinderTimeout time.Duration

	stopCh chan struct{}
	doneCh chan struct{}

	lastBroadcast time.Time
}

// NewWorker binds the UDP broadcast socket and the control RPC
// replier. Both binds must succeed; if either fails the caller (Start,
// in beacon.go) flips the process into remote mode rather than
// retrying.
func NewWorker() (*Worker, error) {
	udpConn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: BroadcastPort})
	if err != nil {
		return nil, ErrBindFailed
	}

	control, err := transport.NewReplier("*:" + strconv.Itoa(ControlPort))
	if err != nil {
		udpConn.Close()
		return nil, ErrBindFailed
	}

	w := &Worker{
		advertisements: make(map[string]map[int]struct{}),
		discovered:     make(map[string]map[netutil.Endpoint]struct{}),
		udpConn:        udpConn,
		control:        control,
		Interval:       DefaultInterval,
		FinderTimeout:  DefaultFinderTimeout,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
	return w, nil
}

// Run executes the worker's loop until Stop is called. It is meant to
// be started with `go w.Run()`; the worker goroutine is not a daemon
// in the OS sense, and Stop waits for it to finish its current cycle
// before closing the sockets.
func (w *Worker) Run() {
	defer close(w.doneCh)

	logrus.Info("beacon: starting discovery")
	for {
		select {
		case <-w.stopCh:
			logrus.Info("beacon: ending discovery")
			return
		default:
		}

		w.drainControl()

		if time.Since(w.lastBroadcast) > w.Interval {
			w.broadcastAdvertisements()
			w.lastBroadcast = time.Now()
		}

		w.receiveAdvertisements()
	}
}

// Stop signals the loop to exit at its next iteration and releases the
// sockets once it has.
func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.doneCh
	w.control.Close()
	w.udpConn.Close()
}

// drainControl dispatches at most one pending control RPC request,
// non-blocking.
func (w *Worker) drainControl() {
	poller := transport.NewPoller()
	poller.Add(w.control)
	ready, err := poller.Wait(0)
	if err != nil || len(ready) == 0 {
		return
	}

	frames, err := w.control.Recv()
	if err != nil {
		return
	}

	reply := w.dispatch(frames)
	replyBytes, err := wire.Encode(reply)
	if err != nil {
		replyBytes, _ = wire.Encode(nil)
	}
	if err := w.control.Send(replyBytes); err != nil {
		logrus.WithError(err).Warn("beacon: failed to reply to control request")
	}
}

// broadcastAdvertisements sends one UDP datagram per (name, port) this
// process advertises.
func (w *Worker) broadcastAdvertisements() {
	w.mu.Lock()
	snapshot := make(map[string][]int, len(w.advertisements))
	for name, ports := range w.advertisements {
		for port := range ports {
			snapshot[name] = append(snapshot[name], port)
		}
	}
	w.mu.Unlock()

	dest := &net.UDPAddr{IP: net.ParseIP(broadcastAddr), Port: BroadcastPort}
	for name, ports := range snapshot {
		for _, port := range ports {
			frame, err := wire.EncodeAdvertisement(name, port)
			if err != nil {
				logrus.WithError(err).Warn("beacon: advertisement too large to broadcast")
				continue
			}
			logrus.Debugf("beacon: advertising %s on %d", name, port)
			if _, err := w.udpConn.WriteToUDP(frame, dest); err != nil {
				logrus.WithError(err).Warn("beacon: failed to broadcast advertisement")
			}
		}
	}
}

// receiveAdvertisements polls the UDP socket for FinderTimeout and
// absorbs at most one datagram per call.
func (w *Worker) receiveAdvertisements() {
	w.udpConn.SetReadDeadline(time.Now().Add(w.FinderTimeout))

	buf := make([]byte, wire.MaxAdvertisementSize)
	n, addr, err := w.udpConn.ReadFromUDP(buf)
	if err != nil {
		return
	}

	name, port, err := wire.DecodeAdvertisement(buf[:n])
	if err != nil {
		logrus.WithError(err).Debug("beacon: dropped malformed advertisement")
		return
	}

	endpoint := netutil.Endpoint{IP: addr.IP.String(), Port: port}
	logrus.Debugf("beacon: advert received from %s for %s on %d", endpoint.IP, name, port)

	w.mu.Lock()
	if w.discovered[name] == nil {
		w.discovered[name] = make(map[netutil.Endpoint]struct{})
	}
	w.discovered[name][endpoint] = struct{}{}
	w.mu.Unlock()
}
