package beacon

import (
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/kmarsh/beaconmesh/transport"
	"github.com/kmarsh/beaconmesh/wire"
)

var (
	mu      sync.Mutex
	worker  *Worker
	started bool
	remote  bool
)

// Start is idempotent and safe to call from any primitive. The first
// successful call spawns the worker goroutine; later calls are no-ops.
// If construction fails once — some other process on this host already
// owns the beacon ports — the process is marked remote and does not
// retry until Stop resets that state: all RPC calls simply travel over
// loopback to that other beacon.
func Start() {
	mu.Lock()
	defer mu.Unlock()
	if started {
		return
	}
	started = true

	w, err := NewWorker()
	if err != nil {
		logrus.WithError(err).Debug("beacon: unable to bind, assuming a peer owns the beacon on this host")
		remote = true
		return
	}
	worker = w
	go w.Run()
}

// IsRemote reports whether this process failed to own the beacon and
// is instead talking to one hosted by another process on the host.
func IsRemote() bool {
	mu.Lock()
	defer mu.Unlock()
	return remote
}

// Stop shuts down a locally owned worker, if there is one, and clears
// the started and remote flags, so the next Start attempts to
// construct a worker again.
func Stop() {
	mu.Lock()
	w := worker
	worker = nil
	started = false
	remote = false
	mu.Unlock()

	if w != nil {
		w.Stop()
	}
}

// Advertise sends (name, port, ip) to the beacon and returns its
// acknowledgement string. The beacon records name and port only; the
// ip argument is not stored.
func Advertise(name string, port int, ip string) (string, error) {
	Start()
	reply, err := rpcCall(string(VerbAdvertise), name, port, ipArg(ip))
	if err != nil {
		return "", err
	}
	ack, _ := reply.(string)
	return ack, nil
}

// Unadvertise asks the beacon to remove (name, port); the ip argument
// is sent but not used.
func Unadvertise(name string, port int, ip string) error {
	Start()
	_, err := rpcCall(string(VerbUnadvertise), name, port, ipArg(ip))
	return err
}

// Discover blocks up to waitForSecs for at least one endpoint
// advertising name, returning ("", nil) on a miss — a discovery miss
// is not an error.
func Discover(name string, waitForSecs float64) (string, error) {
	Start()
	reply, err := rpcCall(string(VerbDiscover), name, waitForSecs)
	if err != nil {
		return "", err
	}
	if reply == nil {
		return "", nil
	}
	addr, _ := reply.(string)
	return addr, nil
}

func ipArg(ip string) interface{} {
	if ip == "" {
		return nil
	}
	return ip
}

// rpcCall issues one request/reply exchange against the control
// replier, local or remote.
func rpcCall(verb string, args ...interface{}) (interface{}, error) {
	sock, err := transport.NewRequester("localhost:" + strconv.Itoa(ControlPort))
	if err != nil {
		return nil, err
	}
	defer sock.Close()

	frame, err := wire.EncodeControlRequest(verb, args...)
	if err != nil {
		return nil, err
	}
	if err := sock.Send(frame); err != nil {
		return nil, err
	}

	replyFrames, err := sock.Recv()
	if err != nil {
		return nil, err
	}
	if len(replyFrames) == 0 {
		return nil, wire.ErrDecodeFailed
	}
	return wire.Decode(replyFrames[0])
}
