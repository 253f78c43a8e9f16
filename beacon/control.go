package beacon

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kmarsh/beaconmesh/netutil"
	"github.com/kmarsh/beaconmesh/wire"
)

// decodeControlFrame extracts the verb and arguments from the raw
// frames a control replier received. The control RPC frame is a
// single JSON-encoded [verb, arg1, ...] array.
func decodeControlFrame(frames [][]byte) (verb string, args []interface{}, err error) {
	if len(frames) == 0 {
		return "", nil, wire.ErrDecodeFailed
	}
	return wire.DecodeControlRequest(frames[0])
}

func parsePort(s string) (int, error) {
	return strconv.Atoi(s)
}

// Verb is one of the control RPC verbs this beacon understands. This
// is the explicit tagged-union dispatch REDESIGN FLAGS calls for,
// replacing the original's method-name-prefix reflection — it
// generalizes the teacher's own switch-based command dispatch in
// node.go's handler().
type Verb string

const (
	VerbAdvertise   Verb = "advertise"
	VerbUnadvertise Verb = "unadvertise"
	VerbDiscover    Verb = "discover"
)

// dispatch resolves the verb (case-insensitively) against the table
// below and runs it with the request's arguments, returning the value
// to encode as the RPC reply.
func (w *Worker) dispatch(frames [][]byte) interface{} {
	verb, args, err := decodeControlFrame(frames)
	if err != nil {
		logrus.WithError(err).Warn("beacon: malformed control request")
		return nil
	}

	handler, ok := dispatchTable[Verb(strings.ToLower(verb))]
	if !ok {
		logrus.WithError(fmt.Errorf("%w: %q", ErrUnimplementedVerb, verb)).Warn("beacon: control request failed")
		return nil
	}
	return handler(w, args)
}

var dispatchTable = map[Verb]func(*Worker, []interface{}) interface{}{
	VerbAdvertise:   (*Worker).handleAdvertise,
	VerbUnadvertise: (*Worker).handleUnadvertise,
	VerbDiscover:    (*Worker).handleDiscover,
}

func argString(args []interface{}, i int) string {
	if i >= len(args) || args[i] == nil {
		return ""
	}
	s, _ := args[i].(string)
	return s
}

func argInt(args []interface{}, i int) int {
	if i >= len(args) {
		return 0
	}
	switch v := args[i].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		// ports sometimes travel as strings from split-address text
		n, _ := parsePort(v)
		return n
	}
	return 0
}

func argFloat(args []interface{}, i int, fallback float64) float64 {
	if i >= len(args) {
		return fallback
	}
	f, ok := args[i].(float64)
	if !ok {
		return fallback
	}
	return f
}

func (w *Worker) handleAdvertise(args []interface{}) interface{} {
	name := argString(args, 0)
	port := argInt(args, 1)
	return w.doAdvertise(name, port)
}

func (w *Worker) handleUnadvertise(args []interface{}) interface{} {
	name := argString(args, 0)
	port := argInt(args, 1)
	w.doUnadvertise(name, port)
	return nil
}

func (w *Worker) handleDiscover(args []interface{}) interface{} {
	name := argString(args, 0)
	waitForSecs := argFloat(args, 1, -1)
	endpoint, ok := w.doDiscover(name, waitForSecs)
	if !ok {
		return nil
	}
	return endpoint.String()
}

// doAdvertise inserts (name, port) into the advertisement table and
// returns the original's ack string.
func (w *Worker) doAdvertise(name string, port int) string {
	logrus.Debugf("beacon: advertise %s on %d", name, port)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.advertisements[name] == nil {
		w.advertisements[name] = make(map[int]struct{})
	}
	w.advertisements[name][port] = struct{}{}

	return name + "!!"
}

// doUnadvertise removes (name, port), warning if it wasn't being
// advertised. The whole read-then-mutate sequence happens under one
// lock acquisition — the original released and reacquired the lock
// between reading the port set and mutating it, leaving a window for
// another goroutine to race it; this port holds the lock across both.
func (w *Worker) doUnadvertise(name string, port int) {
	logrus.Debugf("beacon: unadvertise %s on %d", name, port)

	w.mu.Lock()
	defer w.mu.Unlock()

	ports := w.advertisements[name]
	if _, ok := ports[port]; !ok {
		logrus.Warnf("beacon: not currently advertising %s on %d", name, port)
		return
	}

	delete(ports, port)
	if len(ports) == 0 {
		delete(w.advertisements, name)
	}
}

// doDiscover polls the discovered table until it has at least one
// endpoint for name or the deadline passes. A negative waitForSecs
// means "no wait": the deadline (now + a negative duration) is
// already past, so the loop performs exactly one lookup before
// returning — made explicit here rather than left as an accident of
// signed-duration arithmetic.
func (w *Worker) doDiscover(name string, waitForSecs float64) (netutil.Endpoint, bool) {
	logrus.Debugf("beacon: discover %s waiting for %v secs", name, waitForSecs)

	if waitForSecs < 0 {
		return w.lookupDiscovered(name)
	}

	deadline := time.Now().Add(time.Duration(waitForSecs * float64(time.Second)))
	for {
		if endpoint, ok := w.lookupDiscovered(name); ok {
			return endpoint, true
		}
		if time.Now().After(deadline) {
			logrus.Warnf("beacon: %s not discovered after %v secs", name, waitForSecs)
			return netutil.Endpoint{}, false
		}
		time.Sleep(discoverPollInterval)
	}
}

func (w *Worker) lookupDiscovered(name string) (netutil.Endpoint, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	endpoints := w.discovered[name]
	if len(endpoints) == 0 {
		return netutil.Endpoint{}, false
	}
	return pickRandom(endpoints), true
}

func pickRandom(endpoints map[netutil.Endpoint]struct{}) netutil.Endpoint {
	choices := make([]netutil.Endpoint, 0, len(endpoints))
	for e := range endpoints {
		choices = append(choices, e)
	}
	return choices[rand.Intn(len(choices))]
}
