// Package beaconmesh is a zero-configuration peer messaging layer for
// LAN-local processes. A process asks the package to advertise a named
// service at a network address, or to discover a service by name and
// then exchange messages with it over four primitives layered on
// github.com/pebbe/zmq4: request/reply (client and server side) and
// publish/subscribe (publisher and subscriber side).
//
// Discovery runs on a lazily-started background beacon (package
// beacon) that broadcasts this process's advertisements on the LAN and
// absorbs advertisements from peers. There is no authentication, no
// transport encryption, no persistence of advertisements across
// restarts, and no WAN/routed discovery — only link-local broadcast.
package beaconmesh

import (
	"github.com/kmarsh/beaconmesh/wire"
)

// Empty is the distinguished zero-payload sentinel: sending it sends
// the empty encoding, and a receiver that receives it observes Empty,
// not nil. nil/JSON-null means a real message whose value is null;
// Empty means no content at all.
var Empty = wire.Empty

// IsEmptyValue reports whether v is the Empty sentinel.
func IsEmptyValue(v interface{}) bool {
	return wire.IsEmpty(v)
}
