package beaconmesh

import (
	"fmt"
	"sync"

	"github.com/kmarsh/beaconmesh/transport"
)

// cacheEntry pairs a cached socket with the role it was opened under,
// so a later call for the same address under a different role is
// caught instead of silently reusing the wrong kind of socket.
type cacheEntry struct {
	role   transport.Role
	socket *transport.Socket
}

// socketCache is a mutex-guarded, lazily-populated map from address to
// socket, adapted from the teacher's shm sub-tree map: there, a string
// key resolves to a string value under one lock; here, an address
// string resolves to a live socket under one lock, with a
// first-writer-wins role so SendReplyTo can find the replier that
// WaitForMessageFrom bound, and repeated publishes/subscribes reuse
// one socket per address instead of reconnecting each call.
type socketCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

var sockets = &socketCache{entries: make(map[string]*cacheEntry)}

// getOrCreate returns the cached socket for address if one already
// exists under the same role, opens one via open if not, or fails with
// ErrInvalidAddress if address is already cached under a different
// role.
func (c *socketCache) getOrCreate(address string, role transport.Role, open func() (*transport.Socket, error)) (*transport.Socket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[address]; ok {
		if entry.role != role {
			return nil, fmt.Errorf("%w: %s already opened as %s, not %s", ErrInvalidAddress, address, entry.role, role)
		}
		return entry.socket, nil
	}

	sock, err := open()
	if err != nil {
		return nil, err
	}
	c.entries[address] = &cacheEntry{role: role, socket: sock}
	return sock, nil
}

// lookup returns the socket cached for address under role, if any.
func (c *socketCache) lookup(address string, role transport.Role) (*transport.Socket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[address]
	if !ok || entry.role != role {
		return nil, false
	}
	return entry.socket, true
}
