// Package netutil provides the small address helpers the rest of the
// module shares: splitting an "ip:port" form apart, and allocating an
// ephemeral local endpoint for test rigs.
package netutil

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Endpoint is a (ip, port) pair identifying a reachable transport
// address. Values are compared by the zero-value struct equality, so
// they are safe to use as map keys for deduplication.
type Endpoint struct {
	IP   string
	Port int
}

// String renders the endpoint in "ip:port" form.
func (e Endpoint) String() string {
	return fmt.Sprintf("%s:%d", e.IP, e.Port)
}

// SplitAddress splits "ip:port" at the first colon. If address carries
// no colon, it is treated as a bare port and ip is returned empty,
// meaning "the local host's routable IP, inferred at use time".
func SplitAddress(address string) (ip, port string) {
	if idx := strings.Index(address, ":"); idx >= 0 {
		return address[:idx], address[idx+1:]
	}
	return "", address
}

// Address allocates an ephemeral unused local endpoint of the form
// "127.0.0.1:<port>", suitable for test rigs: bind a TCP socket to
// port 0, read back the assigned port, close it, and hand the address
// to the caller to reuse.
func Address() (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}
	port := listener.Addr().(*net.TCPAddr).Port
	if err := listener.Close(); err != nil {
		return "", err
	}
	return net.JoinHostPort("127.0.0.1", strconv.Itoa(port)), nil
}
