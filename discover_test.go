package beaconmesh

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kmarsh/beaconmesh/netutil"
)

// S6 discover-then-send: process A advertises "svc" at an address,
// process B discovers it and talks to it.
func TestAdvertiseThenDiscoverThenSend(t *testing.T) {
	address, err := netutil.Address()
	require.NoError(t, err)

	ack, err := Advertise("svc-s6", address)
	require.NoError(t, err)
	require.Equal(t, "svc-s6!!", ack)
	defer Unadvertise("svc-s6", address)

	done := make(chan struct{})
	go func() {
		defer close(done)
		msg, err := WaitForMessageFrom(address, 3*time.Second, false)
		require.NoError(t, err)
		require.NoError(t, SendReplyTo(address, msg))
	}()

	found, err := Discover("svc-s6", 5)
	require.NoError(t, err)
	require.Equal(t, address, found)

	reply, err := SendMessageTo(found, "ping", 2*time.Second)
	require.NoError(t, err)
	require.Equal(t, "ping", reply)
	<-done
}

// Property 6: discover with no active advertiser returns a miss rather
// than an error.
func TestDiscoverMissWhenNoAdvertiser(t *testing.T) {
	found, err := Discover("no-such-service", 0.1)
	require.NoError(t, err)
	require.Equal(t, "", found)
}
