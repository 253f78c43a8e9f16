package beacon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kmarsh/beaconmesh/netutil"
)

func TestAdvertiseThenUnadvertiseRemovesEmptyBucket(t *testing.T) {
	w := &Worker{
		advertisements: make(map[string]map[int]struct{}),
		discovered:     make(map[string]map[netutil.Endpoint]struct{}),
	}

	ack := w.doAdvertise("svc", 9001)
	require.Equal(t, "svc!!", ack)
	require.Contains(t, w.advertisements["svc"], 9001)

	w.doUnadvertise("svc", 9001)
	require.NotContains(t, w.advertisements, "svc")
}

func TestUnadvertiseAbsentServiceWarnsAndDoesNotPanic(t *testing.T) {
	w := &Worker{
		advertisements: make(map[string]map[int]struct{}),
		discovered:     make(map[string]map[netutil.Endpoint]struct{}),
	}
	w.doUnadvertise("never-advertised", 1)
}

func TestDiscoverReturnsEndpointWhenPresent(t *testing.T) {
	w := &Worker{
		advertisements: make(map[string]map[int]struct{}),
		discovered:     make(map[string]map[netutil.Endpoint]struct{}),
	}
	w.discovered["svc"] = map[netutil.Endpoint]struct{}{
		{IP: "10.0.0.5", Port: 9001}: {},
	}

	endpoint, ok := w.doDiscover("svc", 1)
	require.True(t, ok)
	require.Equal(t, netutil.Endpoint{IP: "10.0.0.5", Port: 9001}, endpoint)
}

func TestDiscoverNegativeWaitIsASingleLookup(t *testing.T) {
	w := &Worker{
		advertisements: make(map[string]map[int]struct{}),
		discovered:     make(map[string]map[netutil.Endpoint]struct{}),
	}

	start := time.Now()
	_, ok := w.doDiscover("missing", -1)
	elapsed := time.Since(start)

	require.False(t, ok)
	require.Less(t, elapsed, discoverPollInterval)
}

func TestDiscoverTimesOutWhenNeverFound(t *testing.T) {
	w := &Worker{
		advertisements: make(map[string]map[int]struct{}),
		discovered:     make(map[string]map[netutil.Endpoint]struct{}),
	}

	start := time.Now()
	_, ok := w.doDiscover("missing", 0.1)
	elapsed := time.Since(start)

	require.False(t, ok)
	require.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
}

func TestDispatchUnimplementedVerbReturnsNil(t *testing.T) {
	w := &Worker{
		advertisements: make(map[string]map[int]struct{}),
		discovered:     make(map[string]map[netutil.Endpoint]struct{}),
	}

	frame, err := encodeTestFrame("teleport", "svc")
	require.NoError(t, err)

	reply := w.dispatch([][]byte{frame})
	require.Nil(t, reply)
}

func TestDispatchIsCaseInsensitive(t *testing.T) {
	w := &Worker{
		advertisements: make(map[string]map[int]struct{}),
		discovered:     make(map[string]map[netutil.Endpoint]struct{}),
	}

	frame, err := encodeTestFrame("ADVERTISE", "svc", float64(9001), nil)
	require.NoError(t, err)

	reply := w.dispatch([][]byte{frame})
	require.Equal(t, "svc!!", reply)
}
