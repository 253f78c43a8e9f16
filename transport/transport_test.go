package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kmarsh/beaconmesh/netutil"
)

func TestRequesterReplierRoundTrip(t *testing.T) {
	address, err := netutil.Address()
	require.NoError(t, err)

	rep, err := NewReplier(address)
	require.NoError(t, err)
	defer rep.Close()
	require.Equal(t, RoleReplier, rep.Role())

	req, err := NewRequester(address)
	require.NoError(t, err)
	defer req.Close()
	require.Equal(t, RoleRequester, req.Role())

	require.NoError(t, req.Send([]byte("ping")))

	poller := NewPoller()
	poller.Add(rep)
	ready, err := poller.Wait(time.Second)
	require.NoError(t, err)
	require.Len(t, ready, 1)

	frames, err := rep.Recv()
	require.NoError(t, err)
	require.Equal(t, [][]byte{[]byte("ping")}, frames)

	require.NoError(t, rep.Send([]byte("pong")))

	replyFrames, err := req.Recv()
	require.NoError(t, err)
	require.Equal(t, [][]byte{[]byte("pong")}, replyFrames)
}

func TestPublisherSubscriberTopicFilter(t *testing.T) {
	address, err := netutil.Address()
	require.NoError(t, err)

	pub, err := NewPublisher(address)
	require.NoError(t, err)
	defer pub.Close()

	sub, err := NewSubscriber([]string{address}, "weather")
	require.NoError(t, err)
	defer sub.Close()
	require.Equal(t, RoleSubscriber, sub.Role())

	time.Sleep(100 * time.Millisecond)

	for {
		if err := pub.Send([]byte("weather"), []byte("sunny")); err != nil {
			t.Fatal(err)
		}
		poller := NewPoller()
		poller.Add(sub)
		ready, err := poller.Wait(200 * time.Millisecond)
		require.NoError(t, err)
		if len(ready) == 1 {
			break
		}
	}

	frames, err := sub.Recv()
	require.NoError(t, err)
	require.Equal(t, [][]byte{[]byte("weather"), []byte("sunny")}, frames)
}

func TestPollerWaitTimesOutWithNoTraffic(t *testing.T) {
	address, err := netutil.Address()
	require.NoError(t, err)

	rep, err := NewReplier(address)
	require.NoError(t, err)
	defer rep.Close()

	poller := NewPoller()
	poller.Add(rep)
	ready, err := poller.Wait(50 * time.Millisecond)
	require.NoError(t, err)
	require.Empty(t, ready)
}

func TestRoleString(t *testing.T) {
	require.Equal(t, "requester", RoleRequester.String())
	require.Equal(t, "replier", RoleReplier.String())
	require.Equal(t, "publisher", RolePublisher.String())
	require.Equal(t, "subscriber", RoleSubscriber.String())
}
