package beaconmesh

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kmarsh/beaconmesh/netutil"
)

// S1 echo: a peer binds a replier and echoes back whatever it receives.
func TestSendMessageToEchoesThroughReplier(t *testing.T) {
	address, err := netutil.Address()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		msg, err := WaitForMessageFrom(address, 2*time.Second, false)
		require.NoError(t, err)
		require.Equal(t, "abc123", msg)
		require.NoError(t, SendReplyTo(address, msg))
	}()

	reply, err := SendMessageTo(address, "abc123", 2*time.Second)
	require.NoError(t, err)
	require.Equal(t, "abc123", reply)
	<-done
}

// S2 timeout: no peer is listening, send_message_to must fail with
// ErrSocketTimedOut within roughly the requested window.
func TestSendMessageToTimesOutWithNoPeer(t *testing.T) {
	address, err := netutil.Address()
	require.NoError(t, err)

	start := time.Now()
	_, err = SendMessageTo(address, "hello", 300*time.Millisecond)
	elapsed := time.Since(start)

	require.True(t, errors.Is(err, ErrSocketTimedOut))
	require.GreaterOrEqual(t, elapsed, 300*time.Millisecond)
	require.Less(t, elapsed, time.Second)
}

// S3 empty default: the caller omits a message, so the peer receives Empty.
func TestSendMessageToWithEmptyMessage(t *testing.T) {
	address, err := netutil.Address()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		msg, err := WaitForMessageFrom(address, 2*time.Second, false)
		require.NoError(t, err)
		require.True(t, IsEmptyValue(msg))
		require.NoError(t, SendReplyTo(address, Empty))
	}()

	reply, err := SendMessageTo(address, Empty, 2*time.Second)
	require.NoError(t, err)
	require.True(t, IsEmptyValue(reply))
	<-done
}

// WaitForMessageFrom with autoreply=true replies Empty without the
// caller ever invoking SendReplyTo.
func TestWaitForMessageFromAutoreplySendsEmpty(t *testing.T) {
	address, err := netutil.Address()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := WaitForMessageFrom(address, 2*time.Second, true)
		require.NoError(t, err)
	}()

	reply, err := SendMessageTo(address, "ping", 2*time.Second)
	require.NoError(t, err)
	require.True(t, IsEmptyValue(reply))
	<-done
}

func TestWaitForMessageFromTimesOutWithoutError(t *testing.T) {
	address, err := netutil.Address()
	require.NoError(t, err)

	msg, err := WaitForMessageFrom(address, 100*time.Millisecond, false)
	require.NoError(t, err)
	require.Nil(t, msg)
}

func TestSendReplyToWithoutPendingRequestIsInvalidAddress(t *testing.T) {
	err := SendReplyTo("127.0.0.1:0", "reply")
	require.True(t, errors.Is(err, ErrInvalidAddress))
}
