package beaconmesh

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kmarsh/beaconmesh/transport"
	"github.com/kmarsh/beaconmesh/wire"
)

// SendMessageTo opens a fresh requester against address, sends
// message, and blocks up to waitForReply for the single reply. A
// requester is never cached: each call is its own connect/send/
// receive/close cycle, mirroring the original's per-call RPC socket.
func SendMessageTo(address string, message interface{}, waitForReply time.Duration) (interface{}, error) {
	sock, err := transport.NewRequester(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	defer sock.Close()

	payload, err := wire.Encode(message)
	if err != nil {
		return nil, err
	}
	if err := sock.Send(payload); err != nil {
		return nil, err
	}

	poller := transport.NewPoller()
	poller.Add(sock)
	ready, err := poller.Wait(waitForReply)
	if err != nil {
		return nil, err
	}
	if len(ready) == 0 {
		return nil, ErrSocketTimedOut
	}

	frames, err := sock.Recv()
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, wire.ErrDecodeFailed
	}
	return wire.Decode(frames[0])
}

// WaitForMessageFrom binds (or reuses a cached) replier at address and
// waits up to waitFor for one request. A timeout is reported as
// (nil, nil), not an error. If autoreply is true, Empty is sent back
// immediately, before this function returns, so the caller does not
// call SendReplyTo for that request.
func WaitForMessageFrom(address string, waitFor time.Duration, autoreply bool) (interface{}, error) {
	sock, err := sockets.getOrCreate(address, transport.RoleReplier, func() (*transport.Socket, error) {
		return transport.NewReplier(address)
	})
	if err != nil {
		return nil, err
	}

	poller := transport.NewPoller()
	poller.Add(sock)
	ready, err := poller.Wait(waitFor)
	if err != nil {
		return nil, err
	}
	if len(ready) == 0 {
		return nil, nil
	}

	frames, err := sock.Recv()
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, wire.ErrDecodeFailed
	}
	value, err := wire.Decode(frames[0])
	if err != nil {
		return nil, err
	}

	if autoreply {
		if replyErr := SendReplyTo(address, wire.Empty); replyErr != nil {
			logrus.WithError(replyErr).Debug("beaconmesh: autoreply failed")
		}
	}
	return value, nil
}

// SendReplyTo sends reply on the replier socket that WaitForMessageFrom
// bound at address. Calling it without a prior WaitForMessageFrom at
// the same address is ErrInvalidAddress.
func SendReplyTo(address string, reply interface{}) error {
	sock, ok := sockets.lookup(address, transport.RoleReplier)
	if !ok {
		return fmt.Errorf("%w: no pending request at %s", ErrInvalidAddress, address)
	}

	payload, err := wire.Encode(reply)
	if err != nil {
		return err
	}
	return sock.Send(payload)
}
