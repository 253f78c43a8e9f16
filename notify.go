package beaconmesh

import (
	"fmt"
	"time"

	"github.com/kmarsh/beaconmesh/transport"
	"github.com/kmarsh/beaconmesh/wire"
)

// SendNotificationTo acquires (or reuses) a publisher bound to address
// and sends the two-part (topic, data) pub/sub frame. There is no
// reply, and no guarantee a subscriber is connected yet — see the
// handshake contract documented on WaitForNotificationFrom.
func SendNotificationTo(address, topic string, data interface{}) error {
	sock, err := sockets.getOrCreate(address, transport.RolePublisher, func() (*transport.Socket, error) {
		return transport.NewPublisher(address)
	})
	if err != nil {
		return err
	}

	parts, err := wire.EncodeNotification(topic, data)
	if err != nil {
		return err
	}
	return sock.Send(parts...)
}

// WaitForNotificationFrom subscribes (or reuses a cached subscription)
// to topic on one or more addresses and blocks up to waitFor for the
// first matching (topic, data) pair, from whichever address sends
// first.
//
// Because a subscriber observes nothing sent before its connection
// handshake completes, a publisher wanting delivery certainty should
// loop calling SendNotificationTo(address, topic, Empty) until told a
// subscriber is listening, then send the real payload; a caller here
// that wants to skip those handshake frames should loop calling
// WaitForNotificationFrom until the returned value is not Empty. This
// package does not hide that loop behind an automatic retry: the
// contract is exposed exactly as documented.
func WaitForNotificationFrom(addresses interface{}, topic string, waitFor time.Duration) (string, interface{}, error) {
	addrList, err := asAddressList(addresses)
	if err != nil {
		return "", nil, err
	}

	poller := transport.NewPoller()
	for _, address := range addrList {
		sock, err := sockets.getOrCreate(address, transport.RoleSubscriber, func() (*transport.Socket, error) {
			return transport.NewSubscriber([]string{address}, topic)
		})
		if err != nil {
			return "", nil, err
		}
		poller.Add(sock)
	}

	ready, err := poller.Wait(waitFor)
	if err != nil {
		return "", nil, err
	}
	if len(ready) == 0 {
		return "", nil, nil
	}

	frames, err := ready[0].Recv()
	if err != nil {
		return "", nil, err
	}
	return wire.DecodeNotification(frames)
}

func asAddressList(addresses interface{}) ([]string, error) {
	switch v := addresses.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: addresses must be a string or []string", ErrInvalidAddress)
	}
}
