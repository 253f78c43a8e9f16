// Package transport is a thin facade over the four zmq socket roles
// the messaging core needs (requester, replier, publisher, subscriber)
// plus a multi-socket poller. It assumes github.com/pebbe/zmq4
// provides connection-oriented request/reply sockets, publish/
// subscribe sockets, and blocking poll with a millisecond timeout —
// the underlying transport library itself is treated as an external
// collaborator, exactly as spec.md scopes it.
package transport

import (
	"time"

	zmq "github.com/pebbe/zmq4"
)

// Infinite is passed to Wait/Recv-style timeouts to mean "block
// forever", mirroring zmq4's own -1 sentinel.
const Infinite time.Duration = -1

// Role identifies which of the four socket roles a Socket was opened as.
type Role int

const (
	RoleRequester Role = iota
	RoleReplier
	RolePublisher
	RoleSubscriber
)

func (r Role) String() string {
	switch r {
	case RoleRequester:
		return "requester"
	case RoleReplier:
		return "replier"
	case RolePublisher:
		return "publisher"
	case RoleSubscriber:
		return "subscriber"
	default:
		return "unknown"
	}
}

// Socket wraps a single zmq socket in the role it was opened for. It
// implements io.Closer so every constructor can be used as a scoped
// resource: acquired at block entry, released on every exit path.
//
//	sock, err := transport.NewRequester(addr)
//	if err != nil { return err }
//	defer sock.Close()
type Socket struct {
	zsock *zmq.Socket
	role  Role
	addr  string
}

// Role reports which role this socket was opened as.
func (s *Socket) Role() Role { return s.role }

// Addr reports the tcp://ip:port address this socket was opened against.
func (s *Socket) Addr() string { return s.addr }

// Close releases the underlying zmq socket. Safe to call via defer on
// every exit path, including error paths.
func (s *Socket) Close() error {
	return s.zsock.Close()
}

func tcpAddr(address string) string {
	return "tcp://" + address
}

// NewRequester connects outward; strictly alternating send then receive.
func NewRequester(address string) (*Socket, error) {
	zsock, err := zmq.NewSocket(zmq.REQ)
	if err != nil {
		return nil, err
	}
	if err := zsock.Connect(tcpAddr(address)); err != nil {
		zsock.Close()
		return nil, err
	}
	return &Socket{zsock: zsock, role: RoleRequester, addr: address}, nil
}

// NewReplier binds address; receives requests, must reply before the
// next receive.
func NewReplier(address string) (*Socket, error) {
	zsock, err := zmq.NewSocket(zmq.REP)
	if err != nil {
		return nil, err
	}
	if err := zsock.Bind(tcpAddr(address)); err != nil {
		zsock.Close()
		return nil, err
	}
	return &Socket{zsock: zsock, role: RoleReplier, addr: address}, nil
}

// NewPublisher binds address; send-only, multi-part send.
func NewPublisher(address string) (*Socket, error) {
	zsock, err := zmq.NewSocket(zmq.PUB)
	if err != nil {
		return nil, err
	}
	if err := zsock.Bind(tcpAddr(address)); err != nil {
		zsock.Close()
		return nil, err
	}
	return &Socket{zsock: zsock, role: RolePublisher, addr: address}, nil
}

// NewSubscriber connects to one or more addresses and filters incoming
// messages by topic prefix.
func NewSubscriber(addresses []string, topic string) (*Socket, error) {
	zsock, err := zmq.NewSocket(zmq.SUB)
	if err != nil {
		return nil, err
	}
	for _, address := range addresses {
		if err := zsock.Connect(tcpAddr(address)); err != nil {
			zsock.Close()
			return nil, err
		}
	}
	if err := zsock.SetSubscribe(topic); err != nil {
		zsock.Close()
		return nil, err
	}
	return &Socket{zsock: zsock, role: RoleSubscriber, addr: addresses[0]}, nil
}

// Send writes a multi-part message.
func (s *Socket) Send(parts ...[]byte) error {
	frames := make([]interface{}, len(parts))
	for i, p := range parts {
		frames[i] = p
	}
	_, err := s.zsock.SendMessage(frames...)
	return err
}

// Recv reads one multi-part message.
func (s *Socket) Recv() ([][]byte, error) {
	return s.zsock.RecvMessageBytes(0)
}
