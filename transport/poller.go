package transport

import (
	"time"

	zmq "github.com/pebbe/zmq4"
)

// Poller accepts a set of sockets and reports which are readable
// within a timeout, mirroring the teacher's inboxHandler poller loop
// (node.go) generalized from a single ROUTER socket to any mix of the
// four roles.
type Poller struct {
	zpoller *zmq.Poller
	sockets []*Socket
}

// NewPoller creates an empty poller.
func NewPoller() *Poller {
	return &Poller{zpoller: zmq.NewPoller()}
}

// Add registers a socket to be watched for readability.
func (p *Poller) Add(s *Socket) {
	p.zpoller.Add(s.zsock, zmq.POLLIN)
	p.sockets = append(p.sockets, s)
}

// Wait blocks up to timeout (Infinite to block forever) and returns
// the subset of registered sockets that became readable.
func (p *Poller) Wait(timeout time.Duration) ([]*Socket, error) {
	polled, err := p.zpoller.Poll(timeout)
	if err != nil {
		return nil, err
	}

	ready := make([]*Socket, 0, len(polled))
	for _, item := range polled {
		for _, s := range p.sockets {
			if s.zsock == item.Socket {
				ready = append(ready, s)
				break
			}
		}
	}
	return ready, nil
}
