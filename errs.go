package beaconmesh

import "errors"

// ErrSocketTimedOut is returned by SendMessageTo when waitForReply
// elapses before a reply arrives. WaitForMessageFrom and
// WaitForNotificationFrom never return this error: a timed-out wait is
// not an error there, it's a (nil, nil) or ("", nil, nil) result.
var ErrSocketTimedOut = errors.New("beaconmesh: socket timed out")

// ErrInvalidAddress is returned for a malformed address, for an
// addresses argument to WaitForNotificationFrom that is neither a
// string nor a []string, for SendReplyTo without a replier bound at
// the address, or for reusing an address already cached under a
// different socket role. SendMessageTo takes a single string address,
// so a slice of addresses cannot be passed to it.
var ErrInvalidAddress = errors.New("beaconmesh: invalid address")
