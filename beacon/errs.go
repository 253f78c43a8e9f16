package beacon

import "errors"

// ErrUnimplementedVerb is logged by the control dispatcher when a
// control RPC frame names a verb outside {advertise, unadvertise,
// discover}; the request is then answered with a null reply.
var ErrUnimplementedVerb = errors.New("beacon: unimplemented verb")

// ErrBindFailed means the worker could not bind its UDP or control
// socket. It never reaches a caller of Advertise/Unadvertise/Discover:
// Start() catches it internally and flips the process into remote
// mode instead.
var ErrBindFailed = errors.New("beacon: bind failed")
