package wire

import "errors"

// ErrDecodeFailed is returned for malformed incoming frames: truncated
// datagrams, invalid JSON, or an advertisement over the size budget.
// EncodeAdvertisement also returns it for an outgoing advertisement
// over that budget. The beacon worker logs it and drops the frame; the
// messaging primitives (SendMessageTo, WaitForMessageFrom,
// WaitForNotificationFrom) and the beacon's control RPC client return
// it to their caller.
var ErrDecodeFailed = errors.New("wire: decode failed")
