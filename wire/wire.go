// Package wire encodes and decodes the primitive values carried on the
// wire: request/reply payloads, control RPC frames, and the two-part
// publish/subscribe frame.
package wire

import (
	json "github.com/clarketm/json"
)

// emptyType is the sentinel that stands for "no content", distinct from
// a decoded nil which means "an explicit null was sent".
type emptyType struct{}

// Empty is sent and received as a zero-length byte slice rather than
// any JSON representation of "nothing".
var Empty = emptyType{}

// IsEmpty reports whether v is the Empty sentinel.
func IsEmpty(v interface{}) bool {
	_, ok := v.(emptyType)
	return ok
}

// Encode turns a primitive value into its wire representation. Empty
// encodes to a zero-length slice; everything else is JSON.
func Encode(v interface{}) ([]byte, error) {
	if IsEmpty(v) {
		return []byte{}, nil
	}
	return json.Marshal(v)
}

// Decode is the inverse of Encode. A zero-length slice decodes back to
// Empty rather than being handed to the JSON parser.
func Decode(b []byte) (interface{}, error) {
	if len(b) == 0 {
		return Empty, nil
	}
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, ErrDecodeFailed
	}
	return v, nil
}

// EncodeNotification builds the two-part publish/subscribe frame:
// topic bytes, followed by the encoded value (or a zero-length marker
// for Empty).
func EncodeNotification(topic string, v interface{}) ([][]byte, error) {
	data, err := Encode(v)
	if err != nil {
		return nil, err
	}
	return [][]byte{[]byte(topic), data}, nil
}

// DecodeNotification is the inverse of EncodeNotification.
func DecodeNotification(parts [][]byte) (topic string, v interface{}, err error) {
	if len(parts) != 2 {
		return "", nil, ErrDecodeFailed
	}
	topic = string(parts[0])
	v, err = Decode(parts[1])
	return topic, v, err
}

// EncodeAdvertisement builds the [name, port] broadcast frame, failing
// if the result would exceed the 256-byte beacon datagram budget.
func EncodeAdvertisement(name string, port int) ([]byte, error) {
	b, err := json.Marshal([]interface{}{name, port})
	if err != nil {
		return nil, err
	}
	if len(b) > MaxAdvertisementSize {
		return nil, ErrDecodeFailed
	}
	return b, nil
}

// DecodeAdvertisement parses a received [name, port] broadcast frame.
func DecodeAdvertisement(b []byte) (name string, port int, err error) {
	if len(b) > MaxAdvertisementSize {
		return "", 0, ErrDecodeFailed
	}
	var fields []interface{}
	if err := json.Unmarshal(b, &fields); err != nil || len(fields) != 2 {
		return "", 0, ErrDecodeFailed
	}
	name, ok := fields[0].(string)
	if !ok {
		return "", 0, ErrDecodeFailed
	}
	portFloat, ok := fields[1].(float64)
	if !ok {
		return "", 0, ErrDecodeFailed
	}
	return name, int(portFloat), nil
}

// EncodeControlRequest builds a [verb, arg1, arg2, ...] control RPC frame.
func EncodeControlRequest(verb string, args ...interface{}) ([]byte, error) {
	fields := make([]interface{}, 0, len(args)+1)
	fields = append(fields, verb)
	fields = append(fields, args...)
	return json.Marshal(fields)
}

// DecodeControlRequest splits a control RPC frame into its verb and args.
func DecodeControlRequest(b []byte) (verb string, args []interface{}, err error) {
	var fields []interface{}
	if err := json.Unmarshal(b, &fields); err != nil || len(fields) == 0 {
		return "", nil, ErrDecodeFailed
	}
	verb, ok := fields[0].(string)
	if !ok {
		return "", nil, ErrDecodeFailed
	}
	return verb, fields[1:], nil
}

// MaxAdvertisementSize is the largest a beacon broadcast datagram may be.
const MaxAdvertisementSize = 256
