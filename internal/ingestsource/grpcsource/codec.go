package grpcsource

// rawFrame is the only message type this package ever marshals or
// unmarshals: the wire contents of one RawTransaction envelope. There is
// no protobuf schema for the geyser-style feed this driver targets, so
// framing (length-delimiting, field layout) is the remote service's
// concern and this codec just moves bytes.
type rawFrame struct {
	data []byte
}

// rawCodec implements google.golang.org/grpc/encoding.Codec over
// rawFrame, letting Source open a stream without a generated protobuf
// type. grpc still does the length-prefixed framing and flow control;
// this only replaces what happens to the payload bytes.
type rawCodec struct{}

func (rawCodec) Name() string { return "raw" }

func (rawCodec) Marshal(v interface{}) ([]byte, error) {
	f, ok := v.(*rawFrame)
	if !ok {
		return nil, errUnsupportedType(v)
	}
	return f.data, nil
}

func (rawCodec) Unmarshal(data []byte, v interface{}) error {
	f, ok := v.(*rawFrame)
	if !ok {
		return errUnsupportedType(v)
	}
	f.data = make([]byte, len(data))
	copy(f.data, data)
	return nil
}

func errUnsupportedType(v interface{}) error {
	return &unsupportedTypeError{v}
}

type unsupportedTypeError struct{ v interface{} }

func (e *unsupportedTypeError) Error() string {
	return "grpcsource: raw codec cannot handle value of this type"
}
