package mediarmv1

import (
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype this package's messages are sent
// under. Real protoc-generated stubs would rely on the default "proto"
// codec; ours registers a JSON codec instead, since there is no protoc
// available to generate the binary marshalers. Every unary and streaming
// client call in this package must pass WithJSONCodec so the wire content
// type is negotiated as "application/grpc+json" and the server picks the
// matching codec automatically.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// WithJSONCodec is the CallOption every MediaResourceManagerClient method
// in service.go applies; exported so callers building raw grpc.Invoke calls
// (tests, alternative transports) can match it.
func WithJSONCodec() grpc.CallOption {
	return grpc.CallContentSubtype(CodecName)
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}
