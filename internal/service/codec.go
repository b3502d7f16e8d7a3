package service

import "encoding/json"

// jsonCodec lets Connect carry plain Go structs. Connect's built-in JSON
// codec only accepts protobuf messages; registering this one under the same
// name replaces it for the service and its clients.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
