package json

import jsoniter "github.com/json-iterator/go"

// JSON is the jsoniter instance used for all wire encoding and decoding in
// the runtime. It is configured for drop-in compatibility with encoding/json
// so payloads survive round-trips with servers using the standard library.
var (
	JSON = jsoniter.ConfigCompatibleWithStandardLibrary

	// Marshal is a shorthand for JSON.Marshal
	Marshal = JSON.Marshal

	// Unmarshal is a shorthand for JSON.Unmarshal
	Unmarshal = JSON.Unmarshal

	// Valid is a shorthand for JSON.Valid
	Valid = JSON.Valid
)
