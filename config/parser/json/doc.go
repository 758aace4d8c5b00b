// Package json provides the JSON codec for the config package.
//
// JSON is the format of the persisted override file. Decode requires the
// document to be a single object; numbers decode as float64.
//
// Usage:
//
//	codec := json.NewCodec()
//	root, err := codec.Decode([]byte(`{"theme":"dark"}`))
//	data, err := codec.Encode(root)
package json
