// Package yaml provides a YAML codec for the config package.
//
// This package uses github.com/goccy/go-yaml. It is meant for defaults
// assets written as YAML; the persisted override file stays JSON.
//
// Usage:
//
//	codec := yaml.NewCodec()
//	root, err := codec.Decode(data)
//
// Bind turns an untyped subtree back into a tagged struct:
//
//	var window struct {
//	    Width int `yaml:"width"`
//	}
//	err := yaml.Bind(root["window"], &window)
package yaml
