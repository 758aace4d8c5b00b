package yaml

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/0xalexb/hjarta-config/config/tree"
)

var (
	// ErrEmptyData is returned when the input data is empty.
	ErrEmptyData = errors.New("empty data")
	// ErrNotMapping is returned when the top-level YAML node is not a mapping.
	ErrNotMapping = errors.New("top-level value is not a mapping")
)

// Codec implements config.Codec for YAML documents using goccy/go-yaml.
type Codec struct{}

// NewCodec creates a new YAML codec instance.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode parses data into a tree. The top-level node must be a mapping.
// Mapping keys are converted to strings so nested levels are always trees.
func (c *Codec) Decode(data []byte) (tree.Tree, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyData
	}

	var value any

	err := yaml.Unmarshal(data, &value)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	root, ok := normalize(value).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotMapping, tree.KindOf(value))
	}

	return root, nil
}

// Encode serializes root as a YAML mapping.
func (c *Codec) Encode(root tree.Tree) ([]byte, error) {
	if root == nil {
		root = tree.Tree{}
	}

	data, err := yaml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return data, nil
}

// Bind decodes an untyped value, usually a subtree, into target.
// Struct fields are matched through their yaml tags. The value is staged as
// JSON, which keeps integral float64 numbers assignable to integer fields.
func Bind(value any, target any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	err = yaml.Unmarshal(data, target)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	return nil
}

// normalize rewrites map[any]any levels into map[string]any.
func normalize(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, item := range typed {
			typed[key] = normalize(item)
		}

		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))

		for key, item := range typed {
			out[fmt.Sprint(key)] = normalize(item)
		}

		return out
	case []any:
		for i, item := range typed {
			typed[i] = normalize(item)
		}

		return typed
	default:
		return value
	}
}
