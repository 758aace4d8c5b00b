package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/0xalexb/hjarta-config/config/tree"
)

var (
	// ErrEmptyData is returned when the input data is empty.
	ErrEmptyData = errors.New("empty data")
	// ErrNotObject is returned when the top-level JSON value is not an object.
	ErrNotObject = errors.New("top-level value is not an object")
)

// Codec implements config.Codec for JSON documents.
type Codec struct {
	indent string
}

// NewCodec creates a JSON codec that writes two-space indented output.
func NewCodec() *Codec {
	return &Codec{indent: "  "}
}

// NewCompactCodec creates a JSON codec that writes output without indentation.
func NewCompactCodec() *Codec {
	return &Codec{}
}

// Decode parses data into a tree. The document must hold exactly one object.
// Integral numbers decode as int and all others as float64, so a value keeps
// its type across an Encode and Decode cycle.
func (c *Codec) Decode(data []byte) (tree.Tree, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyData
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value any

	err := decoder.Decode(&value)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	_, err = decoder.Token()
	if !errors.Is(err, io.EOF) {
		return nil, errors.New("unmarshal error: trailing data after top-level value")
	}

	value = normalizeNumbers(value)

	root, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotObject, tree.KindOf(value))
	}

	return root, nil
}

func normalizeNumbers(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			v[key] = normalizeNumbers(item)
		}

		return v
	case []any:
		for i, item := range v {
			v[i] = normalizeNumbers(item)
		}

		return v
	case json.Number:
		if i, err := v.Int64(); err == nil && i >= math.MinInt && i <= math.MaxInt {
			return int(i)
		}

		if f, err := v.Float64(); err == nil {
			return f
		}

		return v
	default:
		return value
	}
}

// Encode serializes root as a JSON object. A nil root is written as {}.
func (c *Codec) Encode(root tree.Tree) ([]byte, error) {
	if root == nil {
		root = tree.Tree{}
	}

	var (
		data []byte
		err  error
	)

	if c.indent == "" {
		data, err = json.Marshal(root)
	} else {
		data, err = json.MarshalIndent(root, "", c.indent)
	}

	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return append(data, '\n'), nil
}
