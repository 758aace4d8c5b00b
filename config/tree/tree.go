package tree

import (
	"fmt"
	"strings"
)

// Separator splits a path into its segments.
const Separator = "."

// Tree is an untyped nested mapping. Nested levels are plain map[string]any
// so that a Tree decoded from JSON or YAML can be walked without conversion.
type Tree = map[string]any

// Split returns the segments of path. Segments are never coalesced: "" is the
// single empty-string key and "a..b" addresses root["a"][""]["b"].
func Split(path string) []string {
	return strings.Split(path, Separator)
}

// Get returns the value stored at path. The second result is false when any
// segment is absent or an intermediate value is not a Tree.
func Get(root Tree, path string) (any, bool) {
	segments := Split(path)
	node := root

	for _, segment := range segments[:len(segments)-1] {
		child, ok := asTree(node[segment])
		if !ok {
			return nil, false
		}

		node = child
	}

	value, ok := node[segments[len(segments)-1]]

	return value, ok
}

// GetAs returns the value stored at path converted with convert.
// A miss yields the zero value and false; see Convert for the conversion rules.
func GetAs[T any](root Tree, path string, convert func(any) (T, error)) (T, bool, error) {
	var zero T

	raw, ok := Get(root, path)
	if !ok {
		return zero, false, nil
	}

	value, err := Convert(raw, convert)
	if err != nil {
		return zero, true, err
	}

	return value, true, nil
}

// Convert applies convert to value. When convert is nil the value is asserted
// to T and a mismatch returns ErrTypeMismatch. Errors from convert are
// returned as is.
func Convert[T any](value any, convert func(any) (T, error)) (T, error) {
	if convert != nil {
		return convert(value)
	}

	typed, ok := value.(T)
	if !ok {
		var zero T

		return zero, fmt.Errorf("%w: holds %T, want %T", ErrTypeMismatch, value, zero)
	}

	return typed, nil
}

// Set stores value at path, creating missing intermediate Trees. An
// intermediate that holds a non-Tree value is replaced by an empty Tree.
// The root is modified in place and returned; a nil root yields a new Tree.
func Set(root Tree, path string, value any) Tree {
	if root == nil {
		root = Tree{}
	}

	segments := Split(path)
	node := root

	for _, segment := range segments[:len(segments)-1] {
		child, ok := asTree(node[segment])
		if !ok {
			child = Tree{}
			node[segment] = child
		}

		node = child
	}

	node[segments[len(segments)-1]] = value

	return root
}

// Unset removes the key at path. Missing intermediates or a missing key make
// it a no-op, and parents left empty are kept.
func Unset(root Tree, path string) Tree {
	segments := Split(path)
	node := root

	for _, segment := range segments[:len(segments)-1] {
		child, ok := asTree(node[segment])
		if !ok {
			return root
		}

		node = child
	}

	delete(node, segments[len(segments)-1])

	return root
}

// Merge copies every top-level key of src into dst, replacing existing values.
// Keys missing from src are left untouched.
func Merge(dst, src Tree) Tree {
	if dst == nil {
		dst = make(Tree, len(src))
	}

	for key, value := range src {
		dst[key] = value
	}

	return dst
}

// Clone returns a deep copy of the Trees and arrays in v. Leaves are shared.
func Clone(v any) any {
	switch KindOf(v) {
	case KindTree:
		node, _ := asTree(v)
		out := make(Tree, len(node))

		for key, value := range node {
			out[key] = Clone(value)
		}

		return out
	case KindArray:
		items, _ := v.([]any)
		out := make([]any, len(items))

		for i, item := range items {
			out[i] = Clone(item)
		}

		return out
	default:
		return v
	}
}

// CloneTree is Clone for a root Tree.
func CloneTree(root Tree) Tree {
	if root == nil {
		return Tree{}
	}

	out, _ := Clone(root).(Tree)

	return out
}

func asTree(v any) (Tree, bool) {
	node, ok := v.(map[string]any)

	return node, ok && node != nil
}
