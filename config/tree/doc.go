// Package tree reads, writes and deletes values at dot-separated paths inside
// an untyped nested mapping.
//
// The functions hold no state and do no I/O. Set and Unset modify the tree
// they are given and return it; callers keep the returned value as their root.
//
// Path Policy:
//   - "a.b.c" addresses root["a"]["b"]["c"]
//   - segments are never coalesced, so "a..b" uses an empty-string key
//   - array indexes are not path segments
//
// Writes auto-vivify missing levels and replace any non-map value found on
// the way:
//
//	root := tree.Set(nil, "a.b.c", 5) // {"a": {"b": {"c": 5}}}
//	root = tree.Set(root, "a.b", 1)   // {"a": {"b": 1}}
//	v, ok := tree.Get(root, "a.b.c")  // nil, false
package tree
