package tree

import "encoding/json"

// Kind is the variant of a value held in a Tree.
type Kind int

// Value kinds.
const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindTree
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindNull:    "null",
	KindBool:    "bool",
	KindNumber:  "number",
	KindString:  "string",
	KindArray:   "array",
	KindTree:    "tree",
}

func (k Kind) String() string {
	if k < KindInvalid || int(k) >= len(kindNames) {
		return kindNames[KindInvalid]
	}

	return kindNames[k]
}

// KindOf classifies v. Values that cannot appear in a decoded document, such
// as structs or typed slices, are KindInvalid.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindTree
	default:
		return KindInvalid
	}
}
