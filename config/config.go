package config

import (
	"context"
	"errors"
	"fmt"

	yamlparser "github.com/0xalexb/hjarta-config/config/parser/yaml"
	"github.com/0xalexb/hjarta-config/config/tree"
)

var (
	// ErrDecode is returned when an asset or the override file cannot be decoded.
	ErrDecode = errors.New("decoding error")
	// ErrNotTree is returned when a whole-tree write receives a value that is not a mapping.
	ErrNotTree = errors.New("value is not a tree")
)

// AssetReader defines an interface for reading bundled, read-only assets by name.
type AssetReader interface {
	ReadAsset(ctx context.Context, name string) ([]byte, error)
}

// Storage defines an interface for the writable, per-installation location
// that holds the persisted override file.
type Storage interface {
	SupportDir(ctx context.Context) (string, error)
	Exists(ctx context.Context, path string) (bool, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error
}

// Codec defines an interface for turning raw document bytes into a tree and back.
type Codec interface {
	Decode(data []byte) (tree.Tree, error)
	Encode(root tree.Tree) ([]byte, error)
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Section returns a converter for GetAs that binds a subtree to T.
// After binding, defaults are applied and the result is validated when *T
// implements Defaulter or Validator.
func Section[T any]() func(any) (T, error) {
	return func(value any) (T, error) {
		var target T

		err := yamlparser.Bind(value, &target)
		if err != nil {
			return target, fmt.Errorf("binding error: %w", err)
		}

		targetDefaulter, isDefaulter := any(&target).(Defaulter)
		if isDefaulter {
			targetDefaulter.SetDefaults()
		}

		targetValidatable, isValidatable := any(&target).(Validator)
		if isValidatable {
			err := targetValidatable.Validate()
			if err != nil {
				return target, fmt.Errorf("validating error: %w", err)
			}
		}

		return target, nil
	}
}
