package config

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/0xalexb/hjarta-config/config/fetcher/asset"
	"github.com/0xalexb/hjarta-config/config/fetcher/file"

	"go.uber.org/fx"
)

// ErrEmptyAssetName is returned when the module is created without a defaults asset.
var ErrEmptyAssetName = errors.New("defaults asset name must not be empty")

// ModuleOption configures the config module.
type ModuleOption func(*moduleConfig)

type moduleConfig struct {
	path        string
	managerOpts []Option
	provides    []fx.Option
}

// WithLoadPath loads the defaults asset under path instead of the root.
func WithLoadPath(path string) ModuleOption {
	return func(cfg *moduleConfig) {
		cfg.path = path
	}
}

// WithManagerOptions passes opts to the Manager constructor.
func WithManagerOptions(opts ...Option) ModuleOption {
	return func(cfg *moduleConfig) {
		cfg.managerOpts = append(cfg.managerOpts, opts...)
	}
}

// WithAssets provides an AssetReader over fsys.
func WithAssets(fsys fs.FS) ModuleOption {
	return func(cfg *moduleConfig) {
		cfg.provides = append(cfg.provides, fx.Provide(
			fx.Annotate(asset.NewReader(fsys), fx.As(new(AssetReader))),
		))
	}
}

// WithFileStorage provides a file-based Storage for appName.
func WithFileStorage(appName string, opts ...file.Option) ModuleOption {
	return func(cfg *moduleConfig) {
		cfg.provides = append(cfg.provides, fx.Provide(
			fx.Annotate(file.NewStorage(appName, opts...), fx.As(new(Storage))),
		))
	}
}

type managerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Assets    AssetReader
	Storage   Storage
	Logger    *slog.Logger `optional:"true"`
}

// NewModule creates an Fx module that provides the process-wide *Manager and
// loads it from assetName when the application starts. A load failure fails
// the start of the application.
// AssetReader and Storage come from WithAssets and WithFileStorage, or must be
// provided externally.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(assetName string, opts ...ModuleOption) fx.Option {
	if assetName == "" {
		return fx.Error(ErrEmptyAssetName)
	}

	var cfg moduleConfig

	for _, apply := range opts {
		apply(&cfg)
	}

	moduleOpts := append([]fx.Option{}, cfg.provides...)
	moduleOpts = append(moduleOpts,
		fx.Provide(func(params managerParams) *Manager {
			managerOpts := append([]Option{WithLogger(params.Logger)}, cfg.managerOpts...)
			manager := New(params.Assets, params.Storage, managerOpts...)

			params.Lifecycle.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					_, err := manager.LoadAssetThenOverride(ctx, assetName, cfg.path)

					return err
				},
			})

			return manager
		}),
		fx.Invoke(func(*Manager) {}),
	)

	return fx.Module("config", moduleOpts...)
}
