package di

import (
	"github.com/0xalexb/hjarta-config/config"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithConfigStore adds the configuration store module to the application.
// The *config.Manager is available for injection and is loaded from the
// assetName defaults on start; components that depend on it see it loaded in
// their own OnStart hooks. A load failure aborts the start.
func WithConfigStore(assetName string, opts ...config.ModuleOption) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, config.NewModule(assetName, opts...))
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat sets the log format for the application: "json" or "text".
// If not set or unknown, defaults to "json".
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}
