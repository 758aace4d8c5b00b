package di_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	di "github.com/0xalexb/hjarta-config"
	"github.com/0xalexb/hjarta-config/config"
	filestorage "github.com/0xalexb/hjarta-config/config/fetcher/file"
	"github.com/0xalexb/hjarta-config/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func configStore(t *testing.T, dir, defaults string) di.Option {
	t.Helper()

	return di.WithConfigStore("defaults.json",
		config.WithAssets(fstest.MapFS{
			"defaults.json": &fstest.MapFile{Data: []byte(defaults)},
		}),
		config.WithFileStorage("", filestorage.WithDir(dir)),
	)
}

func TestNewApp_CreatesAppWithDefaults(t *testing.T) {
	t.Parallel()

	app := di.NewApp()
	require.NotNil(t, app)

	require.NoError(t, app.Start())
	require.NoError(t, app.Stop())
}

func TestNewApp_WithModules(t *testing.T) {
	t.Parallel()

	var invoked bool

	module := fx.Module("test",
		fx.Invoke(func() {
			invoked = true
		}),
	)

	app := di.NewApp(di.WithModules(module))

	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })
	require.True(t, invoked)
}

func TestNewApp_LoggerAndConfigAreSupplied(t *testing.T) {
	t.Parallel()

	var (
		capturedLogger *slog.Logger
		capturedConfig logging.LoggerConfig
	)

	module := fx.Module("test",
		fx.Invoke(func(logger *slog.Logger, cfg logging.LoggerConfig) {
			capturedLogger = logger
			capturedConfig = cfg
		}),
	)

	app := di.NewApp(
		di.WithLogLevel("warn"),
		di.WithLogFormat("text"),
		di.WithModules(module),
	)

	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })

	require.NotNil(t, capturedLogger)
	assert.Equal(t, logging.LoggerConfig{Level: "warn", Format: "text"}, capturedConfig)
	assert.False(t, capturedLogger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, capturedLogger.Enabled(context.Background(), slog.LevelWarn))
}

func TestNewApp_WithConfigStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	var (
		manager      *config.Manager
		themeAtStart any
	)

	module := fx.Module("consumer",
		fx.Invoke(func(lc fx.Lifecycle, store *config.Manager) {
			manager = store

			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					themeAtStart, _ = store.Get("theme")

					return nil
				},
			})
		}),
	)

	app := di.NewApp(
		di.WithLogLevel("error"),
		configStore(t, dir, `{"theme":"dark"}`),
		di.WithModules(module),
	)

	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })

	assert.Equal(t, "dark", themeAtStart, "store is loaded before dependent hooks run")
	require.NoError(t, manager.Set(context.Background(), "theme", "light"))

	data, err := os.ReadFile(filepath.Join(dir, config.DefaultFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"theme": "light"`)
}

func TestNewApp_ConfigStoreReloadsOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFileName), []byte(`{"theme":"solarized"}`), 0o600))

	var manager *config.Manager

	app := di.NewApp(
		di.WithLogLevel("error"),
		configStore(t, dir, `{"theme":"dark"}`),
		di.WithModules(fx.Populate(&manager)),
	)

	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })

	theme, _ := manager.Get("theme")
	assert.Equal(t, "solarized", theme)
}

func TestNewApp_ConfigStoreLoadFailureAbortsStart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFileName), []byte(`{"theme":`), 0o600))

	app := di.NewApp(
		di.WithLogLevel("error"),
		configStore(t, dir, `{"theme":"dark"}`),
	)

	err := app.Start()
	require.Error(t, err)
	require.ErrorIs(t, err, config.ErrDecode)
}

func TestApp_Stop(t *testing.T) {
	t.Parallel()

	var stopCalled bool

	module := fx.Module("test",
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					stopCalled = true

					return nil
				},
			})
		}),
	)

	app := di.NewApp(di.WithModules(module))

	require.NoError(t, app.Start())
	require.NoError(t, app.Stop())
	require.True(t, stopCalled, "OnStop hook should be called")
}

func TestApp_NilApp(t *testing.T) {
	t.Parallel()

	var app *di.App

	require.Error(t, app.Start())
	require.Error(t, app.Stop())
	require.NotPanics(t, func() {
		app.Run()
	})
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	module := fx.Module("test",
		fx.Invoke(func(shutdowner fx.Shutdowner) {
			go func() {
				_ = shutdowner.Shutdown()
			}()
		}),
	)

	app := di.NewApp(di.WithModules(module))

	require.NotPanics(t, func() {
		app.Run()
	})
}
