package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	jsonparser "github.com/0xalexb/hjarta-config/config/parser/json"
	yamlparser "github.com/0xalexb/hjarta-config/config/parser/yaml"
	"github.com/0xalexb/hjarta-config/config/tree"
	"github.com/0xalexb/hjarta-config/logging"
)

const (
	// DefaultFileName is the name of the override file inside the support directory.
	DefaultFileName = "config.json"

	// SyncKey is the reserved section stamped by LoadAssetThenOverride.
	SyncKey            = "syncWithDrive"
	syncDueKey         = SyncKey + ".due"
	syncFrequencyKey   = SyncKey + ".frequency"
	syncLastSyncKey    = SyncKey + ".lastSync"
	defaultSyncFreqDay = 7
)

// Manager owns the configuration tree of the process. Defaults come from a
// bundled asset, overrides from a file in the support directory, and every
// Set or Unset rewrites that file.
//
// Manager assumes a single writer. Persistence runs outside the lock, so
// overlapping writes race on the file and the last one wins.
type Manager struct {
	mu     sync.RWMutex
	root   tree.Tree
	loaded bool

	assets       AssetReader
	storage      Storage
	persistCodec Codec
	assetCodecs  map[string]Codec
	fileName     string
	now          func() time.Time
	logger       *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for load and persist events.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock sets the time source for the sync bookkeeping stamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithFileName sets the override file name inside the support directory.
func WithFileName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.fileName = name
		}
	}
}

// WithAssetCodec registers codec for assets whose name ends with ext, such as ".toml".
func WithAssetCodec(ext string, codec Codec) Option {
	return func(m *Manager) {
		m.assetCodecs[strings.ToLower(ext)] = codec
	}
}

// WithPersistCodec sets the codec of the override file. JSON is the default.
func WithPersistCodec(codec Codec) Option {
	return func(m *Manager) {
		if codec != nil {
			m.persistCodec = codec
		}
	}
}

// New creates an empty Manager backed by assets and storage.
func New(assets AssetReader, storage Storage, opts ...Option) *Manager {
	jsonCodec := jsonparser.NewCodec()
	yamlCodec := yamlparser.NewCodec()

	manager := &Manager{
		root:         tree.Tree{},
		assets:       assets,
		storage:      storage,
		persistCodec: jsonCodec,
		assetCodecs: map[string]Codec{
			".json": jsonCodec,
			".yaml": yamlCodec,
			".yml":  yamlCodec,
		},
		fileName: DefaultFileName,
		now:      time.Now,
		logger:   logging.NewNopLogger(),
	}

	for _, apply := range opts {
		apply(manager)
	}

	return manager
}

// Loaded reports whether LoadAssetThenOverride has completed.
func (m *Manager) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.loaded
}

// LoadFromMap merges values into the tree. An empty path merges the top-level
// keys of values over the root; otherwise values is stored at path.
func (m *Manager) LoadFromMap(values tree.Tree, path string) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loadLocked(tree.CloneTree(values), path)

	return m
}

// LoadAssetThenOverride seeds the tree from the named asset, stamps the
// sync bookkeeping keys, applies the override file when present and writes
// the merged result back to the override file.
//
// Any failure is returned and leaves whatever was merged before it in memory.
// A missing override file is not an error.
func (m *Manager) LoadAssetThenOverride(ctx context.Context, assetName, path string) (*Manager, error) {
	data, err := m.assets.ReadAsset(ctx, assetName)
	if err != nil {
		return nil, fmt.Errorf("reading defaults: %w", err)
	}

	defaults, err := m.assetCodec(assetName).Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: asset %q: %w", ErrDecode, assetName, err)
	}

	m.mu.Lock()
	m.loadLocked(defaults, path)
	m.stampLocked()
	m.mu.Unlock()

	m.logger.Info("defaults loaded", slog.String("asset", assetName), slog.String("path", path))

	overridePath, err := m.OverridePath(ctx)
	if err != nil {
		return nil, err
	}

	err = m.applyOverride(ctx, overridePath)
	if err != nil {
		return nil, err
	}

	err = m.persist(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.loaded = true
	m.mu.Unlock()

	return m, nil
}

// Get returns a copy of the value at path. An empty path returns the whole tree.
func (m *Manager) Get(path string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if path == "" {
		return tree.CloneTree(m.root), true
	}

	value, found := tree.Get(m.root, path)

	return tree.Clone(value), found
}

// GetAs returns the value at path of m converted with convert.
// See tree.GetAs for the miss and error rules.
func GetAs[T any](m *Manager, path string, convert func(any) (T, error)) (T, bool, error) {
	var zero T

	raw, found := m.Get(path)
	if !found {
		return zero, false, nil
	}

	value, err := tree.Convert(raw, convert)
	if err != nil {
		return zero, true, err
	}

	return value, true, nil
}

// Set stores value at path and rewrites the override file. An empty path
// replaces the whole tree and requires a tree value.
//
// The in-memory tree is updated before the write, so an error only means the
// change is not durable.
func (m *Manager) Set(ctx context.Context, path string, value any) error {
	m.mu.Lock()

	if path == "" {
		root, ok := value.(map[string]any)
		if !ok {
			m.mu.Unlock()

			return fmt.Errorf("%w: got %s", ErrNotTree, tree.KindOf(value))
		}

		m.root = tree.CloneTree(root)
	} else {
		m.root = tree.Set(m.root, path, tree.Clone(value))
	}

	m.mu.Unlock()

	return m.persist(ctx)
}

// Unset removes the value at path and rewrites the override file. An empty
// path removes every key.
func (m *Manager) Unset(ctx context.Context, path string) error {
	m.mu.Lock()

	if path == "" {
		m.root = tree.Tree{}
	} else {
		m.root = tree.Unset(m.root, path)
	}

	m.mu.Unlock()

	return m.persist(ctx)
}

// Clear empties the tree without touching the override file.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.root = tree.Tree{}
	m.mu.Unlock()
}

// Snapshot returns a deep copy of the tree.
func (m *Manager) Snapshot() tree.Tree {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return tree.CloneTree(m.root)
}

// OverridePath returns the location of the override file.
func (m *Manager) OverridePath(ctx context.Context) (string, error) {
	dir, err := m.storage.SupportDir(ctx)
	if err != nil {
		return "", fmt.Errorf("resolving support directory: %w", err)
	}

	return filepath.Join(dir, m.fileName), nil
}

func (m *Manager) loadLocked(values tree.Tree, path string) {
	if path == "" {
		m.root = tree.Merge(m.root, values)

		return
	}

	m.root = tree.Set(m.root, path, values)
}

func (m *Manager) stampLocked() {
	now := m.now()

	m.root = tree.Set(m.root, syncDueKey, now.AddDate(0, 0, defaultSyncFreqDay).Format(time.RFC3339))
	m.root = tree.Set(m.root, syncFrequencyKey, defaultSyncFreqDay)
	m.root = tree.Set(m.root, syncLastSyncKey, now.Format(time.RFC3339))
}

func (m *Manager) applyOverride(ctx context.Context, overridePath string) error {
	exists, err := m.storage.Exists(ctx, overridePath)
	if err != nil {
		return fmt.Errorf("checking override file: %w", err)
	}

	if !exists {
		m.logger.Info("no override file, using defaults", slog.String("file", overridePath))

		return nil
	}

	data, err := m.storage.ReadFile(ctx, overridePath)
	if err != nil {
		return fmt.Errorf("reading override file: %w", err)
	}

	overrides, err := m.persistCodec.Decode(data)
	if err != nil {
		return fmt.Errorf("%w: override file %q: %w", ErrDecode, overridePath, err)
	}

	m.mu.Lock()
	m.root = tree.Merge(m.root, overrides)
	m.mu.Unlock()

	m.logger.Info("override applied", slog.String("file", overridePath), slog.Int("keys", len(overrides)))

	return nil
}

func (m *Manager) persist(ctx context.Context) error {
	overridePath, err := m.OverridePath(ctx)
	if err != nil {
		return err
	}

	m.mu.RLock()
	data, err := m.persistCodec.Encode(m.root)
	m.mu.RUnlock()

	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	err = m.storage.WriteFile(ctx, overridePath, data)
	if err != nil {
		return fmt.Errorf("persisting config: %w", err)
	}

	m.logger.Debug("config persisted", slog.String("file", overridePath), slog.Int("bytes", len(data)))

	return nil
}

func (m *Manager) assetCodec(name string) Codec {
	codec, ok := m.assetCodecs[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return m.persistCodec
	}

	return codec
}
