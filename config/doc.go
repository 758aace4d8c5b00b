// Package config provides a process-wide configuration store addressed by
// dot-separated key paths.
//
// A Manager owns one untyped tree (see config/tree). It is seeded in two
// layers and then kept on disk with write-through persistence:
//
//  1. defaults decoded from a bundled asset (JSON, or YAML for .yaml/.yml names)
//  2. bookkeeping stamps under syncWithDrive.{due,frequency,lastSync}
//  3. overrides decoded from <support dir>/config.json, when present
//
// The merged tree is written back to the override file at the end of the
// load, and again after every Set and Unset. Overrides are merged per
// top-level key, so an override key replaces the whole default value under
// that key.
//
// The package uses an interface-based design with three extension points:
//   - AssetReader: reads bundled defaults (config/fetcher/asset)
//   - Storage: locates, checks, reads and writes the override file (config/fetcher/file)
//   - Codec: turns bytes into a tree and back (config/parser/json, config/parser/yaml)
//
// # Lookups
//
// A path that is absent, or that descends through a non-map value, is a miss
// and never an error:
//
//	theme, ok := manager.Get("theme")
//	width, ok, err := config.GetAs(manager, "window.width", tree.Int)
//	api, ok, err := config.GetAs(manager, "services.api", config.Section[APIConfig]())
//
// # Dependency Injection
//
// NewModule provides the single *Manager of an Fx application and loads it
// when the application starts:
//
//	module := config.NewModule("defaults.json",
//	    config.WithAssets(assets),
//	    config.WithFileStorage("myapp"),
//	)
package config
