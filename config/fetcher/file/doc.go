// Package file provides a filesystem-based Storage implementation for the config package.
//
// Storage resolves the per-installation support directory, checks for, reads
// and writes the persisted override file. By default the support directory
// is the XDG config home of the application, resolved with
// github.com/adrg/xdg (for example ~/.config/<app> on Linux and
// ~/Library/Application Support/<app> on macOS).
//
// Usage:
//
//	storage, err := file.NewStorage("myapp")()
//	dir, err := storage.SupportDir(ctx)
//	err = storage.WriteFile(ctx, filepath.Join(dir, "config.json"), data)
//
// Writes overwrite the destination directly. WithAtomicWrite switches to a
// temporary file renamed over the destination, so a crash never leaves a
// truncated file behind.
//
// Error Handling:
//   - Construction fails with ErrNoLocation when no app name or directory is given
//   - Exists reports false without error for a missing file
//   - Errors include the filepath for easier debugging
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
package file
