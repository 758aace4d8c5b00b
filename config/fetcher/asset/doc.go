// Package asset provides an fs.FS-based AssetReader for the config package.
//
// Bundled defaults usually live in an embed.FS compiled into the binary:
//
//	//go:embed defaults.json
//	var assets embed.FS
//
//	reader, err := asset.NewReader(assets)()
//	data, err := reader.ReadAsset(ctx, "defaults.json")
//
// Error Handling:
//   - Construction fails with ErrNilFS for a nil filesystem
//   - Missing assets wrap fs.ErrNotExist
//   - Use errors.Is(err, asset.ErrAssetIsDirectory) to check for directory errors
package asset
