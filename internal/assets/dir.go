package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
)

// LoadDir scans a pack root directory laid out as
// assets/<namespace>/{blockstates,models,textures}/... and registers every
// recognized file under the given pack id. It returns the number of assets
// loaded. Files under unknown categories or with unexpected extensions are
// skipped silently; packs ship plenty of metadata that is not ours to parse.
func LoadDir(c *Catalog, pack PackID, root string) (int, error) {
	assetsDir := filepath.Join(root, "assets")
	namespaces, err := os.ReadDir(assetsDir)
	if err != nil {
		return 0, fmt.Errorf("pack %s: %w", pack, err)
	}

	loaded := 0
	for _, nsEntry := range namespaces {
		if !nsEntry.IsDir() {
			continue
		}
		ns := nsEntry.Name()
		nsDir := filepath.Join(assetsDir, ns)

		err := filepath.WalkDir(nsDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			rel, err := filepath.Rel(nsDir, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)

			category, rest, ok := strings.Cut(rel, "/")
			if !ok {
				return nil
			}
			var kind Kind
			var ext string
			switch category {
			case "blockstates":
				kind, ext = KindBlockState, ".json"
			case "models":
				kind, ext = KindModel, ".json"
			case "textures":
				kind, ext = KindTexture, ".png"
			default:
				return nil
			}
			if !strings.HasSuffix(rest, ext) {
				return nil
			}

			id, err := assetid.Parse(ns + ":" + strings.TrimSuffix(rest, ext))
			if err != nil {
				return fmt.Errorf("pack %s: %s: %w", pack, rel, err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if err := c.Put(pack, id, kind, data); err != nil {
				return err
			}
			loaded++
			return nil
		})
		if err != nil {
			return loaded, err
		}
	}
	return loaded, nil
}
