package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
)

func writePackFile(t *testing.T, root string, parts ...string) {
	t.Helper()
	path := filepath.Join(append([]string{root}, parts...)...)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDir(t *testing.T) {
	root := t.TempDir()
	writePackFile(t, root, "assets", "minecraft", "blockstates", "stone.json")
	writePackFile(t, root, "assets", "minecraft", "models", "block", "stone.json")
	writePackFile(t, root, "assets", "minecraft", "textures", "block", "stone.png")
	writePackFile(t, root, "assets", "custom", "models", "item", "wand.json")
	// Skipped: unknown category, wrong extension.
	writePackFile(t, root, "assets", "minecraft", "sounds", "dig.ogg")
	writePackFile(t, root, "assets", "minecraft", "textures", "block", "stone.png.mcmeta")

	c := NewCatalog()
	if err := c.AddPack(Pack{ID: "test", Name: "Test"}); err != nil {
		t.Fatal(err)
	}
	n, err := LoadDir(c, "test", root)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if n != 4 {
		t.Errorf("loaded %d assets, want 4", n)
	}

	cases := []struct {
		id   string
		kind Kind
	}{
		{"minecraft:stone", KindBlockState},
		{"minecraft:block/stone", KindModel},
		{"minecraft:block/stone", KindTexture}, // texture shares the model's id path
		{"custom:item/wand", KindModel},
	}
	for _, tc := range cases {
		if !c.Has(assetid.MustParse(tc.id), tc.kind) {
			t.Errorf("missing %s %s", tc.kind, tc.id)
		}
	}
	if c.Has(assetid.MustParse("minecraft:dig"), KindTexture) {
		t.Error("unknown category was loaded")
	}
}

func TestLoadDir_MissingRoot(t *testing.T) {
	c := NewCatalog()
	if _, err := LoadDir(c, DefaultPack, filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing pack root")
	}
}
