package assets

import (
	"errors"
	"testing"

	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
)

func buildCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog()
	for _, p := range []Pack{{ID: "a", Name: "Pack A"}, {ID: "b", Name: "Pack B"}} {
		if err := c.AddPack(p); err != nil {
			t.Fatalf("AddPack(%s): %v", p.ID, err)
		}
	}
	return c
}

func put(t *testing.T, c *Catalog, pack PackID, id string, data string) {
	t.Helper()
	if err := c.Put(pack, assetid.MustParse(id), KindTexture, []byte(data)); err != nil {
		t.Fatalf("Put(%s, %s): %v", pack, id, err)
	}
}

func texRef(id string) Ref {
	return Ref{ID: assetid.MustParse(id), Kind: KindTexture}
}

func TestResolveWinners_PriorityOrder(t *testing.T) {
	x := texRef("minecraft:block/stone")

	// Same asset in both packs; insertion order must not matter.
	for _, first := range []PackID{"a", "b"} {
		c := buildCatalog(t)
		second := PackID("b")
		if first == "b" {
			second = "a"
		}
		put(t, c, first, "minecraft:block/stone", "1")
		put(t, c, second, "minecraft:block/stone", "2")

		winners := ResolveWinners(c, []PackID{"a", "b"})
		if winners[x] != "b" {
			t.Errorf("insertion order %s,%s: winner = %s, want b", first, second, winners[x])
		}
	}
}

func TestResolveWinners_DefaultLowestPriority(t *testing.T) {
	c := buildCatalog(t)
	put(t, c, DefaultPack, "minecraft:block/dirt", "builtin")
	put(t, c, "a", "minecraft:block/dirt", "packed")
	put(t, c, DefaultPack, "voxelpack:missing", "checker")

	winners := ResolveWinners(c, []PackID{"a", "b"})
	if got := winners[texRef("minecraft:block/dirt")]; got != "a" {
		t.Errorf("dirt winner = %s, want a", got)
	}
	// Only the default provides it, so the default wins.
	if got := winners[texRef("voxelpack:missing")]; got != DefaultPack {
		t.Errorf("missing winner = %s, want default", got)
	}
}

func TestResolveWinners_DisabledPackIgnored(t *testing.T) {
	c := buildCatalog(t)
	put(t, c, "a", "minecraft:block/sand", "a")
	put(t, c, "b", "minecraft:block/sand", "b")

	winners := ResolveWinners(c, []PackID{"a"}) // b disabled
	if got := winners[texRef("minecraft:block/sand")]; got != "a" {
		t.Errorf("winner = %s, want a", got)
	}
}

func TestResolveWinners_Deterministic(t *testing.T) {
	c := buildCatalog(t)
	put(t, c, "a", "minecraft:block/x", "1")
	put(t, c, "b", "minecraft:block/y", "2")
	put(t, c, "a", "minecraft:block/y", "3")

	first := ResolveWinners(c, []PackID{"a", "b"})
	for i := 0; i < 10; i++ {
		again := ResolveWinners(c, []PackID{"a", "b"})
		if len(again) != len(first) {
			t.Fatalf("run %d: size changed", i)
		}
		for ref, pack := range first {
			if again[ref] != pack {
				t.Fatalf("run %d: winner(%s) = %s, want %s", i, ref, again[ref], pack)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	c := buildCatalog(t)
	put(t, c, "a", "minecraft:block/stone", "low")
	put(t, c, "b", "minecraft:block/stone", "high")

	entry, err := Lookup(c, assetid.MustParse("minecraft:block/stone"), KindTexture, []PackID{"a", "b"})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if entry.Pack != "b" || string(entry.Data) != "high" {
		t.Errorf("entry = %+v", entry)
	}

	// Same id under a different kind is a different asset.
	_, err = Lookup(c, assetid.MustParse("minecraft:block/stone"), KindModel, []PackID{"a", "b"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("wrong kind: error = %v, want ErrNotFound", err)
	}

	_, err = Lookup(c, assetid.MustParse("minecraft:block/absent"), KindTexture, []PackID{"a", "b"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("absent asset: error = %v, want ErrNotFound", err)
	}
}

func TestCache_StatsAndInvalidation(t *testing.T) {
	cache := NewCache()
	id := assetid.MustParse("minecraft:block/stone")

	if _, ok := cache.Get(id); ok {
		t.Error("unexpected hit on empty cache")
	}
	cache.Set(id, []byte("data"))
	if data, ok := cache.Get(id); !ok || string(data) != "data" {
		t.Errorf("Get after Set = %q, %v", data, ok)
	}

	hits, misses := cache.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("stats = %d hits, %d misses", hits, misses)
	}

	cache.Invalidate(id)
	if _, ok := cache.Get(id); ok {
		t.Error("hit after Invalidate")
	}

	cache.Set(id, []byte("data"))
	cache.Clear()
	if _, ok := cache.Get(id); ok {
		t.Error("hit after Clear")
	}
}
