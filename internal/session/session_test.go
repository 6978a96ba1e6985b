package session

import (
	"sync"
	"testing"

	"github.com/SilverlightStudios/voxelpack/internal/assets"
	"github.com/SilverlightStudios/voxelpack/internal/geometry"
	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
)

const stoneState = `{
  "variants": {
    "": [
      {"model": "minecraft:block/stone"},
      {"model": "minecraft:block/stone_mirrored"}
    ]
  }
}`

const cubeModel = `{
  "textures": {"all": "minecraft:block/stone"},
  "elements": [{
    "from": [0,0,0], "to": [16,16,16],
    "faces": {
      "down":  {"texture": "#all"},
      "up":    {"texture": "#all"},
      "north": {"texture": "#all"},
      "south": {"texture": "#all"},
      "west":  {"texture": "#all"},
      "east":  {"texture": "#all"}
    }
  }]
}`

func testSession(t *testing.T) *Session {
	t.Helper()
	c := assets.NewCatalog()
	if err := c.AddPack(assets.Pack{ID: "base", Name: "Base"}); err != nil {
		t.Fatal(err)
	}
	put := func(id string, kind assets.Kind, data string) {
		if err := c.Put("base", assetid.MustParse(id), kind, []byte(data)); err != nil {
			t.Fatal(err)
		}
	}
	put("minecraft:stone", assets.KindBlockState, stoneState)
	put("minecraft:block/stone", assets.KindModel, cubeModel)
	put("minecraft:block/stone_mirrored", assets.KindModel, cubeModel)

	s := New(c, []assets.PackID{"base"}, Options{Workers: 1, QueueSize: 4})
	t.Cleanup(s.Close)
	return s
}

var stone = assetid.MustParse("minecraft:stone")

func TestGeometry_CachesPerKey(t *testing.T) {
	s := testSession(t)

	first := s.Geometry(stone, nil, nil)
	if first == nil || first.VertexCount() != 24 {
		t.Fatalf("unexpected buffers: %+v", first)
	}
	second := s.Geometry(stone, nil, nil)
	if second != first {
		t.Error("equal key recomputed instead of hitting the cache")
	}

	// A different tint is a different key.
	tint := geometry.SignalTint(1)
	tinted := s.Geometry(stone, nil, &tint)
	if tinted == first {
		t.Error("tinted request shared the untinted cache entry")
	}
}

func TestGeometry_ConcurrentWaitersShareOneResult(t *testing.T) {
	s := testSession(t)

	const n = 16
	results := make([]*geometry.Buffers, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Geometry(stone, nil, nil)
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if results[i] != results[0] {
			t.Fatalf("waiter %d got a different buffer instance", i)
		}
	}
}

func TestSetSeed_SupersedesCache(t *testing.T) {
	s := testSession(t)

	before := s.Geometry(stone, nil, nil)
	s.SetSeed(42)
	after := s.Geometry(stone, nil, nil)
	if after == before {
		t.Error("seed change did not drop the cached entry")
	}
	if s.Seed() != 42 {
		t.Errorf("seed = %d", s.Seed())
	}

	// Same seed again is a no-op, cache stays warm.
	s.SetSeed(42)
	if got := s.Geometry(stone, nil, nil); got != after {
		t.Error("redundant SetSeed invalidated the cache")
	}
}

func TestSetPackOrder_SupersedesCache(t *testing.T) {
	s := testSession(t)
	before := s.Geometry(stone, nil, nil)
	s.SetPackOrder([]assets.PackID{"base"})
	if after := s.Geometry(stone, nil, nil); after == before {
		t.Error("pack-order change did not drop the cached entry")
	}
}

func TestInvalidateAsset_DropsOnlyThatAsset(t *testing.T) {
	s := testSession(t)
	before := s.Geometry(stone, nil, nil)

	s.InvalidateAsset(assetid.MustParse("minecraft:granite"))
	// Unrelated invalidation still supersedes nothing cached under stone's
	// key directly, but the entry must survive.
	if got := s.Geometry(stone, nil, nil); got != before {
		t.Error("unrelated invalidation evicted the stone entry")
	}

	s.InvalidateAsset(stone)
	if got := s.Geometry(stone, nil, nil); got == before {
		t.Error("invalidation left the stale stone entry in place")
	}
}

func TestGeometry_FallsBackToDefaultCube(t *testing.T) {
	s := testSession(t)

	buf := s.Geometry(assetid.MustParse("minecraft:not_a_block"), nil, nil)
	if buf == nil {
		t.Fatal("fallback returned nil buffers")
	}
	if buf.VertexCount() != 24 || len(buf.Groups) != 6 {
		t.Fatalf("fallback cube shape: %d verts, %d groups", buf.VertexCount(), len(buf.Groups))
	}
	for _, g := range buf.Groups {
		if g.Texture != geometry.MissingTexture {
			t.Errorf("fallback group texture = %v, want %v", g.Texture, geometry.MissingTexture)
		}
	}
}

func TestGeometry_WorksAfterClose(t *testing.T) {
	s := testSession(t)
	s.Close()

	// The pool is gone; the inline path still serves requests.
	if buf := s.Geometry(stone, nil, nil); buf == nil || buf.VertexCount() != 24 {
		t.Fatalf("inline fallback after close: %+v", buf)
	}
}
