package composite

import (
	"strings"

	"github.com/SilverlightStudios/voxelpack/internal/assets"
	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
)

// presentOptions filters a fixed candidate list down to the variants the
// catalog actually provides under prefix. The candidate order is fixed so
// schemas come out deterministic regardless of catalog iteration order.
func presentOptions(c *assets.Catalog, ns, prefix string, candidates []string) []string {
	var out []string
	for _, cand := range candidates {
		if c.Has(assetid.New(ns, prefix+cand), assets.KindTexture) {
			out = append(out, cand)
		}
	}
	return out
}

// hasTexture is shorthand for the family resolvers' sibling probes.
func hasTexture(c *assets.Catalog, ns, path string) bool {
	return c.Has(assetid.New(ns, path), assets.KindTexture)
}

func baseLayer(base assetid.ID) Layer {
	return Layer{Kind: TextureClone, Texture: base, Blend: BlendOpaque, ZIndex: 0, Opacity: 1}
}

// --- horse ---

var horseCoats = []string{"white", "creamy", "chestnut", "brown", "black", "gray", "dark_brown"}
var horseMarkings = []string{"white", "white_field", "white_dots", "black_dots"}
var horseArmors = []string{"leather", "iron", "gold", "diamond"}

// matchHorse claims only the plain coat textures. The saddle, markings and
// armor textures in the same directory are feature layers of those bases
// and must not get schemas of their own.
func matchHorse(id assetid.ID) bool {
	rest, ok := strings.CutPrefix(id.Path(), "entity/horse/horse_")
	if !ok {
		return false
	}
	for _, coat := range horseCoats {
		if rest == coat {
			return true
		}
	}
	return false
}

func resolveHorse(base assetid.ID, c *assets.Catalog) *Schema {
	ns := base.Namespace()
	s := &Schema{Base: base, Family: "horse"}

	hasSaddle := hasTexture(c, ns, "entity/horse/horse_saddle")
	if hasSaddle {
		s.Controls = append(s.Controls, Control{
			ID: "saddle", Label: "Saddle", Kind: ControlToggle, Default: "false",
		})
	}
	markings := presentOptions(c, ns, "entity/horse/horse_markings_", horseMarkings)
	if len(markings) > 0 {
		s.Controls = append(s.Controls, Control{
			ID: "markings", Label: "Markings", Kind: ControlSelect,
			Default: "none", Options: append([]string{"none"}, markings...),
		})
	}
	armors := presentOptions(c, ns, "entity/equipment/horse_armor/", horseArmors)
	if len(armors) > 0 {
		s.Controls = append(s.Controls, Control{
			ID: "armor", Label: "Armor", Kind: ControlSelect,
			Default: "none", Options: append([]string{"none"}, armors...),
		})
	}

	s.layers = func(state ControlState) []Layer {
		out := []Layer{baseLayer(base)}
		if m := s.Value(state, "markings"); m != "" && m != "none" {
			out = append(out, Layer{
				Kind:    TextureClone,
				Texture: assetid.New(ns, "entity/horse/horse_markings_"+m),
				Blend:   BlendCutout, ZIndex: 10, Opacity: 1,
			})
		}
		if a := s.Value(state, "armor"); a != "" && a != "none" {
			out = append(out, Layer{
				Kind:    GeometryOverlay,
				Texture: assetid.New(ns, "entity/equipment/horse_armor/"+a),
				Blend:   BlendCutout, ZIndex: 20, Opacity: 1,
			})
		}
		if hasSaddle && s.Value(state, "saddle") == "true" {
			out = append(out, Layer{
				Kind:    GeometryOverlay,
				Texture: assetid.New(ns, "entity/horse/horse_saddle"),
				Blend:   BlendCutout, ZIndex: 30, Opacity: 1,
				// The saddle model names its own bones; ride the base
				// skeleton instead of animating independently.
				BoneAliases: map[string]string{"bridle": "head", "saddle": "body"},
			})
		}
		return out
	}
	return s
}

// --- wolf ---

var wolfArmors = []string{"armadillo"}

func matchWolf(id assetid.ID) bool {
	return id.Path() == "entity/wolf/wolf"
}

func resolveWolf(base assetid.ID, c *assets.Catalog) *Schema {
	ns := base.Namespace()
	s := &Schema{Base: base, Family: "wolf"}

	tempers := []string{"normal"}
	if hasTexture(c, ns, "entity/wolf/wolf_tame") {
		tempers = append(tempers, "tame")
	}
	if hasTexture(c, ns, "entity/wolf/wolf_angry") {
		tempers = append(tempers, "angry")
	}
	if len(tempers) > 1 {
		s.Controls = append(s.Controls, Control{
			ID: "temper", Label: "Temper", Kind: ControlSelect,
			Default: "normal", Options: tempers,
		})
	}
	hasCollar := hasTexture(c, ns, "entity/wolf/wolf_collar")
	if hasCollar {
		s.Controls = append(s.Controls, Control{
			ID: "collar", Label: "Collar", Kind: ControlToggle, Default: "false",
		})
	}
	armors := presentOptions(c, ns, "entity/equipment/wolf_armor/", wolfArmors)
	if len(armors) > 0 {
		s.Controls = append(s.Controls, Control{
			ID: "armor", Label: "Armor", Kind: ControlSelect,
			Default: "none", Options: append([]string{"none"}, armors...),
		})
	}

	s.layers = func(state ControlState) []Layer {
		// Temper swaps the base texture rather than adding a layer.
		bottom := base
		switch s.Value(state, "temper") {
		case "tame":
			bottom = assetid.New(ns, "entity/wolf/wolf_tame")
		case "angry":
			bottom = assetid.New(ns, "entity/wolf/wolf_angry")
		}
		out := []Layer{baseLayer(bottom)}
		if hasCollar && s.Value(state, "collar") == "true" {
			out = append(out, Layer{
				Kind:    TextureClone,
				Texture: assetid.New(ns, "entity/wolf/wolf_collar"),
				Blend:   BlendCutout, ZIndex: 10, Opacity: 1,
			})
		}
		if a := s.Value(state, "armor"); a != "" && a != "none" {
			out = append(out, Layer{
				Kind:    GeometryOverlay,
				Texture: assetid.New(ns, "entity/equipment/wolf_armor/"+a),
				Blend:   BlendCutout, ZIndex: 20, Opacity: 1,
			})
		}
		return out
	}
	return s
}

// --- villager ---

var villagerTypes = []string{"desert", "jungle", "plains", "savanna", "snow", "swamp", "taiga"}
var villagerProfessions = []string{
	"armorer", "butcher", "cartographer", "cleric", "farmer", "fisherman",
	"fletcher", "leatherworker", "librarian", "mason", "shepherd", "toolsmith",
	"weaponsmith",
}
var villagerLevels = []string{"stone", "iron", "gold", "emerald", "diamond"}

func matchVillager(id assetid.ID) bool {
	return id.Path() == "entity/villager/villager"
}

func resolveVillager(base assetid.ID, c *assets.Catalog) *Schema {
	ns := base.Namespace()
	s := &Schema{Base: base, Family: "villager"}

	types := presentOptions(c, ns, "entity/villager/type/", villagerTypes)
	if len(types) > 0 {
		s.Controls = append(s.Controls, Control{
			ID: "biome", Label: "Biome", Kind: ControlSelect,
			Default: "plains", Options: types,
		})
	}
	professions := presentOptions(c, ns, "entity/villager/profession/", villagerProfessions)
	if len(professions) > 0 {
		s.Controls = append(s.Controls, Control{
			ID: "profession", Label: "Profession", Kind: ControlSelect,
			Default: "none", Options: append([]string{"none"}, professions...),
		})
	}
	levels := presentOptions(c, ns, "entity/villager/profession_level/", villagerLevels)
	if len(levels) > 0 {
		s.Controls = append(s.Controls, Control{
			ID: "level", Label: "Trade level", Kind: ControlSelect,
			Default: "none", Options: append([]string{"none"}, levels...),
		})
	}

	s.layers = func(state ControlState) []Layer {
		out := []Layer{baseLayer(base)}
		if b := s.Value(state, "biome"); b != "" {
			id := assetid.New(ns, "entity/villager/type/"+b)
			if c.Has(id, assets.KindTexture) {
				out = append(out, Layer{
					Kind: TextureClone, Texture: id,
					Blend: BlendCutout, ZIndex: 5, Opacity: 1,
				})
			}
		}
		profession := s.Value(state, "profession")
		if profession != "" && profession != "none" {
			out = append(out, Layer{
				Kind:    TextureClone,
				Texture: assetid.New(ns, "entity/villager/profession/"+profession),
				Blend:   BlendCutout, ZIndex: 10, Opacity: 1,
			})
			// The badge only makes sense on an employed villager.
			if l := s.Value(state, "level"); l != "" && l != "none" {
				out = append(out, Layer{
					Kind:    TextureClone,
					Texture: assetid.New(ns, "entity/villager/profession_level/"+l),
					Blend:   BlendCutout, ZIndex: 20, Opacity: 1,
				})
			}
		}
		return out
	}
	return s
}

// --- sheep ---

func matchSheep(id assetid.ID) bool {
	return id.Path() == "entity/sheep/sheep"
}

func resolveSheep(base assetid.ID, c *assets.Catalog) *Schema {
	ns := base.Namespace()
	s := &Schema{Base: base, Family: "sheep"}

	hasWool := hasTexture(c, ns, "entity/sheep/sheep_wool")
	if hasWool {
		s.Controls = append(s.Controls, Control{
			ID: "wool", Label: "Wool coat", Kind: ControlToggle, Default: "true",
		})
	}
	hasUndercoat := hasTexture(c, ns, "entity/sheep/sheep_wool_undercoat")

	s.layers = func(state ControlState) []Layer {
		out := []Layer{baseLayer(base)}
		if hasWool && s.Value(state, "wool") == "true" {
			if hasUndercoat {
				out = append(out, Layer{
					Kind:    TextureClone,
					Texture: assetid.New(ns, "entity/sheep/sheep_wool_undercoat"),
					Blend:   BlendOpaque, ZIndex: 5, Opacity: 1,
				})
			}
			out = append(out, Layer{
				Kind:    GeometryOverlay,
				Texture: assetid.New(ns, "entity/sheep/sheep_wool"),
				Blend:   BlendCutout, ZIndex: 10, Opacity: 1,
			})
		}
		return out
	}
	return s
}

// --- banner ---

var bannerPatterns = []string{
	"border", "bricks", "circle", "creeper", "cross", "flower", "gradient",
	"mojang", "skull", "stripe_bottom", "stripe_top",
}

func matchBanner(id assetid.ID) bool {
	return id.Path() == "entity/banner_base"
}

func resolveBanner(base assetid.ID, c *assets.Catalog) *Schema {
	ns := base.Namespace()
	s := &Schema{Base: base, Family: "banner"}

	patterns := presentOptions(c, ns, "entity/banner/", bannerPatterns)
	if len(patterns) > 0 {
		s.Controls = append(s.Controls, Control{
			ID: "pattern", Label: "Pattern", Kind: ControlSelect,
			Default: "none", Options: append([]string{"none"}, patterns...),
		})
	}

	s.layers = func(state ControlState) []Layer {
		out := []Layer{baseLayer(base)}
		if p := s.Value(state, "pattern"); p != "" && p != "none" {
			out = append(out, Layer{
				Kind:    TextureClone,
				Texture: assetid.New(ns, "entity/banner/"+p),
				Blend:   BlendTranslucent, ZIndex: 10, Opacity: 1,
			})
		}
		return out
	}
	return s
}
