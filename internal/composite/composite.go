// Package composite decides how an entity texture is assembled from
// independently-toggleable visual layers. Each known entity family has a
// handler that inspects the catalog for sibling feature textures (saddles,
// collars, armor, markings, professions) and builds a control schema plus a
// pure control-state -> layer-stack function. Families are tried in a fixed
// order, first match wins; an asset no family claims is a plain entity.
package composite

import (
	"sort"

	"github.com/SilverlightStudios/voxelpack/internal/assets"
	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
)

// ControlKind distinguishes boolean toggles from enumerated selects.
type ControlKind int

// Control kinds.
const (
	ControlToggle ControlKind = iota
	ControlSelect
)

// Control is one user-facing input parameterizing the layer stack.
type Control struct {
	ID      string
	Label   string
	Kind    ControlKind
	Default string   // "true"/"false" for toggles, an option for selects
	Options []string // select options; empty for toggles
}

// ControlState maps control id to its current value. Missing entries mean
// the control's default.
type ControlState map[string]string

// LayerKind distinguishes texture-only contributions from ones that bring
// their own geometry.
type LayerKind int

// Layer kinds.
const (
	// TextureClone paints an extra texture over the base entity's own
	// geometry.
	TextureClone LayerKind = iota
	// GeometryOverlay renders separate overlay geometry (saddle, armor,
	// wool coat) with its own texture.
	GeometryOverlay
)

// BlendMode selects how a layer combines with what is beneath it.
type BlendMode int

// Blend modes.
const (
	BlendOpaque BlendMode = iota
	BlendCutout
	BlendTranslucent
)

// MaterialMode selects the layer's shading treatment.
type MaterialMode int

// Material modes.
const (
	MaterialDefault MaterialMode = iota
	MaterialEmissive
)

// Layer is one visual contribution in a composite stack.
type Layer struct {
	Kind     LayerKind
	Texture  assetid.ID
	Blend    BlendMode
	ZIndex   int // paint order, lower first
	Opacity  float64
	Material MaterialMode
	// BoneAliases maps the layer's own skeleton names onto the base
	// entity's (a saddle's "bridle" bone rides the base's "head").
	BoneAliases map[string]string
}

// Schema is the full composite description for one base entity texture.
type Schema struct {
	Base     assetid.ID
	Family   string
	Controls []Control
	layers   func(ControlState) []Layer
}

// Layers evaluates the layer stack for a control state. The result is
// sorted by ZIndex ascending and is a pure function of the schema and the
// state: equal inputs yield structurally equal stacks.
func (s *Schema) Layers(state ControlState) []Layer {
	out := s.layers(state)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// Value reads a control's effective value, falling back to its default.
func (s *Schema) Value(state ControlState, controlID string) string {
	if v, ok := state[controlID]; ok {
		return v
	}
	for _, c := range s.Controls {
		if c.ID == controlID {
			return c.Default
		}
	}
	return ""
}

// family pairs a path-shape predicate with its resolver.
type family struct {
	name    string
	match   func(assetid.ID) bool
	resolve func(assetid.ID, *assets.Catalog) *Schema
}

// families is the ordered handler table. Order matters: earlier entries
// shadow later ones for overlapping path shapes.
var families = []family{
	{name: "horse", match: matchHorse, resolve: resolveHorse},
	{name: "wolf", match: matchWolf, resolve: resolveWolf},
	{name: "villager", match: matchVillager, resolve: resolveVillager},
	{name: "sheep", match: matchSheep, resolve: resolveSheep},
	{name: "banner", match: matchBanner, resolve: resolveBanner},
}

// Resolve finds the first family whose predicate matches the asset's path
// shape and asks it for a schema. A nil return means the asset is a plain
// entity (or a feature layer of some other base) and gets no controls;
// that is an expected outcome, not an error.
func Resolve(id assetid.ID, catalog *assets.Catalog) *Schema {
	for _, f := range families {
		if f.match(id) {
			return f.resolve(id, catalog)
		}
	}
	return nil
}
