// Package resolve turns a block id plus a property assignment into the
// concrete model definition that should be rendered for it: it evaluates the
// blockstate's variant or multipart selection rules, merges the winning
// model's parent chain, and resolves texture-variable indirection.
package resolve

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/SilverlightStudios/voxelpack/internal/assets"
	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
	"github.com/SilverlightStudios/voxelpack/pkg/formats"
)

// Resolution errors.
var (
	ErrCircularReference = errors.New("circular model inheritance")
	ErrUnresolvedTexture = errors.New("unresolved texture variable")
	ErrNoMatchingVariant = errors.New("no variant matches properties")
)

// Rotation is the whole-part placement rotation taken from the chosen
// variant. It passes through resolution untouched; geometry never bakes it.
type Rotation struct {
	X      int // degrees around x, 90-degree steps
	Y      int // degrees around y, 90-degree steps
	Z      int // degrees around z, 90-degree steps
	UVLock bool
}

// Part is one resolved model contribution. Single-variant states produce
// exactly one part; multipart states produce one part per matching case.
type Part struct {
	Model            assetid.ID
	Elements         []formats.Element
	Textures         map[string]assetid.ID
	Unresolved       map[string]string // variable -> dangling reference, kept for diagnostics
	Rotation         Rotation
	AmbientOcclusion bool
}

// ResolvedModel is the full resolution result for one block state. It is
// produced fresh on every call and safe to discard.
type ResolvedModel struct {
	Block assetid.ID
	Props map[string]string
	Parts []Part
}

// Elements returns all parts' elements flattened in part order.
func (m *ResolvedModel) Elements() []formats.Element {
	var out []formats.Element
	for i := range m.Parts {
		out = append(out, m.Parts[i].Elements...)
	}
	return out
}

// UnresolvedErr summarizes dangling texture variables across all parts, or
// nil when every variable resolved. Resolution itself succeeds regardless;
// this classifies the leftovers for callers that log or surface them.
func (m *ResolvedModel) UnresolvedErr() error {
	for i := range m.Parts {
		p := &m.Parts[i]
		if len(p.Unresolved) == 0 {
			continue
		}
		names := make([]string, 0, len(p.Unresolved))
		for name := range p.Unresolved {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("%w: model %s: #%s", ErrUnresolvedTexture, p.Model, strings.Join(names, ", #"))
	}
	return nil
}

// Resolver resolves block states against a catalog under one enabled-pack
// order. It holds no mutable state; every call reads the catalog afresh.
type Resolver struct {
	catalog *assets.Catalog
	enabled []assets.PackID
}

// New creates a resolver bound to a catalog and enabled-pack order.
func New(catalog *assets.Catalog, enabled []assets.PackID) *Resolver {
	return &Resolver{catalog: catalog, enabled: enabled}
}

// ResolveBlockState resolves the model(s) for a block id under the given
// property assignment. The seed only influences weighted candidate picks and
// the same seed always yields the same pick.
func (r *Resolver) ResolveBlockState(block assetid.ID, props map[string]string, seed int64) (*ResolvedModel, error) {
	entry, err := assets.Lookup(r.catalog, block, assets.KindBlockState, r.enabled)
	if err != nil {
		return nil, fmt.Errorf("blockstate %s: %w", block, err)
	}

	bs, err := formats.DecodeBlockState(entry.Data)
	if err != nil {
		return nil, fmt.Errorf("blockstate %s: %w", block, err)
	}

	resolved := &ResolvedModel{Block: block, Props: props}

	if len(bs.Variants) > 0 {
		variant, selector, err := selectVariant(bs, props, block, seed)
		if err != nil {
			return nil, fmt.Errorf("blockstate %s: %w", block, err)
		}
		part, err := r.resolvePart(variant)
		if err != nil {
			return nil, fmt.Errorf("blockstate %s variant %q: %w", block, selector, err)
		}
		resolved.Parts = append(resolved.Parts, part)
		return resolved, nil
	}

	for i, mc := range bs.Multipart {
		if !mc.When.Eval(props) {
			continue
		}
		variant := pickWeighted(mc.Apply, seed, block, fmt.Sprintf("part/%d", i))
		part, err := r.resolvePart(variant)
		if err != nil {
			return nil, fmt.Errorf("blockstate %s multipart[%d]: %w", block, i, err)
		}
		resolved.Parts = append(resolved.Parts, part)
	}

	return resolved, nil
}

// selectVariant picks the variant entry whose selector matches the property
// assignment. An exact canonical match wins; otherwise the most specific
// subset match does. Selector keys are tried in sorted order so ties break
// the same way on every call.
func selectVariant(bs *formats.BlockState, props map[string]string, block assetid.ID, seed int64) (formats.Variant, string, error) {
	canonical := formats.SelectorKey(props)
	if candidates, ok := bs.Variants[canonical]; ok {
		return pickWeighted(candidates, seed, block, canonical), canonical, nil
	}

	keys := make([]string, 0, len(bs.Variants))
	for key := range bs.Variants {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	bestKey := ""
	bestPairs := -1
	for _, key := range keys {
		pairs, err := formats.ParseSelectorKey(key)
		if err != nil {
			return formats.Variant{}, "", err
		}
		matched := true
		for k, want := range pairs {
			if props[k] != want {
				matched = false
				break
			}
		}
		if matched && len(pairs) > bestPairs {
			bestPairs = len(pairs)
			bestKey = key
		}
	}

	if bestPairs < 0 {
		return formats.Variant{}, "", fmt.Errorf("%w: %s", ErrNoMatchingVariant, canonical)
	}
	return pickWeighted(bs.Variants[bestKey], seed, block, bestKey), bestKey, nil
}

// resolvePart loads the variant's model, merges its inheritance chain and
// resolves texture variables into a Part.
func (r *Resolver) resolvePart(v formats.Variant) (Part, error) {
	modelID, err := assetid.Parse(v.Model)
	if err != nil {
		return Part{}, fmt.Errorf("model id %q: %w", v.Model, err)
	}

	merged, err := r.mergeChain(modelID)
	if err != nil {
		return Part{}, err
	}

	textures, unresolved := resolveTextureVariables(merged.Textures)

	return Part{
		Model:            modelID,
		Elements:         merged.Elements,
		Textures:         textures,
		Unresolved:       unresolved,
		Rotation:         Rotation{X: v.X, Y: v.Y, Z: v.Z, UVLock: v.UVLock},
		AmbientOcclusion: merged.AmbientOcclusion,
	}, nil
}

// loadModel fetches and decodes one model document from the catalog.
func (r *Resolver) loadModel(id assetid.ID) (*formats.Model, error) {
	entry, err := assets.Lookup(r.catalog, id, assets.KindModel, r.enabled)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", id, err)
	}
	m, err := formats.DecodeModel(entry.Data)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", id, err)
	}
	return m, nil
}

// mergeChain walks the parent chain from the given model upward, merging
// texture variables child-over-parent and taking elements from the first
// (deepest) level that defines them. A model id seen twice fails with
// ErrCircularReference.
func (r *Resolver) mergeChain(id assetid.ID) (*formats.Model, error) {
	merged := &formats.Model{
		AmbientOcclusion: true,
		Textures:         map[string]string{},
	}

	visited := map[assetid.ID]bool{}
	current := id
	haveElements := false
	haveAO := false

	for {
		if visited[current] {
			return nil, fmt.Errorf("%w: %s revisits %s", ErrCircularReference, id, current)
		}
		visited[current] = true

		m, err := r.loadModel(current)
		if err != nil {
			return nil, err
		}

		// Child definitions already present win over the parent's.
		for name, ref := range m.Textures {
			if _, ok := merged.Textures[name]; !ok {
				merged.Textures[name] = ref
			}
		}
		if !haveElements && len(m.Elements) > 0 {
			merged.Elements = m.Elements
			haveElements = true
		}
		if !haveAO {
			merged.AmbientOcclusion = m.AmbientOcclusion
			haveAO = true
		}

		if m.Parent == "" {
			return merged, nil
		}
		parent, err := assetid.Parse(m.Parent)
		if err != nil {
			return nil, fmt.Errorf("model %s parent %q: %w", current, m.Parent, err)
		}
		current = parent
	}
}
