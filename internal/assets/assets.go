// Package assets holds the flat asset catalog contributed by resource packs
// and resolves, for every asset id, which enabled pack owns it.
package assets

import (
	"errors"
	"fmt"

	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
)

// Catalog errors.
var (
	ErrNotFound      = errors.New("asset not found in any pack")
	ErrUnknownPack   = errors.New("unknown pack id")
	ErrDuplicatePack = errors.New("duplicate pack id")
)

// PackID identifies one data source.
type PackID string

// DefaultPack is the built-in lowest-priority source. It only wins an asset
// when no enabled pack provides it.
const DefaultPack PackID = "default"

// Kind classifies a catalog entry.
type Kind int

// Entry kinds.
const (
	KindTexture Kind = iota
	KindBlockState
	KindModel
)

// String returns the kind name for logs and errors.
func (k Kind) String() string {
	switch k {
	case KindTexture:
		return "texture"
	case KindBlockState:
		return "blockstate"
	case KindModel:
		return "model"
	}
	return "unknown"
}

// Pack describes one data source contributing assets.
type Pack struct {
	ID   PackID
	Name string
}

// Entry is one asset as provided by one pack.
type Entry struct {
	ID   assetid.ID
	Kind Kind
	Data []byte
	Pack PackID
}

// Ref addresses one asset in the catalog. Model and texture ids share a
// path namespace ("block/stone" names both), so the kind is part of the key.
type Ref struct {
	ID   assetid.ID
	Kind Kind
}

// String returns "kind id" for logs and errors.
func (r Ref) String() string {
	return r.Kind.String() + " " + r.ID.String()
}

// Catalog is the flat mapping from asset ref to the entries each pack
// provides for it. The catalog itself carries no priority; ownership is
// decided per call from an enabled-pack order (see ResolveWinners).
type Catalog struct {
	packs   map[PackID]Pack
	entries map[Ref]map[PackID]Entry
}

// NewCatalog creates an empty catalog with the default pack registered.
func NewCatalog() *Catalog {
	c := &Catalog{
		packs:   make(map[PackID]Pack),
		entries: make(map[Ref]map[PackID]Entry),
	}
	c.packs[DefaultPack] = Pack{ID: DefaultPack, Name: "Default"}
	return c
}

// AddPack registers a data source.
func (c *Catalog) AddPack(p Pack) error {
	if _, ok := c.packs[p.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePack, p.ID)
	}
	c.packs[p.ID] = p
	return nil
}

// Put stores an entry for the given pack.
func (c *Catalog) Put(pack PackID, id assetid.ID, kind Kind, data []byte) error {
	if _, ok := c.packs[pack]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPack, pack)
	}
	ref := Ref{ID: id, Kind: kind}
	byPack, ok := c.entries[ref]
	if !ok {
		byPack = make(map[PackID]Entry, 1)
		c.entries[ref] = byPack
	}
	byPack[pack] = Entry{ID: id, Kind: kind, Data: data, Pack: pack}
	return nil
}

// Packs returns the registered packs (unordered).
func (c *Catalog) Packs() []Pack {
	out := make([]Pack, 0, len(c.packs))
	for _, p := range c.packs {
		out = append(out, p)
	}
	return out
}

// HasPack reports whether the pack id is registered.
func (c *Catalog) HasPack(id PackID) bool {
	_, ok := c.packs[id]
	return ok
}

// Refs returns every asset ref present in at least one pack (unordered).
func (c *Catalog) Refs() []Ref {
	out := make([]Ref, 0, len(c.entries))
	for ref := range c.entries {
		out = append(out, ref)
	}
	return out
}

// Has reports whether any pack provides the asset under the given kind.
func (c *Catalog) Has(id assetid.ID, kind Kind) bool {
	return len(c.entries[Ref{ID: id, Kind: kind}]) > 0
}
