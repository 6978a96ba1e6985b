package assets

import (
	"fmt"

	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
)

// ResolveWinners computes, for every asset ref present in at least one
// source, the pack that owns it under the given enabled order. Later entries
// in enabledOrder have higher priority; the built-in default pack is an
// implicit lowest-priority source. The result is a pure function of the
// catalog contents and the order, with no dependence on insertion order.
func ResolveWinners(c *Catalog, enabledOrder []PackID) map[Ref]PackID {
	rank := priorityRanks(enabledOrder)

	winners := make(map[Ref]PackID, len(c.entries))
	for ref, byPack := range c.entries {
		best := PackID("")
		bestRank := -1
		for pack := range byPack {
			r, ok := rank[pack]
			if !ok {
				continue // pack not enabled
			}
			if r > bestRank {
				bestRank = r
				best = pack
			}
		}
		if best != "" {
			winners[ref] = best
		}
	}
	return winners
}

// Lookup returns the winning entry for an asset under the enabled order, or
// ErrNotFound when no enabled pack (including the default) provides it.
// Callers are expected to degrade to placeholder content on ErrNotFound
// rather than abort.
func Lookup(c *Catalog, id assetid.ID, kind Kind, enabledOrder []PackID) (Entry, error) {
	rank := priorityRanks(enabledOrder)
	ref := Ref{ID: id, Kind: kind}

	best := Entry{}
	bestRank := -1
	for pack, entry := range c.entries[ref] {
		r, ok := rank[pack]
		if !ok {
			continue
		}
		if r > bestRank {
			bestRank = r
			best = entry
		}
	}
	if bestRank < 0 {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	return best, nil
}

// priorityRanks assigns each enabled pack its order index, with the default
// pack pinned below every explicit entry.
func priorityRanks(enabledOrder []PackID) map[PackID]int {
	rank := make(map[PackID]int, len(enabledOrder)+1)
	rank[DefaultPack] = 0
	for i, pack := range enabledOrder {
		if pack == DefaultPack {
			continue
		}
		rank[pack] = i + 1
	}
	return rank
}
