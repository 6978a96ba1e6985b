package resolve

import (
	"hash/fnv"

	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
	"github.com/SilverlightStudios/voxelpack/pkg/formats"
)

// pickWeighted selects one candidate from a weighted list as a pure function
// of (seed, block, selector, candidates). The scheme is a splitmix64
// finalizer over the seed mixed with an FNV-1a hash of the block id and
// selector, reduced modulo the total weight and walked over cumulative
// weights. Weight-proportional and deterministic; not bit-compatible with
// any particular client, which is fine.
func pickWeighted(candidates []formats.Variant, seed int64, block assetid.ID, selector string) formats.Variant {
	if len(candidates) == 1 {
		return candidates[0]
	}

	total := 0
	for i := range candidates {
		total += candidates[i].Weight
	}
	if total <= 0 {
		return candidates[0]
	}

	h := fnv.New64a()
	h.Write([]byte(block.String()))
	h.Write([]byte{0})
	h.Write([]byte(selector))

	roll := int(splitmix64(uint64(seed)^h.Sum64()) % uint64(total))
	for i := range candidates {
		roll -= candidates[i].Weight
		if roll < 0 {
			return candidates[i]
		}
	}
	return candidates[len(candidates)-1]
}

// splitmix64 is the finalizer from the SplitMix64 generator; it spreads
// nearby seeds across the full 64-bit range.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
