package resolve

import (
	"strings"

	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
)

// resolveTextureVariables follows "#name" indirection in a merged texture
// map until every variable reaches a concrete asset id or its chain is
// exhausted. Exhausted and cyclic variables land in the unresolved map with
// the reference they dangled on; faces using them are skipped by geometry
// but the model itself still resolves.
func resolveTextureVariables(vars map[string]string) (map[string]assetid.ID, map[string]string) {
	resolved := make(map[string]assetid.ID, len(vars))
	unresolved := map[string]string{}

	for name := range vars {
		id, dangling, ok := followTextureRef(name, vars)
		if ok {
			resolved[name] = id
		} else {
			unresolved[name] = dangling
		}
	}
	return resolved, unresolved
}

// followTextureRef chases one variable through the map. Returns the concrete
// id, or the reference the chain died on.
func followTextureRef(name string, vars map[string]string) (assetid.ID, string, bool) {
	seen := map[string]bool{}
	current := name

	for {
		if seen[current] {
			return assetid.ID{}, "#" + current, false // cycle
		}
		seen[current] = true

		ref, ok := vars[current]
		if !ok {
			return assetid.ID{}, "#" + current, false
		}
		if !strings.HasPrefix(ref, "#") {
			id, err := assetid.Parse(ref)
			if err != nil {
				return assetid.ID{}, ref, false
			}
			return id, "", true
		}
		current = strings.TrimPrefix(ref, "#")
	}
}

// LookupFaceTexture resolves one face's texture reference against a part's
// resolved variable map. Concrete references pass straight through; variable
// references missing from the map report false.
func LookupFaceTexture(ref string, textures map[string]assetid.ID) (assetid.ID, bool) {
	if !strings.HasPrefix(ref, "#") {
		id, err := assetid.Parse(ref)
		if err != nil {
			return assetid.ID{}, false
		}
		return id, true
	}
	id, ok := textures[strings.TrimPrefix(ref, "#")]
	return id, ok
}
