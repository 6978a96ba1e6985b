package geometry

import (
	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
	"github.com/SilverlightStudios/voxelpack/pkg/formats"
)

// MissingTexture is the asset id of the built-in checkerboard placeholder.
var MissingTexture = assetid.MustParse("voxelpack:missing")

// FallbackElements returns a full default cube with every face mapped to the
// placeholder texture. Sessions substitute it when resolution of a block
// fails, so one bad asset degrades to a visible checkerboard cube instead of
// aborting the preview.
func FallbackElements() []formats.Element {
	faces := make(map[formats.Direction]formats.Face, 6)
	for _, dir := range formats.Directions {
		faces[dir] = formats.Face{
			Texture:   MissingTexture.String(),
			CullFace:  dir,
			TintIndex: -1,
		}
	}
	return []formats.Element{{
		From:  [3]float64{0, 0, 0},
		To:    [3]float64{16, 16, 16},
		Shade: true,
		Faces: faces,
	}}
}

// FallbackTextures is the texture map matching FallbackElements.
func FallbackTextures() map[string]assetid.ID {
	return map[string]assetid.ID{"missing": MissingTexture}
}
