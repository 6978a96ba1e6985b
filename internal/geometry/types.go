// Package geometry synthesizes renderable vertex data from resolved model
// elements. Compute is a pure transform: the same elements, texture map and
// tint always produce identical buffers, whether it runs inline or behind
// the background compute boundary.
package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/SilverlightStudios/voxelpack/internal/resolve"
	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
	"github.com/SilverlightStudios/voxelpack/pkg/formats"
)

// Buffers is the renderable output for one model part: flat vertex streams,
// a triangle index list, and one material group per emitted face.
type Buffers struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
	Groups    []MaterialGroup

	// Faults records per-element failures. A malformed element never aborts
	// its siblings; it is skipped and noted here.
	Faults []Fault
}

// MaterialGroup ties a contiguous index range to the texture, tint and face
// direction it should be drawn with. Downstream shading picks per-face
// brightness bands off Direction.
type MaterialGroup struct {
	IndexOffset int
	IndexCount  int
	Texture     assetid.ID
	Direction   formats.Direction
	// TintIndex is the face's tint channel, -1 when untinted.
	TintIndex int
	// Tint is the externally supplied color for tinted faces, nil otherwise.
	Tint *RGB
	// Transform carries the element-level rotation as metadata. It is never
	// baked into Positions, so recomputation cannot accumulate error.
	Transform *Transform
	// Placement is the variant rotation of the part this face belongs to.
	Placement resolve.Rotation
}

/// Transform is element rotation metadata: rotate around Axis by Angle
// degrees about Origin (cube-local space), optionally rescaling.
type Transform struct {
	Origin  mgl32.Vec3
	Axis    string
	Angle   float32
	Rescale bool
}

// Fault records one element that could not be synthesized.
type Fault struct {
	Element int
	Err     error
}

// RGB is an 8-bit color used for tinting.
type RGB struct {
	R, G, B uint8
}

// VertexCount returns the number of vertices in the buffers.
func (b *Buffers) VertexCount() int { return len(b.Positions) }

// TriangleCount returns the number of triangles in the buffers.
func (b *Buffers) TriangleCount() int { return len(b.Indices) / 3 }

// Equal reports deep equality of two buffer sets, used to verify that the
// inline and background compute paths emit identical output.
func (b *Buffers) Equal(o *Buffers) bool {
	if b.VertexCount() != o.VertexCount() || len(b.Indices) != len(o.Indices) || len(b.Groups) != len(o.Groups) {
		return false
	}
	for i := range b.Positions {
		if b.Positions[i] != o.Positions[i] || b.Normals[i] != o.Normals[i] || b.UVs[i] != o.UVs[i] {
			return false
		}
	}
	for i := range b.Indices {
		if b.Indices[i] != o.Indices[i] {
			return false
		}
	}
	for i := range b.Groups {
		g, h := b.Groups[i], o.Groups[i]
		if g.IndexOffset != h.IndexOffset || g.IndexCount != h.IndexCount ||
			g.Texture != h.Texture || g.Direction != h.Direction ||
			g.TintIndex != h.TintIndex || g.Placement != h.Placement {
			return false
		}
		if (g.Tint == nil) != (h.Tint == nil) || (g.Tint != nil && *g.Tint != *h.Tint) {
			return false
		}
		if (g.Transform == nil) != (h.Transform == nil) || (g.Transform != nil && *g.Transform != *h.Transform) {
			return false
		}
	}
	return true
}
