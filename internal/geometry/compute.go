package geometry

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/SilverlightStudios/voxelpack/internal/resolve"
	"github.com/SilverlightStudios/voxelpack/pkg/assetid"
	"github.com/SilverlightStudios/voxelpack/pkg/formats"
)

// ErrMalformedElement marks per-element faults recorded in Buffers.Faults.
var ErrMalformedElement = errors.New("malformed element")

// pixelScale converts the 0..16 definition space to cube-local units.
const pixelScale = 1.0 / 16.0

// Compute synthesizes buffers for one part's elements. Faces absent from the
// definition and faces whose texture variable did not resolve are skipped;
// malformed elements are recorded in Faults without aborting siblings.
func Compute(elements []formats.Element, textures map[string]assetid.ID, tint *RGB) *Buffers {
	return compute(elements, textures, tint, resolve.Rotation{})
}

// ComputeModel synthesizes buffers for a whole resolved model, part by part,
// concatenated into one buffer set. Each face's group records the placement
// rotation of the part it came from.
func ComputeModel(m *resolve.ResolvedModel, tint *RGB) *Buffers {
	out := &Buffers{}
	elemBase := 0
	for i := range m.Parts {
		part := &m.Parts[i]
		b := compute(part.Elements, part.Textures, tint, part.Rotation)
		appendBuffers(out, b, elemBase)
		elemBase += len(part.Elements)
	}
	return out
}

func compute(elements []formats.Element, textures map[string]assetid.ID, tint *RGB, placement resolve.Rotation) *Buffers {
	out := &Buffers{}

	for idx := range elements {
		elem := &elements[idx]
		if err := checkElement(elem); err != nil {
			out.Faults = append(out.Faults, Fault{Element: idx, Err: err})
			continue
		}

		var transform *Transform
		if r := elem.Rotation; r != nil {
			transform = &Transform{
				Origin:  mgl32.Vec3{float32(r.Origin[0]) * pixelScale, float32(r.Origin[1]) * pixelScale, float32(r.Origin[2]) * pixelScale},
				Axis:    r.Axis,
				Angle:   float32(r.Angle),
				Rescale: r.Rescale,
			}
		}

		for _, dir := range formats.Directions {
			face, ok := elem.Faces[dir]
			if !ok {
				continue
			}
			texture, ok := resolve.LookupFaceTexture(face.Texture, textures)
			if !ok {
				continue // unresolved variable: skip the face, keep the element
			}
			emitFace(out, elem, dir, &face, texture, tint, transform, placement)
		}
	}

	return out
}

// checkElement validates corner ordering. Range checks already ran at decode
// time; this guards elements constructed in code.
func checkElement(e *formats.Element) error {
	for i := 0; i < 3; i++ {
		if e.From[i] > e.To[i] {
			return fmt.Errorf("%w: from %v exceeds to %v", ErrMalformedElement, e.From, e.To)
		}
		if e.From[i] < -16 || e.To[i] > 32 {
			return fmt.Errorf("%w: corners %v..%v out of range", ErrMalformedElement, e.From, e.To)
		}
	}
	if len(e.Faces) == 0 {
		return fmt.Errorf("%w: no faces", ErrMalformedElement)
	}
	return nil
}

// emitFace appends one quad (two CCW triangles) and its material group.
func emitFace(out *Buffers, elem *formats.Element, dir formats.Direction, face *formats.Face,
	texture assetid.ID, tint *RGB, transform *Transform, placement resolve.Rotation) {

	corners := faceCorners(elem.From, elem.To, dir)
	uvs := faceUVs(elem, dir, face)

	base := uint32(len(out.Positions))
	nx, ny, nz := dir.Normal()
	normal := mgl32.Vec3{float32(nx), float32(ny), float32(nz)}

	for i := 0; i < 4; i++ {
		out.Positions = append(out.Positions, corners[i])
		out.Normals = append(out.Normals, normal)
		out.UVs = append(out.UVs, uvs[i])
	}

	indexOffset := len(out.Indices)
	out.Indices = append(out.Indices,
		base, base+1, base+2,
		base+2, base+3, base,
	)

	group := MaterialGroup{
		IndexOffset: indexOffset,
		IndexCount:  6,
		Texture:     texture,
		Direction:   dir,
		TintIndex:   face.TintIndex,
		Transform:   transform,
		Placement:   placement,
	}
	if face.TintIndex >= 0 && tint != nil {
		c := *tint
		group.Tint = &c
	}
	out.Groups = append(out.Groups, group)
}

// faceCorners returns the quad corners for one directional face of the
// cuboid, in counter-clockwise order seen from outside, in cube-local space
// (the 16-unit block maps to [-0.5, 0.5]³ around the block center).
func faceCorners(from, to [3]float64, dir formats.Direction) [4]mgl32.Vec3 {
	local := func(px, py, pz float64) mgl32.Vec3 {
		return mgl32.Vec3{
			float32(px*pixelScale - 0.5),
			float32(py*pixelScale - 0.5),
			float32(pz*pixelScale - 0.5),
		}
	}
	x0, y0, z0 := from[0], from[1], from[2]
	x1, y1, z1 := to[0], to[1], to[2]

	switch dir {
	case formats.DirUp:
		return [4]mgl32.Vec3{local(x0, y1, z0), local(x0, y1, z1), local(x1, y1, z1), local(x1, y1, z0)}
	case formats.DirDown:
		return [4]mgl32.Vec3{local(x0, y0, z0), local(x1, y0, z0), local(x1, y0, z1), local(x0, y0, z1)}
	case formats.DirNorth:
		return [4]mgl32.Vec3{local(x1, y0, z0), local(x0, y0, z0), local(x0, y1, z0), local(x1, y1, z0)}
	case formats.DirSouth:
		return [4]mgl32.Vec3{local(x0, y0, z1), local(x1, y0, z1), local(x1, y1, z1), local(x0, y1, z1)}
	case formats.DirWest:
		return [4]mgl32.Vec3{local(x0, y0, z0), local(x0, y0, z1), local(x0, y1, z1), local(x0, y1, z0)}
	case formats.DirEast:
		return [4]mgl32.Vec3{local(x1, y0, z1), local(x1, y0, z0), local(x1, y1, z0), local(x1, y1, z1)}
	}
	return [4]mgl32.Vec3{}
}

// faceUVs computes the four normalized UV pairs for a face: explicit rect
// when present, else derived by projecting the element extents onto the
// face plane; normalized to [0,1]² with a vertical flip (texture origin is
// top-left, mesh origin bottom-left), then rotated by the face's quarter-turn
// as a cyclic corner permutation.
func faceUVs(elem *formats.Element, dir formats.Direction, face *formats.Face) [4]mgl32.Vec2 {
	var rect [4]float64
	if face.UV != nil {
		rect = *face.UV
	} else {
		rect = deriveUV(elem.From, elem.To, dir)
	}

	u1 := float32(rect[0] * pixelScale)
	v1 := float32(rect[1] * pixelScale)
	u2 := float32(rect[2] * pixelScale)
	v2 := float32(rect[3] * pixelScale)

	// Vertical flip: the rect's top edge (v1) lands on the top of the quad.
	uvs := [4]mgl32.Vec2{
		{u1, 1 - v2},
		{u2, 1 - v2},
		{u2, 1 - v1},
		{u1, 1 - v1},
	}

	steps := (face.Rotation / 90) % 4
	if steps > 0 {
		var rotated [4]mgl32.Vec2
		for i := 0; i < 4; i++ {
			rotated[i] = uvs[(i+steps)%4]
		}
		uvs = rotated
	}
	return uvs
}

// deriveUV projects the element extents onto the face plane in 0..16 space.
func deriveUV(from, to [3]float64, dir formats.Direction) [4]float64 {
	switch dir {
	case formats.DirUp, formats.DirDown:
		return [4]float64{from[0], from[2], to[0], to[2]}
	case formats.DirNorth, formats.DirSouth:
		return [4]float64{from[0], 16 - to[1], to[0], 16 - from[1]}
	default: // west, east
		return [4]float64{from[2], 16 - to[1], to[2], 16 - from[1]}
	}
}

// appendBuffers concatenates src onto dst, rebasing indices, group offsets
// and fault element indices.
func appendBuffers(dst, src *Buffers, elemBase int) {
	vertBase := uint32(len(dst.Positions))
	indexBase := len(dst.Indices)

	dst.Positions = append(dst.Positions, src.Positions...)
	dst.Normals = append(dst.Normals, src.Normals...)
	dst.UVs = append(dst.UVs, src.UVs...)
	for _, idx := range src.Indices {
		dst.Indices = append(dst.Indices, idx+vertBase)
	}
	for _, g := range src.Groups {
		g.IndexOffset += indexBase
		dst.Groups = append(dst.Groups, g)
	}
	for _, f := range src.Faults {
		f.Element += elemBase
		dst.Faults = append(dst.Faults, f)
	}
}
