package formats

import (
	"encoding/json"
	"fmt"
	"math"
)

// Model is a parsed model document. Geometry lives in Elements; a model with
// no elements of its own inherits them from its Parent chain.
type Model struct {
	Parent           string            // parent model id, "" for roots
	AmbientOcclusion bool              // defaults to true
	Textures         map[string]string // variable name -> concrete id or "#ref"
	Elements         []Element
}

// Element is one cuboid within a model, spanning From..To in the fixed
// 16-unit pixel space of a single block.
type Element struct {
	From     [3]float64
	To       [3]float64
	Rotation *ElementRotation
	Shade    bool
	Faces    map[Direction]Face
}

// ElementRotation tilts a whole element around one axis. Angles are
// restricted to quarter-steps of 22.5 degrees up to 45.
type ElementRotation struct {
	Origin  [3]float64
	Axis    string // "x", "y" or "z"
	Angle   float64
	Rescale bool
}

// Face is one directional surface of an element.
type Face struct {
	// UV is the explicit texture rectangle [x1,y1,x2,y2] in 0..16 pixel
	// space, nil to derive from the element extents.
	UV *[4]float64
	// Texture is a concrete asset id or a "#variable" reference.
	Texture string
	// CullFace names the neighbor direction that hides this face, "" if none.
	CullFace Direction
	// Rotation spins the UV rectangle in 90-degree steps.
	Rotation int
	// TintIndex selects an external tint channel, -1 for untinted.
	TintIndex int
}

type jsonModel struct {
	Parent           string            `json:"parent"`
	AmbientOcclusion *bool             `json:"ambientocclusion"`
	Textures         map[string]string `json:"textures"`
	Elements         []jsonElement     `json:"elements"`
	Display          map[string]any    `json:"display"` // accepted, not used
	GuiLight         string            `json:"gui_light"`
}

type jsonElement struct {
	From     *[3]float64          `json:"from"`
	To       *[3]float64          `json:"to"`
	Rotation *jsonElementRotation `json:"rotation"`
	Shade    *bool                `json:"shade"`
	Faces    map[string]jsonFace  `json:"faces"`
	Name     string               `json:"name"`
	Comment  string               `json:"__comment"`
}

type jsonElementRotation struct {
	Origin  [3]float64 `json:"origin"`
	Axis    string     `json:"axis"`
	Angle   float64    `json:"angle"`
	Rescale bool       `json:"rescale"`
}

type jsonFace struct {
	UV        *[4]float64 `json:"uv"`
	Texture   string      `json:"texture"`
	CullFace  string      `json:"cullface"`
	Rotation  *int        `json:"rotation"`
	TintIndex *int        `json:"tintindex"`
}

// DecodeModel validates and decodes a model document.
func DecodeModel(data []byte) (*Model, error) {
	if err := validateModel(data); err != nil {
		return nil, err
	}

	var doc jsonModel
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDefinition, err)
	}

	m := &Model{
		Parent:           doc.Parent,
		AmbientOcclusion: true,
		Textures:         doc.Textures,
	}
	if doc.AmbientOcclusion != nil {
		m.AmbientOcclusion = *doc.AmbientOcclusion
	}
	if m.Textures == nil {
		m.Textures = map[string]string{}
	}

	for i, je := range doc.Elements {
		elem, err := decodeElement(je)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		m.Elements = append(m.Elements, elem)
	}

	return m, nil
}

func decodeElement(je jsonElement) (Element, error) {
	var e Element
	if je.From == nil || je.To == nil {
		return e, fmt.Errorf("%w: element missing from/to", ErrMalformedDefinition)
	}
	e.From = *je.From
	e.To = *je.To
	e.Shade = true
	if je.Shade != nil {
		e.Shade = *je.Shade
	}

	for i := 0; i < 3; i++ {
		if e.From[i] < -16 || e.From[i] > 32 || e.To[i] < -16 || e.To[i] > 32 {
			return e, fmt.Errorf("%w: element corner out of [-16,32] range", ErrMalformedDefinition)
		}
	}

	if je.Rotation != nil {
		r := ElementRotation{
			Origin:  je.Rotation.Origin,
			Axis:    je.Rotation.Axis,
			Angle:   je.Rotation.Angle,
			Rescale: je.Rotation.Rescale,
		}
		if r.Axis != "x" && r.Axis != "y" && r.Axis != "z" {
			return e, fmt.Errorf("%w: rotation axis %q", ErrMalformedDefinition, r.Axis)
		}
		if !validElementAngle(r.Angle) {
			return e, fmt.Errorf("%w: rotation angle %v", ErrMalformedDefinition, r.Angle)
		}
		e.Rotation = &r
	}

	e.Faces = make(map[Direction]Face, len(je.Faces))
	for name, jf := range je.Faces {
		dir := Direction(name)
		if !dir.Valid() {
			return e, fmt.Errorf("%w: unknown face %q", ErrMalformedDefinition, name)
		}
		face := Face{
			UV:        jf.UV,
			Texture:   jf.Texture,
			CullFace:  Direction(jf.CullFace),
			TintIndex: -1,
		}
		if jf.Texture == "" {
			return e, fmt.Errorf("%w: face %q missing texture", ErrMalformedDefinition, name)
		}
		if jf.Rotation != nil {
			face.Rotation = *jf.Rotation
			switch face.Rotation {
			case 0, 90, 180, 270:
			default:
				return e, fmt.Errorf("%w: face %q uv rotation %d", ErrMalformedDefinition, name, face.Rotation)
			}
		}
		if jf.TintIndex != nil {
			face.TintIndex = *jf.TintIndex
		}
		e.Faces[dir] = face
	}

	return e, nil
}

// validElementAngle accepts the quarter-step angles model JSON allows.
func validElementAngle(a float64) bool {
	abs := math.Abs(a)
	return abs == 0 || abs == 22.5 || abs == 45
}
