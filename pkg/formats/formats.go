// Package formats provides parsing for the JSON definition documents found
// in resource packs: blockstate documents (variant/multipart selection rules)
// and model documents (parent inheritance, texture variables, cuboid
// elements). Each document is validated against an embedded JSON schema
// before decoding, so malformed data is rejected with a single well-known
// error instead of surfacing as partial structs downstream.
package formats

import (
	"errors"
)

// Definition errors.
var (
	// ErrMalformedDefinition is returned (wrapped with detail) whenever a
	// document fails schema validation or structural decoding.
	ErrMalformedDefinition = errors.New("malformed definition")
)

// Direction names one of the six axis-aligned faces of a cuboid element.
type Direction string

// The six face directions, matching the keys used in model JSON.
const (
	DirDown  Direction = "down"
	DirUp    Direction = "up"
	DirNorth Direction = "north"
	DirSouth Direction = "south"
	DirWest  Direction = "west"
	DirEast  Direction = "east"
)

// Directions lists the six face directions in canonical order.
var Directions = [6]Direction{DirDown, DirUp, DirNorth, DirSouth, DirWest, DirEast}

// Valid reports whether d is one of the six known directions.
func (d Direction) Valid() bool {
	switch d {
	case DirDown, DirUp, DirNorth, DirSouth, DirWest, DirEast:
		return true
	}
	return false
}

// Normal returns the outward unit normal of the face as integer components.
func (d Direction) Normal() (x, y, z int) {
	switch d {
	case DirDown:
		return 0, -1, 0
	case DirUp:
		return 0, 1, 0
	case DirNorth:
		return 0, 0, -1
	case DirSouth:
		return 0, 0, 1
	case DirWest:
		return -1, 0, 0
	case DirEast:
		return 1, 0, 0
	}
	return 0, 0, 0
}

// Opposite returns the facing direction on the other side of the element.
func (d Direction) Opposite() Direction {
	switch d {
	case DirDown:
		return DirUp
	case DirUp:
		return DirDown
	case DirNorth:
		return DirSouth
	case DirSouth:
		return DirNorth
	case DirWest:
		return DirEast
	case DirEast:
		return DirWest
	}
	return d
}
