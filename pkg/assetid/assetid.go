// Package assetid provides the namespaced identifier used to key every
// texture, blockstate and model definition in the catalog.
package assetid

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultNamespace is assumed when an identifier omits the "namespace:" part.
const DefaultNamespace = "minecraft"

// Identifier errors.
var (
	ErrEmptyID            = errors.New("empty asset identifier")
	ErrInvalidIDCharacter = errors.New("invalid character in asset identifier")
)

// ID is a namespaced asset identifier of the form "namespace:path".
// The zero value is invalid; construct via Parse or New.
type ID struct {
	namespace string
	path      string
}

// New builds an ID from an explicit namespace and path.
func New(namespace, path string) ID {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return ID{namespace: namespace, path: path}
}

// Parse parses "namespace:path" or bare "path" (default namespace).
func Parse(s string) (ID, error) {
	if s == "" {
		return ID{}, ErrEmptyID
	}

	namespace := DefaultNamespace
	path := s
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		namespace = s[:idx]
		path = s[idx+1:]
		if namespace == "" {
			namespace = DefaultNamespace
		}
	}

	if path == "" {
		return ID{}, ErrEmptyID
	}
	if !validPart(namespace, false) {
		return ID{}, fmt.Errorf("namespace %q: %w", namespace, ErrInvalidIDCharacter)
	}
	if !validPart(path, true) {
		return ID{}, fmt.Errorf("path %q: %w", path, ErrInvalidIDCharacter)
	}

	return ID{namespace: namespace, path: path}, nil
}

// MustParse is Parse that panics on error, for static identifiers.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("assetid: %v", err))
	}
	return id
}

// Namespace returns the namespace component.
func (id ID) Namespace() string { return id.namespace }

// Path returns the path component.
func (id ID) Path() string { return id.path }

// String returns the canonical "namespace:path" form.
func (id ID) String() string {
	return id.namespace + ":" + id.path
}

// IsZero reports whether the ID is the invalid zero value.
func (id ID) IsZero() bool {
	return id.namespace == "" && id.path == ""
}

// WithPath returns an ID in the same namespace with a different path.
func (id ID) WithPath(path string) ID {
	return ID{namespace: id.namespace, path: path}
}

// validPart checks identifier characters: lowercase letters, digits,
// '_', '-', '.', and '/' for paths only.
func validPart(s string, allowSlash bool) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-' || c == '.':
		case c == '/' && allowSlash:
		default:
			return false
		}
	}
	return true
}
