// ABOUTME: Identifiable is the base shape shared by all catalog entities
// ABOUTME: Provides id/url/name equality rules and derived cache keys

package domain

// Identifiable is the base shape embedded by every catalog entity.
// All three fields are optional on the wire.
type Identifiable struct {
	// ID is the server-assigned identifier
	ID string

	// Name is the human-readable name
	Name string

	// URL is the absolute browser-facing URL of the entity
	URL string
}

// Entity is implemented by every catalog entity. Kind returns the concrete
// entity kind and is part of equality: entities of different kinds never
// match, regardless of matching ids.
type Entity interface {
	Ident() *Identifiable
	Kind() string
}

// Ident returns the embedded identity fields
func (i *Identifiable) Ident() *Identifiable {
	return i
}

// EqualsByID reports whether both entities are of the same kind and carry
// the same non-empty id.
func EqualsByID(a, b Entity) bool {
	if a == nil || b == nil || a.Kind() != b.Kind() {
		return false
	}
	return a.Ident().ID != "" && a.Ident().ID == b.Ident().ID
}

// EqualsByURL reports whether both entities are of the same kind and carry
// the same non-empty url.
func EqualsByURL(a, b Entity) bool {
	if a == nil || b == nil || a.Kind() != b.Kind() {
		return false
	}
	return a.Ident().URL != "" && a.Ident().URL == b.Ident().URL
}

// EqualsByName reports whether both entities are of the same kind and carry
// the same non-empty name.
func EqualsByName(a, b Entity) bool {
	if a == nil || b == nil || a.Kind() != b.Kind() {
		return false
	}
	return a.Ident().Name != "" && a.Ident().Name == b.Ident().Name
}

// Matches is the convenience comparison: it prefers id, falls back to url
// and finally to name. The fallbacks apply when either side has no id.
func Matches(a, b Entity) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Ident().ID != "" && b.Ident().ID != "" {
		return EqualsByID(a, b)
	}
	if EqualsByURL(a, b) {
		return true
	}
	return EqualsByName(a, b)
}

// EntityKey derives the primary cache key for an entity: kind plus id when
// an id is set, kind plus url otherwise. Keys are always derived, never
// stored on the entity.
func EntityKey(e Entity) string {
	if e.Ident().ID != "" {
		return e.Kind() + ":" + e.Ident().ID
	}
	return e.Kind() + ":" + e.Ident().URL
}
