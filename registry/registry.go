// Package registry holds the set of known catalog template definitions.
//
// A Registry is immutable: With and Merge return a new registry and leave
// the receiver untouched, so a registry can be shared between goroutines
// and swapped atomically by its owner.
package registry

import (
	"strings"

	"github.com/go-faster/errors"

	"catalog-studio/models"
)

// ErrTemplateNotFound is returned when no template has the requested id
var ErrTemplateNotFound = errors.New("template not found")

// Registry is an ordered, read-only set of template definitions keyed by id
type Registry struct {
	order []string
	byID  map[string]models.TemplateDefinition
}

// New builds a registry from defs. A later definition with the same id
// replaces an earlier one but keeps the earlier position.
func New(defs ...models.TemplateDefinition) *Registry {
	r := &Registry{
		order: make([]string, 0, len(defs)),
		byID:  make(map[string]models.TemplateDefinition, len(defs)),
	}
	for _, def := range defs {
		r.put(def)
	}
	return r
}

func (r *Registry) put(def models.TemplateDefinition) {
	if _, ok := r.byID[def.ID]; !ok {
		r.order = append(r.order, def.ID)
	}
	r.byID[def.ID] = def.Clone()
}

// Get returns a copy of the definition with the given id
func (r *Registry) Get(id string) (models.TemplateDefinition, error) {
	def, ok := r.byID[id]
	if !ok {
		return models.TemplateDefinition{}, errors.Wrapf(ErrTemplateNotFound, "id %q", id)
	}
	return def.Clone(), nil
}

// Len returns the number of definitions
func (r *Registry) Len() int {
	return len(r.order)
}

// IDs returns the template ids in registry order
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// List returns copies of all definitions in registry order
func (r *Registry) List() []models.TemplateDefinition {
	out := make([]models.TemplateDefinition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out
}

// With returns a new registry where def replaces the definition with the
// same id, or is appended when the id is new.
func (r *Registry) With(def models.TemplateDefinition) *Registry {
	return r.Merge(def)
}

// Merge returns a new registry with every def layered on top of r
func (r *Registry) Merge(defs ...models.TemplateDefinition) *Registry {
	next := &Registry{
		order: make([]string, len(r.order), len(r.order)+len(defs)),
		byID:  make(map[string]models.TemplateDefinition, len(r.byID)+len(defs)),
	}
	copy(next.order, r.order)
	for id, def := range r.byID {
		next.byID[id] = def
	}
	for _, def := range defs {
		next.put(def)
	}
	return next
}

// Filter narrows a listing. Empty fields match everything; comparisons
// ignore case.
type Filter struct {
	Industry string
	Feature  string
	Category string
}

// Filter returns the definitions matching f in registry order
func (r *Registry) Filter(f Filter) []models.TemplateDefinition {
	var out []models.TemplateDefinition
	for _, id := range r.order {
		def := r.byID[id]
		if !equalFold(f.Industry, def.Industry) || !equalFold(f.Category, def.Category) {
			continue
		}
		if f.Feature != "" && !HasFeature(def, f.Feature) {
			continue
		}
		out = append(out, def.Clone())
	}
	return out
}

// HasFeature reports whether def carries the feature as a tag or enables it
// through a content or visual flag.
func HasFeature(def models.TemplateDefinition, feature string) bool {
	feature = strings.ToLower(strings.TrimSpace(feature))
	for _, tag := range def.Tags {
		if strings.ToLower(strings.TrimSpace(tag)) == feature {
			return true
		}
	}

	switch feature {
	case "wholesale":
		return def.Content.ShowWholesalePrice
	case "sku":
		return def.Content.ShowSKU
	case "specifications", "specs":
		return def.Content.ShowSpecifications
	case "description":
		return def.Content.ShowDescription
	case "category":
		return def.Content.ShowCategory
	case "shadows":
		return def.Visual.Shadows
	case "animation":
		return def.Visual.Animation
	case "decorations", "decorative":
		return def.Visual.Decorative()
	default:
		return false
	}
}

func equalFold(want, got string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(want, strings.TrimSpace(got))
}
