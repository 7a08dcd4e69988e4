package service

import (
	"sync/atomic"

	"catalog-studio/models"
	"catalog-studio/registry"
)

// TemplateStore holds the current registry. Readers never block; the
// correction flow publishes a new registry with Update.
type TemplateStore struct {
	reg atomic.Pointer[registry.Registry]
}

// NewTemplateStore creates a store serving reg
func NewTemplateStore(reg *registry.Registry) *TemplateStore {
	s := &TemplateStore{}
	s.reg.Store(reg)
	return s
}

// Registry returns the current registry snapshot
func (s *TemplateStore) Registry() *registry.Registry {
	return s.reg.Load()
}

// Get looks up a template in the current snapshot
func (s *TemplateStore) Get(id string) (models.TemplateDefinition, error) {
	return s.reg.Load().Get(id)
}

// Update replaces or adds def, retrying if another update raced it
func (s *TemplateStore) Update(def models.TemplateDefinition) {
	for {
		cur := s.reg.Load()
		if s.reg.CompareAndSwap(cur, cur.With(def)) {
			return
		}
	}
}
