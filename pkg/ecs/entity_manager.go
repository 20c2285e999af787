// Package ecs is the minimal entity-component store the confetti viewer runs
// its bursts in. Components are keyed by their dynamic type, so every entity
// holds at most one component per type.
package ecs

import (
	"reflect"
	"sort"
)

// EntityID 实体唯一标识，0 保留为无效 ID
type EntityID uint64

// EntityManager 管理实体与组件
type EntityManager struct {
	nextID     uint64
	components map[EntityID]map[reflect.Type]any
	pending    []EntityID
}

// NewEntityManager creates an empty store.
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1,
		components: make(map[EntityID]map[reflect.Type]any),
	}
}

// CreateEntity allocates a new entity with no components.
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// Exists reports whether id is alive. Entities marked for removal stay alive
// until RemoveMarkedEntities runs.
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// Count returns the number of live entities.
func (em *EntityManager) Count() int { return len(em.components) }

// DestroyEntity marks id for removal at the end of the frame.
func (em *EntityManager) DestroyEntity(id EntityID) {
	for _, p := range em.pending {
		if p == id {
			return
		}
	}
	em.pending = append(em.pending, id)
}

// RemoveMarkedEntities drops every entity passed to DestroyEntity and
// returns how many were removed.
func (em *EntityManager) RemoveMarkedEntities() int {
	removed := 0
	for _, id := range em.pending {
		if _, ok := em.components[id]; ok {
			delete(em.components, id)
			removed++
		}
	}
	em.pending = em.pending[:0]
	return removed
}

// AddComponent attaches c to id, replacing any component of the same type.
func (em *EntityManager) AddComponent(id EntityID, c any) {
	if comps, ok := em.components[id]; ok {
		comps[reflect.TypeOf(c)] = c
	}
}

// RemoveComponent detaches the component of type t.
func (em *EntityManager) RemoveComponent(id EntityID, t reflect.Type) {
	if comps, ok := em.components[id]; ok {
		delete(comps, t)
	}
}

// GetComponent returns the component of type t attached to id.
func (em *EntityManager) GetComponent(id EntityID, t reflect.Type) (any, bool) {
	comps, ok := em.components[id]
	if !ok {
		return nil, false
	}
	c, ok := comps[t]
	return c, ok
}

// HasComponent reports whether id carries a component of type t.
func (em *EntityManager) HasComponent(id EntityID, t reflect.Type) bool {
	_, ok := em.GetComponent(id, t)
	return ok
}

// GetEntitiesWith returns the entities carrying every listed type, in
// creation order.
func (em *EntityManager) GetEntitiesWith(types ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	for id, comps := range em.components {
		if hasAll(comps, types) {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func hasAll(comps map[reflect.Type]any, types []reflect.Type) bool {
	for _, t := range types {
		if _, ok := comps[t]; !ok {
			return false
		}
	}
	return true
}
