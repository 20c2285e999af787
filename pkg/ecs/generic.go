package ecs

import "reflect"

// typeOf 返回类型参数对应的 reflect.Type（指针组件也适用）
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// GetComponent is the typed form of EntityManager.GetComponent.
//
//	burst, ok := ecs.GetComponent[*components.BurstComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	c, ok := em.GetComponent(id, typeOf[T]())
	if !ok {
		return zero, false
	}
	v, ok := c.(T)
	return v, ok
}

// HasComponent is the typed form of EntityManager.HasComponent.
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	return em.HasComponent(id, typeOf[T]())
}

// RemoveComponent is the typed form of EntityManager.RemoveComponent.
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.RemoveComponent(id, typeOf[T]())
}

// GetEntitiesWith1 returns the entities carrying a T.
func GetEntitiesWith1[T any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T]())
}

// GetEntitiesWith2 returns the entities carrying both a T1 and a T2.
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2]())
}
