package ecs

import (
	"strconv"

	"github.com/milk9111/focallock/ecs/component"
)

// Entity is a generational handle: the low 32 bits are the slot id, the high
// 32 bits the slot generation. Zero is never a live entity.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e > 0
}

// Ref converts the handle into the weak reference stored inside components.
func (e Entity) Ref() component.Ref {
	return component.Ref(e)
}

// FromRef converts a component reference back into an entity handle. The
// result may name a destroyed entity; check it with IsAlive.
func FromRef(r component.Ref) Entity {
	return Entity(r)
}
