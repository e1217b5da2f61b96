package modsys

import (
	"errors"
	"fmt"
	"sync"

	"github.com/specialistvlad/extmod/internal/scriptctx"
)

// ErrSlotOccupied is returned when a context already has a module system.
var ErrSlotOccupied = errors.New("script context already has a module system")

// Slots associates each scripting context with at most one ModuleSystem and
// owns the systems stored in it.
type Slots struct {
	mu      sync.RWMutex
	systems map[scriptctx.ID]*ModuleSystem
}

// NewSlots creates an empty Slots.
func NewSlots() *Slots {
	return &Slots{
		systems: make(map[scriptctx.ID]*ModuleSystem),
	}
}

// Get returns the module system bound to sc.
func (s *Slots) Get(sc *scriptctx.Context) (*ModuleSystem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ms, ok := s.systems[sc.ID()]
	return ms, ok
}

// Set stores ms as the module system of sc. ms must have been created for sc.
func (s *Slots) Set(sc *scriptctx.Context, ms *ModuleSystem) error {
	if ms == nil {
		return errors.New("module system must not be nil")
	}
	if ms.Context() != sc {
		return fmt.Errorf("module system is not bound to script context %s", sc.ID())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.systems[sc.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrSlotOccupied, sc.ID())
	}
	s.systems[sc.ID()] = ms
	return nil
}

// Reset destroys the module system bound to sc and empties the slot. An
// empty slot is left alone.
func (s *Slots) Reset(sc *scriptctx.Context) error {
	s.mu.Lock()
	ms, ok := s.systems[sc.ID()]
	delete(s.systems, sc.ID())
	s.mu.Unlock()

	if !ok {
		return nil
	}
	return ms.Destroy()
}

// Len returns the number of occupied slots.
func (s *Slots) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.systems)
}
