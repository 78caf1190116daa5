package registry

import (
	"fmt"
	"sync"

	"github.com/updateos/binmgr/internal/shared/types"
	"github.com/updateos/binmgr/internal/shared/utils"
)

// MaxSlots bounds the number of registered binaries, mirroring the fixed
// slot table of the embedded target this manages storage for.
const MaxSlots = 32

// ErrSlotNotFound is returned when a slot index has no registration.
var ErrSlotNotFound = fmt.Errorf("slot not found")

// ErrSlotTableFull is returned when no slot index remains for a new name.
var ErrSlotTableFull = fmt.Errorf("slot table full")

// Slot is a snapshot of one binary registration.
type Slot struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Version int    `json:"version"`
}

// Registry exposes the slot table to the binary manager core.
type Registry interface {
	// FindSlot resolves a binary name to its slot.
	FindSlot(name string) (Slot, bool)
	// RegisterIfAbsent registers a name, returning the existing slot when
	// the name is already known. Idempotent.
	RegisterIfAbsent(name string) (Slot, error)
	// ActiveVersion returns the version currently considered loaded.
	ActiveVersion(index int) (int, error)
	// NameOf returns the name registered at index.
	NameOf(index int) (string, error)
	// Activate flips the active version of a named slot. Owned by the
	// activation subsystem; the entry allocator never calls it.
	Activate(name string, version int) error
	// Kernel returns the kernel partition descriptor set, ok=false when
	// the system has no dual-bank kernel configured.
	Kernel() (types.KernelInfo, bool)
	// Slots lists all registrations in index order.
	Slots() []Slot
	// Count returns the number of registered slots.
	Count() int
}

// InMemory is the default Registry implementation: a mutex-guarded slot
// table with stable indices.
type InMemory struct {
	mu     sync.RWMutex
	slots  []Slot
	byName map[string]int
	kernel *types.KernelInfo
}

var _ Registry = (*InMemory)(nil)

// NewInMemory creates an empty registry. kernel may be nil when the system
// has no dual-bank kernel.
func NewInMemory(kernel *types.KernelInfo) *InMemory {
	return &InMemory{byName: make(map[string]int), kernel: kernel}
}

// FindSlot resolves a binary name to its slot.
func (r *InMemory) FindSlot(name string) (Slot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byName[name]
	if !ok {
		return Slot{}, false
	}
	return r.slots[idx], true
}

// RegisterIfAbsent registers a name, returning the existing slot when the
// name is already known.
func (r *InMemory) RegisterIfAbsent(name string) (Slot, error) {
	if err := utils.ValidateBinaryName(name); err != nil {
		return Slot{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if idx, ok := r.byName[name]; ok {
		return r.slots[idx], nil
	}
	if len(r.slots) >= MaxSlots {
		return Slot{}, ErrSlotTableFull
	}

	slot := Slot{Index: len(r.slots), Name: name}
	r.slots = append(r.slots, slot)
	r.byName[name] = slot.Index
	return slot, nil
}

// ActiveVersion returns the version currently considered loaded.
func (r *InMemory) ActiveVersion(index int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.slots) {
		return 0, ErrSlotNotFound
	}
	return r.slots[index].Version, nil
}

// NameOf returns the name registered at index.
func (r *InMemory) NameOf(index int) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.slots) {
		return "", ErrSlotNotFound
	}
	return r.slots[index].Name, nil
}

// Activate flips the active version of a named slot.
func (r *InMemory) Activate(name string, version int) error {
	if err := utils.ValidateVersion(version); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byName[name]
	if !ok {
		return ErrSlotNotFound
	}
	r.slots[idx].Version = version
	return nil
}

// Kernel returns the kernel partition descriptor set.
func (r *InMemory) Kernel() (types.KernelInfo, bool) {
	if r.kernel == nil {
		return types.KernelInfo{}, false
	}
	return *r.kernel, true
}

// Slots lists all registrations in index order.
func (r *InMemory) Slots() []Slot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Slot, len(r.slots))
	copy(out, r.slots)
	return out
}

// Count returns the number of registered slots.
func (r *InMemory) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.slots)
}
