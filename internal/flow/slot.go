package flow

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// SlotState is the load state of a texture slot.
type SlotState int32

const (
	NotRequested SlotState = iota
	Loading
	Ready
	// Failed is terminal. It counts as not ready, so the renderer keeps waiting.
	Failed
)

func (s SlotState) String() string {
	switch s {
	case NotRequested:
		return "not requested"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("SlotState(%d)", int32(s))
}

// ErrSlotState is returned when a slot transition is attempted from the wrong state.
var ErrSlotState = errors.New("invalid slot transition")

type slotValue struct {
	state SlotState
	tex   Texture
	err   error
}

// Slot holds one texture while it loads. Loads complete on their own goroutine
// and publish through an atomic pointer, the renderer only ever reads snapshots.
// The zero value is an empty slot in the NotRequested state.
type Slot struct {
	name string
	v    atomic.Pointer[slotValue]
}

// NewSlot returns an empty slot with a name used in logs.
func NewSlot(name string) *Slot {
	return &Slot{name: name}
}

func (s *Slot) Name() string {
	return s.name
}

func (s *Slot) load() slotValue {
	if v := s.v.Load(); v != nil {
		return *v
	}
	return slotValue{state: NotRequested}
}

func (s *Slot) transition(from SlotState, to slotValue) error {
	for {
		old := s.v.Load()
		cur := NotRequested
		if old != nil {
			cur = old.state
		}
		if cur != from {
			return fmt.Errorf("%w: slot %q is %s, want %s", ErrSlotState, s.name, cur, from)
		}
		if s.v.CompareAndSwap(old, &to) {
			return nil
		}
	}
}

// Begin moves the slot from NotRequested to Loading. It reports false if a load was already started.
func (s *Slot) Begin() bool {
	return s.transition(NotRequested, slotValue{state: Loading}) == nil
}

// Publish makes tex available to the renderer. Only a loading slot can be published.
func (s *Slot) Publish(tex Texture) error {
	if tex == nil {
		return fmt.Errorf("publish slot %q: nil texture", s.name)
	}
	return s.transition(Loading, slotValue{state: Ready, tex: tex})
}

// Fail marks a loading slot as permanently failed.
func (s *Slot) Fail(err error) error {
	return s.transition(Loading, slotValue{state: Failed, err: err})
}

func (s *Slot) State() SlotState {
	return s.load().state
}

// Texture returns the published texture, or false if the slot is not ready.
func (s *Slot) Texture() (Texture, bool) {
	v := s.load()
	if v.state != Ready {
		return nil, false
	}
	return v.tex, true
}

// Err returns the load error of a failed slot.
func (s *Slot) Err() error {
	return s.load().err
}
