package wavestack

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
)

// Handle identifies a WaveStack entry independently of its position. Handles
// are never reused within a stack.
type Handle uint64

type entry struct {
	handle Handle
	buffer SampleBuffer
	muted  bool
	// mixed is the child stack's regeneration count when it was last mixed in.
	mixed uint64
}

// WaveStack composites an ordered list of SampleBuffers into its own storage.
//
// Mutations only mark the stack dirty. The mix happens on the next Buffer
// call: storage is zeroed and every unmuted entry is mixed in, in stack order,
// with the entry's own MixOp. A WaveStack is itself a SampleBuffer and can be
// nested in another stack; insertions that would make a stack contain itself
// are rejected with ErrCycle.
//
// Entries are mixed through their MixInto method. Entries are matched by
// identity, so SampleBuffer implementations must be comparable; every buffer
// type in this package is a pointer.
//
// Changes below a nested stack are only seen when the entry is the *WaveStack
// itself. A stack wrapped in another SampleBuffer type is opaque: its changes
// do not mark the parent dirty, and neither the insertion check nor Dirty can
// see a cycle through it. Such a cycle is reported by Regenerate.
type WaveStack struct {
	base
	entries       []entry
	nextHandle    Handle
	dirty         bool
	regenerating  bool
	reentered     bool
	regenerations uint64
	logger        *slog.Logger
}

// NewWaveStack creates an empty, clean stack of duration seconds. Use
// WithChannels for multi-channel output and WithMixOp to choose how the stack
// itself is mixed when nested.
func NewWaveStack(provider Provider, duration float64, opts ...Option) (*WaveStack, error) {
	o := resolveOptions(opts)

	b, err := newBase(provider, duration, o.channels, o.mixOp)
	if err != nil {
		return nil, err
	}

	return &WaveStack{base: b, nextHandle: 1, logger: o.logger}, nil
}

// Buffer returns the composited samples, remixing first if any entry changed
// since the last call. It panics with the error of Regenerate; call Regenerate
// first where entries may reach back to the stack.
func (s *WaveStack) Buffer() RawBuffer {
	if s.regenerating {
		s.reentered = true
		return s.raw
	}

	if err := s.Regenerate(); err != nil {
		panic(err)
	}

	return s.raw
}

// MixInto composites the stack, regenerated if needed, into dst.
func (s *WaveStack) MixInto(dst SampleBuffer) {
	if isNil(dst) {
		return
	}

	mixRaw(s.Buffer(), dst.Buffer(), s.combine)
}

// Regenerate remixes the stack if it is dirty. It fails with ErrCycle when an
// entry reads the stack back while it is being mixed; the storage is then
// left zeroed and the stack stays dirty.
func (s *WaveStack) Regenerate() error {
	if s.regenerating {
		s.reentered = true
		return fmt.Errorf("%w: stack regenerated from inside its own mix", ErrCycle)
	}

	if !s.stale() {
		return nil
	}

	return s.regenerate()
}

// Dirty reports whether the next Buffer call will remix, either because this
// stack changed or because a nested stack did.
func (s *WaveStack) Dirty() bool { return s.stale() }

// Regenerations returns how many times the stack has been remixed.
func (s *WaveStack) Regenerations() uint64 { return s.regenerations }

// Count returns the number of entries, muted ones included.
func (s *WaveStack) Count() int { return len(s.entries) }

// EntryAt returns the buffer at index, or nil if index is out of range.
func (s *WaveStack) EntryAt(index int) SampleBuffer {
	if index < 0 || index >= len(s.entries) {
		return nil
	}

	return s.entries[index].buffer
}

// IndexOf returns the position of the first entry holding buf, or -1.
func (s *WaveStack) IndexOf(buf SampleBuffer) int {
	if buf == nil {
		return -1
	}

	return slices.IndexFunc(s.entries, func(e entry) bool { return e.buffer == buf })
}

// IndexOfHandle returns the position of the entry identified by h, or -1.
func (s *WaveStack) IndexOfHandle(h Handle) int {
	return slices.IndexFunc(s.entries, func(e entry) bool { return e.handle == h })
}

// HandleOf returns the handle of the first entry holding buf.
func (s *WaveStack) HandleOf(buf SampleBuffer) (Handle, bool) {
	i := s.IndexOf(buf)
	if i < 0 {
		return 0, false
	}

	return s.entries[i].handle, true
}

// Add appends buf and returns its handle and index.
func (s *WaveStack) Add(buf SampleBuffer) (Handle, int, error) {
	return s.Insert(len(s.entries), buf)
}

// Insert places buf at index, shifting later entries back. index may equal
// Count to append.
func (s *WaveStack) Insert(index int, buf SampleBuffer) (Handle, int, error) {
	if err := s.admit(buf); err != nil {
		return 0, -1, err
	}

	if index < 0 || index > len(s.entries) {
		return 0, -1, s.reject("insert", fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, index, len(s.entries)))
	}

	h := s.nextHandle
	s.nextHandle++
	s.entries = slices.Insert(s.entries, index, entry{handle: h, buffer: buf})
	s.invalidate()

	return h, index, nil
}

// Replace swaps the first entry holding old for replacement, keeping its
// position, handle and muted state. It fails with ErrEntryNotFound if old is
// not in the stack.
func (s *WaveStack) Replace(old, replacement SampleBuffer) (int, error) {
	i := s.IndexOf(old)
	if i < 0 {
		return -1, s.reject("replace", ErrEntryNotFound)
	}

	return s.replaceAt(i, replacement)
}

// ReplaceHandle swaps the buffer of the entry identified by h.
func (s *WaveStack) ReplaceHandle(h Handle, replacement SampleBuffer) (int, error) {
	i := s.IndexOfHandle(h)
	if i < 0 {
		return -1, s.reject("replace", fmt.Errorf("%w: handle %d", ErrEntryNotFound, h))
	}

	return s.replaceAt(i, replacement)
}

func (s *WaveStack) replaceAt(i int, replacement SampleBuffer) (int, error) {
	if err := s.admit(replacement); err != nil {
		return -1, err
	}

	s.entries[i].buffer = replacement
	s.invalidate()

	return i, nil
}

// Remove drops the first entry holding buf. Removing a buffer that is not in
// the stack does nothing.
func (s *WaveStack) Remove(buf SampleBuffer) {
	s.removeAt(s.IndexOf(buf))
}

// RemoveHandle drops the entry identified by h, if present.
func (s *WaveStack) RemoveHandle(h Handle) {
	s.removeAt(s.IndexOfHandle(h))
}

func (s *WaveStack) removeAt(i int) {
	if i < 0 {
		return
	}

	s.entries = slices.Delete(s.entries, i, i+1)
	s.invalidate()
}

// SetMuted sets the muted state of the first entry holding buf. Unknown
// buffers are ignored.
func (s *WaveStack) SetMuted(buf SampleBuffer, muted bool) {
	s.setMutedAt(s.IndexOf(buf), muted)
}

// SetMutedHandle sets the muted state of the entry identified by h, if present.
func (s *WaveStack) SetMutedHandle(h Handle, muted bool) {
	s.setMutedAt(s.IndexOfHandle(h), muted)
}

// SetMutedAt sets the muted state of the entry at index.
func (s *WaveStack) SetMutedAt(index int, muted bool) error {
	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(s.entries))
	}

	s.setMutedAt(index, muted)

	return nil
}

func (s *WaveStack) setMutedAt(i int, muted bool) {
	if i < 0 {
		return
	}

	s.entries[i].muted = muted
	s.invalidate()
}

// Muted reports whether the first entry holding buf is muted. Unknown buffers
// report false.
func (s *WaveStack) Muted(buf SampleBuffer) bool {
	return s.mutedAt(s.IndexOf(buf))
}

// MutedHandle reports whether the entry identified by h is muted.
func (s *WaveStack) MutedHandle(h Handle) bool {
	return s.mutedAt(s.IndexOfHandle(h))
}

// MutedAt reports whether the entry at index is muted.
func (s *WaveStack) MutedAt(index int) (bool, error) {
	if index < 0 || index >= len(s.entries) {
		return false, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(s.entries))
	}

	return s.entries[index].muted, nil
}

func (s *WaveStack) mutedAt(i int) bool {
	if i < 0 {
		return false
	}

	return s.entries[i].muted
}

// admit checks that buf may become an entry of s.
func (s *WaveStack) admit(buf SampleBuffer) error {
	if isNil(buf) {
		return s.reject("admit", ErrNilBuffer)
	}

	if child, ok := buf.(*WaveStack); ok && (child == s || child.contains(s)) {
		return s.reject("admit", ErrCycle)
	}

	return nil
}

func isNil(buf SampleBuffer) bool {
	if buf == nil {
		return true
	}

	v := reflect.ValueOf(buf)

	return v.Kind() == reflect.Pointer && v.IsNil()
}

// contains reports whether target is nested anywhere below s.
func (s *WaveStack) contains(target *WaveStack) bool {
	for _, e := range s.entries {
		child, ok := e.buffer.(*WaveStack)
		if !ok {
			continue
		}

		if child == target || child.contains(target) {
			return true
		}
	}

	return false
}

func (s *WaveStack) stale() bool {
	if s.dirty {
		return true
	}

	for _, e := range s.entries {
		if e.muted {
			continue
		}

		child, ok := e.buffer.(*WaveStack)
		if ok && (child.stale() || child.regenerations != e.mixed) {
			return true
		}
	}

	return false
}

func (s *WaveStack) invalidate() {
	s.dirty = true
}

func (s *WaveStack) regenerate() error {
	s.regenerating = true
	s.reentered = false
	defer func() { s.regenerating = false }()

	s.clear()

	mixed := 0
	for i := range s.entries {
		e := &s.entries[i]
		if e.muted {
			continue
		}

		// The entry sees the stack's storage through base, so a read of s from
		// inside the mix can only come from an entry that reaches back to s.
		e.buffer.MixInto(&s.base)
		if s.reentered {
			s.clear()
			return s.reject("regenerate", fmt.Errorf("%w: entry %d read the stack during its own regeneration", ErrCycle, i))
		}

		mixed++

		if child, ok := e.buffer.(*WaveStack); ok {
			e.mixed = child.regenerations
		}
	}

	s.dirty = false
	s.regenerations++

	if s.logger != nil {
		s.logger.Debug("wave stack regenerated",
			"entries", len(s.entries),
			"mixed", mixed,
			"channels", s.raw.NumChannels(),
			"samples", s.raw.Len(),
			"regenerations", s.regenerations)
	}

	return nil
}

func (s *WaveStack) reject(op string, err error) error {
	if s.logger != nil {
		s.logger.Debug("wave stack operation rejected", "op", op, "err", err)
	}

	return err
}
