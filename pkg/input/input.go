// Package input turns held keys into per-tick intents for the player craft.
package input

import (
	"strings"
	"sync"
	"time"
)

// Key is one of the fixed control keys.
type Key uint8

const (
	KeyTurnLeft Key = iota
	KeyTurnRight
	KeyForward
	KeyFire
	keyCount
)

// AllKeys lists every control key.
var AllKeys = [...]Key{KeyTurnLeft, KeyTurnRight, KeyForward, KeyFire}

var keyNames = [...]string{"left", "right", "forward", "fire"}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return "unknown"
}

// Source answers whether a key is held during the current tick.
type Source interface {
	Held(k Key) bool
}

// Advancer is implemented by sources that serve one frame per read.
type Advancer interface {
	Advance()
}

// Intent is what the player wants to do this tick.
type Intent struct {
	Turn    int // -1 left, +1 right
	Forward bool
	Fire    bool
}

// Moves reports whether the intent changes heading or position.
func (i Intent) Moves() bool {
	return i.Turn != 0 || i.Forward
}

// Idle reports whether the intent does nothing at all.
func (i Intent) Idle() bool {
	return !i.Moves() && !i.Fire
}

// Read polls src once. Opposite turn keys cancel out but still push the
// craft forward. A nil source reads as no keys held. Sources implementing
// Advancer move to their next frame.
func Read(src Source) Intent {
	if src == nil {
		return Intent{}
	}
	var in Intent
	left, right := src.Held(KeyTurnLeft), src.Held(KeyTurnRight)
	if left {
		in.Turn--
	}
	if right {
		in.Turn++
	}
	in.Forward = src.Held(KeyForward) || (left && right)
	in.Fire = src.Held(KeyFire)

	if a, ok := src.(Advancer); ok {
		a.Advance()
	}
	return in
}

// KeySet is a fixed set of held keys. It is itself a Source.
type KeySet uint8

// Keys builds a set from ks.
func Keys(ks ...Key) KeySet {
	var s KeySet
	for _, k := range ks {
		s |= 1 << k
	}
	return s
}

// Held implements Source.
func (s KeySet) Held(k Key) bool {
	return s&(1<<k) != 0
}

func (s KeySet) String() string {
	names := make([]string, 0, len(AllKeys))
	for _, k := range AllKeys {
		if s.Held(k) {
			names = append(names, k.String())
		}
	}
	return "[" + strings.Join(names, " ") + "]"
}

// Script replays a queue of key sets, one per read. Once drained it holds
// nothing.
type Script struct {
	frames []KeySet
}

// NewScript creates a script from frames.
func NewScript(frames ...KeySet) *Script {
	return &Script{frames: append([]KeySet(nil), frames...)}
}

// Push appends frames to the queue.
func (s *Script) Push(frames ...KeySet) {
	s.frames = append(s.frames, frames...)
}

// Remaining returns the number of unread frames.
func (s *Script) Remaining() int {
	return len(s.frames)
}

// Held implements Source.
func (s *Script) Held(k Key) bool {
	if len(s.frames) == 0 {
		return false
	}
	return s.frames[0].Held(k)
}

// Advance implements Advancer.
func (s *Script) Advance() {
	if len(s.frames) > 0 {
		s.frames = s.frames[1:]
	}
}

// DefaultHoldWindow keeps a key held between terminal auto-repeat events.
const DefaultHoldWindow = 150 * time.Millisecond

// KeyState emulates held keys for terminals that only report presses. A
// key counts as held for the hold window after its last press. It is safe
// for use by an event goroutine and a simulation goroutine at once.
type KeyState struct {
	mu      sync.Mutex
	hold    time.Duration
	now     func() time.Time
	pressed [keyCount]time.Time
}

// NewKeyState creates a tracker. A non-positive hold uses
// DefaultHoldWindow; a nil clock uses time.Now.
func NewKeyState(hold time.Duration, now func() time.Time) *KeyState {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	if now == nil {
		now = time.Now
	}
	return &KeyState{hold: hold, now: now}
}

// Press records a key-down for k.
func (s *KeyState) Press(k Key) {
	if k >= keyCount {
		return
	}
	s.mu.Lock()
	s.pressed[k] = s.now()
	s.mu.Unlock()
}

// Release forgets k.
func (s *KeyState) Release(k Key) {
	if k >= keyCount {
		return
	}
	s.mu.Lock()
	s.pressed[k] = time.Time{}
	s.mu.Unlock()
}

// Reset releases every key.
func (s *KeyState) Reset() {
	s.mu.Lock()
	s.pressed = [keyCount]time.Time{}
	s.mu.Unlock()
}

// Held implements Source.
func (s *KeyState) Held(k Key) bool {
	if k >= keyCount {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	at := s.pressed[k]
	return !at.IsZero() && s.now().Sub(at) < s.hold
}
