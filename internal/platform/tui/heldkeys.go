package tui

import (
	"sync"
	"time"

	"github.com/vovakirdan/astroidz/internal/core"
)

// HoldDuration is how long a control stays held after an auto-repeated
// press. It has to outlast the keyboard's repeat interval.
const HoldDuration = 150 * time.Millisecond

// RepeatDelay is how long a steering control stays held after its first
// press, covering the pause before the terminal starts auto-repeating.
const RepeatDelay = 500 * time.Millisecond

// steering controls are the ones players hold down.
var steering = map[core.Action]bool{
	core.ActionRotateLeft:  true,
	core.ActionRotateRight: true,
	core.ActionThrust:      true,
}

type keyHold struct {
	at        time.Time
	repeating bool
}

// HeldKeys turns a stream of key presses into per-tick held controls.
type HeldKeys struct {
	mu     sync.Mutex
	hold   time.Duration
	delay  time.Duration
	now    func() time.Time
	stamps map[core.Action]keyHold
}

// NewHeldKeys creates an empty tracker. A zero hold uses HoldDuration and a
// nil clock uses time.Now. The repeat delay is never shorter than hold.
func NewHeldKeys(hold time.Duration, now func() time.Time) *HeldKeys {
	if hold <= 0 {
		hold = HoldDuration
	}
	if now == nil {
		now = time.Now
	}
	return &HeldKeys{
		hold:   hold,
		delay:  max(hold, RepeatDelay),
		now:    now,
		stamps: make(map[core.Action]keyHold),
	}
}

// window is how long a stays held after the press recorded in k.
func (h *HeldKeys) window(a core.Action, k keyHold) time.Duration {
	if steering[a] && !k.repeating {
		return h.delay
	}
	return h.hold
}

// Press stamps a control as pressed now. A press that lands while the
// control is still held counts as auto-repeat.
func (h *HeldKeys) Press(a core.Action) {
	if a == core.ActionNone || a == core.ActionQuit {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	prev, held := h.stamps[a]
	h.stamps[a] = keyHold{
		at:        now,
		repeating: held && now.Sub(prev.at) < h.window(a, prev),
	}
}

// Reset releases every control.
func (h *HeldKeys) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.stamps)
}

// Frame folds the tracker into a complete input frame for one tick.
func (h *HeldKeys) Frame() core.InputFrame {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	frame := core.NewInputFrame()
	for a, k := range h.stamps {
		if now.Sub(k.at) < h.window(a, k) {
			frame.Set(a)
		} else {
			delete(h.stamps, a)
		}
	}
	return frame
}
