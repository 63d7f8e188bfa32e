package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/astroidz/internal/core"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func TestHeldKeysExpire(t *testing.T) {
	clock := newFakeClock()
	h := NewHeldKeys(HoldDuration, clock.Now)

	h.Press(core.ActionFire)
	assert.True(t, h.Frame().Has(core.ActionFire))

	clock.Advance(HoldDuration - time.Millisecond)
	assert.True(t, h.Frame().Has(core.ActionFire), "still inside the hold window")

	clock.Advance(time.Millisecond)
	assert.False(t, h.Frame().Has(core.ActionFire), "hold window elapsed")
}

func TestHeldKeysBridgeRepeatDelay(t *testing.T) {
	clock := newFakeClock()
	h := NewHeldKeys(HoldDuration, clock.Now)

	// A typical keyboard waits a few hundred milliseconds before repeating.
	h.Press(core.ActionThrust)
	for range 8 {
		clock.Advance(50 * time.Millisecond)
		assert.True(t, h.Frame().Has(core.ActionThrust), "held through the repeat delay")
	}

	// Once repeats arrive the short window applies again.
	h.Press(core.ActionThrust)
	clock.Advance(HoldDuration - time.Millisecond)
	assert.True(t, h.Frame().Has(core.ActionThrust))
	clock.Advance(time.Millisecond)
	assert.False(t, h.Frame().Has(core.ActionThrust), "released soon after repeats stop")
}

func TestHeldKeysTapExpiresAfterRepeatDelay(t *testing.T) {
	clock := newFakeClock()
	h := NewHeldKeys(HoldDuration, clock.Now)

	h.Press(core.ActionRotateLeft)
	clock.Advance(RepeatDelay - time.Millisecond)
	assert.True(t, h.Frame().Has(core.ActionRotateLeft))
	clock.Advance(time.Millisecond)
	assert.False(t, h.Frame().Has(core.ActionRotateLeft))

	// A fresh press after expiry starts a new delay, not a repeat.
	h.Press(core.ActionRotateLeft)
	clock.Advance(HoldDuration)
	assert.True(t, h.Frame().Has(core.ActionRotateLeft))
}

func TestHeldKeysRepeatExtendsHold(t *testing.T) {
	clock := newFakeClock()
	h := NewHeldKeys(HoldDuration, clock.Now)

	// Auto-repeat delivers a fresh press well inside the window.
	for range 5 {
		h.Press(core.ActionRotateLeft)
		clock.Advance(100 * time.Millisecond)
		assert.True(t, h.Frame().Has(core.ActionRotateLeft))
	}
}

func TestHeldKeysCombination(t *testing.T) {
	clock := newFakeClock()
	h := NewHeldKeys(0, clock.Now)

	h.Press(core.ActionThrust)
	clock.Advance(20 * time.Millisecond)
	h.Press(core.ActionFire)
	h.Press(core.ActionRotateRight)

	f := h.Frame()
	for _, a := range core.Controls {
		want := a == core.ActionThrust || a == core.ActionFire || a == core.ActionRotateRight
		assert.Equal(t, want, f.Has(a), a.String())
	}
}

func TestHeldKeysIgnoresQuitAndNone(t *testing.T) {
	h := NewHeldKeys(HoldDuration, nil)
	h.Press(core.ActionQuit)
	h.Press(core.ActionNone)
	assert.Empty(t, h.Frame().Actions)
}

func TestHeldKeysReset(t *testing.T) {
	clock := newFakeClock()
	h := NewHeldKeys(HoldDuration, clock.Now)

	h.Press(core.ActionFire)
	h.Press(core.ActionThrust)
	assert.Len(t, h.Frame().Actions, 2)

	h.Reset()
	assert.Empty(t, h.Frame().Actions)
}

func TestKeyMapActions(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"a", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, core.ActionRotateLeft},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionRotateLeft},
		{"d", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}}, core.ActionRotateRight},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRotateRight},
		{"w", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}}, core.ActionThrust},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionThrust},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire},
		{"p", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}, core.ActionPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"r", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, core.ActionRestart},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionRestart},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"x", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, core.ActionReset},
		{"z", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, km.Action(tt.msg))
		})
	}
}
