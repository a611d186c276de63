package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/slingshot/vmath"
)

// DefaultDoubleClick is the press-to-press window for a double click
const DefaultDoubleClick = 250 * time.Millisecond

// Target is what aim gestures and keys act on; game.Game implements it
type Target interface {
	InStartZone(p vmath.Vec2) bool
	Armed() bool
	LaunchFromDrag(start, end vmath.Vec2) error
	Reset()
	TogglePause() bool
}

// Viewport maps terminal cells to world units
// World y grows upward, so rows are flipped against the current screen height
type Viewport struct {
	ScaleX float64 // World units per column
	ScaleY float64 // World units per row
	Rows   int
}

// World returns the world point at the center of cell (col, row)
func (v Viewport) World(col, row int) vmath.Vec2 {
	x := (float64(col) + 0.5) * v.ScaleX
	y := (float64(v.Rows-row) - 0.5) * v.ScaleY
	return vmath.V2(x, y)
}

// Cell returns the cell containing world point p
func (v Viewport) Cell(p vmath.Vec2) (col, row int) {
	if v.ScaleX == 0 || v.ScaleY == 0 {
		return 0, 0
	}
	col = int(p.X / v.ScaleX)
	row = v.Rows - 1 - int(p.Y/v.ScaleY)
	return col, row
}

// AimHandler turns tcell events into aim gestures on a Target
// Press inside the start zone begins an aim, drag moves its end, release launches
// Not safe for concurrent use; feed it from the event loop goroutine
type AimHandler struct {
	target   Target
	viewport Viewport
	keys     *KeyMap

	doubleClick time.Duration
	lastPress   time.Time
	buttonDown  bool

	aiming   bool
	aimStart vmath.Vec2
	aimEnd   vmath.Vec2

	err error
	now func() time.Time
}

// NewAimHandler creates a handler for target with the given viewport
func NewAimHandler(target Target, viewport Viewport) *AimHandler {
	return &AimHandler{
		target:      target,
		viewport:    viewport,
		keys:        DefaultKeyMap(),
		doubleClick: DefaultDoubleClick,
		now:         time.Now,
	}
}

// SetKeyMap replaces the key bindings
func (h *AimHandler) SetKeyMap(km *KeyMap) {
	if km != nil {
		h.keys = km
	}
}

// SetDoubleClick overrides the double click window, zero disables double click reset
func (h *AimHandler) SetDoubleClick(d time.Duration) {
	h.doubleClick = d
}

// Aim returns the current aim line while aiming
func (h *AimHandler) Aim() (start, end vmath.Vec2, ok bool) {
	return h.aimStart, h.aimEnd, h.aiming
}

// Err returns the error from the last rejected launch
func (h *AimHandler) Err() error {
	return h.err
}

// SetViewport replaces the cell mapping, e.g. after a resize changes the scale
func (h *AimHandler) SetViewport(v Viewport) {
	h.viewport = v
}

// Viewport returns the active cell mapping
func (h *AimHandler) Viewport() Viewport {
	return h.viewport
}

// Handle processes one event and reports what it did
func (h *AimHandler) Handle(ev tcell.Event) IntentType {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventMouse:
		return h.handleMouse(ev)
	case *tcell.EventResize:
		_, rows := ev.Size()
		h.viewport.Rows = rows
		return IntentResize
	}
	return IntentNone
}

func (h *AimHandler) handleKey(ev *tcell.EventKey) IntentType {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return IntentQuit
	case tcell.KeyEscape:
		if h.aiming {
			h.aiming = false
			return IntentAimCancel
		}
		return IntentQuit
	case tcell.KeyRune:
		switch h.keys.Lookup(ev.Rune()) {
		case IntentQuit:
			return IntentQuit
		case IntentReset:
			h.reset()
			return IntentReset
		case IntentPause:
			if h.target.TogglePause() {
				return IntentPause
			}
		}
	}
	return IntentNone
}

func (h *AimHandler) handleMouse(ev *tcell.EventMouse) IntentType {
	col, row := ev.Position()
	p := h.viewport.World(col, row)
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !h.buttonDown:
		h.buttonDown = true
		return h.press(p)

	case pressed:
		if !h.aiming {
			return IntentNone
		}
		h.aimEnd = p
		return IntentAimMove

	case h.buttonDown:
		h.buttonDown = false
		return h.release(p)
	}
	return IntentNone
}

func (h *AimHandler) press(p vmath.Vec2) IntentType {
	if !h.target.InStartZone(p) {
		return IntentNone
	}

	now := h.now()
	double := h.doubleClick > 0 && !h.lastPress.IsZero() && now.Sub(h.lastPress) <= h.doubleClick
	h.lastPress = now
	if double {
		// Third press starts a fresh pair
		h.lastPress = time.Time{}
		h.reset()
		return IntentReset
	}

	if !h.target.Armed() {
		return IntentNone
	}
	h.aiming = true
	h.aimStart = p
	h.aimEnd = p
	return IntentAimStart
}

func (h *AimHandler) release(p vmath.Vec2) IntentType {
	if !h.aiming {
		return IntentNone
	}
	h.aiming = false
	h.aimEnd = p

	if err := h.target.LaunchFromDrag(h.aimStart, h.aimEnd); err != nil {
		h.err = err
		return IntentRejected
	}
	h.err = nil
	return IntentLaunch
}

func (h *AimHandler) reset() {
	h.aiming = false
	h.err = nil
	h.target.Reset()
}
