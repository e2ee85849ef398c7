package backend

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/mpalmer/dmgo/dmg/video"
)

// shadeChars renders the four DMG gray shades darkest-to-lightest, scaled
// two characters wide per pixel since terminal glyphs are taller than wide.
var shadeChars = []rune{'█', '▓', '▒', '░'}

const (
	scaleX = 2
	scaleY = 1
)

// Terminal is a tcell-backed Backend drawing the framebuffer as shaded
// block glyphs.
type Terminal struct {
	screen  tcell.Screen
	running bool
	events  []InputEvent
}

// NewTerminal returns an uninitialized terminal backend.
func NewTerminal() *Terminal {
	return &Terminal{}
}

func (t *Terminal) Init(config Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	t.screen = screen
	t.running = true
	return nil
}

func (t *Terminal) Update(frame *video.FrameBuffer) ([]InputEvent, error) {
	t.pollEvents()
	t.render(frame)
	t.screen.Show()

	events := t.events
	t.events = nil
	return events, nil
}

func (t *Terminal) Cleanup() error {
	if t.screen != nil {
		t.screen.Fini()
	}
	return nil
}

func (t *Terminal) pollEvents() {
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.handleKey(ev)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *Terminal) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		t.events = append(t.events, InputEvent{Action: ActionQuit, Type: EventPress})
		return
	}

	action, ok := keyToAction(ev)
	if !ok {
		return
	}
	t.events = append(t.events, InputEvent{Action: action, Type: EventPress})
}

func keyToAction(ev *tcell.EventKey) (Action, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionUp, true
	case tcell.KeyDown:
		return ActionDown, true
	case tcell.KeyLeft:
		return ActionLeft, true
	case tcell.KeyRight:
		return ActionRight, true
	case tcell.KeyEnter:
		return ActionStart, true
	}
	switch ev.Rune() {
	case 'z', 'Z':
		return ActionA, true
	case 'x', 'X':
		return ActionB, true
	case ' ':
		return ActionSelect, true
	}
	return 0, false
}

func (t *Terminal) render(fb *video.FrameBuffer) {
	t.screen.Clear()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	for y := 0; y < video.Height; y++ {
		for x := 0; x < video.Width; x++ {
			r, _, _ := fb.At(x, y)
			shade := r / 85
			char := shadeChars[shade]

			screenX := x * scaleX
			screenY := y * scaleY
			for sx := 0; sx < scaleX; sx++ {
				t.screen.SetContent(screenX+sx, screenY, char, nil, style)
			}
		}
	}
}
