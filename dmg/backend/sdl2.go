//go:build sdl2

package backend

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/mpalmer/dmgo/dmg/video"
)

// SDL2 is a hardware-accelerated Backend. Building it requires SDL2
// development libraries and the sdl2 build tag; default builds use the
// stub in sdl2_stub.go instead.
type SDL2 struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	pixels   []byte
	events   []InputEvent
}

// NewSDL2 returns an uninitialized SDL2 backend.
func NewSDL2() *SDL2 {
	return &SDL2{}
}

func (s *SDL2) Init(config Config) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initializing SDL2: %w", err)
	}

	scale := config.Scale
	if scale <= 0 {
		scale = 2
	}

	title := config.Title
	if title == "" {
		title = "dmgo"
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(video.Width*scale), int32(video.Height*scale), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("creating window: %w", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("creating renderer: %w", err)
	}
	s.renderer = renderer

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGB24, sdl.TEXTUREACCESS_STREAMING,
		int32(video.Width), int32(video.Height))
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("creating texture: %w", err)
	}
	s.texture = texture

	return nil
}

func (s *SDL2) Update(frame *video.FrameBuffer) ([]InputEvent, error) {
	s.pollEvents()

	if err := s.texture.Update(nil, frame.Pixels, video.Width*3); err != nil {
		return nil, fmt.Errorf("updating texture: %w", err)
	}
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()

	events := s.events
	s.events = nil
	return events, nil
}

func (s *SDL2) Cleanup() error {
	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()
	return nil
}

func (s *SDL2) pollEvents() {
	for {
		ev := sdl.PollEvent()
		if ev == nil {
			return
		}
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			s.events = append(s.events, InputEvent{Action: ActionQuit, Type: EventPress})
		case *sdl.KeyboardEvent:
			action, ok := sdlKeyToAction(e.Keysym.Sym)
			if !ok {
				continue
			}
			typ := EventRelease
			if e.Type == sdl.KEYDOWN {
				typ = EventPress
			}
			s.events = append(s.events, InputEvent{Action: action, Type: typ})
		}
	}
}

func sdlKeyToAction(sym sdl.Keycode) (Action, bool) {
	switch sym {
	case sdl.K_UP:
		return ActionUp, true
	case sdl.K_DOWN:
		return ActionDown, true
	case sdl.K_LEFT:
		return ActionLeft, true
	case sdl.K_RIGHT:
		return ActionRight, true
	case sdl.K_z:
		return ActionA, true
	case sdl.K_x:
		return ActionB, true
	case sdl.K_RETURN:
		return ActionStart, true
	case sdl.K_SPACE:
		return ActionSelect, true
	case sdl.K_ESCAPE:
		return ActionQuit, true
	}
	return 0, false
}
