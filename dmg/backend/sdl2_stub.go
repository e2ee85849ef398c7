//go:build !sdl2

package backend

import (
	"fmt"

	"github.com/mpalmer/dmgo/dmg/video"
)

// SDL2 stub for builds without the sdl2 tag (and without SDL2 development
// libraries installed).
type SDL2 struct{}

func NewSDL2() *SDL2 { return &SDL2{} }

func (s *SDL2) Init(config Config) error {
	return fmt.Errorf("SDL2 backend not available - build with -tags sdl2 and install SDL2 development libraries")
}

func (s *SDL2) Update(frame *video.FrameBuffer) ([]InputEvent, error) {
	return nil, fmt.Errorf("SDL2 backend not available")
}

func (s *SDL2) Cleanup() error { return nil }
