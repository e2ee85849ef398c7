package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpalmer/dmgo/dmg/addr"
)

func TestJoypad_AllReleasedReadsAllOnes(t *testing.T) {
	j := NewJoypad()
	j.Write(0x00) // select both nibbles
	assert.Equal(t, byte(0b1100_1111), j.Read())
}

func TestJoypad_SelectButtonsOnly(t *testing.T) {
	j := NewJoypad()
	j.Press(JoypadA)
	j.Write(0b0001_0000) // bit5=0 selects buttons; bit4 stays high
	assert.Equal(t, byte(0b1101_1110), j.Read())
}

func TestJoypad_SelectDpadOnly(t *testing.T) {
	j := NewJoypad()
	j.Press(JoypadUp)
	j.Write(0b0010_0000) // bit4=0 selects dpad; bit5 stays high
	assert.Equal(t, byte(0b1110_1011), j.Read())
}

func TestJoypad_NeitherSelectedReadsOnes(t *testing.T) {
	j := NewJoypad()
	j.Press(JoypadA)
	j.Write(0b0011_0000)
	assert.Equal(t, byte(0b1111_1111), j.Read())
}

func TestJoypad_PressRequestsInterruptOnTransition(t *testing.T) {
	j := NewJoypad()
	fired := 0
	j.RequestInterrupt = func(i addr.Interrupt) {
		if i == addr.JoypadInterrupt {
			fired++
		}
	}

	j.Press(JoypadStart)
	assert.Equal(t, 1, fired)

	// Pressing an already-pressed key is not a transition.
	j.Press(JoypadStart)
	assert.Equal(t, 1, fired)

	j.Release(JoypadStart)
	j.Press(JoypadStart)
	assert.Equal(t, 2, fired)
}
