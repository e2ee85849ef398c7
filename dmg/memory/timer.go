package memory

import "github.com/mpalmer/dmgo/dmg/addr"

// timaPeriods maps TAC's low two bits to the T-cycle period between TIMA
// increments (00/01/10/11 -> 1024/16/64/256).
var timaPeriods = [4]int{1024, 16, 64, 256}

// Timer implements DIV/TIMA/TMA/TAC. DIV advances unconditionally every
// 256 T-cycles; TIMA advances, while enabled, at the TAC-selected period
// and reloads from TMA plus requests the Timer interrupt on overflow.
type Timer struct {
	div  byte
	tima byte
	tma  byte
	tac  byte

	divAccumulator  int
	timaAccumulator int

	// RequestInterrupt is called once per TIMA overflow; wired by the bus
	// to set the Timer bit in IF.
	RequestInterrupt func(addr.Interrupt)
}

// Tick advances the timer by cycles T-cycles. Long instructions that cross
// more than one TIMA period boundary produce one call to RequestInterrupt
// per overflow, since the accumulator is drained in a loop.
func (t *Timer) Tick(cycles int) {
	t.divAccumulator += cycles
	for t.divAccumulator >= 256 {
		t.divAccumulator -= 256
		t.div++
	}

	if t.tac&0x04 == 0 {
		return
	}

	period := timaPeriods[t.tac&0x03]
	t.timaAccumulator += cycles
	for t.timaAccumulator >= period {
		t.timaAccumulator -= period
		if t.tima == 0xFF {
			t.tima = t.tma
			if t.RequestInterrupt != nil {
				t.RequestInterrupt(addr.TimerInterrupt)
			}
		} else {
			t.tima++
		}
	}
}

func (t *Timer) Read(address uint16) byte {
	switch address {
	case addr.DIV:
		return t.div
	case addr.TIMA:
		return t.tima
	case addr.TMA:
		return t.tma
	case addr.TAC:
		return t.tac
	default:
		return 0xFF
	}
}

func (t *Timer) Write(address uint16, value byte) {
	switch address {
	case addr.DIV:
		// Any write, regardless of value, resets the divider.
		t.div = 0
		t.divAccumulator = 0
	case addr.TIMA:
		t.tima = value
	case addr.TMA:
		t.tma = value
	case addr.TAC:
		t.tac = value
	}
}
