// Package serial implements the link-cable registers as a log sink: no
// real link partner exists, so transfers complete instantly with a
// receive value of 0xFF.
package serial

import "log/slog"

// Port models SB/SC (0xFF01/0xFF02). A write to SC with the transfer-start
// bit set logs the byte in SB and reports the transfer as already
// complete; no interrupt is requested since nothing depends on it working
// without a partner.
type Port struct {
	sb  byte
	sc  byte
	log *slog.Logger
}

// NewPort returns a serial port that logs transfers at logger.
func NewPort(logger *slog.Logger) *Port {
	if logger == nil {
		logger = slog.Default()
	}
	return &Port{log: logger}
}

func (p *Port) ReadSB() byte { return p.sb }

func (p *Port) WriteSB(value byte) { p.sb = value }

func (p *Port) ReadSC() byte { return p.sc | 0x7E }

func (p *Port) WriteSC(value byte) {
	p.sc = value
	if value&0x80 != 0 {
		p.log.Debug("serial transfer requested with no link partner", "byte", p.sb)
		p.sb = 0xFF
		p.sc &^= 0x80
	}
}
