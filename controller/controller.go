// Package controller implements the NES's standard joypad: a strobe
// latch and an 8-bit shift register read one bit at a time through
// 0x4016/0x4017, decoupled from any particular input backend via
// InputSource.
package controller

// InputSource supplies the live button state for a pad (0 or 1) as an
// 8-bit mask: A(0), B(1), Select(2), Start(3), Up(4), Down(5),
// Left(6), Right(7).
type InputSource interface {
	Poll(pad int) uint8
}

// Button bit positions within the mask InputSource.Poll returns.
const (
	ButtonA = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller is a single standard joypad latch/shift register.
type Controller struct {
	src    InputSource
	pad    int
	strobe bool
	shift  uint8
}

// New constructs a Controller reading pad (0 or 1) from src.
func New(src InputSource, pad int) *Controller {
	return &Controller{src: src, pad: pad}
}

// Write handles a strobe-line write. The shift register is latched
// with a fresh button snapshot on the strobe's falling edge (1 -> 0).
func (c *Controller) Write(val uint8) {
	newStrobe := val&1 != 0
	if c.strobe && !newStrobe {
		c.shift = c.src.Poll(c.pad)
	}
	c.strobe = newStrobe
}

// Read shifts out the next button bit, least significant first.
func (c *Controller) Read() uint8 {
	bit := c.shift & 1
	c.shift >>= 1
	return bit
}

// Clone returns an independent copy bound to the same InputSource.
func (c *Controller) Clone() *Controller {
	cp := *c
	return &cp
}

// Pair bundles both standard controller ports behind the 0x4016
// (strobe, port 0 data) / 0x4017 (port 1 data) addressing the CPU bus
// uses: a strobe write reaches both pads, since the real console wires
// $4016 writes to both shift registers in parallel.
type Pair struct {
	pads [2]*Controller
}

// NewPair constructs a Pair with both ports reading from src.
func NewPair(src InputSource) *Pair {
	return &Pair{pads: [2]*Controller{New(src, 0), New(src, 1)}}
}

// Write strobes both controllers.
func (pr *Pair) Write(val uint8) {
	pr.pads[0].Write(val)
	pr.pads[1].Write(val)
}

// Read returns the next bit from the given port (0 or 1).
func (pr *Pair) Read(port int) uint8 {
	return pr.pads[port].Read()
}

// Clone returns an independent copy bound to the same InputSource.
func (pr *Pair) Clone() *Pair {
	return &Pair{pads: [2]*Controller{pr.pads[0].Clone(), pr.pads[1].Clone()}}
}
