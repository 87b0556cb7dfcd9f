package ppu

// loopy holds one of the PPU's v/t scroll registers:
// yyy NN YYYYY XXXXX
// ||| || ||||| +++++-- coarse X scroll
// ||| || +++++-------- coarse Y scroll
// ||| ++-------------- nametable select
// +++----------------- fine Y scroll
type loopy struct {
	data uint16 // only 15 bits used
}

func (l *loopy) coarseX() uint16 {
	return l.data & 0x001F
}

func (l *loopy) setCoarseX(n uint16) {
	l.data = (l.data &^ 0x001F) | (n & 0x001F)
}

// incrementCoarseX wraps at 31 and flips the horizontal nametable bit,
// matching real hardware's single-bit nametable select.
func (l *loopy) incrementCoarseX() {
	if l.coarseX() == 31 {
		l.data &^= 0x001F
		l.data ^= 0x0400
	} else {
		l.data++
	}
}

func (l *loopy) coarseY() uint16 {
	return (l.data & 0x03E0) >> 5
}

func (l *loopy) setCoarseY(n uint16) {
	l.data = (l.data &^ 0x03E0) | ((n & 0x1F) << 5)
}

// incrementY advances fine Y, carrying into coarse Y (and the vertical
// nametable bit) on overflow. Coarse Y 29 is the last row of the
// nametable; wrapping past it flips the nametable bit, while the
// out-of-range value 31 (reachable only by software directly writing
// v) wraps without flipping it.
func (l *loopy) incrementY() {
	if l.fineY() < 7 {
		l.setFineY(l.fineY() + 1)
		return
	}

	l.setFineY(0)
	switch y := l.coarseY(); y {
	case 29:
		l.setCoarseY(0)
		l.toggleNametableY()
	case 31:
		l.setCoarseY(0)
	default:
		l.setCoarseY(y + 1)
	}
}

func (l *loopy) nametableX() uint16 {
	return (l.data & 0x0400) >> 10
}

func (l *loopy) toggleNametableX() {
	l.data ^= 0x0400
}

func (l *loopy) nametableY() uint16 {
	return (l.data & 0x0800) >> 11
}

func (l *loopy) toggleNametableY() {
	l.data ^= 0x0800
}

func (l *loopy) fineY() uint16 {
	return (l.data & 0x7000) >> 12
}

func (l *loopy) setFineY(n uint16) {
	l.data = (l.data &^ 0x7000) | ((n & 0x7) << 12)
}

// copyHorizontal copies the coarse-X and horizontal-nametable bits
// from t into v, performed by the PPU at dot 257 of every rendering
// scanline.
func (l *loopy) copyHorizontal(t *loopy) {
	l.data = (l.data &^ 0x041F) | (t.data & 0x041F)
}

// copyVertical copies the fine-Y, coarse-Y, and vertical-nametable
// bits from t into v, performed during dots 280-304 of the pre-render
// scanline.
func (l *loopy) copyVertical(t *loopy) {
	l.data = (l.data &^ 0x7BE0) | (t.data & 0x7BE0)
}
