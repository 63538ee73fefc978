package component

// InfiniteLoops makes an animation cycle forever.
const InfiniteLoops = 0

// Animation steps a frame index through the window [start, end] of one sheet
// row, moving one frame every interval advances. A finite animation freezes
// on end once all loops are played; restart it by building a new one.
type Animation struct {
	sheet    *Sheet
	row      int
	interval int
	loops    int
	start    int
	end      int

	current  int
	tick     int
	curLoops int
	finished bool
}

// NewAnimation plays the whole row forever.
func NewAnimation(sheet *Sheet, row, interval int) *Animation {
	return NewAnimationRange(sheet, row, interval, InfiniteLoops, 0, len(sheet.Row(row))-1)
}

// NewLoopedAnimation plays the whole row loops times.
func NewLoopedAnimation(sheet *Sheet, row, interval, loops int) *Animation {
	return NewAnimationRange(sheet, row, interval, loops, 0, len(sheet.Row(row))-1)
}

// NewAnimationFrom plays from start to the end of the row.
func NewAnimationFrom(sheet *Sheet, row, interval, loops, start int) *Animation {
	return NewAnimationRange(sheet, row, interval, loops, start, len(sheet.Row(row))-1)
}

// NewAnimationRange plays frames start..end inclusive. Both bounds are
// clamped into the row and end never precedes start.
func NewAnimationRange(sheet *Sheet, row, interval, loops, start, end int) *Animation {
	n := len(sheet.Row(row))
	last := n - 1
	if last < 0 {
		last = 0
	}
	start = clampIndex(start, last)
	end = clampIndex(end, last)
	if end < start {
		end = start
	}
	if interval < 1 {
		interval = 1
	}
	if loops < 0 {
		loops = -loops
	}
	return &Animation{
		sheet:    sheet,
		row:      row,
		interval: interval,
		loops:    loops,
		start:    start,
		end:      end,
		current:  start,
	}
}

func clampIndex(i, last int) int {
	if i < 0 {
		return 0
	}
	if i > last {
		return last
	}
	return i
}

// Advance moves the animation forward by one tick.
func (a *Animation) Advance() {
	if a == nil || a.finished {
		return
	}
	a.tick++
	if a.tick%a.interval != 0 {
		return
	}
	if a.current < a.end {
		a.current++
		return
	}
	if a.loops != InfiniteLoops {
		a.curLoops++
		if a.curLoops >= a.loops {
			a.finished = true
			return
		}
	}
	a.current = a.start
}

func (a *Animation) Finished() bool { return a != nil && a.finished }

// Index is the current frame column.
func (a *Animation) Index() int { return a.current }

func (a *Animation) Sheet() *Sheet { return a.sheet }

func (a *Animation) Row() int { return a.row }

// Window returns the playback bounds.
func (a *Animation) Window() (start, end int) { return a.start, a.end }

// Frame returns the active frame or nil when the sheet row is empty.
func (a *Animation) Frame() Frame {
	if a == nil {
		return nil
	}
	return a.sheet.Frame(a.row, a.current)
}

func (a *Animation) Width() int {
	f := a.Frame()
	if f == nil {
		return 0
	}
	w, _ := f.Size()
	return w
}

func (a *Animation) Height() int {
	f := a.Frame()
	if f == nil {
		return 0
	}
	_, h := f.Size()
	return h
}
