package component

// Frame is a single image of a sheet. Only its pixel size matters to the
// simulation; the renderer type-asserts to whatever image type it draws.
type Frame interface {
	Size() (w, h int)
}

// Sheet is a named grid of equally sized frames, addressed by row.
type Sheet struct {
	name string
	rows [][]Frame
}

// NewSheet creates a sheet from rows of frames.
func NewSheet(name string, rows [][]Frame) *Sheet {
	return &Sheet{name: name, rows: rows}
}

func (s *Sheet) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Rows returns the number of rows.
func (s *Sheet) Rows() int {
	if s == nil {
		return 0
	}
	return len(s.rows)
}

// Row returns the frames of row i, or nil when i is out of range.
func (s *Sheet) Row(i int) []Frame {
	if s == nil || i < 0 || i >= len(s.rows) {
		return nil
	}
	return s.rows[i]
}

// Frame returns the frame at row, col or nil.
func (s *Sheet) Frame(row, col int) Frame {
	r := s.Row(row)
	if col < 0 || col >= len(r) {
		return nil
	}
	return r[col]
}

// Rect is a plain sized frame used by placeholders and tests.
type Rect struct {
	W, H int
}

func (r Rect) Size() (int, int) { return r.W, r.H }

// UniformSheet builds a sheet with rows*cols frames of the same size.
func UniformSheet(name string, rows, cols, w, h int) *Sheet {
	grid := make([][]Frame, rows)
	for y := range grid {
		grid[y] = make([]Frame, cols)
		for x := range grid[y] {
			grid[y][x] = Rect{W: w, H: h}
		}
	}
	return NewSheet(name, grid)
}
