// Package level holds the tile grid, its binary file format and the tile
// behavior table used for collision.
package level

// Level is a column-major grid of tile indices plus a parallel grid of
// per-cell data bytes.
type Level struct {
	width, height int
	tiles         [][]byte
	data          [][]byte
	behaviors     *Behaviors
}

// New creates an empty level using the shared behavior table.
func New(width, height int, behaviors *Behaviors) *Level {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	l := &Level{width: width, height: height, behaviors: behaviors}
	l.tiles = makeGrid(width, height)
	l.data = makeGrid(width, height)
	return l
}

func makeGrid(w, h int) [][]byte {
	cells := make([]byte, w*h)
	grid := make([][]byte, w)
	for x := range grid {
		grid[x] = cells[x*h : (x+1)*h : (x+1)*h]
	}
	return grid
}

func (l *Level) Width() int  { return l.width }
func (l *Level) Height() int { return l.height }

// PixelSize returns the level extent for a tile size.
func (l *Level) PixelSize(tile int) (w, h int) {
	return l.width * tile, l.height * tile
}

func (l *Level) Behaviors() *Behaviors { return l.behaviors }

// SetBehaviors swaps the shared behavior table.
func (l *Level) SetBehaviors(b *Behaviors) { l.behaviors = b }

func (l *Level) clamp(x, y int) (int, int) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x >= l.width {
		x = l.width - 1
	}
	if y >= l.height {
		y = l.height - 1
	}
	return x, y
}

func (l *Level) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < l.width && y < l.height
}

// Block returns the tile at x, y. Coordinates outside the grid read the
// nearest edge cell.
func (l *Level) Block(x, y int) byte {
	x, y = l.clamp(x, y)
	return l.tiles[x][y]
}

// BlockData returns the data byte at x, y with the same clamping as Block.
func (l *Level) BlockData(x, y int) byte {
	x, y = l.clamp(x, y)
	return l.data[x][y]
}

// SetBlock writes a tile. Writes outside the grid are ignored.
func (l *Level) SetBlock(x, y int, tile byte) {
	if !l.inside(x, y) {
		return
	}
	l.tiles[x][y] = tile
}

// SetBlockData writes a data byte. Writes outside the grid are ignored.
func (l *Level) SetBlockData(x, y int, v byte) {
	if !l.inside(x, y) {
		return
	}
	l.data[x][y] = v
}

// BehaviorAt returns the behavior of the tile at x, y.
func (l *Level) BehaviorAt(x, y int) Behavior {
	return l.behaviors.Get(l.Block(x, y))
}

// IsBlocking reports whether the tile at x, y stops a body moving with
// velocity xa, ya (y up). BLOCK ALL always blocks, BLOCK UPPER blocks rising
// bodies and BLOCK LOWER blocks falling ones.
func (l *Level) IsBlocking(x, y int, xa, ya float64) bool {
	b := l.BehaviorAt(x, y)
	blocking := b&BlockAll != 0
	blocking = blocking || (ya > 0 && b&BlockUpper != 0)
	blocking = blocking || (ya < 0 && b&BlockLower != 0)
	return blocking
}

// Generate builds a level of the given size whose lowest ground rows are
// filled with groundTile.
func Generate(width, height, ground int, groundTile byte, behaviors *Behaviors) *Level {
	l := New(width, height, behaviors)
	for x := 0; x < l.width; x++ {
		for y := l.height - ground; y < l.height; y++ {
			l.SetBlock(x, y, groundTile)
		}
	}
	return l
}
