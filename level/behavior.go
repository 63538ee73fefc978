package level

import (
	"fmt"
	"io"
	"strings"
)

// Behavior is the per-tile bitmask driving collision and interaction.
type Behavior uint8

const (
	BlockUpper Behavior = 1 << iota
	BlockAll
	BlockLower
	Special
	Bumpable
	Breakable
	Pickupable
	Animated
)

// BehaviorCount is the number of tile indices a table covers.
const BehaviorCount = 256

var bitNames = [8]string{
	"BLOCK UPPER",
	"BLOCK ALL",
	"BLOCK LOWER",
	"SPECIAL",
	"BUMPABLE",
	"BREAKABLE",
	"PICKUPABLE",
	"ANIMATED",
}

// BitDescriptions returns the display names of the eight behavior bits in
// bit order.
func BitDescriptions() []string {
	out := make([]string, len(bitNames))
	copy(out, bitNames[:])
	return out
}

// ParseBehavior parses a bit name such as "block_all" or "BLOCK ALL".
func ParseBehavior(name string) (Behavior, error) {
	norm := strings.ToUpper(strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(name)))
	for i, n := range bitNames {
		if n == norm {
			return Behavior(1 << i), nil
		}
	}
	return 0, fmt.Errorf("level: unknown behavior %q", name)
}

func (b Behavior) String() string {
	if b == 0 {
		return "NONE"
	}
	var parts []string
	for i, n := range bitNames {
		if b&(1<<i) != 0 {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, "|")
}

// Behaviors maps every tile index to its behavior mask. One table is shared by
// reference between the level, the scenes and the level tool.
type Behaviors struct {
	table [BehaviorCount]Behavior
}

func NewBehaviors() *Behaviors {
	return &Behaviors{}
}

func (bs *Behaviors) Get(tile byte) Behavior {
	if bs == nil {
		return 0
	}
	return bs.table[tile]
}

func (bs *Behaviors) Set(tile byte, b Behavior) {
	bs.table[tile] = b
}

// Has reports whether tile carries every bit of flag.
func (bs *Behaviors) Has(tile byte, flag Behavior) bool {
	return bs.Get(tile)&flag == flag
}

// ReadFrom loads the raw 256 byte table.
func (bs *Behaviors) ReadFrom(r io.Reader) (int64, error) {
	var buf [BehaviorCount]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		return int64(n), fmt.Errorf("level: read behaviors: %w", err)
	}
	for i, v := range buf {
		bs.table[i] = Behavior(v)
	}
	return int64(n), nil
}

// WriteTo stores the raw 256 byte table.
func (bs *Behaviors) WriteTo(w io.Writer) (int64, error) {
	var buf [BehaviorCount]byte
	for i, v := range bs.table {
		buf[i] = byte(v)
	}
	n, err := w.Write(buf[:])
	if err != nil {
		return int64(n), fmt.Errorf("level: write behaviors: %w", err)
	}
	return int64(n), nil
}
