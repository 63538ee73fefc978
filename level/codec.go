package level

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Magic is the file signature: the 32-bit value 0xba11ade9 sign-extended
// to 64 bits, so files begin FF FF FF FF BA 11 AD E9.
const Magic uint64 = 0xFFFFFFFFBA11ADE9

// Version is written into new files. Readers accept any version byte.
const Version byte = 0

var ErrBadHeader = errors.New("bad level header")

type fileHeader struct {
	Magic   uint64
	Version byte
	Width   uint16
	Height  uint16
}

// Load decodes a level. A failed load returns no level, so callers keep
// whatever level they already had.
func Load(r io.Reader, behaviors *Behaviors) (*Level, error) {
	br := bufio.NewReader(r)
	var hdr fileHeader
	if err := binary.Read(br, binary.BigEndian, &hdr); err != nil {
		return nil, fmt.Errorf("level: read header: %w", err)
	}
	if hdr.Magic != Magic {
		return nil, fmt.Errorf("level: magic %#x: %w", hdr.Magic, ErrBadHeader)
	}
	if hdr.Width == 0 || hdr.Height == 0 {
		return nil, fmt.Errorf("level: empty %dx%d grid: %w", hdr.Width, hdr.Height, ErrBadHeader)
	}

	l := New(int(hdr.Width), int(hdr.Height), behaviors)
	for x := 0; x < l.width; x++ {
		if _, err := io.ReadFull(br, l.tiles[x]); err != nil {
			return nil, fmt.Errorf("level: read column %d tiles: %w", x, err)
		}
		if _, err := io.ReadFull(br, l.data[x]); err != nil {
			return nil, fmt.Errorf("level: read column %d data: %w", x, err)
		}
	}
	return l, nil
}

// Save encodes the level.
func (l *Level) Save(w io.Writer) error {
	if l.width > 0xffff || l.height > 0xffff {
		return fmt.Errorf("level: %dx%d exceeds file limits", l.width, l.height)
	}
	bw := bufio.NewWriter(w)
	hdr := fileHeader{
		Magic:   Magic,
		Version: Version,
		Width:   uint16(l.width),
		Height:  uint16(l.height),
	}
	if err := binary.Write(bw, binary.BigEndian, hdr); err != nil {
		return fmt.Errorf("level: write header: %w", err)
	}
	for x := 0; x < l.width; x++ {
		if _, err := bw.Write(l.tiles[x]); err != nil {
			return fmt.Errorf("level: write column %d: %w", x, err)
		}
		if _, err := bw.Write(l.data[x]); err != nil {
			return fmt.Errorf("level: write column %d: %w", x, err)
		}
	}
	return bw.Flush()
}
