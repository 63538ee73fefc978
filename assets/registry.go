package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/milk9111/jumpscroller/component"
	"github.com/milk9111/jumpscroller/sound"
)

// ErrFrozen is returned when adding to a registry after Freeze.
var ErrFrozen = errors.New("asset registry is frozen")

const placeholderSize = 32

// Frame is one cell of a decoded sheet image.
type Frame struct {
	Image  image.Image
	Bounds image.Rectangle
}

func (f Frame) Size() (int, int) { return f.Bounds.Dx(), f.Bounds.Dy() }

// Slice cuts img into rows of fw x fh frames. Partial cells at the right
// and bottom edges are dropped.
func Slice(img image.Image, fw, fh int) [][]component.Frame {
	b := img.Bounds()
	if fw <= 0 || fh <= 0 {
		return [][]component.Frame{{Frame{Image: img, Bounds: b}}}
	}
	var rows [][]component.Frame
	for y := b.Min.Y; y+fh <= b.Max.Y; y += fh {
		var row []component.Frame
		for x := b.Min.X; x+fw <= b.Max.X; x += fw {
			row = append(row, Frame{Image: img, Bounds: image.Rect(x, y, x+fw, y+fh)})
		}
		rows = append(rows, row)
	}
	return rows
}

// Registry holds every sheet, sample and song by name. It is filled once
// at startup and read-only afterwards; missing names resolve to
// placeholders so a broken asset only costs its own effect.
type Registry struct {
	logger *log.Logger
	rate   float64

	sheets  map[string]*component.Sheet
	samples map[string]*sound.Sample
	songs   map[string]*sound.Sequence
	frozen  bool

	mu     sync.Mutex
	warned map[string]bool
}

func NewRegistry(logger *log.Logger, sampleRate int) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		logger:  logger,
		rate:    float64(sampleRate),
		sheets:  map[string]*component.Sheet{},
		samples: map[string]*sound.Sample{},
		songs:   map[string]*sound.Sequence{},
		warned:  map[string]bool{},
	}
}

// Load builds a frozen registry from the embedded assets. Individual
// assets that fail to decode are logged and skipped.
func Load(logger *log.Logger, sampleRate int) (*Registry, error) {
	r := NewRegistry(logger, sampleRate)

	specs, err := LoadSheetSpecs()
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	for _, spec := range specs {
		img, err := LoadImage(spec.File)
		if err != nil {
			r.logger.Warn("skipping sheet", "sheet", spec.Name, "err", err)
			continue
		}
		if err := r.AddSheet(spec.Name, img, spec.FrameW, spec.FrameH); err != nil {
			return nil, err
		}
	}

	samples, err := names("samples", ".wav")
	if err != nil {
		return nil, fmt.Errorf("assets: list samples: %w", err)
	}
	for _, name := range samples {
		b, err := LoadFile("samples/" + name + ".wav")
		if err != nil {
			return nil, fmt.Errorf("assets: %w", err)
		}
		if err := r.AddSample(sound.LoadSampleOrSilent(bytes.NewReader(b), name, r.rate, r.logger)); err != nil {
			return nil, err
		}
	}

	songs, err := names("songs", ".mid")
	if err != nil {
		return nil, fmt.Errorf("assets: list songs: %w", err)
	}
	for _, name := range songs {
		b, err := LoadFile("songs/" + name + ".mid")
		if err != nil {
			return nil, fmt.Errorf("assets: %w", err)
		}
		seq, err := sound.LoadSequence(bytes.NewReader(b), name)
		if err != nil {
			r.logger.Warn("skipping song", "song", name, "err", err)
			continue
		}
		if err := r.AddSequence(seq); err != nil {
			return nil, err
		}
	}

	r.Freeze()
	r.logger.Debug("assets loaded", "sheets", len(r.sheets), "samples", len(r.samples), "songs", len(r.songs))
	return r, nil
}

func (r *Registry) AddSheet(name string, img image.Image, fw, fh int) error {
	if r.frozen {
		return fmt.Errorf("assets: add sheet %s: %w", name, ErrFrozen)
	}
	r.sheets[name] = component.NewSheet(name, Slice(img, fw, fh))
	return nil
}

func (r *Registry) AddSample(s *sound.Sample) error {
	if r.frozen {
		return fmt.Errorf("assets: add sample %s: %w", s.Name, ErrFrozen)
	}
	r.samples[s.Name] = s
	return nil
}

func (r *Registry) AddSequence(s *sound.Sequence) error {
	if r.frozen {
		return fmt.Errorf("assets: add song %s: %w", s.Name, ErrFrozen)
	}
	r.songs[s.Name] = s
	return nil
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() { r.frozen = true }

// Sheet returns the named sheet or a single-frame placeholder.
func (r *Registry) Sheet(name string) *component.Sheet {
	if s, ok := r.sheets[name]; ok {
		return s
	}
	r.warnOnce("sheet", name)
	return component.UniformSheet(name, 1, 1, placeholderSize, placeholderSize)
}

// Sample returns the named sample or silence.
func (r *Registry) Sample(name string) *sound.Sample {
	if s, ok := r.samples[name]; ok {
		return s
	}
	r.warnOnce("sample", name)
	s := sound.Silent(r.rate)
	s.Name = name
	return s
}

// Sequence returns the named song, or nil when there is none.
func (r *Registry) Sequence(name string) *sound.Sequence {
	return r.songs[name]
}

func (r *Registry) warnOnce(kind, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := kind + ":" + name
	if r.warned[key] {
		return
	}
	r.warned[key] = true
	r.logger.Warn("missing asset, using placeholder", "kind", kind, "name", name)
}
