package material

import (
	"errors"
	"fmt"
	"sync"
)

// ErrPaletteFull is returned when every global material slot is taken.
var ErrPaletteFull = errors.New("material palette is full")

// Palette assigns global material ids across all loaded modules.
type Palette struct {
	mu     sync.RWMutex
	names  [PaletteSize]string
	byName map[string]int
}

// NewPalette returns an empty palette.
func NewPalette() *Palette {
	return &Palette{byName: make(map[string]int)}
}

// Assign returns the global id for the named material. A name seen before
// keeps its id; otherwise the wanted slot is used when free, and the lowest
// free slot when not.
func (p *Palette) Assign(name string, want int) (int, error) {
	if name == "" {
		return 0, errors.New("material name must not be empty")
	}
	if want <= 0 || want >= PaletteSize {
		return 0, fmt.Errorf("material %q: index %d is outside 1-%d", name, want, PaletteSize-1)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if id, ok := p.byName[name]; ok {
		return id, nil
	}
	if p.names[want] == "" {
		p.claim(want, name)
		return want, nil
	}
	for id := 1; id < PaletteSize; id++ {
		if p.names[id] == "" {
			p.claim(id, name)
			return id, nil
		}
	}
	return 0, fmt.Errorf("material %q: %w", name, ErrPaletteFull)
}

func (p *Palette) claim(id int, name string) {
	p.names[id] = name
	p.byName[name] = id
}

// Name returns the material occupying id, or "".
func (p *Palette) Name(id int) string {
	if id <= 0 || id >= PaletteSize {
		return ""
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.names[id]
}

// ID returns the global id of the named material.
func (p *Palette) ID(name string) (int, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	id, ok := p.byName[name]
	return id, ok
}
