package tower

// Tile is a ring of segments the player drops onto a floor.
// Offset is the rotation last chosen by the player.
type Tile struct {
	Segments []Segment
	Offset   int
}

// NewTile builds an unrotated tile from a color list.
// It does not canonicalize; use Factory.Create for random tiles.
func NewTile(colors ...Color) Tile {
	return Tile{Segments: segmentsFromColors(colors)}
}

// Len returns the ring size of the tile.
func (t Tile) Len() int {
	return len(t.Segments)
}

// Colors returns the tile colors in ring order.
func (t Tile) Colors() []Color {
	colors := make([]Color, len(t.Segments))
	for i, s := range t.Segments {
		colors[i] = s.Color
	}
	return colors
}

// ColoredCount returns the number of colored segments.
func (t Tile) ColoredCount() int {
	count := 0
	for _, s := range t.Segments {
		if !s.Empty() {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the tile.
func (t Tile) Clone() Tile {
	return Tile{Segments: cloneSegments(t.Segments), Offset: t.Offset}
}

// Rotated returns a copy of the tile rotated by its stored Offset.
func (t Tile) Rotated() Tile {
	return CloneRotated(t, t.Offset)
}

// CloneRotated returns a new tile whose segment i is the input's segment
// (i + n - offset) mod n. The input is not modified.
// The returned tile has Offset 0 since the rotation is baked in.
func CloneRotated(t Tile, offset int) Tile {
	n := len(t.Segments)
	out := Tile{Segments: make([]Segment, n)}
	if n == 0 {
		return out
	}
	offset = mod(offset, n)
	for i := range n {
		out.Segments[i] = t.Segments[(i+n-offset)%n]
	}
	return out
}

// canonicalize rotates the ring left until segment 0 is colored.
// An all-empty ring is returned unchanged.
func canonicalize(segs []Segment) []Segment {
	n := len(segs)
	for range n {
		if !segs[0].Empty() {
			return segs
		}
		segs = append(segs[1:], segs[0])
	}
	return segs
}

// TileOptions configures random tile generation.
type TileOptions struct {
	Segments    int // Ring size
	ColorWeight int // Weight of each playable color
	EmptyWeight int // Weight of an empty segment
	MaxAttempts int // Rejection sampling limit before the fallback pattern
}

// DefaultTileOptions returns the reference weighting: three colors against
// six empties on a six-segment ring.
func DefaultTileOptions() TileOptions {
	return TileOptions{
		Segments:    6,
		ColorWeight: 1,
		EmptyWeight: 6,
		MaxAttempts: 64,
	}
}

// Factory produces random tiles.
type Factory struct {
	rng  Rand
	opts TileOptions
}

// NewFactory creates a tile factory drawing from rng.
// Out-of-range options are replaced by their defaults.
func NewFactory(rng Rand, opts TileOptions) *Factory {
	def := DefaultTileOptions()
	if opts.Segments < 3 {
		opts.Segments = def.Segments
	}
	if opts.ColorWeight <= 0 {
		opts.ColorWeight = def.ColorWeight
	}
	if opts.EmptyWeight < 0 {
		opts.EmptyWeight = def.EmptyWeight
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = def.MaxAttempts
	}
	return &Factory{rng: rng, opts: opts}
}

// Segments returns the ring size of produced tiles.
func (f *Factory) Segments() int {
	return f.opts.Segments
}

// Options returns the effective options.
func (f *Factory) Options() TileOptions {
	return f.opts
}

// WithEmptyWeight returns a factory sharing the same rng with a different
// empty weight. Used by difficulty scaling.
func (f *Factory) WithEmptyWeight(w int) *Factory {
	opts := f.opts
	opts.EmptyWeight = w
	return NewFactory(f.rng, opts)
}

// Create returns a random tile with at least one colored segment and
// segment 0 colored.
func (f *Factory) Create() Tile {
	n := f.opts.Segments
	segs := make([]Segment, n)

	ok := false
	for attempt := 0; attempt < f.opts.MaxAttempts && !ok; attempt++ {
		for i := range segs {
			segs[i] = Segment{Color: f.sampleColor()}
			if !segs[i].Empty() {
				ok = true
			}
		}
	}

	if !ok {
		// Fallback: a single random color at the front.
		for i := range segs {
			segs[i] = Segment{}
		}
		colors := Colors()
		segs[0] = Segment{Color: colors[f.rng.Intn(len(colors))]}
	}

	return Tile{Segments: canonicalize(segs)}
}

// CreateHand returns count fresh tiles.
func (f *Factory) CreateHand(count int) []Tile {
	tiles := make([]Tile, count)
	for i := range tiles {
		tiles[i] = f.Create()
	}
	return tiles
}

// sampleColor draws one segment color using the configured weights.
func (f *Factory) sampleColor() Color {
	colors := Colors()
	total := len(colors)*f.opts.ColorWeight + f.opts.EmptyWeight
	r := f.rng.Intn(total)
	if r < f.opts.EmptyWeight {
		return ColorNone
	}
	return colors[(r-f.opts.EmptyWeight)/f.opts.ColorWeight]
}

// mod returns a non-negative remainder.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
