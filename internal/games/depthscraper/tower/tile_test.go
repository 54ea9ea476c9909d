package tower

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqRand replays a fixed sequence, reduced modulo n.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)] % n
	r.i++
	return v
}

const (
	R = ColorRed
	Y = ColorYellow
	G = ColorGreen
)

func TestFactoryCreate(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		f := NewFactory(rand.New(rand.NewSource(seed)), DefaultTileOptions())
		tile := f.Create()

		require.Equal(t, 6, tile.Len(), "seed %d", seed)
		assert.True(t, tile.Segments[0].Color.IsSet(), "seed %d: segment 0 must be colored", seed)
		assert.GreaterOrEqual(t, tile.ColoredCount(), 1, "seed %d", seed)
		assert.Equal(t, 0, tile.Offset)
	}
}

func TestFactoryFallback(t *testing.T) {
	// Every draw lands in the empty bucket, so rejection sampling gives up.
	f := NewFactory(&seqRand{vals: []int{0}}, TileOptions{
		Segments:    6,
		ColorWeight: 1,
		EmptyWeight: 100,
		MaxAttempts: 2,
	})

	tile := f.Create()
	assert.Equal(t, []Color{R, 0, 0, 0, 0, 0}, tile.Colors())
}

func TestFactoryCanonicalizes(t *testing.T) {
	// Draws: empty, empty, red, empty, yellow, empty.
	// With weights 1/1/1 against 3 empties, r<3 is empty, 3 red, 4 yellow, 5 green.
	f := NewFactory(&seqRand{vals: []int{0, 1, 3, 2, 4, 0}}, TileOptions{
		Segments:    6,
		ColorWeight: 1,
		EmptyWeight: 3,
		MaxAttempts: 1,
	})

	tile := f.Create()
	assert.Equal(t, []Color{R, 0, Y, 0, 0, 0}, tile.Colors())
}

func TestFactoryOptionsSanitized(t *testing.T) {
	f := NewFactory(rand.New(rand.NewSource(1)), TileOptions{})
	assert.Equal(t, DefaultTileOptions().Segments, f.Segments())
	assert.Equal(t, DefaultTileOptions().MaxAttempts, f.Options().MaxAttempts)

	heavier := f.WithEmptyWeight(12)
	assert.Equal(t, 12, heavier.Options().EmptyWeight)
	assert.Equal(t, 0, f.Options().EmptyWeight, "original factory must be unchanged")
}

func TestCreateHand(t *testing.T) {
	f := NewFactory(rand.New(rand.NewSource(7)), DefaultTileOptions())
	hand := f.CreateHand(3)
	require.Len(t, hand, 3)
	for _, tile := range hand {
		assert.True(t, tile.Segments[0].Color.IsSet())
	}
}

func TestCloneRotated(t *testing.T) {
	base := NewTile(R, Y, G, 0, 0, 0)

	tests := []struct {
		name     string
		offset   int
		expected []Color
	}{
		{name: "identity", offset: 0, expected: []Color{R, Y, G, 0, 0, 0}},
		{name: "one step", offset: 1, expected: []Color{0, R, Y, G, 0, 0}},
		{name: "full turn", offset: 6, expected: []Color{R, Y, G, 0, 0, 0}},
		{name: "negative", offset: -1, expected: []Color{Y, G, 0, 0, 0, R}},
		{name: "large", offset: 13, expected: []Color{0, R, Y, G, 0, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CloneRotated(base, tc.offset)
			assert.Equal(t, tc.expected, got.Colors())
			assert.Equal(t, []Color{R, Y, G, 0, 0, 0}, base.Colors(), "input must not change")
		})
	}
}

func TestCloneRotatedBijection(t *testing.T) {
	base := NewTile(R, Y, G, R, 0, G)
	for offset := range base.Len() {
		got := CloneRotated(base, offset)
		counts := map[Color]int{}
		for _, c := range got.Colors() {
			counts[c]++
		}
		assert.Equal(t, map[Color]int{R: 2, Y: 1, G: 2, ColorNone: 1}, counts, "offset %d", offset)

		back := CloneRotated(got, -offset)
		assert.Equal(t, base.Colors(), back.Colors(), "offset %d", offset)
	}
}

func TestTileRotatedUsesOffset(t *testing.T) {
	tile := NewTile(0, 0, 0, R, 0, 0)
	tile.Offset = 4
	assert.Equal(t, []Color{0, R, 0, 0, 0, 0}, tile.Rotated().Colors())
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"red", R, true},
		{"Y", Y, true},
		{"green", G, true},
		{"_", ColorNone, true},
		{"", ColorNone, true},
		{"blue", ColorNone, false},
	}
	for _, tc := range tests {
		got, ok := ParseColor(tc.in)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
	}
}
