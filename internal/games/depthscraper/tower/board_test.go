package tower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floorOf(colors ...Color) Floor {
	return Floor{Segments: segmentsFromColors(colors)}
}

func colorsOf(f Floor) []Color {
	out := make([]Color, len(f.Segments))
	for i, s := range f.Segments {
		out[i] = s.Color
	}
	return out
}

func TestCanPlace(t *testing.T) {
	tests := []struct {
		name     string
		floor    Floor
		tile     Tile
		expected bool
	}{
		{"empty floor", NewFloor(6), NewTile(R, Y, G, R, Y, G), true},
		{"disjoint", floorOf(R, 0, 0, 0, 0, 0), NewTile(0, Y, 0, 0, 0, G), true},
		{"overlap", floorOf(R, 0, 0, 0, 0, 0), NewTile(Y, 0, 0, 0, 0, 0), false},
		{"same color still overlaps", floorOf(0, 0, R, 0, 0, 0), NewTile(0, 0, R, 0, 0, 0), false},
		{"full floor empty tile cells", floorOf(R, R, R, R, R, R), NewTile(0, 0, 0, 0, 0, 0), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CanPlace(tc.floor, tc.tile))
		})
	}
}

func TestPlaceFloor(t *testing.T) {
	f := floorOf(R, 0, 0, 0, 0, 0)
	f.Segments[0].Size = 3
	f.Segments[0].Representative = true

	got := Place(f, NewTile(0, Y, 0, 0, 0, G))
	assert.Equal(t, []Color{R, Y, 0, 0, 0, G}, colorsOf(got))
	assert.Zero(t, got.Segments[0].Size, "annotations are stripped")
	assert.False(t, got.Segments[0].Representative)
	assert.Equal(t, 3, f.Segments[0].Size, "input floor must not change")

	blocked := Place(f, NewTile(Y, 0, 0, 0, 0, 0))
	assert.Equal(t, []Color{R, 0, 0, 0, 0, 0}, colorsOf(blocked))
}

func TestBoardPlaceErrors(t *testing.T) {
	b := NewBoard(6, 2)
	b.Floors[0] = floorOf(R, 0, 0, 0, 0, 0)

	_, err := b.Place(2, NewTile(R, 0, 0, 0, 0, 0))
	assert.ErrorIs(t, err, ErrFloorOutOfRange)

	_, err = b.Place(-1, NewTile(R, 0, 0, 0, 0, 0))
	assert.ErrorIs(t, err, ErrFloorOutOfRange)

	_, err = b.Place(0, NewTile(Y, 0, 0, 0, 0, 0))
	assert.ErrorIs(t, err, ErrOverlap)

	_, err = b.Place(0, NewTile(0, Y, 0))
	assert.ErrorIs(t, err, ErrRingMismatch)

	next, err := b.Place(0, NewTile(0, Y, 0, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, Y, next.ColorAt(P(1, 0)))
	assert.Equal(t, ColorNone, b.ColorAt(P(1, 0)), "receiver must not change")
}

func TestBoardGrow(t *testing.T) {
	b := NewBoard(6, 1)
	b, err := b.Place(0, NewTile(R, R, R, Y, Y, Y))
	require.NoError(t, err)

	assert.Equal(t, 1, b.Grow())
	assert.Equal(t, 2, b.Height())
	assert.True(t, b.Floors[0].Completed)
	assert.False(t, b.Floors[1].Completed)

	// The completed floor never triggers growth again.
	assert.Equal(t, 0, b.Grow())
	assert.Equal(t, 2, b.Height())

	// Placing on another floor keeps the latch.
	b, err = b.Place(1, NewTile(G, 0, 0, 0, 0, 0))
	require.NoError(t, err)
	assert.True(t, b.Floors[0].Completed)
	assert.Equal(t, 0, b.Grow())
}

func TestBoardGrowMultiple(t *testing.T) {
	b := NewBoard(3, 2)
	b.Floors[0] = floorOf(R, Y, G)
	b.Floors[1] = floorOf(G, Y, R)

	assert.Equal(t, 2, b.Grow())
	assert.Equal(t, 4, b.Height())
}

func TestFloorJustCompleted(t *testing.T) {
	f := floorOf(R, 0, G)
	assert.False(t, f.JustCompleted())
	assert.False(t, f.Completed, "a partial floor must not latch")

	f = Place(f, NewTile(0, Y, 0))
	assert.True(t, f.JustCompleted())
	assert.False(t, f.JustCompleted())
}

func TestColorAtOutOfBounds(t *testing.T) {
	b := NewBoard(6, 2)
	b.Floors[0] = floorOf(R, R, R, R, R, R)

	for _, p := range []Position{P(-1, 0), P(6, 0), P(0, -1), P(0, 2)} {
		assert.Equal(t, ColorNone, b.ColorAt(p), p.String())
		assert.False(t, b.InBounds(p), p.String())
	}
}

func TestPlacementPossible(t *testing.T) {
	t.Run("empty board", func(t *testing.T) {
		b := NewBoard(6, 4)
		assert.True(t, PlacementPossible(b, []Tile{NewTile(R, R, R, R, R, R)}))
	})

	t.Run("every floor full", func(t *testing.T) {
		b := NewBoard(3, 2)
		b.Floors[0] = floorOf(R, Y, G)
		b.Floors[1] = floorOf(G, Y, R)
		assert.False(t, PlacementPossible(b, []Tile{NewTile(R, 0, 0)}))
	})

	t.Run("single holes against two-colored tiles", func(t *testing.T) {
		// Each floor has one hole; every tile needs two empty cells.
		b := NewBoard(6, 4)
		b.Floors[0] = floorOf(0, R, Y, G, R, Y)
		b.Floors[1] = floorOf(R, 0, Y, G, R, Y)
		b.Floors[2] = floorOf(R, Y, 0, G, R, Y)
		b.Floors[3] = floorOf(R, Y, G, 0, R, Y)
		tiles := []Tile{
			NewTile(R, Y, 0, 0, 0, 0),
			NewTile(G, 0, 0, G, 0, 0),
			NewTile(Y, 0, R, 0, G, 0),
		}
		assert.False(t, PlacementPossible(b, tiles))

		tiles[2] = NewTile(Y, 0, 0, 0, 0, 0)
		assert.True(t, PlacementPossible(b, tiles))
	})

	t.Run("rotation is required", func(t *testing.T) {
		b := NewBoard(6, 1)
		b.Floors[0] = floorOf(R, R, R, R, 0, 0)
		// Unrotated the tile collides; offset 4 moves it onto the gap.
		tile := NewTile(Y, G, 0, 0, 0, 0)
		assert.False(t, CanPlace(b.Floors[0], tile))
		assert.True(t, PlacementPossible(b, []Tile{tile}))
	})
}
