package tower

import (
	"fmt"
	"sort"
)

// Group is a connected set of same-colored segments.
// Groups are immutable in identity: a merge retires both parents and
// issues a new ID.
type Group struct {
	ID              int
	Color           Color
	Positions       []Position // Insertion order; merges append the neighbor's positions
	CompletedAtMove int        // Valid only when Completed is true
	Completed       bool
}

// Size returns the number of segments in the group.
func (g Group) Size() int {
	return len(g.Positions)
}

// CompletedOn reports whether the group completed on the given move.
func (g Group) CompletedOn(move int) bool {
	return g.Completed && g.CompletedAtMove == move
}

// Representative returns the member with the highest floor index.
// Ties keep the first member encountered.
func (g Group) Representative() Position {
	best := g.Positions[0]
	for _, p := range g.Positions[1:] {
		if p.Y > best.Y {
			best = p
		}
	}
	return best
}

func (g Group) clone() *Group {
	c := g
	c.Positions = make([]Position, len(g.Positions))
	copy(c.Positions, g.Positions)
	return &c
}

// GroupRegistry indexes every group on the board.
// A reverse index keeps Lookup independent of the number of groups.
type GroupRegistry struct {
	nextID int
	groups map[int]*Group
	index  map[Position]int // Position -> group ID
}

// NewGroupRegistry returns an empty registry.
func NewGroupRegistry() *GroupRegistry {
	return &GroupRegistry{
		groups: make(map[int]*Group),
		index:  make(map[Position]int),
	}
}

// Clone returns a deep copy sharing nothing with the receiver.
// The ID counter is copied so IDs stay unique along a game's history.
func (r *GroupRegistry) Clone() *GroupRegistry {
	c := &GroupRegistry{
		nextID: r.nextID,
		groups: make(map[int]*Group, len(r.groups)),
		index:  make(map[Position]int, len(r.index)),
	}
	for id, g := range r.groups {
		c.groups[id] = g.clone()
	}
	for p, id := range r.index {
		c.index[p] = id
	}
	return c
}

// Len returns the number of live groups.
func (r *GroupRegistry) Len() int {
	return len(r.groups)
}

// Has reports whether a group with the given ID is live.
func (r *GroupRegistry) Has(id int) bool {
	_, ok := r.groups[id]
	return ok
}

// Get returns the group with the given ID.
func (r *GroupRegistry) Get(id int) (Group, bool) {
	g, ok := r.groups[id]
	if !ok {
		return Group{}, false
	}
	return *g.clone(), true
}

// Lookup returns the group containing p, if any.
func (r *GroupRegistry) Lookup(p Position) (Group, bool) {
	id, ok := r.index[p]
	if !ok {
		return Group{}, false
	}
	return r.Get(id)
}

// IDs returns the live group IDs in ascending order.
func (r *GroupRegistry) IDs() []int {
	ids := make([]int, 0, len(r.groups))
	for id := range r.groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Groups returns copies of all live groups ordered by ID.
func (r *GroupRegistry) Groups() []Group {
	ids := r.IDs()
	out := make([]Group, len(ids))
	for i, id := range ids {
		out[i] = *r.groups[id].clone()
	}
	return out
}

// create registers a new group and indexes its positions.
func (r *GroupRegistry) create(color Color, positions []Position) *Group {
	r.nextID++
	g := &Group{ID: r.nextID, Color: color, Positions: positions}
	r.groups[g.ID] = g
	for _, p := range positions {
		r.index[p] = g.ID
	}
	return g
}

// remove retires a group and drops its index entries.
func (r *GroupRegistry) remove(id int) {
	g, ok := r.groups[id]
	if !ok {
		return
	}
	for _, p := range g.Positions {
		if r.index[p] == id {
			delete(r.index, p)
		}
	}
	delete(r.groups, id)
}

// Seed creates a singleton group for every colored segment of t placed on
// floor y. t must already be rotated. Returns the seeded positions in
// ascending x.
func (r *GroupRegistry) Seed(y int, t Tile) []Position {
	var seeded []Position
	for x, s := range t.Segments {
		if s.Empty() {
			continue
		}
		p := P(x, y)
		if id, ok := r.index[p]; ok {
			// A cell can only be seeded once; a stale owner would break
			// disjointness.
			r.remove(id)
		}
		r.create(s.Color, []Position{p})
		seeded = append(seeded, p)
	}
	return seeded
}

// MergeAt unions the group at p with every same-colored neighbor group.
// Each union replaces both groups with a new one whose completion is
// cleared. Returns the number of unions performed.
func (r *GroupRegistry) MergeAt(b Board, p Position) int {
	color := b.ColorAt(p)
	if !color.IsSet() {
		return 0
	}

	merges := 0
	for _, np := range p.Neighbors() {
		if b.ColorAt(np) != color {
			continue
		}
		curID, ok := r.index[p]
		if !ok {
			continue
		}
		nID, ok := r.index[np]
		if !ok || nID == curID {
			continue
		}

		cur := r.groups[curID]
		nb := r.groups[nID]
		positions := make([]Position, 0, len(cur.Positions)+len(nb.Positions))
		positions = append(positions, cur.Positions...)
		positions = append(positions, nb.Positions...)

		r.remove(curID)
		r.remove(nID)
		r.create(cur.Color, positions)
		merges++
	}
	return merges
}

// Integrate seeds groups for the tile placed on floor y and runs the merge
// pass over the seeded cells in ascending x. b must already contain the
// placed tile.
func (r *GroupRegistry) Integrate(b Board, y int, t Tile) []Position {
	seeded := r.Seed(y, t)
	for _, p := range seeded {
		r.MergeAt(b, p)
	}
	return seeded
}

// MarkCompleted stamps move on every open group whose members have no
// empty existing neighbor. Returns the IDs that completed, ascending.
func (r *GroupRegistry) MarkCompleted(b Board, move int) []int {
	var completed []int
	for _, id := range r.IDs() {
		g := r.groups[id]
		if g.Completed {
			continue
		}
		enclosed := true
		for _, p := range g.Positions {
			if !b.neighborsColored(p) {
				enclosed = false
				break
			}
		}
		if enclosed {
			g.Completed = true
			g.CompletedAtMove = move
			completed = append(completed, id)
		}
	}
	return completed
}

// Annotate returns a copy of b with group sizes on every member segment and
// the representative flag on one member per group.
func (r *GroupRegistry) Annotate(b Board) Board {
	out := b.Clone()
	for y := range out.Floors {
		for x := range out.Floors[y].Segments {
			out.Floors[y].Segments[x] = out.Floors[y].Segments[x].stripped()
		}
	}

	for _, id := range r.IDs() {
		g := r.groups[id]
		for _, p := range g.Positions {
			if !out.InBounds(p) {
				continue
			}
			out.Floors[p.Y].Segments[p.X].Size = len(g.Positions)
		}
		rep := g.Representative()
		if out.InBounds(rep) {
			out.Floors[rep.Y].Segments[rep.X].Representative = true
		}
	}
	return out
}

// LargestOpen returns the size of the largest uncompleted group of color c,
// or 0 if there is none.
func (r *GroupRegistry) LargestOpen(c Color) int {
	largest := 0
	for _, g := range r.groups {
		if g.Completed || g.Color != c {
			continue
		}
		if len(g.Positions) > largest {
			largest = len(g.Positions)
		}
	}
	return largest
}

// Verify checks the registry against the board:
// every colored segment belongs to exactly one group of its color, groups
// are disjoint and adjacent same-colored segments share a group.
func (r *GroupRegistry) Verify(b Board) error {
	seen := make(map[Position]int)
	for _, id := range r.IDs() {
		g := r.groups[id]
		if len(g.Positions) == 0 {
			return fmt.Errorf("group %d is empty", id)
		}
		for _, p := range g.Positions {
			if other, dup := seen[p]; dup {
				return fmt.Errorf("position %s in groups %d and %d", p, other, id)
			}
			seen[p] = id
			if c := b.ColorAt(p); c != g.Color {
				return fmt.Errorf("group %d (%s) covers %s colored %s", id, g.Color, p, c)
			}
			if r.index[p] != id {
				return fmt.Errorf("index for %s points to %d, want %d", p, r.index[p], id)
			}
		}
	}

	for y, f := range b.Floors {
		for x, s := range f.Segments {
			if s.Empty() {
				continue
			}
			p := P(x, y)
			id, ok := seen[p]
			if !ok {
				return fmt.Errorf("colored segment %s has no group", p)
			}
			for _, np := range p.Neighbors() {
				if b.ColorAt(np) != s.Color {
					continue
				}
				if seen[np] != id {
					return fmt.Errorf("adjacent %s and %s split across groups %d and %d", p, np, id, seen[np])
				}
			}
		}
	}
	return nil
}
