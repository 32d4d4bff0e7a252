// Package movement implements the actor-intent priority resolution
// stage of the world tick: after every actor has proposed a destination
// for the tick, conflicting intents targeting the same cell are
// resolved in one pass by descending priority, ties broken by actor
// identity. This is the boundary the full AI scheduler plugs into,
// not a reimplementation of it.
package movement

import (
	"github.com/bloeys/tessera/internal/grid"
	"github.com/google/uuid"
)

// Actor is the minimal identity+position record the resolver needs.
// Priority models the actor's dexterity-equivalent stat.
type Actor struct {
	ID       uuid.UUID
	Priority int
	Pos      grid.Coord
}

// ResolveIntents takes each actor's proposed destination and returns
// the subset that may actually move this tick: when two or more
// actors target the same cell, only the highest-priority one is kept
// (ties broken by comparing IDs, lower UUID wins, for determinism).
// Actors with no entry in intents are left out of the result.
func ResolveIntents(actors []*Actor, intents map[uuid.UUID]grid.Coord) map[uuid.UUID]grid.Coord {
	byID := make(map[uuid.UUID]*Actor, len(actors))
	for _, a := range actors {
		byID[a.ID] = a
	}

	winnerByCell := make(map[grid.Coord]uuid.UUID, len(intents))
	for id, dest := range intents {
		a, ok := byID[id]
		if !ok {
			continue
		}

		cur, ok := winnerByCell[dest]
		if !ok {
			winnerByCell[dest] = id
			continue
		}

		curActor := byID[cur]
		if a.Priority > curActor.Priority {
			winnerByCell[dest] = id
		} else if a.Priority == curActor.Priority && lessID(id, cur) {
			winnerByCell[dest] = id
		}
	}

	out := make(map[uuid.UUID]grid.Coord, len(winnerByCell))
	for dest, id := range winnerByCell {
		out[id] = dest
	}
	return out
}

func lessID(a, b uuid.UUID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
