package movement_test

import (
	"testing"

	"github.com/bloeys/tessera/internal/grid"
	"github.com/bloeys/tessera/internal/movement"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestResolveIntentsPriority(t *testing.T) {
	hi := &movement.Actor{ID: uuid.New(), Priority: 10, Pos: grid.C(0, 0)}
	lo := &movement.Actor{ID: uuid.New(), Priority: 1, Pos: grid.C(2, 0)}

	dest := grid.C(1, 0)
	intents := map[uuid.UUID]grid.Coord{hi.ID: dest, lo.ID: dest}

	out := movement.ResolveIntents([]*movement.Actor{hi, lo}, intents)
	require.Len(t, out, 1)
	require.Equal(t, dest, out[hi.ID])
}

func TestResolveIntentsTieBrokenByID(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	if ids[0].String() > ids[1].String() {
		ids[0], ids[1] = ids[1], ids[0]
	}

	a := &movement.Actor{ID: ids[0], Priority: 5}
	b := &movement.Actor{ID: ids[1], Priority: 5}

	dest := grid.C(3, 3)
	intents := map[uuid.UUID]grid.Coord{a.ID: dest, b.ID: dest}

	out := movement.ResolveIntents([]*movement.Actor{a, b}, intents)
	require.Len(t, out, 1)
	require.Equal(t, dest, out[a.ID])
}

func TestResolveIntentsNoConflict(t *testing.T) {
	a := &movement.Actor{ID: uuid.New(), Priority: 1}
	b := &movement.Actor{ID: uuid.New(), Priority: 1}

	intents := map[uuid.UUID]grid.Coord{a.ID: grid.C(0, 0), b.ID: grid.C(5, 5)}
	out := movement.ResolveIntents([]*movement.Actor{a, b}, intents)
	require.Len(t, out, 2)
}
