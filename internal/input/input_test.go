package input_test

import (
	"testing"
	"time"

	"github.com/bloeys/tessera/internal/input"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"
)

func TestActionPressedRequiresAllBindings(t *testing.T) {
	s := &input.State{Pressed: map[input.Key]bool{sdl.K_LCTRL: true, sdl.K_s: true}}

	a := input.Action{input.ModifierKey{Mod: input.ModCtrl}, input.SpecificKey{Key: sdl.K_s}}
	require.True(t, a.Pressed(s))

	delete(s.Pressed, sdl.K_s)
	require.False(t, a.Pressed(s))
}

func TestInputUpdateDerivesJustPressedAndReleased(t *testing.T) {
	in := input.New()

	in.SetKey(sdl.K_a, true)
	in.Update()
	require.True(t, in.State().JustPressed[sdl.K_a])
	require.True(t, in.State().Pressed[sdl.K_a])

	in.Update()
	require.False(t, in.State().JustPressed[sdl.K_a])
	require.True(t, in.State().Pressed[sdl.K_a])

	in.SetKey(sdl.K_a, false)
	in.Update()
	require.True(t, in.State().Released[sdl.K_a])
	require.False(t, in.State().Pressed[sdl.K_a])
}

func TestRepeatFSM(t *testing.T) {
	r := input.NewRepeat(10*time.Millisecond, 5*time.Millisecond)
	now := time.Now()

	require.True(t, r.Update(true, now))
	require.Equal(t, input.RepeatPressed, r.State())

	require.False(t, r.Update(true, now.Add(2*time.Millisecond)))
	require.True(t, r.Update(true, now.Add(11*time.Millisecond)))
	require.Equal(t, input.RepeatHeld, r.State())

	require.False(t, r.Update(false, now.Add(20*time.Millisecond)))
	require.Equal(t, input.RepeatReleased, r.State())
}

func TestActionFromNames(t *testing.T) {
	a := input.ActionFromNames([]string{"ctrl", "S"})
	require.Len(t, a, 2)
}
