package ring_test

import (
	"testing"

	"github.com/bloeys/tessera/internal/ring"
)

func TestRing(t *testing.T) {

	b := ring.NewBuffer[rune](4)
	b.Append('a', 'b', 'c', 'd')
	checkArr(t, []rune{'a', 'b', 'c', 'd'}, b.Data)

	v1, v2 := b.Views()
	checkArr(t, []rune{'a', 'b', 'c', 'd'}, v1)
	checkArr(t, nil, v2)
	check(t, int64(0), b.Start)
	check(t, int64(4), b.Len)

	b.Append('e', 'f')
	check(t, int64(2), b.Start)
	checkArr(t, []rune{'e', 'f', 'c', 'd'}, b.Data)

	v1, v2 = b.Views()
	checkArr(t, []rune{'c', 'd'}, v1)
	checkArr(t, []rune{'e', 'f'}, v2)

	b.Append('g')
	check(t, int64(3), b.Start)

	v1, v2 = b.Views()
	checkArr(t, []rune{'e', 'f', 'g', 'd'}, b.Data)
	checkArr(t, []rune{'d'}, v1)
	checkArr(t, []rune{'e', 'f', 'g'}, v2)

	// Input larger than capacity should still settle to the tail.
	b = ring.NewBuffer[rune](4)
	b.Append('a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i')
	checkArr(t, []rune{'i', 'f', 'g', 'h'}, b.Data)
}

func check[T comparable](t *testing.T, expected, got T) {
	if got != expected {
		t.Fatalf("expected %v but got %v\n", expected, got)
	}
}

func checkArr[T comparable](t *testing.T, expected, got []T) {
	if len(expected) != len(got) {
		t.Fatalf("expected %v but got %v\n", expected, got)
		return
	}
	for i := range expected {
		if expected[i] != got[i] {
			t.Fatalf("expected %v but got %v\n", expected, got)
			return
		}
	}
}
