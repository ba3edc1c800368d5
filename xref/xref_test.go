package xref

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCrossReferenceDirection(t *testing.T) {
	caller := FunctionRef{Index: 2, Name: "fun_00000002"}
	callee := FunctionRef{Index: 5, Name: "fun_00000005"}
	e := NewCrossReference(caller, callee, 0x10)
	require.True(t, e.DirectionDown)

	e2 := NewCrossReference(callee, caller, 0x20)
	require.False(t, e2.DirectionDown)
}

func TestTrackerOrderAndLookup(t *testing.T) {
	tr := New()
	a := FunctionRef{Index: 0, Name: "a"}
	b := FunctionRef{Index: 1, Name: "b"}
	c := FunctionRef{Index: 2, Name: "c"}

	tr.Record(NewCrossReference(a, b, 1))
	tr.Record(NewCrossReference(c, b, 2))
	tr.Record(NewCrossReference(a, c, 3))

	require.Len(t, tr.Edges(), 3)
	require.Equal(t, uint32(1), tr.Edges()[0].Offset)

	calledB := tr.CalledBy(1)
	require.Len(t, calledB, 2)
}
