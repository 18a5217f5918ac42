package diag

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRing_AppendAndWrap(t *testing.T) {
	r := NewRing(3)
	r.Append("a")
	r.Append("b")
	assert.Equal(t, []string{"a", "b"}, r.Lines())

	r.Append("c")
	r.Append("d") // evicts "a"
	assert.Equal(t, []string{"b", "c", "d"}, r.Lines())
}

func TestRing_Tail(t *testing.T) {
	r := NewRing(10)
	for i := 0; i < 5; i++ {
		r.Append(fmt.Sprintf("line %d", i))
	}
	assert.Equal(t, "line 3\nline 4", r.Tail(2))
	assert.Equal(t, "line 0\nline 1\nline 2\nline 3\nline 4", r.Tail(0))
}

func TestRing_Reset(t *testing.T) {
	r := NewRing(2)
	r.Append("x")
	r.Append("y")
	r.Append("z")
	r.Reset()
	assert.Empty(t, r.Lines())
	r.Append("fresh")
	assert.Equal(t, []string{"fresh"}, r.Lines())
}

func TestRing_SummaryFiltersErrorLines(t *testing.T) {
	r := NewRing(20)
	r.Append("frame=  100 fps= 25")
	r.Append("Error while opening encoder for output stream #0:0")
	r.Append("frame=  200 fps= 25")
	r.Append("Conversion failed!")

	got := r.Summary(5)
	assert.Equal(t, []string{
		"Error while opening encoder for output stream #0:0",
		"Conversion failed!",
	}, got)
}

func TestRing_SummaryFallsBackToTail(t *testing.T) {
	r := NewRing(10)
	r.Append("one")
	r.Append("two")
	r.Append("three")
	assert.Equal(t, []string{"two", "three"}, r.Summary(2))
}
