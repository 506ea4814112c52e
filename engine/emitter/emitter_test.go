package emitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntent_AllAgree(t *testing.T) {
	var in Intent[string, int]
	var calls []string
	in.Register(func(src string, n int) bool { calls = append(calls, "a"); return true })
	in.Register(func(src string, n int) bool { calls = append(calls, "b"); return true })

	assert.True(t, in.Emit("src", 1))
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestIntent_VetoShortCircuits(t *testing.T) {
	var in Intent[string, int]
	secondCalled := false
	in.Register(func(string, int) bool { return false })
	in.Register(func(string, int) bool { secondCalled = true; return true })

	assert.False(t, in.Emit("src", 1))
	assert.False(t, secondCalled, "handler after a veto must not run")
}

func TestIntent_EmptyAgrees(t *testing.T) {
	var in Intent[string, int]
	assert.True(t, in.Emit("src", 0))
	assert.Equal(t, 0, in.Len())
}

func TestEvent_OrderPreserved(t *testing.T) {
	var ev Event[string, int]
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		ev.Register(func(_ string, n int) { got = append(got, i*10+n) })
	}
	ev.Emit("src", 1)
	assert.Equal(t, []int{1, 11, 21, 31, 41}, got)
	assert.Equal(t, 5, ev.Len())
}

func TestEvent_ReentrantEmit(t *testing.T) {
	var ev Event[string, int]
	var got []int
	ev.Register(func(_ string, n int) {
		got = append(got, n)
		if n < 3 {
			ev.Emit("nested", n+1)
		}
	})
	ev.Register(func(_ string, n int) { got = append(got, -n) })

	ev.Emit("src", 1)
	// Each nested emission completes before the outer one resumes.
	assert.Equal(t, []int{1, 2, 3, -3, -2, -1}, got)
}

func TestIntent_RegisterDuringEmit(t *testing.T) {
	var in Intent[string, int]
	lateCalls := 0
	in.Register(func(string, int) bool {
		in.Register(func(string, int) bool { lateCalls++; return true })
		return true
	})

	require.True(t, in.Emit("src", 1))
	assert.Equal(t, 0, lateCalls, "handlers registered mid-emit join the next emission")
	require.True(t, in.Emit("src", 1))
	assert.Equal(t, 1, lateCalls)
}
