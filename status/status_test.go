package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMap_GetCachesPointer(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	a := m.Get("x")
	a.Set(1.5)

	if b := m.Get("x"); b != a {
		t.Fatal("Get must return the same pointer for a key")
	}
	assert.True(t, m.Has("x"))
	assert.False(t, m.Has("y"))
	assert.Equal(t, 1, m.Count())
}

func TestMetricMap_RangeSorted(t *testing.T) {
	m := NewMetricMap[AtomicString]()
	for _, k := range []string{"c", "a", "b"} {
		m.Get(k).Store(k)
	}

	var keys []string
	m.Range(func(k string, v *AtomicString) {
		keys = append(keys, k)
		assert.Equal(t, k, v.Load())
	})
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestAtomicFloat_ConcurrentAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 4000.0, f.Get())
}

func TestAtomicFloat_Max(t *testing.T) {
	var f AtomicFloat
	assert.Equal(t, 3.0, f.Max(3))
	assert.Equal(t, 3.0, f.Max(2))
	assert.Equal(t, 7.0, f.Max(7))
	assert.Equal(t, 7.0, f.Get())
}

func TestAtomicString_Truncates(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())

	s.Store("abcdefghijklmnopqrstuvwxyz0123")
	assert.Len(t, s.Load(), MaxStringLen)
}

func TestRegistry_String(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get(KeyGoals).Store(2)
	r.Ints.Get(KeyBounces).Add(3)
	r.Floats.Get(KeyMaxSpeed).Set(1.25)
	r.Strings.Get(KeyLevel).Store("demo")

	assert.Equal(t, "level=demo bounces=3 goals=2 max_speed=1.250", r.String())
	assert.Equal(t, 4, r.TotalCount())
}
