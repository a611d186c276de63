package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metric keys written by the game
const (
	KeyLaunches   = "launches"
	KeyTicks      = "ticks"
	KeyBounces    = "bounces"
	KeyGoals      = "goals"
	KeyResets     = "resets"
	KeyReloads    = "reloads"
	KeyLastImpact = "last_impact"
	KeyMaxSpeed   = "max_speed"
	KeyLevel      = "level"
)

// Registry groups session metrics by value type
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of registered metrics
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// String renders all metrics as space-separated key=value pairs
// Strings first, then ints, then floats, each group in key order
func (r *Registry) String() string {
	var b strings.Builder
	sep := func() {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
	}
	r.Strings.Range(func(k string, v *AtomicString) {
		sep()
		fmt.Fprintf(&b, "%s=%s", k, v.Load())
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		sep()
		fmt.Fprintf(&b, "%s=%d", k, v.Load())
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		sep()
		fmt.Fprintf(&b, "%s=%.3f", k, v.Get())
	})
	return b.String()
}
