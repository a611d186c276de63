package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// TickFunc runs one fixed tick, returning false to stop the scheduler
type TickFunc func() bool

// ClockScheduler runs game logic on a fixed tick
// A single goroutine owns every call to the tick function, so ticks never overlap or reenter
type ClockScheduler struct {
	tickInterval time.Duration
	tick         TickFunc

	// Tick counter for debugging and metrics
	tickCount atomic.Uint64

	// Control channels
	stopChan chan struct{}
	doneChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	started  atomic.Bool

	mu           sync.Mutex
	crashHandler func(any)
}

// NewClockScheduler creates a new clock scheduler with specified tick interval
func NewClockScheduler(tickInterval time.Duration, tick TickFunc) *ClockScheduler {
	if tickInterval <= 0 {
		tickInterval = time.Second / 60
	}
	return &ClockScheduler{
		tickInterval: tickInterval,
		tick:         tick,
		stopChan:     make(chan struct{}),
		doneChan:     make(chan struct{}),
	}
}

// SetCrashHandler installs the panic handler for the scheduler goroutine, must be called before Start()
// Without a handler a panicking tick stops the loop and the panic is dropped
func (cs *ClockScheduler) SetCrashHandler(fn func(any)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.crashHandler = fn
}

// Start begins the scheduler loop; a scheduler runs at most once, later calls are no-ops
func (cs *ClockScheduler) Start() {
	if cs.started.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		go cs.schedulerLoop()
	}
}

// Stop halts the scheduler loop and waits for an in-flight tick to finish
// Must not be called from the tick function; return false there instead
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		close(cs.stopChan)
	})
	cs.wg.Wait()
}

// Done is closed when the loop exits for any reason
func (cs *ClockScheduler) Done() <-chan struct{} {
	return cs.doneChan
}

// TickCount returns ticks executed so far
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// TickInterval returns the fixed tick period
func (cs *ClockScheduler) TickInterval() time.Duration {
	return cs.tickInterval
}

func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()
	defer close(cs.doneChan)

	ticker := time.NewTicker(cs.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		case <-ticker.C:
			// Stop wins over a simultaneously ready tick
			select {
			case <-cs.stopChan:
				return
			default:
			}
			if !cs.runTick() {
				return
			}
		}
	}
}

// runTick executes one tick with panic recovery
func (cs *ClockScheduler) runTick() (cont bool) {
	defer func() {
		if r := recover(); r != nil {
			cont = false
			cs.mu.Lock()
			handler := cs.crashHandler
			cs.mu.Unlock()
			if handler != nil {
				handler(r)
			}
		}
	}()

	cont = cs.tick()
	cs.tickCount.Add(1)
	return cont
}
