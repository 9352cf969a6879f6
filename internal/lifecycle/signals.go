package lifecycle

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Signal is a platform notification that state should be flushed.
type Signal int

const (
	// SignalHidden means the app went to the background.
	SignalHidden Signal = iota
	// SignalTerminating means the process is about to exit.
	SignalTerminating
)

func (s Signal) String() string {
	switch s {
	case SignalHidden:
		return "hidden"
	case SignalTerminating:
		return "terminating"
	}
	return "unknown"
}

// SignalSource delivers lifecycle signals to a handler until stopped.
type SignalSource interface {
	Notify(handler func(Signal)) (stop func())
}

// ManualSignals is a SignalSource driven by explicit Fire calls. Handlers run
// synchronously on the caller of Fire.
type ManualSignals struct {
	mu       sync.Mutex
	next     int
	handlers map[int]func(Signal)
}

// NewManualSignals returns a ManualSignals with no handlers.
func NewManualSignals() *ManualSignals {
	return &ManualSignals{handlers: map[int]func(Signal){}}
}

func (m *ManualSignals) Notify(handler func(Signal)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.next
	m.next++
	m.handlers[id] = handler
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.handlers, id)
	}
}

// Fire delivers sig to every attached handler.
func (m *ManualSignals) Fire(sig Signal) {
	m.mu.Lock()
	hs := make([]func(Signal), 0, len(m.handlers))
	for i := 0; i < m.next; i++ {
		if h, ok := m.handlers[i]; ok {
			hs = append(hs, h)
		}
	}
	m.mu.Unlock()

	for _, h := range hs {
		h(sig)
	}
}

// OSSignals maps process signals onto lifecycle signals: SIGHUP is treated as
// going to the background, SIGINT and SIGTERM as termination.
type OSSignals struct{}

func (OSSignals) Notify(handler func(Signal)) func() {
	ch := make(chan os.Signal, 4)
	signal.Notify(ch, syscall.SIGHUP, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			case s := <-ch:
				if s == syscall.SIGHUP {
					handler(SignalHidden)
				} else {
					handler(SignalTerminating)
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
			wg.Wait()
		})
	}
}
