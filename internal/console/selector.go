package console

import (
	"fmt"
	"sync"
)

// Selector holds the active panel
type Selector struct {
	mu      sync.RWMutex
	current Panel
}

// NewSelector creates a selector on the Dashboard
func NewSelector() *Selector {
	return &Selector{current: Dashboard}
}

// Select makes p the active panel
func (s *Selector) Select(p Panel) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownPanel, int(p))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = p
	return nil
}

// Current returns the active panel
func (s *Selector) Current() Panel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Next activates the following panel, wrapping around
func (s *Selector) Next() Panel {
	return s.shift(1)
}

// Prev activates the preceding panel, wrapping around
func (s *Selector) Prev() Panel {
	return s.shift(-1)
}

func (s *Selector) shift(delta int) Panel {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(panels)
	s.current = Panel((int(s.current) + delta + n) % n)
	return s.current
}
