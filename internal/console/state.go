package console

import (
	"context"
	"math/rand/v2"

	"github.com/yildizm/rhea/internal/ai"
	"github.com/yildizm/rhea/internal/logger"
)

// State is everything the console shows: log, active panel, agents, gauge,
// and the dispatcher that feeds the log
type State struct {
	Logs       *LogStore
	Selector   *Selector
	Agents     []Agent
	Gauge      *Gauge
	Dispatcher *Dispatcher
}

type stateOptions struct {
	log       *logger.Logger
	bootLines bool
	rng       *rand.Rand
}

// Option configures NewState
type Option func(*stateOptions)

// WithLogger sets the diagnostic logger
func WithLogger(log *logger.Logger) Option {
	return func(o *stateOptions) { o.log = log }
}

// WithBootLines controls whether the log starts with the boot sequence
func WithBootLines(enabled bool) Option {
	return func(o *stateOptions) { o.bootLines = enabled }
}

// WithRand sets the gauge's random source
func WithRand(rng *rand.Rand) Option {
	return func(o *stateOptions) { o.rng = rng }
}

// NewState builds a fresh console around provider
func NewState(provider ai.Provider, profiles ProfileSet, opts ...Option) *State {
	o := stateOptions{bootLines: true}
	for _, opt := range opts {
		opt(&o)
	}

	var logs *LogStore
	if o.bootLines {
		logs = NewLogStore(BootLines...)
	} else {
		logs = NewLogStore()
	}

	return &State{
		Logs:       logs,
		Selector:   NewSelector(),
		Agents:     DefaultAgents(),
		Gauge:      NewGauge(o.rng),
		Dispatcher: NewDispatcher(provider, logs, profiles, o.log),
	}
}

// Submit dispatches command from the active panel
func (s *State) Submit(ctx context.Context, command string) (Outcome, error) {
	return s.Dispatcher.Dispatch(ctx, command, s.Selector.Current())
}
