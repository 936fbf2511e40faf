package console

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/yildizm/rhea/internal/ai"
	"github.com/yildizm/rhea/internal/logger"
)

// Dispatcher forwards commands to a provider and records one echo line and
// one outcome line per accepted command. At most one dispatch is in flight.
type Dispatcher struct {
	provider   ai.Provider
	store      *LogStore
	profiles   atomic.Pointer[ProfileSet]
	sem        *semaphore.Weighted
	processing atomic.Bool
	log        *logger.Logger
	newID      func() string
}

// NewDispatcher creates a dispatcher writing to store
func NewDispatcher(provider ai.Provider, store *LogStore, profiles ProfileSet, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	d := &Dispatcher{
		provider: provider,
		store:    store,
		sem:      semaphore.NewWeighted(1),
		log:      log.WithComponent("dispatcher"),
		newID:    uuid.NewString,
	}
	d.profiles.Store(&profiles)
	return d
}

// Processing reports whether a dispatch is outstanding
func (d *Dispatcher) Processing() bool {
	return d.processing.Load()
}

// Profiles returns the active profile set
func (d *Dispatcher) Profiles() ProfileSet {
	return *d.profiles.Load()
}

// SetProfiles replaces the profile set for subsequent dispatches
func (d *Dispatcher) SetProfiles(profiles ProfileSet) {
	d.profiles.Store(&profiles)
}

// Dispatch sends command using the profile chosen by panel. Provider errors
// become a Failure outcome and are never returned; the returned error is only
// set when the command was rejected before anything was logged.
func (d *Dispatcher) Dispatch(ctx context.Context, command string, panel Panel) (Outcome, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return Outcome{}, ErrEmptyCommand
	}
	if !panel.Valid() {
		return Outcome{}, ErrUnknownPanel
	}
	if !d.sem.TryAcquire(1) {
		d.log.Debug("rejected %q: dispatch in flight", command)
		return Outcome{}, ErrBusy
	}
	d.processing.Store(true)
	defer func() {
		d.processing.Store(false)
		d.sem.Release(1)
	}()

	d.store.Add(EchoEntry(command))

	profile := d.Profiles().ForPanel(panel)
	req := profile.Request(command, panel)
	req.RequestID = d.newID()

	start := time.Now()
	outcome := d.complete(ctx, req)
	outcome.RequestID = req.RequestID
	d.store.Add(outcome.Entry())

	fields := []logger.Field{
		logger.F("request_id", req.RequestID),
		logger.F("panel", panel.Code()),
		logger.F("profile", string(profile.Kind)),
		logger.F("model", profile.Model),
		logger.Duration(time.Since(start)),
		logger.F("outcome", outcome.Kind.String()),
	}
	if outcome.Kind == Failure {
		d.log.WarnWithFields("dispatch failed: %s", fields, outcome.Text)
	} else {
		d.log.InfoWithFields("dispatch complete", fields)
	}

	return outcome, nil
}

func (d *Dispatcher) complete(ctx context.Context, req *ai.CompletionRequest) Outcome {
	if d.provider == nil {
		return Outcome{Kind: Failure, Text: "no provider configured"}
	}

	resp, err := d.provider.Complete(ctx, req)
	if err != nil {
		return Outcome{Kind: Failure, Text: err.Error()}
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return Outcome{Kind: Success, Text: string(NoResponseLine)}
	}
	return Outcome{Kind: Success, Text: resp.Content}
}
