// Package fallback decides, per remote dependency, whether a call goes to
// the remote service or to the local heuristics.
//
// A Gate starts Uninitialized, moves to ProbePending while its one-shot
// availability probe runs, and settles in RemoteEnabled or RemoteDisabled.
// The zero Policy never re-probes and never disables remote after a failed
// call: a failed call is answered locally and the next call tries remote again.
package fallback

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// ErrRemoteDisabled is reported by gates that have no remote configured
var ErrRemoteDisabled = errors.New("remote not configured")

// State of a Gate
type State int

const (
	StateUninitialized State = iota
	StateProbePending
	StateRemoteEnabled
	StateRemoteDisabled
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateProbePending:
		return "probe_pending"
	case StateRemoteEnabled:
		return "remote_enabled"
	case StateRemoteDisabled:
		return "remote_disabled"
	default:
		return "unknown"
	}
}

// Source identifies which path produced a result
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// ProbeFunc reports whether the remote is usable. nil error means available.
type ProbeFunc func(ctx context.Context) error

// Policy controls re-probing. The zero value is one probe per process.
type Policy struct {
	// ReprobeInterval lets a disabled gate probe again once this much time
	// has passed since the last probe. Zero disables re-probing.
	ReprobeInterval time.Duration
	// FailureThreshold disables remote after this many consecutive failed
	// calls. Zero keeps remote enabled regardless of call failures.
	FailureThreshold int
}

// Gate is the availability state machine for one remote dependency
type Gate struct {
	name   string
	probe  ProbeFunc
	policy Policy
	now    func() time.Time

	mu        sync.Mutex
	state     State
	pending   chan struct{}
	lastProbe time.Time
	failures  int
	lastErr   error
}

// NewGate creates a gate. A nil probe leaves the gate permanently local
// unless re-probing is configured.
func NewGate(name string, probe ProbeFunc, policy Policy) *Gate {
	if probe == nil {
		probe = func(context.Context) error { return ErrRemoteDisabled }
	}
	return &Gate{
		name:   name,
		probe:  probe,
		policy: policy,
		now:    time.Now,
	}
}

// Name of the remote this gate guards
func (g *Gate) Name() string {
	return g.name
}

// State returns the current state without probing
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Status is a point-in-time view of a gate
type Status struct {
	Name      string    `json:"name"`
	State     string    `json:"state"`
	LastProbe time.Time `json:"last_probe,omitempty"`
	Failures  int       `json:"consecutive_failures"`
	LastError string    `json:"last_error,omitempty"`
}

// Status reports the gate state for health endpoints
func (g *Gate) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()

	status := Status{
		Name:      g.name,
		State:     g.state.String(),
		LastProbe: g.lastProbe,
		Failures:  g.failures,
	}
	if g.lastErr != nil {
		status.LastError = g.lastErr.Error()
	}
	return status
}

// Probe runs the availability probe when none has run yet or a re-probe is
// due, and returns the resulting state. Callers arriving while a probe is in
// flight wait for it, bounded by their own context.
func (g *Gate) Probe(ctx context.Context) State {
	g.mu.Lock()

	if g.state == StateProbePending {
		pending := g.pending
		g.mu.Unlock()

		select {
		case <-pending:
			return g.State()
		case <-ctx.Done():
			return StateProbePending
		}
	}

	if g.state != StateUninitialized && !g.reprobeDueLocked() {
		state := g.state
		g.mu.Unlock()
		return state
	}

	g.state = StateProbePending
	g.pending = make(chan struct{})
	pending := g.pending
	g.mu.Unlock()

	// The probe outlives a cancelled caller so one impatient request
	// cannot disable the remote for everyone.
	err := g.probe(context.WithoutCancel(ctx))

	g.mu.Lock()
	g.lastProbe = g.now()
	g.failures = 0
	g.lastErr = err
	if err == nil {
		g.state = StateRemoteEnabled
	} else {
		g.state = StateRemoteDisabled
	}
	state := g.state
	close(pending)
	g.mu.Unlock()

	recordGateState(g.name, state)
	if err != nil {
		log.Info("remote unavailable, using local analysis", "remote", g.name, "err", err)
	} else {
		log.Info("remote available", "remote", g.name)
	}

	return state
}

// Reprobe forgets the current verdict and probes again
func (g *Gate) Reprobe(ctx context.Context) State {
	g.mu.Lock()
	if g.state != StateProbePending {
		g.state = StateUninitialized
	}
	g.mu.Unlock()

	return g.Probe(ctx)
}

func (g *Gate) reprobeDueLocked() bool {
	return g.state == StateRemoteDisabled &&
		g.policy.ReprobeInterval > 0 &&
		g.now().Sub(g.lastProbe) >= g.policy.ReprobeInterval
}

func (g *Gate) recordSuccess() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failures = 0
}

func (g *Gate) recordFailure(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.failures++
	g.lastErr = err
	if g.policy.FailureThreshold > 0 && g.failures >= g.policy.FailureThreshold && g.state == StateRemoteEnabled {
		g.state = StateRemoteDisabled
		g.lastProbe = g.now()
		recordGateState(g.name, g.state)
		log.Warn("remote disabled after repeated failures", "remote", g.name, "failures", g.failures)
	}
}

// Do answers a call from remote when the gate allows it, and from local
// otherwise. A failed remote call is not retried; local answers instead.
// When ctx ends during the remote call, Do returns ctx's error without
// counting a failure or running local.
func Do[T any](ctx context.Context, g *Gate, remote func(context.Context) (T, error), local func() (T, error)) (T, Source, error) {
	if g != nil && remote != nil && g.Probe(ctx) == StateRemoteEnabled {
		result, err := remote(ctx)
		if err == nil {
			g.recordSuccess()
			recordCall(g.name, SourceRemote)
			return result, SourceRemote, nil
		}

		// A caller that gave up says nothing about the remote's health
		if ctxErr := ctx.Err(); ctxErr != nil {
			var zero T
			return zero, SourceRemote, ctxErr
		}

		g.recordFailure(err)
		recordRemoteFailure(g.name)
		log.Warn("remote call failed, falling back to local", "remote", g.name, "err", err)
	}

	result, err := local()
	if g != nil {
		recordCall(g.name, SourceLocal)
	}
	return result, SourceLocal, err
}
