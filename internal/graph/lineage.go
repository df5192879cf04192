package graph

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/leapstack-labs/leapframe/pkg/source"
)

// runState tracks a lineage's evaluation lifecycle.
type runState int

const (
	stateUnbuilt runState = iota
	stateRunning
	stateDone
)

// Lineage owns the row source, the node counter and the actions attached to
// any node reachable from its root. Exactly one lineage exists per root
// source node; every node created off the root shares it.
//
// Graph building needs no locking (nodes are immutable and branch-local);
// the mutex guards the action list and the evaluation pass.
type Lineage struct {
	mu      sync.Mutex
	src     source.Source
	logger  *slog.Logger
	nodeSeq int64
	state   runState
	failed  error
	actions []*Action
}

func (l *Lineage) nextNodeID() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nodeSeq++
	return l.nodeSeq
}

// Source returns the row source owned by this lineage.
func (l *Lineage) Source() source.Source {
	return l.src
}

// attach registers an action and returns it in pending state.
func (l *Lineage) attach(a *Action) *Action {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.actions = append(l.actions, a)
	return a
}

// run evaluates every pending action in one sequential pass over the source.
// Actions attached after a completed pass trigger a fresh pass over only the
// still-pending ones; already-computed results are never recomputed. Any
// failure poisons the lineage: all later dereferences return the recorded
// error.
func (l *Lineage) run(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.failed != nil {
		return l.failed
	}

	var pending []*Action
	for _, a := range l.actions {
		if !a.done {
			pending = append(pending, a)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	l.state = stateRunning
	if err := l.runPass(ctx, pending); err != nil {
		l.failed = fmt.Errorf("evaluation pass failed: %w", err)
		l.state = stateDone
		return l.failed
	}
	l.state = stateDone
	return nil
}
