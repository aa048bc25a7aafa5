package localcart

import (
	"context"
	"fmt"
)

// State tracks which store is authoritative for a session.
type State int

const (
	// StateAnonymous: only the local slot is authoritative.
	StateAnonymous State = iota
	// StateMerging: transient, entered exactly once per login event.
	StateMerging
	// StateAuthenticated: the server cart is authoritative; the local slot
	// mirrors it for display only.
	StateAuthenticated
)

// ServerCart is the slice of the shop API the merge needs.
// shopclient.Client satisfies it.
type ServerCart interface {
	AddDelta(ctx context.Context, itemID string, delta int) error
	Lines(ctx context.Context) (map[string]int, error)
}

// Merger reconciles the local slot into the server cart at the moment an
// anonymous session becomes authenticated.
type Merger struct {
	Store  *Store
	Server ServerCart

	state State
}

func NewMerger(store *Store, server ServerCart) *Merger {
	return &Merger{Store: store, Server: server, state: StateAnonymous}
}

func (m *Merger) State() State {
	return m.state
}

// Merge folds every local line into the server cart additively, so a
// pre-existing cart from an earlier session on the same account is
// combined rather than overwritten. It then overwrites the local slot with
// the authoritative server result, so the two stores agree.
//
// On any failure the local slot is left untouched and the session stays
// anonymous; rerunning the whole merge on the next login is safe as long
// as no individual add succeeded. A rerun after a partial success adds the
// already-merged lines again; see the package tests for the exact
// semantics callers must account for.
func (m *Merger) Merge(ctx context.Context) error {
	if m.state == StateAuthenticated {
		return nil
	}
	m.state = StateMerging

	local := m.Store.Read()
	for itemID, qty := range local {
		if err := m.Server.AddDelta(ctx, itemID, qty); err != nil {
			m.state = StateAnonymous
			return fmt.Errorf("merge add %s: %w", itemID, err)
		}
	}

	merged, err := m.Server.Lines(ctx)
	if err != nil {
		m.state = StateAnonymous
		return fmt.Errorf("merge fetch: %w", err)
	}
	if err := m.Store.Write(merged); err != nil {
		m.state = StateAnonymous
		return fmt.Errorf("merge write-back: %w", err)
	}

	m.state = StateAuthenticated
	return nil
}
