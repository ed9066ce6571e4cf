// Package optimistic applies a local state change before the remote
// operation that confirms it, and restores the captured state if the remote
// operation fails.
package optimistic

import "context"

// Mutation describes one optimistic update over a snapshot of type S.
//
// Apply captures the pre-state and applies the speculative change in one
// step, returning the captured snapshot and whether anything was applied.
// Commit performs the remote operation. Rollback restores the snapshot
// verbatim and is only called when Commit fails.
type Mutation[S any] struct {
	Apply    func() (S, bool)
	Commit   func(ctx context.Context) error
	Rollback func(S)
}

// Do runs m. It returns false without calling Commit when Apply reported
// nothing to do, and the Commit error after rolling back on failure.
func Do[S any](ctx context.Context, m Mutation[S]) (bool, error) {
	snapshot, ok := m.Apply()
	if !ok {
		return false, nil
	}

	if err := m.Commit(ctx); err != nil {
		m.Rollback(snapshot)
		return true, err
	}

	return true, nil
}
