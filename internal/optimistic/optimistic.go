// Package optimistic centralizes the apply-call-revert pattern used for
// optimistic UI updates: mutate local state first, run the remote call,
// undo the mutation when the call fails.
package optimistic

import (
	"context"
)

// Run applies the local mutation, runs the remote call, and reverts on
// failure. The call's error is returned unchanged so callers can still
// inspect it.
func Run(ctx context.Context, apply func(), call func(ctx context.Context) error, revert func()) error {
	apply()
	if err := call(ctx); err != nil {
		revert()
		return err
	}
	return nil
}

// Toggle flips a boolean optimistically (like/save flows). set is invoked
// with the flipped value before the call and with the original value again
// when the call fails. The settled value is returned either way.
func Toggle(ctx context.Context, current bool, set func(bool), call func(ctx context.Context, next bool) error) (bool, error) {
	next := !current
	set(next)
	if err := call(ctx, next); err != nil {
		set(current)
		return current, err
	}
	return next, nil
}
