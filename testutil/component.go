package testutil

import (
	"context"

	"github.com/kbukum/devportal/component"
)

// TestComponent extends component.Component with the state controls tests
// need between cases.
type TestComponent interface {
	component.Component

	// Reset restores the component to its initial state.
	Reset(ctx context.Context) error

	// Snapshot captures the current state.
	Snapshot(ctx context.Context) (interface{}, error)

	// Restore returns to a state captured by Snapshot.
	Restore(ctx context.Context, snapshot interface{}) error
}
