package ports

import (
	"context"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// StateStore persists the current session state so a restarted process can
// recover mid-session. There is exactly one live state; key is a fixed slot
// name chosen by the host.
type StateStore interface {
	// Save persists the state under the given slot.
	Save(ctx context.Context, slot string, state domain.State) error

	// Load retrieves the state for a slot.
	// Returns domain.ErrSessionNotFound if nothing is persisted.
	Load(ctx context.Context, slot string) (domain.State, error)

	// Delete removes the persisted state for a slot.
	Delete(ctx context.Context, slot string) error
}
