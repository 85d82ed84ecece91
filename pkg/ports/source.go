package ports

import (
	"context"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// SnapshotSource delivers captured UI trees, one per observed UI change.
// The channel is closed when the source is exhausted or the context ends.
type SnapshotSource interface {
	Snapshots(ctx context.Context) (<-chan *domain.Node, error)
}
