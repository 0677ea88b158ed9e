package ports

import (
	"context"

	"github.com/axthosarouris/nva-publication-api-sub001/domain/publication"
)

// EntityChange carries the before/after images of a successful
// mutation. Before is nil on creation, After is nil on deletion.
type EntityChange struct {
	Before publication.Entity
	After  publication.Entity
}

// ChangePublisher hands entity change images to downstream fan-out.
// Exactly one change is published per successful mutating repository
// call.
type ChangePublisher interface {
	PublishChange(ctx context.Context, change EntityChange) error
}
