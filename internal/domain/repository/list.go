package repository

import (
	"context"

	"github.com/hszk-dev/mylist/internal/domain/model"
)

// ListRepository defines persistence for My List membership rows.
// Implementations should be provided by the infrastructure layer (e.g., PostgreSQL).
type ListRepository interface {
	// Create persists a new membership row.
	// Returns ErrAlreadyInList if a row for (user, content) already exists.
	Create(ctx context.Context, item *model.ListItem) error

	// Exists reports whether a membership row exists for (user, content).
	Exists(ctx context.Context, userID, contentID string) (bool, error)

	// FindPageByUser returns one page of a user's rows, most recently added
	// first, ties broken by insertion order. Returns an empty slice past the
	// end of the list.
	FindPageByUser(ctx context.Context, userID string, offset, limit int) ([]*model.ListItem, error)

	// CountByUser returns the total number of rows for a user.
	CountByUser(ctx context.Context, userID string) (int, error)

	// Delete atomically finds and removes the row for (user, content),
	// returning the deleted row. Returns ErrItemNotFound if no row exists.
	Delete(ctx context.Context, userID, contentID string) (*model.ListItem, error)
}
