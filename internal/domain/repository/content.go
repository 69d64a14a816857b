package repository

import (
	"context"

	"github.com/hszk-dev/mylist/internal/domain/model"
)

// ContentRepository defines read access to the content catalog.
// The catalog is owned elsewhere; this service never writes to it.
type ContentRepository interface {
	// Exists reports whether a record of the given type exists for id.
	Exists(ctx context.Context, id string, contentType model.ContentType) (bool, error)

	// FindMoviesByIDs returns the movie records matching ids.
	// Unknown ids are simply absent from the result.
	FindMoviesByIDs(ctx context.Context, ids []string) ([]*model.Content, error)

	// FindTVShowsByIDs returns the TV show records matching ids.
	// Unknown ids are simply absent from the result.
	FindTVShowsByIDs(ctx context.Context, ids []string) ([]*model.Content, error)
}
