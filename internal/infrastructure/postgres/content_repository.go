package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hszk-dev/mylist/internal/domain/model"
	"github.com/hszk-dev/mylist/internal/domain/repository"
	"github.com/hszk-dev/mylist/internal/infrastructure/metrics"
)

// ContentRepository implements repository.ContentRepository over the
// contents table. Rows are type-discriminated; episodes are stored as JSONB.
type ContentRepository struct {
	db DBTX
}

// NewContentRepository creates a new ContentRepository instance.
func NewContentRepository(db DBTX) *ContentRepository {
	return &ContentRepository{db: db}
}

// Exists reports whether a record of the given type exists for id.
func (r *ContentRepository) Exists(ctx context.Context, id string, contentType model.ContentType) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM contents WHERE id = $1 AND type = $2
		)
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableContents).Inc()

	var exists bool
	if err := r.db.QueryRow(ctx, query, id, contentType.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check content existence: %w", err)
	}

	return exists, nil
}

// FindMoviesByIDs returns the movie records matching ids.
func (r *ContentRepository) FindMoviesByIDs(ctx context.Context, ids []string) ([]*model.Content, error) {
	return r.findByIDs(ctx, ids, model.ContentTypeMovie)
}

// FindTVShowsByIDs returns the TV show records matching ids.
func (r *ContentRepository) FindTVShowsByIDs(ctx context.Context, ids []string) ([]*model.Content, error) {
	return r.findByIDs(ctx, ids, model.ContentTypeTVShow)
}

func (r *ContentRepository) findByIDs(ctx context.Context, ids []string, contentType model.ContentType) ([]*model.Content, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const query = `
		SELECT id, type, title, description, genres, release_date, director, actors, episodes, poster_key
		FROM contents
		WHERE type = $1 AND id = ANY($2)
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableContents).Inc()

	rows, err := r.db.Query(ctx, query, contentType.String(), ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query contents: %w", err)
	}
	defer rows.Close()

	contents := make([]*model.Content, 0, len(ids))
	for rows.Next() {
		content, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		contents = append(contents, content)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contents: %w", err)
	}

	return contents, nil
}

// scanContent scans a single row into a Content model.
func scanContent(row pgx.Row) (*model.Content, error) {
	var (
		content     model.Content
		contentType string
		director    *string
		episodes    []byte
		posterKey   *string
	)

	err := row.Scan(
		&content.ID,
		&contentType,
		&content.Title,
		&content.Description,
		&content.Genres,
		&content.ReleaseDate,
		&director,
		&content.Actors,
		&episodes,
		&posterKey,
	)
	if err != nil {
		return nil, err
	}

	content.Type = model.ContentType(contentType)
	if director != nil {
		content.Director = *director
	}
	if posterKey != nil {
		content.PosterKey = *posterKey
	}
	if len(episodes) > 0 {
		if err := json.Unmarshal(episodes, &content.Episodes); err != nil {
			return nil, fmt.Errorf("decode episodes: %w", err)
		}
	}

	return &content, nil
}

// Compile-time verification that ContentRepository implements repository.ContentRepository.
var _ repository.ContentRepository = (*ContentRepository)(nil)
