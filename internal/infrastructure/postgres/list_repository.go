package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hszk-dev/mylist/internal/domain/model"
	"github.com/hszk-dev/mylist/internal/domain/repository"
	"github.com/hszk-dev/mylist/internal/infrastructure/metrics"
)

// DBTX is an interface that abstracts pgxpool.Pool and pgx.Tx for testability.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ListRepository implements repository.ListRepository using PostgreSQL.
type ListRepository struct {
	db DBTX
}

// NewListRepository creates a new ListRepository instance.
func NewListRepository(db DBTX) *ListRepository {
	return &ListRepository{db: db}
}

// Create persists a new membership row. The unique index on
// (user_id, content_id) is the authority on duplicates; a constraint
// violation maps to the same ErrAlreadyInList the pre-check uses, so a
// racing insert surfaces as the same conflict.
func (r *ListRepository) Create(ctx context.Context, item *model.ListItem) error {
	const query = `
		INSERT INTO my_list_items (id, user_id, content_id, content_type, added_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryInsert, metrics.TableListItems).Inc()

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.UserID,
		item.ContentID,
		item.ContentType.String(),
		item.AddedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrAlreadyInList
		}
		return fmt.Errorf("failed to create list item: %w", err)
	}

	return nil
}

// Exists reports whether a membership row exists for (user, content).
func (r *ListRepository) Exists(ctx context.Context, userID, contentID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM my_list_items WHERE user_id = $1 AND content_id = $2
		)
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableListItems).Inc()

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, contentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check list membership: %w", err)
	}

	return exists, nil
}

// FindPageByUser returns one page of a user's rows, most recently added
// first. seq is a bigserial that breaks added_at ties by insertion order.
func (r *ListRepository) FindPageByUser(ctx context.Context, userID string, offset, limit int) ([]*model.ListItem, error) {
	const query = `
		SELECT id, user_id, content_id, content_type, added_at
		FROM my_list_items
		WHERE user_id = $1
		ORDER BY added_at DESC, seq DESC
		LIMIT $2 OFFSET $3
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableListItems).Inc()

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query list page: %w", err)
	}
	defer rows.Close()

	items := make([]*model.ListItem, 0, limit)
	for rows.Next() {
		item, err := scanListItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan list item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating list items: %w", err)
	}

	return items, nil
}

// CountByUser returns the total number of rows for a user, unbounded by
// pagination.
func (r *ListRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM my_list_items WHERE user_id = $1`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQuerySelect, metrics.TableListItems).Inc()

	var total int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count list items: %w", err)
	}

	return total, nil
}

// Delete removes the row for (user, content) and returns it. The single
// DELETE ... RETURNING statement makes the find-and-delete atomic.
func (r *ListRepository) Delete(ctx context.Context, userID, contentID string) (*model.ListItem, error) {
	const query = `
		DELETE FROM my_list_items
		WHERE user_id = $1 AND content_id = $2
		RETURNING id, user_id, content_id, content_type, added_at
	`

	metrics.DBQueriesTotal.WithLabelValues(metrics.DBQueryDelete, metrics.TableListItems).Inc()

	item, err := scanListItem(r.db.QueryRow(ctx, query, userID, contentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to delete list item: %w", err)
	}

	return item, nil
}

// scanListItem scans a single row into a ListItem model.
func scanListItem(row pgx.Row) (*model.ListItem, error) {
	var (
		item        model.ListItem
		contentType string
	)

	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.ContentID,
		&contentType,
		&item.AddedAt,
	)
	if err != nil {
		return nil, err
	}

	item.ContentType = model.ContentType(contentType)
	return &item, nil
}

// Compile-time verification that ListRepository implements repository.ListRepository.
var _ repository.ListRepository = (*ListRepository)(nil)
