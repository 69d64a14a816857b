package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/hszk-dev/mylist/internal/domain/model"
	"github.com/hszk-dev/mylist/internal/domain/repository"
	"github.com/hszk-dev/mylist/internal/infrastructure/cache"
	"github.com/hszk-dev/mylist/internal/infrastructure/metrics"
)

// AddItemInput contains the input parameters for adding a list item.
type AddItemInput struct {
	UserID      string
	ContentID   string
	ContentType model.ContentType
}

// GetItemsInput contains the raw, unclamped paging parameters as requested
// by the caller.
type GetItemsInput struct {
	UserID string
	Page   int
	Limit  int
}

// GetItemsOutput contains one page of the user's list and whether it was
// served from cache.
type GetItemsOutput struct {
	Page   *model.ListPage
	Cached bool
}

// MyListService defines the business logic for My List operations.
type MyListService interface {
	// AddItem adds content to the user's list and invalidates every cached
	// page of that list.
	AddItem(ctx context.Context, input AddItemInput) (*model.ListItem, error)

	// RemoveItem removes content from the user's list and invalidates every
	// cached page of that list.
	RemoveItem(ctx context.Context, userID, contentID string) error

	// GetItems returns one page of the user's list, cache-aside: a cached
	// page is returned verbatim, a miss computes, caches, and returns fresh.
	GetItems(ctx context.Context, input GetItemsInput) (*GetItemsOutput, error)
}

// MyListServiceConfig holds configuration for MyListService.
type MyListServiceConfig struct {
	// FirstPageTTL applies to page 1. First pages are re-requested most
	// often and soonest after a mutation, so they cache longer. This is a
	// tuning choice, not a correctness rule.
	FirstPageTTL time.Duration
	// OtherPageTTL applies to every other page.
	OtherPageTTL time.Duration
	// DefaultLimit is used when no limit is requested.
	DefaultLimit int
	// MaxLimit caps the per-page query and join cost.
	MaxLimit int
	// PosterURLExpiry bounds the lifetime of presigned poster URLs.
	PosterURLExpiry time.Duration
}

// DefaultMyListServiceConfig returns the default configuration.
func DefaultMyListServiceConfig() MyListServiceConfig {
	return MyListServiceConfig{
		FirstPageTTL:    60 * time.Second,
		OtherPageTTL:    30 * time.Second,
		DefaultLimit:    20,
		MaxLimit:        50,
		PosterURLExpiry: 15 * time.Minute,
	}
}

type myListService struct {
	items    repository.ListRepository
	contents repository.ContentRepository
	cache    cache.ListCache
	events   repository.ListEventPublisher
	artwork  repository.ArtworkStorage
	sfGroup  singleflight.Group

	cfg MyListServiceConfig
}

// NewMyListService creates a new MyListService instance.
// events and artwork are optional; pass nil to disable event publishing or
// poster URL enrichment.
func NewMyListService(
	items repository.ListRepository,
	contents repository.ContentRepository,
	listCache cache.ListCache,
	events repository.ListEventPublisher,
	artwork repository.ArtworkStorage,
	cfg MyListServiceConfig,
) MyListService {
	return &myListService{
		items:    items,
		contents: contents,
		cache:    listCache,
		events:   events,
		artwork:  artwork,
		cfg:      cfg,
	}
}

// AddItem verifies the content exists and is not yet listed, persists the
// membership row, then invalidates the user's cached pages.
func (s *myListService) AddItem(ctx context.Context, input AddItemInput) (*model.ListItem, error) {
	item, err := model.NewListItem(input.UserID, input.ContentID, input.ContentType)
	if err != nil {
		return nil, err
	}

	exists, err := s.contents.Exists(ctx, input.ContentID, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("check content existence: %w", err)
	}
	if !exists {
		return nil, repository.ErrContentNotFound
	}

	listed, err := s.items.Exists(ctx, input.UserID, input.ContentID)
	if err != nil {
		return nil, fmt.Errorf("check list membership: %w", err)
	}
	if listed {
		return nil, repository.ErrAlreadyInList
	}

	// The store's uniqueness constraint backstops the check above; a racing
	// insert surfaces the same ErrAlreadyInList.
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}

	if err := s.invalidateUser(ctx, input.UserID); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, repository.ListEventAdded, item)

	return item, nil
}

// RemoveItem deletes the membership row, then invalidates the user's cached
// pages.
func (s *myListService) RemoveItem(ctx context.Context, userID, contentID string) error {
	item, err := s.items.Delete(ctx, userID, contentID)
	if err != nil {
		return err
	}

	if err := s.invalidateUser(ctx, userID); err != nil {
		return err
	}

	s.publishEvent(ctx, repository.ListEventRemoved, item)

	return nil
}

// invalidateUser drops every cached page for the user. It runs strictly
// after the store mutation commits: a reader between commit and invalidation
// recomputes fresh data, which is safe, while the reverse order could
// repopulate the cache with pre-mutation pages. A failure here means the
// caller cannot be guaranteed a fresh next read, so it fails the request.
func (s *myListService) invalidateUser(ctx context.Context, userID string) error {
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		return fmt.Errorf("invalidate list cache: %w", err)
	}
	return nil
}

// GetItems retrieves one page of the user's list with caching.
// Uses singleflight to prevent cache stampede on concurrent requests for the
// same (user, page, limit).
func (s *myListService) GetItems(ctx context.Context, input GetItemsInput) (*GetItemsOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	key := cache.BuildListKey(input.UserID, page, limit)

	result, err, shared := s.sfGroup.Do(key, func() (any, error) {
		return s.getPageWithCache(ctx, key, input.UserID, page, limit)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}

	return s.withPosterURLs(ctx, result.(*GetItemsOutput)), nil
}

// getPageWithCache implements the cache-aside pattern: read through on miss,
// populate with a page-dependent TTL.
func (s *myListService) getPageWithCache(ctx context.Context, key, userID string, page, limit int) (*GetItemsOutput, error) {
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		// The store is the source of truth; a cache read failure must not
		// mask an otherwise-computable page.
		slog.Warn("cache get failed, falling back to store",
			"key", key,
			"error", err,
		)
	}
	if cached != nil {
		return &GetItemsOutput{Page: cached, Cached: true}, nil
	}

	fresh, err := s.computePage(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}

	ttl := s.cfg.OtherPageTTL
	if page == 1 {
		ttl = s.cfg.FirstPageTTL
	}
	if err := s.cache.Set(ctx, key, fresh, ttl); err != nil {
		slog.Warn("failed to cache list page",
			"key", key,
			"error", err,
		)
	}

	return &GetItemsOutput{Page: fresh, Cached: false}, nil
}

// computePage runs the paginated membership query and enriches the rows with
// catalog records. Movie and TV show lookups are independent and run
// concurrently; either failing fails the whole page rather than returning
// partially-enriched data.
func (s *myListService) computePage(ctx context.Context, userID string, page, limit int) (*model.ListPage, error) {
	offset := (page - 1) * limit

	items, err := s.items.FindPageByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("query list page: %w", err)
	}

	total, err := s.items.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count list items: %w", err)
	}

	var movieIDs, showIDs []string
	for _, item := range items {
		switch item.ContentType {
		case model.ContentTypeMovie:
			movieIDs = append(movieIDs, item.ContentID)
		case model.ContentTypeTVShow:
			showIDs = append(showIDs, item.ContentID)
		}
	}

	var movies, shows []*model.Content
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movies, err = s.contents.FindMoviesByIDs(gctx, movieIDs)
		if err != nil {
			return fmt.Errorf("fetch movies: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		shows, err = s.contents.FindTVShowsByIDs(gctx, showIDs)
		if err != nil {
			return fmt.Errorf("fetch tv shows: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	movieByID := make(map[string]*model.Content, len(movies))
	for _, m := range movies {
		movieByID[m.ID] = m
	}
	showByID := make(map[string]*model.Content, len(shows))
	for _, t := range shows {
		showByID[t.ID] = t
	}

	// Join by the row's own declared type. A missing record (content deleted
	// after being listed) leaves Content nil; the entry is still returned.
	entries := make([]model.ListEntry, 0, len(items))
	for _, item := range items {
		var content *model.Content
		switch item.ContentType {
		case model.ContentTypeMovie:
			content = movieByID[item.ContentID]
		case model.ContentTypeTVShow:
			content = showByID[item.ContentID]
		}

		entries = append(entries, model.ListEntry{
			ID:          item.ID.String(),
			ContentID:   item.ContentID,
			ContentType: item.ContentType,
			AddedAt:     item.AddedAt,
			Content:     content,
		})
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &model.ListPage{
		Entries: entries,
		Pagination: model.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// withPosterURLs attaches short-lived presigned artwork URLs. Entries are
// copied so cached pages and results shared through singleflight are never
// mutated; a presigning failure skips the URL rather than failing the
// request.
func (s *myListService) withPosterURLs(ctx context.Context, out *GetItemsOutput) *GetItemsOutput {
	if s.artwork == nil {
		return out
	}

	entries := make([]model.ListEntry, len(out.Page.Entries))
	copy(entries, out.Page.Entries)
	for i := range entries {
		if entries[i].Content == nil || entries[i].Content.PosterKey == "" {
			continue
		}

		posterURL, err := s.artwork.PresignedPosterURL(ctx, entries[i].Content.PosterKey, s.cfg.PosterURLExpiry)
		if err != nil {
			slog.Warn("failed to presign poster URL",
				"content_id", entries[i].ContentID,
				"error", err,
			)
			continue
		}
		entries[i].PosterURL = posterURL
	}

	return &GetItemsOutput{
		Page: &model.ListPage{
			Entries:    entries,
			Pagination: out.Page.Pagination,
		},
		Cached: out.Cached,
	}
}

// publishEvent emits a list activity event. Publishing is best-effort; a
// broker failure never fails a mutation that already committed.
func (s *myListService) publishEvent(ctx context.Context, action repository.ListEventAction, item *model.ListItem) {
	if s.events == nil {
		return
	}

	event := repository.ListEvent{
		UserID:      item.UserID,
		ContentID:   item.ContentID,
		ContentType: item.ContentType.String(),
		Action:      action,
		OccurredAt:  time.Now(),
	}

	if err := s.events.PublishListEvent(ctx, event); err != nil {
		slog.Warn("failed to publish list event",
			"action", string(action),
			"user_id", item.UserID,
			"content_id", item.ContentID,
			"error", err,
		)
	}
}
