package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/hszk-dev/mylist/internal/domain/model"
	"github.com/hszk-dev/mylist/internal/domain/repository"
)

// mockListRepository provides a configurable mock for ListRepository.
type mockListRepository struct {
	createFn         func(ctx context.Context, item *model.ListItem) error
	existsFn         func(ctx context.Context, userID, contentID string) (bool, error)
	findPageByUserFn func(ctx context.Context, userID string, offset, limit int) ([]*model.ListItem, error)
	countByUserFn    func(ctx context.Context, userID string) (int, error)
	deleteFn         func(ctx context.Context, userID, contentID string) (*model.ListItem, error)
}

func (m *mockListRepository) Create(ctx context.Context, item *model.ListItem) error {
	if m.createFn != nil {
		return m.createFn(ctx, item)
	}
	return nil
}

func (m *mockListRepository) Exists(ctx context.Context, userID, contentID string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, userID, contentID)
	}
	return false, nil
}

func (m *mockListRepository) FindPageByUser(ctx context.Context, userID string, offset, limit int) ([]*model.ListItem, error) {
	if m.findPageByUserFn != nil {
		return m.findPageByUserFn(ctx, userID, offset, limit)
	}
	return nil, nil
}

func (m *mockListRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	if m.countByUserFn != nil {
		return m.countByUserFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockListRepository) Delete(ctx context.Context, userID, contentID string) (*model.ListItem, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, contentID)
	}
	return nil, repository.ErrItemNotFound
}

// mockContentRepository provides a configurable mock for ContentRepository.
type mockContentRepository struct {
	existsFn          func(ctx context.Context, id string, contentType model.ContentType) (bool, error)
	findMoviesByIDsFn func(ctx context.Context, ids []string) ([]*model.Content, error)
	findShowsByIDsFn  func(ctx context.Context, ids []string) ([]*model.Content, error)
}

func (m *mockContentRepository) Exists(ctx context.Context, id string, contentType model.ContentType) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id, contentType)
	}
	return true, nil
}

func (m *mockContentRepository) FindMoviesByIDs(ctx context.Context, ids []string) ([]*model.Content, error) {
	if m.findMoviesByIDsFn != nil {
		return m.findMoviesByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (m *mockContentRepository) FindTVShowsByIDs(ctx context.Context, ids []string) ([]*model.Content, error) {
	if m.findShowsByIDsFn != nil {
		return m.findShowsByIDsFn(ctx, ids)
	}
	return nil, nil
}

// mockListCache is an in-memory ListCache recording its call order.
type mockListCache struct {
	mu    sync.Mutex
	data  map[string]*model.ListPage
	calls []string

	getFn            func(ctx context.Context, key string) (*model.ListPage, error)
	setFn            func(ctx context.Context, key string, page *model.ListPage, ttl time.Duration) error
	invalidateUserFn func(ctx context.Context, userID string) error

	lastSetTTL time.Duration
}

func newMockListCache() *mockListCache {
	return &mockListCache{data: make(map[string]*model.ListPage)}
}

func (m *mockListCache) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockListCache) Get(ctx context.Context, key string) (*model.ListPage, error) {
	m.record("get")
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *mockListCache) Set(ctx context.Context, key string, page *model.ListPage, ttl time.Duration) error {
	m.record("set")
	if m.setFn != nil {
		return m.setFn(ctx, key, page, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = page
	m.lastSetTTL = ttl
	return nil
}

func (m *mockListCache) InvalidateUser(ctx context.Context, userID string) error {
	m.record("invalidate")
	if m.invalidateUserFn != nil {
		return m.invalidateUserFn(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.data {
		delete(m.data, key)
	}
	return nil
}

// mockEventPublisher provides a configurable mock for ListEventPublisher.
type mockEventPublisher struct {
	mu        sync.Mutex
	published []repository.ListEvent
	publishFn func(ctx context.Context, event repository.ListEvent) error
}

func (m *mockEventPublisher) PublishListEvent(ctx context.Context, event repository.ListEvent) error {
	m.mu.Lock()
	m.published = append(m.published, event)
	m.mu.Unlock()
	if m.publishFn != nil {
		return m.publishFn(ctx, event)
	}
	return nil
}

func (m *mockEventPublisher) Close() error {
	return nil
}

// mockArtworkStorage provides a configurable mock for ArtworkStorage.
type mockArtworkStorage struct {
	presignFn func(ctx context.Context, key string, expiry time.Duration) (string, error)
}

func (m *mockArtworkStorage) PresignedPosterURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if m.presignFn != nil {
		return m.presignFn(ctx, key, expiry)
	}
	return "http://example.com/posters/" + key, nil
}
