package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"

	"github.com/hszk-dev/mylist/internal/domain/model"
)

func contentColumns() []string {
	return []string{"id", "type", "title", "description", "genres", "release_date", "director", "actors", "episodes", "poster_key"}
}

func TestContentRepository_Exists(t *testing.T) {
	tests := []struct {
		name        string
		contentType model.ContentType
		exists      bool
	}{
		{"movie exists", model.ContentTypeMovie, true},
		{"tvshow exists", model.ContentTypeTVShow, true},
		{"missing record", model.ContentTypeMovie, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			if err != nil {
				t.Fatalf("failed to create mock: %v", err)
			}
			defer mock.Close()

			mock.ExpectQuery("SELECT EXISTS").
				WithArgs("content_1", tt.contentType.String()).
				WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			repo := NewContentRepository(mock)
			got, err := repo.Exists(context.Background(), "content_1", tt.contentType)
			if err != nil {
				t.Fatalf("Exists() unexpected error = %v", err)
			}
			if got != tt.exists {
				t.Errorf("Exists() = %v, want %v", got, tt.exists)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled expectations: %v", err)
			}
		})
	}
}

func TestContentRepository_FindMoviesByIDs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer mock.Close()

	released := time.Date(2010, 7, 16, 0, 0, 0, 0, time.UTC)
	director := "Christopher Nolan"
	posterKey := "movie_1.jpg"

	rows := pgxmock.NewRows(contentColumns()).
		AddRow("movie_1", "movie", "Inception", "A mind-bending thriller", []string{"Sci-Fi", "Thriller"},
			&released, &director, []string{"Leonardo DiCaprio"}, []byte(nil), &posterKey)

	mock.ExpectQuery("SELECT id, type, title").
		WithArgs("movie", []string{"movie_1"}).
		WillReturnRows(rows)

	repo := NewContentRepository(mock)
	movies, err := repo.FindMoviesByIDs(context.Background(), []string{"movie_1"})
	if err != nil {
		t.Fatalf("FindMoviesByIDs() unexpected error = %v", err)
	}

	if len(movies) != 1 {
		t.Fatalf("got %d movies, want 1", len(movies))
	}
	got := movies[0]
	if got.Title != "Inception" {
		t.Errorf("Title = %q, want Inception", got.Title)
	}
	if got.Director != director {
		t.Errorf("Director = %q, want %q", got.Director, director)
	}
	if got.ReleaseDate == nil || !got.ReleaseDate.Equal(released) {
		t.Errorf("ReleaseDate = %v, want %v", got.ReleaseDate, released)
	}
	if got.PosterKey != posterKey {
		t.Errorf("PosterKey = %q, want %q", got.PosterKey, posterKey)
	}
	if len(got.Episodes) != 0 {
		t.Errorf("movie carries %d episodes, want 0", len(got.Episodes))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestContentRepository_FindTVShowsByIDs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer mock.Close()

	episodes := []byte(`[{"seasonNumber":1,"episodeNumber":1,"releaseDate":"2016-07-15T00:00:00Z","director":"The Duffer Brothers","actors":["Millie Bobby Brown"]}]`)

	rows := pgxmock.NewRows(contentColumns()).
		AddRow("show_1", "tvshow", "Stranger Things", "Kids vs the Upside Down", []string{"Horror"},
			(*time.Time)(nil), (*string)(nil), []string(nil), episodes, (*string)(nil))

	mock.ExpectQuery("SELECT id, type, title").
		WithArgs("tvshow", []string{"show_1"}).
		WillReturnRows(rows)

	repo := NewContentRepository(mock)
	shows, err := repo.FindTVShowsByIDs(context.Background(), []string{"show_1"})
	if err != nil {
		t.Fatalf("FindTVShowsByIDs() unexpected error = %v", err)
	}

	if len(shows) != 1 {
		t.Fatalf("got %d shows, want 1", len(shows))
	}
	got := shows[0]
	if got.Type != model.ContentTypeTVShow {
		t.Errorf("Type = %q, want tvshow", got.Type)
	}
	if len(got.Episodes) != 1 {
		t.Fatalf("got %d episodes, want 1", len(got.Episodes))
	}
	if got.Episodes[0].SeasonNumber != 1 || got.Episodes[0].Director != "The Duffer Brothers" {
		t.Errorf("episode = %+v, want season 1 by The Duffer Brothers", got.Episodes[0])
	}
	if got.ReleaseDate != nil {
		t.Errorf("ReleaseDate = %v, want nil for a tv show", got.ReleaseDate)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestContentRepository_FindByIDs_EmptyInput(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer mock.Close()

	repo := NewContentRepository(mock)

	// No ids means no query at all.
	movies, err := repo.FindMoviesByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("FindMoviesByIDs() unexpected error = %v", err)
	}
	if movies != nil {
		t.Errorf("FindMoviesByIDs() = %v, want nil", movies)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected query issued: %v", err)
	}
}

func TestContentRepository_FindByIDs_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT id, type, title").
		WithArgs("movie", []string{"movie_1"}).
		WillReturnError(errors.New("connection refused"))

	repo := NewContentRepository(mock)
	_, err = repo.FindMoviesByIDs(context.Background(), []string{"movie_1"})
	if err == nil {
		t.Fatal("FindMoviesByIDs() expected error, got nil")
	}
}
