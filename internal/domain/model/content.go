package model

import "time"

// ContentType discriminates the two kinds of catalog content.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeTVShow ContentType = "tvshow"
)

func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypeMovie, ContentTypeTVShow:
		return true
	default:
		return false
	}
}

func (t ContentType) String() string {
	return string(t)
}

// Episode is a single episode of a TV show.
type Episode struct {
	SeasonNumber  int       `json:"seasonNumber"`
	EpisodeNumber int       `json:"episodeNumber"`
	ReleaseDate   time.Time `json:"releaseDate"`
	Director      string    `json:"director"`
	Actors        []string  `json:"actors"`
}

// Content is a catalog record (movie or TV show). It is owned by the content
// store and read-only from this service's perspective.
type Content struct {
	ID          string      `json:"id"`
	Type        ContentType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Genres      []string    `json:"genres"`

	// Movie-only fields.
	ReleaseDate *time.Time `json:"releaseDate,omitempty"`
	Director    string     `json:"director,omitempty"`
	Actors      []string   `json:"actors,omitempty"`

	// TV-show-only field.
	Episodes []Episode `json:"episodes,omitempty"`

	// PosterKey is the object storage key of the poster artwork, if any.
	PosterKey string `json:"posterKey,omitempty"`
}
