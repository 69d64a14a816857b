package model

import "time"

// ListEntry is one membership row joined with its catalog record. Content is
// nil when the record has been removed from the catalog since the item was
// added; the entry is still served.
type ListEntry struct {
	ID          string      `json:"id"`
	ContentID   string      `json:"contentId"`
	ContentType ContentType `json:"contentType"`
	AddedAt     time.Time   `json:"addedAt"`
	Content     *Content    `json:"content"`

	// PosterURL is attached after a page leaves the cache. Presigned URLs
	// expire independently of the page TTL and are never stored.
	PosterURL string `json:"posterUrl,omitempty"`
}

// Pagination describes the window a page was computed for.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListPage is the cacheable snapshot of one page of a user's list. It may go
// stale relative to the membership store; mutations invalidate it rather
// than update it.
type ListPage struct {
	Entries    []ListEntry `json:"data"`
	Pagination Pagination  `json:"pagination"`
}
