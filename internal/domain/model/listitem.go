package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidUserID      = errors.New("user ID cannot be empty")
	ErrInvalidContentID   = errors.New("content ID cannot be empty")
	ErrInvalidContentType = errors.New("content type must be movie or tvshow")
)

// ListItem is a single My List membership row: the user has the content
// listed. At most one row exists per (UserID, ContentID) pair; rows are
// created and deleted, never updated.
type ListItem struct {
	ID          uuid.UUID
	UserID      string
	ContentID   string
	ContentType ContentType
	AddedAt     time.Time
}

// NewListItem creates a membership row stamped with the current time.
func NewListItem(userID, contentID string, contentType ContentType) (*ListItem, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if contentID == "" {
		return nil, ErrInvalidContentID
	}
	if !contentType.IsValid() {
		return nil, ErrInvalidContentType
	}

	return &ListItem{
		ID:          uuid.New(),
		UserID:      userID,
		ContentID:   contentID,
		ContentType: contentType,
		AddedAt:     time.Now(),
	}, nil
}
