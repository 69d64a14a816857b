package repository

import "errors"

var (
	// ErrItemNotFound is returned when a membership row cannot be found.
	ErrItemNotFound = errors.New("item not found in list")

	// ErrAlreadyInList is returned when a membership row already exists for
	// the (user, content) pair, whether caught by the pre-check or by the
	// store's uniqueness constraint.
	ErrAlreadyInList = errors.New("item already in list")

	// ErrContentNotFound is returned when no catalog record of the declared
	// type exists for the content ID.
	ErrContentNotFound = errors.New("content not found")

	// ErrBucketNotFound is returned when the artwork bucket is missing.
	ErrBucketNotFound = errors.New("bucket not found")
)
