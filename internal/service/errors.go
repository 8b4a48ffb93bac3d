package service

import "errors"

var (
	// ErrItemNotFound is returned by workflow operations when the target
	// item id does not exist in the catalog.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemUnavailable is returned by RequestSwap when the target item
	// is not in the available status. Requesting a swap on an item that
	// already has a pending request fails rather than stacking a second
	// request against a non-available item.
	ErrItemUnavailable = errors.New("item is not available")

	// ErrNoSession is returned by operations that require an active
	// session when none exists.
	ErrNoSession = errors.New("no active session")
)
