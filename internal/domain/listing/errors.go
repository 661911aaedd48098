package listing

import "errors"

var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrListingNotVisible  = errors.New("listing not available")
	ErrInvalidCategory    = errors.New("invalid listing category")
	ErrListingNotAccepting = errors.New("listing is not accepting applications")
	ErrAlreadyApplied     = errors.New("already applied to this listing")
	ErrNotListingOwner    = errors.New("only the owner or an admin can modify this listing")
)
