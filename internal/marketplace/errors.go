package marketplace

import "errors"

// Every operation either fully applies or fails with one of these (or an
// error propagated verbatim from the registry or the bank). There are no
// partial successes.
var (
	ErrInvalidPrice  = errors.New("invalid price")
	ErrFeeTooHigh    = errors.New("fee too high")
	ErrNotOwner      = errors.New("not the owner")
	ErrNotAdmin      = errors.New("not the administrator")
	ErrAlreadyListed = errors.New("already listed")
	ErrNotListed     = errors.New("not listed")
	ErrNoProceeds    = errors.New("no proceeds")
	ErrPriceNotMet   = errors.New("price not met")
	ErrPaused        = errors.New("marketplace paused")
)
