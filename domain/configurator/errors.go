package configurator

import "errors"

var (
	// ErrInvalidSelection is returned when an identity exists in the catalog
	// but is not a legal choice for the product being configured.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrNoProductSelected is returned when a selection is made on an empty
	// session.
	ErrNoProductSelected = errors.New("no product selected")

	// ErrInvalidSetting is returned for out-of-range scene or AR values.
	ErrInvalidSetting = errors.New("invalid setting")
)

// ErrSessionNotFound is returned for an unknown session id.
var ErrSessionNotFound = errors.New("session not found")
