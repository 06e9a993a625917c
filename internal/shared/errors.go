package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Channel errors
	ErrNotConnected  = fmt.Errorf("channel not connected")
	ErrChannelClosed = fmt.Errorf("channel closed")
	ErrTimeout       = fmt.Errorf("operation timed out")

	// API and cache errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrCacheMiss          = fmt.Errorf("no cached response")
	ErrPrecacheIncomplete = fmt.Errorf("precache manifest incomplete")
	ErrPartitionNotFound  = fmt.Errorf("cache partition not found")

	// Player errors
	ErrDuplicateVideo = fmt.Errorf("video already in playlist")
	ErrCursorBounds   = fmt.Errorf("cursor out of bounds")
	ErrVideoNotFound  = fmt.Errorf("video not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
