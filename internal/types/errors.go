package types

import "errors"

// Error categories. Callers wrap these with fmt.Errorf and test them with errors.Is.
var (
	// ErrConfig marks invalid patterns and unreadable or conflicting configuration.
	ErrConfig = errors.New("config error")
	// ErrIO marks a missing or unusable repository root.
	ErrIO = errors.New("io error")
	// ErrOutput marks a sink that could not receive the rendered text.
	ErrOutput = errors.New("output error")
)
