package container

import "errors"

var (
	// ErrKeyNotFound reports a lookup or removal for a key that is not
	// in the map.
	ErrKeyNotFound = errors.New("container: key not found")

	// ErrIndexOutOfRange reports an indexed list access past the end.
	ErrIndexOutOfRange = errors.New("container: index out of range")

	// ErrValueNotFound reports a value-based removal with no match.
	ErrValueNotFound = errors.New("container: value not found")
)
