package dom

import "errors"

var (
	// ErrNotIndexed is returned by lookups made before Load ever ran.
	ErrNotIndexed = errors.New("component tree has not been indexed")
	// ErrElementNotFound matches any ElementNotFoundError.
	ErrElementNotFound = errors.New("element not found")
	// ErrIndexerClosed is returned when the indexer's context is done.
	ErrIndexerClosed = errors.New("indexer closed")
)

// ElementNotFoundError reports a lookup that matched zero nodes.
type ElementNotFoundError struct {
	Name string
}

func (e *ElementNotFoundError) Error() string {
	return "element with id '" + e.Name + "' not found"
}

// Is makes errors.Is(err, ErrElementNotFound) succeed.
func (e *ElementNotFoundError) Is(target error) bool {
	return target == ErrElementNotFound
}
