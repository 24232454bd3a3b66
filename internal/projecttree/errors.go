package projecttree

import (
	"errors"
	"fmt"
)

// ErrPathNotFound reports that the traversal root does not exist.
var ErrPathNotFound = errors.New("project path does not exist")

const traversalErrorFormat = "traversing %s: %v"

// TraversalError reports a filesystem failure that aborted the walk.
type TraversalError struct {
	Path string
	Err  error
}

func (traversalError *TraversalError) Error() string {
	return fmt.Sprintf(traversalErrorFormat, traversalError.Path, traversalError.Err)
}

func (traversalError *TraversalError) Unwrap() error {
	return traversalError.Err
}
