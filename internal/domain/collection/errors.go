package collection

import "errors"

var (
	// ErrLastProject indicates an attempt to delete the only remaining project.
	ErrLastProject = errors.New("cannot delete the last remaining project")
	// ErrEmpty indicates a collection built without any projects.
	ErrEmpty = errors.New("collection has no projects")
)
