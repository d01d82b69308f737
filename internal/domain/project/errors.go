package project

import "errors"

// ErrProjectNotFound indicates the project doesn't exist.
var ErrProjectNotFound = errors.New("project not found")
