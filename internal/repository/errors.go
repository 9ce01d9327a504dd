package repository

import "errors"

// ErrNotFound is returned by store updates targeting an unknown id.
var ErrNotFound = errors.New("record not found")
