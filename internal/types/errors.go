package types

import "errors"

// ErrNotFound is returned by stores when a user-scoped record does not exist.
var ErrNotFound = errors.New("record not found")
