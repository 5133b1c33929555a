package userinfo

import "errors"

// ErrNotFound signals that the user-info record could not be located.
var ErrNotFound = errors.New("user info not found")
