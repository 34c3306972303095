package repository

import "errors"

// ErrDuplicate is returned when an insert hits a unique constraint
// (username, email, keyword word). It is the authoritative guard for
// races that slip past service-level pre-checks.
var ErrDuplicate = errors.New("duplicate record")
