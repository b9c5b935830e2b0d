package domain

import (
	"errors"

	sharedDomain "github.com/felixgeelhaar/tempo/internal/shared/domain"
)

// ErrInvalidInput is the shared validation sentinel, re-exported so callers
// of the scheduling core can match on it without another import.
var ErrInvalidInput = sharedDomain.ErrInvalidInput

var ErrAssignmentNotFound = errors.New("scheduled assignment not found")
