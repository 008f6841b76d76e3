package geodesy

import (
	"github.com/pkg/errors"
	"github.com/tzneal/geodesy/dms"
)

// Error kinds. Every error returned by this package and by package dms wraps
// one of these, so callers can test with errors.Is.
var (
	ErrInvalidFormat  = dms.ErrInvalidFormat
	ErrOutOfRange     = dms.ErrOutOfRange
	ErrNonConvergence = errors.New("iteration did not converge")
)
