package router

import (
	"fmt"

	"github.com/xy-planning-network/waypoint"
)

var (
	ErrConflictingParam = fmt.Errorf("%w: conflicting parameter name", waypoint.ErrBadConfig)
	ErrDuplicateRoute   = fmt.Errorf("%w: duplicate route", waypoint.ErrBadConfig)
	ErrFrozen           = fmt.Errorf("%w: router already serving", waypoint.ErrBadConfig)
	ErrInvalidSegment   = fmt.Errorf("%w: invalid path segment", waypoint.ErrBadConfig)
)
