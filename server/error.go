package server

import (
	"fmt"

	"github.com/xy-planning-network/waypoint"
)

var ErrServing = fmt.Errorf("%w: server already serving", waypoint.ErrBadConfig)
