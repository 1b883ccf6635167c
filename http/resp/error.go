package resp

import (
	"fmt"

	"github.com/xy-planning-network/waypoint"
)

var (
	ErrNoBody = fmt.Errorf("%w: response has no body", waypoint.ErrNotExist)
)
