package req

import (
	"fmt"
	"strings"

	"github.com/xy-planning-network/waypoint"
)

// A Method is an HTTP method a waypoint router can dispatch on.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

var _ waypoint.Enumerable = MethodGet

// ParseMethod converts s, ignoring case, into a Method.
// ParseMethod returns ErrUnsupportedMethod when s is not one of the supported methods.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if err := m.Valid(); err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
	}

	return m, nil
}

func (m Method) String() string { return string(m) }

func (m Method) Valid() error {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete:
		return nil
	default:
		return waypoint.ErrNotValid
	}
}
