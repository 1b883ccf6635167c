package router

import (
	"fmt"
	"regexp"
	"strings"
)

var literalRe = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)

// A Segment is one "/"-delimited part of a route pattern:
// either literal text or, when prefixed with ":", a named parameter.
type Segment struct {
	Name  string
	Param bool
}

func (s Segment) String() string {
	if s.Param {
		return ":" + s.Name
	}

	return s.Name
}

// ParsePath splits a route pattern into its Segments.
// Empty segments are dropped, so "/a//b/" and "a/b" parse identically.
//
// ParsePath returns ErrInvalidSegment when a literal segment holds characters
// outside [a-zA-Z0-9_.-] or a parameter segment has no name.
func ParsePath(path string) ([]Segment, error) {
	parts := strings.Split(path, "/")
	segs := make([]Segment, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}

		if name, ok := strings.CutPrefix(p, ":"); ok {
			if name == "" {
				return nil, fmt.Errorf("%w: %q has an unnamed parameter", ErrInvalidSegment, path)
			}

			segs = append(segs, Segment{Name: name, Param: true})
			continue
		}

		if !literalRe.MatchString(p) {
			return nil, fmt.Errorf("%w: %q in %q", ErrInvalidSegment, p, path)
		}

		segs = append(segs, Segment{Name: p})
	}

	return segs, nil
}

// pattern renders segs back into the canonical form of a route pattern, e.g., "/items/:id".
func pattern(segs []Segment) string {
	if len(segs) == 0 {
		return "/"
	}

	var b strings.Builder
	for _, s := range segs {
		b.WriteByte('/')
		b.WriteString(s.String())
	}

	return b.String()
}
