package router

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/xy-planning-network/waypoint/http/middleware"
	"github.com/xy-planning-network/waypoint/http/req"
)

// An endpoint is what a route resolves to at the node its pattern ends on.
type endpoint struct {
	method      req.Method
	pattern     string
	controller  Controller
	middlewares []middleware.Handler
}

type paramChild struct {
	name string
	idx  int
}

// A node is one depth of the trie.
// Children are indices into the owning tree's nodes.
type node struct {
	endpoints []endpoint
	children  map[string]int
	param     *paramChild
}

func (n *node) endpoint(m req.Method) (*endpoint, bool) {
	for i := range n.endpoints {
		if n.endpoints[i].method == m {
			return &n.endpoints[i], true
		}
	}

	return nil, false
}

// A tree is a segment trie stored as an arena of nodes; nodes[0] is the root.
type tree struct {
	nodes []node
}

func newTree() tree { return tree{nodes: []node{{}}} }

// check reports whether inserting an endpoint for m at segs would conflict with the routes already held,
// without modifying t.
func (t *tree) check(segs []Segment, m req.Method) error {
	seen := make(map[string]struct{})
	idx, exists := 0, true
	for _, s := range segs {
		if s.Param {
			if _, ok := seen[s.Name]; ok {
				return fmt.Errorf("%w: %q repeated in %q", ErrConflictingParam, s.Name, pattern(segs))
			}
			seen[s.Name] = struct{}{}
		}

		if !exists {
			continue
		}

		n := &t.nodes[idx]
		switch {
		case !s.Param:
			idx, exists = n.children[s.Name]

		case n.param == nil:
			exists = false

		case n.param.name != s.Name:
			return fmt.Errorf("%w: %q conflicts with %q in %q", ErrConflictingParam, s.Name, n.param.name, pattern(segs))

		default:
			idx = n.param.idx
		}
	}

	if !exists {
		return nil
	}

	if _, ok := t.nodes[idx].endpoint(m); ok {
		return fmt.Errorf("%w: %s %s", ErrDuplicateRoute, m, pattern(segs))
	}

	return nil
}

// insert adds ep at the node segs resolve to, creating nodes along the way.
// Nothing is inserted if check fails.
func (t *tree) insert(segs []Segment, ep endpoint) error {
	if err := t.check(segs, ep.method); err != nil {
		return err
	}

	idx := 0
	for _, s := range segs {
		if s.Param {
			if t.nodes[idx].param == nil {
				child := t.grow()
				t.nodes[idx].param = &paramChild{name: s.Name, idx: child}
			}

			idx = t.nodes[idx].param.idx
			continue
		}

		child, ok := t.nodes[idx].children[s.Name]
		if !ok {
			child = t.grow()
			if t.nodes[idx].children == nil {
				t.nodes[idx].children = make(map[string]int)
			}
			t.nodes[idx].children[s.Name] = child
		}

		idx = child
	}

	ep.pattern = pattern(segs)
	t.nodes[idx].endpoints = append(t.nodes[idx].endpoints, ep)

	return nil
}

// grow appends an empty node and returns its index.
// Pointers into nodes are invalid after grow.
func (t *tree) grow() int {
	t.nodes = append(t.nodes, node{})
	return len(t.nodes) - 1
}

// lookup resolves request path segments to the endpoint registered for m.
//
// A "?query" suffix on a segment is never part of the match.
// Segments are percent-decoded only after the query is cut off,
// so an encoded "?" or "/" stays inside the segment it belongs to.
// A literal child always wins over the parameter child at the same depth;
// once a literal child matches, lookup commits to it and never backtracks.
//
// Params is never nil when lookup matches.
func (t *tree) lookup(segments []string, m req.Method) (*endpoint, req.Params, bool) {
	params := make(req.Params)
	idx := 0
	for _, s := range segments {
		s = unescape(s)
		n := &t.nodes[idx]
		if child, ok := n.children[s]; ok {
			idx = child
			continue
		}

		if n.param == nil {
			return nil, nil, false
		}

		params[n.param.name] = s
		idx = n.param.idx
	}

	ep, ok := t.nodes[idx].endpoint(m)
	if !ok {
		return nil, nil, false
	}

	return ep, params, true
}

// unescape strips the query from a request path segment and decodes the rest.
// A malformed escape is matched as is.
func unescape(seg string) string {
	seg, _, _ = strings.Cut(seg, "?")
	if decoded, err := url.PathUnescape(seg); err == nil {
		return decoded
	}

	return seg
}

// walk calls fn for every endpoint in t along with the segments leading to it.
// Literal children are visited in no particular order.
func (t *tree) walk(fn func(segs []Segment, ep *endpoint)) {
	var visit func(idx int, segs []Segment)
	visit = func(idx int, segs []Segment) {
		n := &t.nodes[idx]
		for i := range n.endpoints {
			fn(segs, &n.endpoints[i])
		}

		for name, child := range n.children {
			visit(child, append(segs[:len(segs):len(segs)], Segment{Name: name}))
		}

		if n.param != nil {
			visit(n.param.idx, append(segs[:len(segs):len(segs)], Segment{Name: n.param.name, Param: true}))
		}
	}

	visit(0, nil)
}
