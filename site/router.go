package site

import (
	"errors"
	"fmt"
	"strings"
)

// Params holds the values of a route's {name} segments.
type Params map[string]string

// Route maps a path pattern to a page builder. Patterns are slash
// separated; a segment written {name} matches any single segment and is
// captured into Params.
type Route struct {
	Pattern string
	Build   func(b *builder, p Params) *page
}

// Router resolves paths to routes in registration order.
type Router struct {
	routes   []Route
	notFound Route
}

// ErrBadPattern is returned by Add for malformed patterns.
var ErrBadPattern = errors.New("bad route pattern")

// Add registers a route.
func (r *Router) Add(pattern string, build func(*builder, Params) *page) error {
	if !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("%w: %q must start with /", ErrBadPattern, pattern)
	}
	for _, seg := range splitPath(pattern) {
		if strings.HasPrefix(seg, "{") != strings.HasSuffix(seg, "}") {
			return fmt.Errorf("%w: %q has an unbalanced segment %q", ErrBadPattern, pattern, seg)
		}
	}
	r.routes = append(r.routes, Route{Pattern: pattern, Build: build})
	return nil
}

// NotFound sets the route used when nothing matches.
func (r *Router) NotFound(build func(*builder, Params) *page) {
	r.notFound = Route{Pattern: "", Build: build}
}

// Match finds the route for path. The second result is false when only the
// not-found route applies.
func (r *Router) Match(path string) (Route, Params, bool) {
	segs := splitPath(cleanPath(path))
	for _, rt := range r.routes {
		if p, ok := matchPattern(splitPath(rt.Pattern), segs); ok {
			return rt, p, true
		}
	}
	return r.notFound, Params{}, false
}

func matchPattern(pattern, segs []string) (Params, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	p := Params{}
	for i, seg := range pattern {
		if strings.HasPrefix(seg, "{") {
			p[seg[1:len(seg)-1]] = segs[i]
			continue
		}
		if seg != segs[i] {
			return nil, false
		}
	}
	return p, true
}

// cleanPath drops any query or fragment and trailing slashes.
func cleanPath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimRight(path, "/")
	if path == "" {
		return "/"
	}
	return path
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// isExternal reports whether href leaves the site.
func isExternal(href string) bool {
	return strings.HasPrefix(href, "http://") ||
		strings.HasPrefix(href, "https://") ||
		strings.HasPrefix(href, "mailto:")
}
