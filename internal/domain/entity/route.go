package entity

import (
	"path"
	"strings"
)

// RouteClass is the access classification of a request path.
type RouteClass int

const (
	// RouteProtected paths require a valid session token.
	RouteProtected RouteClass = iota
	// RoutePublic paths are reachable without a session.
	RoutePublic
)

func (c RouteClass) String() string {
	if c == RoutePublic {
		return "public"
	}

	return "protected"
}

// Decision is the outcome of the session gate for a single request.
type Decision int

const (
	// DecisionForward lets the request reach its handler.
	DecisionForward Decision = iota
	// DecisionRedirect sends the client to the login page.
	DecisionRedirect
)

func (d Decision) String() string {
	if d == DecisionRedirect {
		return "redirect"
	}

	return "forward"
}

// RoutePolicy is the static path classification table. It is immutable after construction.
type RoutePolicy struct {
	public map[string]struct{}
}

// NewRoutePolicy builds a policy where exactly the given paths are public.
func NewRoutePolicy(publicPaths []string) *RoutePolicy {
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = struct{}{}
	}

	return &RoutePolicy{public: public}
}

// Classify returns RoutePublic for allow-listed paths and RouteProtected for everything else.
func (p *RoutePolicy) Classify(requestPath string) RouteClass {
	if _, ok := p.public[requestPath]; ok {
		return RoutePublic
	}

	return RouteProtected
}

// BypassMatcher decides whether a path is excluded from session interception.
type BypassMatcher interface {
	Match(requestPath string) bool
}

// PrefixMatcher matches a path segment prefix: "/api" matches "/api" and "/api/x" but not "/apiary".
type PrefixMatcher string

func (m PrefixMatcher) Match(requestPath string) bool {
	prefix := strings.TrimSuffix(string(m), "/")
	if prefix == "" {
		return false
	}

	return requestPath == prefix || strings.HasPrefix(requestPath, prefix+"/")
}

// ExtensionMatcher matches paths whose last element ends in a literal extension such as ".png".
type ExtensionMatcher string

func (m ExtensionMatcher) Match(requestPath string) bool {
	return string(m) != "" && strings.EqualFold(path.Ext(requestPath), string(m))
}

// BypassList is an ordered list of matchers evaluated before any auth logic.
type BypassList []BypassMatcher

// NewBypassList builds the list with prefix matchers first, then extension matchers.
func NewBypassList(prefixes, extensions []string) BypassList {
	list := make(BypassList, 0, len(prefixes)+len(extensions))
	for _, p := range prefixes {
		list = append(list, PrefixMatcher(p))
	}
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		list = append(list, ExtensionMatcher(ext))
	}

	return list
}

// Match reports whether any matcher in the list excludes the path.
func (l BypassList) Match(requestPath string) bool {
	for _, m := range l {
		if m.Match(requestPath) {
			return true
		}
	}

	return false
}
