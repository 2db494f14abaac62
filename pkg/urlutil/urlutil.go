package urlutil

import (
	"net/url"
	"strings"
)

// ResolveLocal decides whether candidate, a raw attribute value found in
// markup, points at a resource hosted by the same authority as root.
//
// A candidate is local when its authority is empty (path-relative,
// absolute-path or protocol-relative without a host) or equal to root's
// authority byte for byte; scheme differences are ignored. Local candidates
// are resolved against root following RFC 3986 and returned without their
// fragment. References that carry no authority at all once resolved
// (data:, mailto:, javascript:) are never local.
//
// Properties:
//   - Pure: no state, no I/O
//   - The returned URL always shares root's authority
func ResolveLocal(root url.URL, candidate string) (url.URL, bool) {
	ref, err := url.Parse(strings.TrimSpace(candidate))
	if err != nil {
		return url.URL{}, false
	}

	if ref.Host != "" && ref.Host != root.Host {
		return url.URL{}, false
	}

	resolved := root.ResolveReference(ref)
	if resolved.Host != root.Host || resolved.Opaque != "" {
		return url.URL{}, false
	}

	resolved.Fragment = ""
	resolved.RawFragment = ""
	return *resolved, true
}
