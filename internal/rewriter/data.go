package rewriter

import "sort"

// TagKind is the closed set of elements whose references get mirrored.
type TagKind int

const (
	TagImg TagKind = iota
	TagScript
	TagLink
)

// resourceSelector matches every element that carries a mirrorable reference.
const resourceSelector = "img[src], script[src], link[href]"

func tagKindOf(nodeName string) (TagKind, bool) {
	switch nodeName {
	case "img":
		return TagImg, true
	case "script":
		return TagScript, true
	case "link":
		return TagLink, true
	default:
		return 0, false
	}
}

// Attribute names the attribute holding the reference for the tag.
func (k TagKind) Attribute() string {
	switch k {
	case TagLink:
		return "href"
	default:
		return "src"
	}
}

func (k TagKind) String() string {
	switch k {
	case TagImg:
		return "img"
	case TagScript:
		return "script"
	case TagLink:
		return "link"
	default:
		return "unknown"
	}
}

// ResourceMap maps absolute source URLs to local paths relative to the
// mirror root (slash separated, always under the resource directory).
type ResourceMap map[string]string

// SortedURLs returns the source URLs in ascending order.
func (m ResourceMap) SortedURLs() []string {
	urls := make([]string, 0, len(m))
	for u := range m {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

type RewriteResult struct {
	html      []byte
	resources ResourceMap
}

func NewRewriteResult(html []byte, resources ResourceMap) RewriteResult {
	return RewriteResult{
		html:      html,
		resources: resources,
	}
}

// HTML returns the serialized document with local references rewritten.
func (r RewriteResult) HTML() []byte {
	return r.html
}

func (r RewriteResult) Resources() ResourceMap {
	return r.resources
}
