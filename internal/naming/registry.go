package naming

import (
	"net/url"
	"strconv"
	"strings"
)

// Registry assigns filenames for one mirror run and breaks collisions.
//
// The same source URL always receives the same name. A different URL whose
// computed name is already taken gets a sequential counter (0, 1, 2, ...)
// appended to its base; when the name is already at MaxLength the counter
// replaces the trailing characters of the base instead. The extension is
// never touched.
//
// A Registry is owned by a single run and is not safe for concurrent use.
type Registry struct {
	byURL map[string]string   // key: source URL, value: assigned filename
	taken map[string]struct{} // every filename handed out so far
}

func NewRegistry() *Registry {
	return &Registry{
		byURL: make(map[string]string),
		taken: make(map[string]struct{}),
	}
}

// Assign returns the filename for u, reserving it for the rest of the run.
func (r *Registry) Assign(u url.URL) string {
	key := u.String()
	if name, ok := r.byURL[key]; ok {
		return name
	}

	name := FilenameFor(u)
	if _, collides := r.taken[name]; collides {
		name = r.disambiguate(name)
	}

	r.byURL[key] = name
	r.taken[name] = struct{}{}
	return name
}

// Len returns the number of distinct URLs named so far.
func (r *Registry) Len() int {
	return len(r.byURL)
}

func (r *Registry) disambiguate(name string) string {
	base, ext := splitName(name)
	for counter := 0; ; counter++ {
		candidate := withToken(base, strconv.Itoa(counter), ext)
		if _, collides := r.taken[candidate]; !collides {
			return candidate
		}
	}
}

// splitName separates a generated filename into base and extension. A
// converted base never contains a dot, so the extension starts at the first.
func splitName(name string) (string, string) {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i], name[i:]
	}
	return name, ""
}

func withToken(base string, token string, ext string) string {
	if room := MaxLength - len(ext) - len(token); len(base) > room {
		base = base[:max(room, 0)]
	}
	return base + token + ext
}
