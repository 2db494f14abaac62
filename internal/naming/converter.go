package naming

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

/*
Responsibilities
- Turn URLs into filesystem-safe names
- Keep every generated name within MaxLength bytes
- Preserve the resource extension verbatim

Naming rules
- The scheme never participates in a name
- Every run of characters outside [A-Za-z0-9] becomes a single hyphen
- Names without an extension are saved as .html
- Truncation only ever shortens the converted base, from the end
*/

const (
	// MaxLength is the longest filename most filesystems accept, in bytes.
	MaxLength = 255

	DefaultExtension = ".html"
	DirectorySuffix  = "_files"
)

var unsafeRun = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Convert replaces every maximal run of characters outside [A-Za-z0-9]
// with a single hyphen.
func Convert(s string) string {
	return unsafeRun.ReplaceAllString(s, "-")
}

// FilenameFor returns the local filename for u: the converted host and
// path (extension removed) followed by the path's extension, or
// DefaultExtension when the final path segment has none.
func FilenameFor(u url.URL) string {
	base, ext := splitExtension(u.Path)
	return fit(Convert(u.Host+base), ext)
}

// DirectoryNameFor returns the name of the directory holding the resources
// mirrored for the page at u.
func DirectoryNameFor(u url.URL) string {
	return fit(Convert(u.Host)+Convert(u.Path), DirectorySuffix)
}

// splitExtension splits p at the last dot of its final segment.
// A bare trailing dot, or an extension that could never fit into a name,
// counts as no extension.
func splitExtension(p string) (string, string) {
	ext := path.Ext(p)
	if ext == "" || ext == "." || len(ext) >= MaxLength {
		return strings.TrimSuffix(p, "."), DefaultExtension
	}
	return strings.TrimSuffix(p, ext), ext
}

// fit truncates name from the end so that name+suffix is at most MaxLength
// bytes. suffix is never modified.
func fit(name string, suffix string) string {
	if room := MaxLength - len(suffix); len(name) > room {
		name = name[:room]
	}
	return name + suffix
}
