package naming_test

import (
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rohmanhakim/page-loader/internal/naming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return *u
}

func TestConvert(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "test.com/images/python", expected: "test-com-images-python"},
		{input: "a..//..b", expected: "a-b"},
		{input: "already-safe", expected: "already-safe"},
		{input: "ÜnΙcode/päth", expected: "-n-code-p-th"},
		{input: "/leading", expected: "-leading"},
		{input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, naming.Convert(tt.input))
		})
	}
}

func TestFilenameFor(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{name: "root without path", url: "http://test.com", expected: "test-com.html"},
		{name: "root with slash", url: "http://test.com/", expected: "test-com-.html"},
		{name: "image", url: "http://test.com/images/python.png", expected: "test-com-images-python.png"},
		{name: "script", url: "http://test.com/scripts/test.js", expected: "test-com-scripts-test.js"},
		{name: "stylesheet", url: "http://test.com/styles/app.css", expected: "test-com-styles-app.css"},
		{name: "no extension", url: "http://test.com/courses", expected: "test-com-courses.html"},
		{name: "ip address", url: "http://127.0.0.1/test", expected: "127-0-0-1-test.html"},
		{name: "ip address root", url: "http://127.0.0.1", expected: "127-0-0-1.html"},
		{name: "port", url: "http://localhost:8080/app.js", expected: "localhost-8080-app.js"},
		{name: "query ignored", url: "http://test.com/app.js?v=3", expected: "test-com-app.js"},
		{name: "scheme ignored", url: "https://test.com/app.js", expected: "test-com-app.js"},
		{name: "dot only in directory", url: "http://test.com/v1.2/readme", expected: "test-com-v1-2-readme.html"},
		{name: "multiple dots", url: "http://test.com/archive.tar.gz", expected: "test-com-archive-tar.gz"},
		{name: "trailing dot", url: "http://test.com/file.", expected: "test-com-file.html"},
		{name: "extension kept verbatim", url: "http://test.com/a.PNG", expected: "test-com-a.PNG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, naming.FilenameFor(mustParse(t, tt.url)))
		})
	}
}

func TestFilenameFor_IsPure(t *testing.T) {
	u := mustParse(t, "http://test.com/images/python.png")

	first := naming.FilenameFor(u)
	second := naming.FilenameFor(u)

	assert.Equal(t, first, second)
}

func TestFilenameFor_LengthLimit(t *testing.T) {
	longName := strings.Repeat("a", naming.MaxLength+50)

	tests := []struct {
		name        string
		url         string
		expectedExt string
	}{
		{name: "without extension", url: "http://127.0.0.1/" + longName, expectedExt: ".html"},
		{name: "with extension", url: "http://127.0.0.1/" + longName + ".png2png", expectedExt: ".png2png"},
		{name: "image", url: "http://test.com/images/" + longName + ".png", expectedExt: ".png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := naming.FilenameFor(mustParse(t, tt.url))

			assert.Len(t, filename, naming.MaxLength)
			assert.Equal(t, tt.expectedExt, filepath.Ext(filename))
		})
	}
}

func TestFilenameFor_ExactlyAtLimitIsKept(t *testing.T) {
	// "test-com-" + name + ".png" == MaxLength
	name := strings.Repeat("b", naming.MaxLength-len("test-com-")-len(".png"))

	filename := naming.FilenameFor(mustParse(t, "http://test.com/"+name+".png"))

	assert.Equal(t, "test-com-"+name+".png", filename)
}

func TestFilenameFor_OverlongExtensionFallsBack(t *testing.T) {
	ext := "." + strings.Repeat("x", naming.MaxLength)

	filename := naming.FilenameFor(mustParse(t, "http://test.com/file"+ext))

	assert.LessOrEqual(t, len(filename), naming.MaxLength)
	assert.True(t, strings.HasSuffix(filename, naming.DefaultExtension))
}

func TestDirectoryNameFor(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{url: "http://test.com", expected: "test-com_files"},
		{url: "http://test.com/blog", expected: "test-com-blog_files"},
		{url: "https://ru.hexlet.io/courses", expected: "ru-hexlet-io-courses_files"},
		{url: "http://127.0.0.1:8000/page.php", expected: "127-0-0-1-8000-page-php_files"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, naming.DirectoryNameFor(mustParse(t, tt.url)))
		})
	}
}

func TestDirectoryNameFor_LengthLimit(t *testing.T) {
	u := mustParse(t, "http://test.com/"+strings.Repeat("c", 400))

	dirname := naming.DirectoryNameFor(u)

	assert.Len(t, dirname, naming.MaxLength)
	assert.True(t, strings.HasSuffix(dirname, naming.DirectorySuffix))
	assert.Equal(t, dirname, naming.DirectoryNameFor(u))
}
