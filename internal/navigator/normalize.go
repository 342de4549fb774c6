package navigator

import (
	"regexp"

	"github.com/oakwood-commons/confviz/internal/document"
)

var dottedIndex = regexp.MustCompile(`\.(\d+)(\.|\[|$)`)

// NormalizePath rewrites numeric dotted segments typed by hand into index form, so
// "web.routes.0.path" becomes "web.routes[0].path".
func NormalizePath(path string) string {
	for {
		next := dottedIndex.ReplaceAllString(path, "[$1]$2")
		if next == path {
			return path
		}
		path = next
	}
}

// LookupLoose resolves path like Lookup and retries with NormalizePath when the path
// as written does not resolve.
func LookupLoose(root *document.Value, path string) (*document.Value, error) {
	v, err := Lookup(root, path)
	if err == nil {
		return v, nil
	}
	if norm := NormalizePath(path); norm != path {
		if v, nerr := Lookup(root, norm); nerr == nil {
			return v, nil
		}
	}
	return nil, err
}
