package source

import (
	"net/url"
	"strings"
)

// IsRemote reports whether path names a document to fetch over HTTP.
// The path must start with the literal prefix "http" and also parse as an
// absolute http or https URL with a host; anything else is a local file, so
// a file called "http_dump.html" is read from disk.
func IsRemote(path string) bool {
	if !strings.HasPrefix(path, "http") {
		return false
	}
	u, err := url.Parse(path)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
