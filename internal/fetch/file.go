package fetch

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/hyperifyio/gosentiment/internal/sourceerr"
)

// ReadFile returns the content of path verbatim. Missing files, permission
// problems and content that is not valid UTF-8 are reported as read errors.
func ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", sourceerr.Read(path, err)
	}
	if !utf8.Valid(b) {
		return "", sourceerr.Read(path, fmt.Errorf("%s: stream did not contain valid UTF-8", path))
	}
	return string(b), nil
}
