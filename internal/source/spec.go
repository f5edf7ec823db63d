// Package source turns a user's description of what to analyse into the
// plain text that gets scored.
package source

import (
	"errors"
	"strings"
)

// Spec describes the content to acquire. It is either Text or HTML.
type Spec interface {
	// Location is the path or URL the content is loaded from.
	Location() string
	// Validate reports a spec that can never resolve.
	Validate() error
	isSpec()
}

// Text is a plain-text file read verbatim from the local filesystem.
type Text struct {
	Path string
}

// HTML is a document, local or remote, whose text is taken from the first
// element matching Selector.
type HTML struct {
	Path     string
	Selector string
}

func (Text) isSpec() {}
func (HTML) isSpec() {}

func (t Text) Location() string { return t.Path }
func (h HTML) Location() string { return h.Path }

func (t Text) Validate() error {
	if strings.TrimSpace(t.Path) == "" {
		return errors.New("source: path is required")
	}
	return nil
}

func (h HTML) Validate() error {
	if strings.TrimSpace(h.Path) == "" {
		return errors.New("source: path is required")
	}
	if strings.TrimSpace(h.Selector) == "" {
		return errors.New("source: selector is required for html sources")
	}
	return nil
}
