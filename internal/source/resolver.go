package source

import (
	"context"
	"fmt"

	"github.com/hyperifyio/gosentiment/internal/extract"
	"github.com/hyperifyio/gosentiment/internal/fetch"
)

// Getter fetches a remote document as text.
type Getter interface {
	Get(ctx context.Context, url string) (string, error)
}

// Resolver loads and, for HTML specs, extracts text. It holds no mutable
// state and may be shared between goroutines.
type Resolver struct {
	remote   Getter
	readFile func(path string) (string, error)
}

// NewResolver returns a Resolver fetching remote documents with remote.
// A nil remote falls back to a fetch.Client with default settings.
func NewResolver(remote Getter) *Resolver {
	if remote == nil {
		remote = &fetch.Client{}
	}
	return &Resolver{remote: remote, readFile: fetch.ReadFile}
}

// Resolve returns the text spec points at. Loader failures stop the
// pipeline before extraction; all failures are *sourceerr.Error values.
func (r *Resolver) Resolve(ctx context.Context, spec Spec) (string, error) {
	switch s := spec.(type) {
	case Text:
		return r.readFile(s.Path)
	case HTML:
		doc, err := r.load(ctx, s.Path)
		if err != nil {
			return "", err
		}
		return extract.FromSelector(doc, s.Selector)
	default:
		return "", fmt.Errorf("source: unsupported spec %T", spec)
	}
}

func (r *Resolver) load(ctx context.Context, path string) (string, error) {
	if IsRemote(path) {
		return r.remote.Get(ctx, path)
	}
	return r.readFile(path)
}
