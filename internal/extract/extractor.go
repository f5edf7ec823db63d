package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/hyperifyio/gosentiment/internal/sourceerr"
)

// Query is a compiled CSS selector. It is immutable and safe for concurrent use.
type Query struct {
	source string
	sel    cascadia.Selector
}

// Compile parses selector. An invalid selector is a parse error.
func Compile(selector string) (*Query, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, sourceerr.Parse("unable to parse selector: " + err.Error())
	}
	return &Query{source: selector, sel: sel}, nil
}

// String returns the selector the query was compiled from.
func (q *Query) String() string { return q.source }

// Text parses document and returns the text of the first element matching
// the query, in document order. The text of every descendant text node is
// concatenated without separators. Later matches are never consulted.
func (q *Query) Text(document string) (string, error) {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		// x/net/html recovers from malformed markup; only reader errors land here.
		return "", sourceerr.Parse(err.Error())
	}
	first := goquery.NewDocumentFromNode(root).FindMatcher(q.sel).First()
	if first.Length() == 0 || !hasTextNode(first.Get(0)) {
		return "", sourceerr.Parse(noTextAtSelector)
	}
	return first.Text(), nil
}

const noTextAtSelector = "no text available at selector"

// FromSelector compiles selector and extracts the first match's text from document.
func FromSelector(document, selector string) (string, error) {
	q, err := Compile(selector)
	if err != nil {
		return "", err
	}
	return q.Text(document)
}

func hasTextNode(n *html.Node) bool {
	var found bool
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if found {
			return
		}
		if cur.Type == html.TextNode && cur.Data != "" {
			found = true
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
			if found {
				return
			}
		}
	}
	dfs(n)
	return found
}
