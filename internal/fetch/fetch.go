package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"

	"github.com/hyperifyio/gosentiment/internal/sourceerr"
)

// DefaultUserAgent identifies the tool to content servers that block
// requests without a user agent.
const DefaultUserAgent = "gosentiment/1.0 (+https://github.com/hyperifyio/gosentiment)"

// Client issues a single GET per call and returns the body as text.
// A Client is read-only after construction and safe for concurrent use.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// Timeout bounds each attempt, body included. Zero means no bound
	// beyond the caller's context.
	Timeout time.Duration
	// Retry is off unless MaxAttempts > 1.
	Retry RetryPolicy
}

// RetryPolicy retries transport failures only. Non-2xx responses and
// decoding failures are never retried.
type RetryPolicy struct {
	// MaxAttempts includes the initial attempt. Values below 1 mean 1.
	MaxAttempts int
	// BaseDelay is the wait before the second attempt; it doubles after that.
	BaseDelay time.Duration
	// MaxDelay caps the wait between attempts. Zero means one minute.
	MaxDelay time.Duration
}

// maxBackoff caps the wait between attempts when MaxDelay is unset.
const maxBackoff = time.Minute

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p RetryPolicy) delay(retry int) time.Duration {
	base := p.BaseDelay
	if base <= 0 {
		base = 200 * time.Millisecond
	}
	limit := p.MaxDelay
	if limit <= 0 {
		limit = maxBackoff
	}
	if retry >= 62 {
		return limit
	}
	d := base << uint(retry)
	if d <= 0 || d > limit || d>>uint(retry) != base {
		return limit
	}
	return d
}

func (c *Client) getHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// Get fetches url and returns its body decoded as UTF-8 text.
// Failures are *sourceerr.Error values of kind Request or Decode.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	attempts := c.Retry.attempts()
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			t := time.NewTimer(c.Retry.delay(i - 1))
			select {
			case <-ctx.Done():
				t.Stop()
				return "", lastErr
			case <-t.C:
			}
		}
		text, err := c.tryOnce(ctx, url)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !isTransient(err) || ctx.Err() != nil {
			return "", err
		}
	}
	return "", lastErr
}

// transportError marks a failure before any HTTP status was received.
type transportError struct{ err error }

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func isTransient(err error) bool {
	var te *transportError
	return errors.As(err, &te)
}

func (c *Client) tryOnce(ctx context.Context, url string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", sourceerr.RequestErr(url, err)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	resp, err := c.getHTTPClient().Do(req)
	if err != nil {
		return "", sourceerr.RequestErr(url, &transportError{err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", sourceerr.Request(url, fmt.Sprintf("request failed with code %d", resp.StatusCode))
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", sourceerr.Decode(fmt.Sprintf("read body: %v", err))
	}
	return decodeBody(resp.Header.Get("Content-Type"), b)
}

// decodeBody honors a charset declared in the Content-Type header and
// otherwise requires the body to be valid UTF-8.
func decodeBody(contentType string, body []byte) (string, error) {
	label := ""
	if contentType != "" {
		if _, params, err := mime.ParseMediaType(contentType); err == nil {
			label = strings.TrimSpace(params["charset"])
		}
	}
	if label != "" {
		enc, name := charset.Lookup(label)
		if enc == nil {
			return "", sourceerr.Decode(fmt.Sprintf("unsupported charset %q", label))
		}
		if name != "utf-8" {
			out, err := io.ReadAll(transform.NewReader(bytes.NewReader(body), enc.NewDecoder()))
			if err != nil {
				return "", sourceerr.Decode(fmt.Sprintf("decode %s: %v", name, err))
			}
			body = out
		}
	}
	if !utf8.Valid(body) {
		return "", sourceerr.Decode("response body is not valid UTF-8")
	}
	return string(body), nil
}
