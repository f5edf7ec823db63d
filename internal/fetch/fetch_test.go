package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hyperifyio/gosentiment/internal/sourceerr"
)

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(200)
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	c := &Client{UserAgent: "gosentiment-test", Timeout: 2 * time.Second}
	body, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != "<html><body>ok</body></html>" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestGet_SendsUserAgent(t *testing.T) {
	var got atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := &Client{}
	if _, err := c.Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ua, _ := got.Load().(string); ua != DefaultUserAgent {
		t.Fatalf("expected default user agent, got %q", ua)
	}

	c = &Client{UserAgent: "custom/2"}
	if _, err := c.Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ua, _ := got.Load().(string); ua != "custom/2" {
		t.Fatalf("expected custom user agent, got %q", ua)
	}
}

func TestGet_Non2xxIsRequestErrorWithCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	c := &Client{}
	_, err := c.Get(context.Background(), srv.URL)
	if !sourceerr.Is(err, sourceerr.KindRequest) {
		t.Fatalf("expected request error, got %v", err)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Fatalf("expected status code in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), srv.URL) {
		t.Fatalf("expected URL in message, got %q", err.Error())
	}
}

func TestGet_NoRetryOn5xx(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(502)
	}))
	defer srv.Close()

	c := &Client{Retry: RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}}
	if _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected error")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected exactly one attempt on 5xx, got %d", n)
	}
}

func TestGet_RetriesTransportErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Errorf("hijacking not supported")
				return
			}
			conn, _, err := hj.Hijack()
			if err == nil {
				_ = conn.Close()
			}
			return
		}
		_, _ = w.Write([]byte("second time lucky"))
	}))
	defer srv.Close()

	c := &Client{Retry: RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond}}
	body, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if body != "second time lucky" {
		t.Fatalf("unexpected body: %q", body)
	}
}

type failingTransport struct{ calls int32 }

func (f *failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	atomic.AddInt32(&f.calls, 1)
	return nil, errors.New("connection reset by peer")
}

func TestGet_CancelDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tr := &failingTransport{}
	c := &Client{
		HTTPClient: &http.Client{Transport: tr},
		Retry:      RetryPolicy{MaxAttempts: 3, BaseDelay: time.Hour},
	}
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	_, err := c.Get(ctx, "http://example.test/")
	if !sourceerr.Is(err, sourceerr.KindRequest) {
		t.Fatalf("expected request error, got %v", err)
	}
	if n := atomic.LoadInt32(&tr.calls); n != 1 {
		t.Fatalf("expected a single attempt, got %d", n)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("backoff ignored cancellation")
	}
}

func TestGet_TransportErrorWithoutRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := &Client{}
	_, err := c.Get(context.Background(), url)
	if !sourceerr.Is(err, sourceerr.KindRequest) {
		t.Fatalf("expected request error, got %v", err)
	}
}

func TestGet_TimeoutAborts(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := &Client{Timeout: 50 * time.Millisecond}
	start := time.Now()
	_, err := c.Get(context.Background(), srv.URL)
	if !sourceerr.Is(err, sourceerr.KindRequest) {
		t.Fatalf("expected request error, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded in chain, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("timeout not honored")
	}
}

func TestGet_TranscodesDeclaredCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=ISO-8859-1")
		_, _ = w.Write([]byte("caf\xe9"))
	}))
	defer srv.Close()

	c := &Client{}
	body, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != "café" {
		t.Fatalf("expected transcoded body, got %q", body)
	}
}

func TestGet_InvalidUTF8IsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte{0xff, 0xfe, 0xfd})
	}))
	defer srv.Close()

	c := &Client{}
	_, err := c.Get(context.Background(), srv.URL)
	if !sourceerr.Is(err, sourceerr.KindDecode) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestGet_UnknownCharsetIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=x-made-up")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := &Client{}
	_, err := c.Get(context.Background(), srv.URL)
	if !sourceerr.Is(err, sourceerr.KindDecode) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestRetryPolicy_Delay(t *testing.T) {
	p := RetryPolicy{BaseDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond}
	if d := p.delay(0); d != 100*time.Millisecond {
		t.Fatalf("retry 0: got %v", d)
	}
	if d := p.delay(1); d != 200*time.Millisecond {
		t.Fatalf("retry 1: got %v", d)
	}
	if d := p.delay(2); d != 300*time.Millisecond {
		t.Fatalf("retry 2 should be capped: got %v", d)
	}
	if d := (RetryPolicy{BaseDelay: time.Second}).delay(40); d != maxBackoff {
		t.Fatalf("overflowing retry should clamp to %v, got %v", maxBackoff, d)
	}
	if d := (RetryPolicy{BaseDelay: time.Hour}).delay(0); d != maxBackoff {
		t.Fatalf("uncapped policy should still clamp, got %v", d)
	}
	for retry := 0; retry < 100; retry++ {
		if d := (RetryPolicy{}).delay(retry); d <= 0 {
			t.Fatalf("retry %d: non-positive delay %v", retry, d)
		}
	}
	if n := (RetryPolicy{}).attempts(); n != 1 {
		t.Fatalf("zero policy should make one attempt, got %d", n)
	}
}
