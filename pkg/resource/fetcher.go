package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	parse "github.com/tdewolff/parse/v2"
	"go.uber.org/zap"
)

const (
	DefaultUserAgent    = "l14lite/1.0 (compatible; Go)"
	DefaultMaxRedirects = 10
	DefaultTimeout      = 30 * time.Second
)

var (
	ErrUnsupportedScheme = errors.New("unsupported scheme")
	ErrTooManyRedirects  = errors.New("too many redirects")
)

// Response is a fetched resource. Header names are lower-cased.
type Response struct {
	Headers map[string]string
	Body    string
}

// Fetcher retrieves resources by absolute URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Response, error)
}

type cacheEntry struct {
	resp    *Response
	expires time.Time
}

// DefaultFetcher fetches http, https, file and data URLs. HTTP responses
// marked "cache-control: max-age=N" are kept for N seconds.
type DefaultFetcher struct {
	client       *http.Client
	userAgent    string
	maxRedirects int
	log          *zap.Logger
	now          func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type FetcherOption func(*DefaultFetcher)

func WithTimeout(d time.Duration) FetcherOption {
	return func(f *DefaultFetcher) { f.client.Timeout = d }
}

func WithUserAgent(ua string) FetcherOption {
	return func(f *DefaultFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

func WithMaxRedirects(n int) FetcherOption {
	return func(f *DefaultFetcher) { f.maxRedirects = n }
}

func WithLogger(log *zap.Logger) FetcherOption {
	return func(f *DefaultFetcher) {
		if log != nil {
			f.log = log
		}
	}
}

// WithTransport replaces the HTTP transport, mostly for tests.
func WithTransport(rt http.RoundTripper) FetcherOption {
	return func(f *DefaultFetcher) { f.client.Transport = rt }
}

func NewFetcher(opts ...FetcherOption) *DefaultFetcher {
	f := &DefaultFetcher{
		client:       &http.Client{Timeout: DefaultTimeout},
		userAgent:    DefaultUserAgent,
		maxRedirects: DefaultMaxRedirects,
		log:          zap.NewNop(),
		now:          time.Now,
		cache:        make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) > f.maxRedirects {
			return ErrTooManyRedirects
		}
		req.Header.Set("User-Agent", f.userAgent)
		return nil
	}
	f.log = f.log.Named("fetcher")
	return f
}

// Fetch retrieves rawURL. Non-2xx HTTP responses are errors.
func (f *DefaultFetcher) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	scheme, _, ok := strings.Cut(rawURL, ":")
	if !ok {
		return nil, fmt.Errorf("fetching %q: %w", rawURL, ErrUnsupportedScheme)
	}
	switch strings.ToLower(scheme) {
	case "data":
		return fetchData(rawURL)
	case "file":
		return fetchFile(rawURL)
	case "http", "https":
		if resp, ok := f.cached(rawURL); ok {
			f.log.Debug("Cache hit", zap.String("url", rawURL))
			return resp, nil
		}
		return f.fetchHTTP(ctx, rawURL)
	}
	return nil, fmt.Errorf("fetching %q: %w", rawURL, ErrUnsupportedScheme)
}

func fetchData(rawURL string) (*Response, error) {
	mediatype, data, err := parse.DataURI([]byte(rawURL))
	if err != nil {
		return nil, fmt.Errorf("decoding data URL: %w", err)
	}
	return &Response{
		Headers: map[string]string{"content-type": string(mediatype)},
		Body:    string(data),
	}, nil
}

func fetchFile(rawURL string) (*Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing file URL: %w", err)
	}
	data, err := os.ReadFile(u.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", u.Path, err)
	}
	return &Response{Headers: map[string]string{}, Body: string(data)}, nil
}

func (f *DefaultFetcher) fetchHTTP(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	out := &Response{
		Headers: make(map[string]string, len(resp.Header)),
		Body:    string(body),
	}
	for k, v := range resp.Header {
		out.Headers[strings.ToLower(k)] = strings.Join(v, ", ")
	}

	f.log.Debug("Fetched",
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))

	if resp.StatusCode == http.StatusOK {
		if age, ok := maxAge(out.Headers["cache-control"]); ok {
			f.store(rawURL, out, age)
		}
	}
	return out, nil
}

// maxAge extracts max-age from a cache-control value. no-store and
// unknown directives disable caching.
func maxAge(cc string) (time.Duration, bool) {
	if cc == "" {
		return 0, false
	}
	var age time.Duration
	found := false
	for _, d := range strings.Split(cc, ",") {
		d = strings.ToLower(strings.TrimSpace(d))
		switch {
		case d == "no-store":
			return 0, false
		case strings.HasPrefix(d, "max-age="):
			n, err := strconv.Atoi(strings.TrimPrefix(d, "max-age="))
			if err != nil || n <= 0 {
				return 0, false
			}
			age = time.Duration(n) * time.Second
			found = true
		}
	}
	return age, found
}

func (f *DefaultFetcher) cached(rawURL string) (*Response, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.cache[rawURL]
	if !ok {
		return nil, false
	}
	if !f.now().Before(e.expires) {
		delete(f.cache, rawURL)
		return nil, false
	}
	return e.resp, true
}

func (f *DefaultFetcher) store(rawURL string, resp *Response, age time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cache[rawURL] = cacheEntry{resp: resp, expires: f.now().Add(age)}
}

// FetchStyleSheet fetches a stylesheet and rejects responses whose content
// type is neither text nor CSS.
func FetchStyleSheet(ctx context.Context, f Fetcher, rawURL string) (string, error) {
	resp, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	ct := strings.ToLower(resp.Headers["content-type"])
	if ct != "" && !strings.HasPrefix(ct, "text/") && !strings.Contains(ct, "css") {
		return "", fmt.Errorf("unexpected content type for CSS: %s", ct)
	}
	return resp.Body, nil
}
