package cache

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// policy identifies how the worker treats a request.
type policy int

const (
	passthrough policy = iota // not intercepted
	networkFirst              // network, synthesized error on failure
	cacheFirst                // cache, network fill, offline fallback
)

// unavailableBody is the synthesized body for API requests that fail while
// offline. Callers treat it identically to a real server error.
const unavailableBody = `{"error": "Service unavailable", "offline": true}`

// WorkerOpts contains configuration for creating a Worker.
type WorkerOpts struct {
	Base        http.RoundTripper // underlying transport, defaults to http.DefaultTransport
	Origin      string            // media server base URL; requests to other hosts pass through
	APIPrefix   string            // path namespace that is never cached (default "/api/")
	ChannelPath string            // realtime endpoint path (default "/ws")
	OfflinePage string            // fallback document path (default "/offline.html")
	Logger      *log.Logger
}

// Worker applies the offline cache policy to every request, dispatching on
// request shape. It implements [http.RoundTripper] so the rest of the client
// can use it as a plain HTTP transport.
type Worker struct {
	store       *Store
	base        http.RoundTripper
	origin      *url.URL
	apiPrefix   string
	channelPath string
	offlinePage string
	limiter     *rate.Limiter
	logger      *log.Logger

	state    State
	policies map[policy]func(*http.Request) (*http.Response, error)
}

// NewWorker creates a Worker over the given store. The returned worker starts
// in [StateInstalling]; call [Worker.Install] and [Worker.Activate] to bring
// it into service.
func NewWorker(store *Store, opts WorkerOpts) (*Worker, error) {
	if opts.Base == nil {
		opts.Base = http.DefaultTransport
	}
	if opts.APIPrefix == "" {
		opts.APIPrefix = "/api/"
	}
	if opts.ChannelPath == "" {
		opts.ChannelPath = "/ws"
	}
	if opts.OfflinePage == "" {
		opts.OfflinePage = "/offline.html"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	origin, err := url.Parse(opts.Origin)
	if err != nil {
		return nil, fmt.Errorf("failed to parse origin: %w", err)
	}

	w := &Worker{
		store:       store,
		base:        opts.Base,
		origin:      origin,
		apiPrefix:   opts.APIPrefix,
		channelPath: opts.ChannelPath,
		offlinePage: opts.OfflinePage,
		limiter:     rate.NewLimiter(rate.Limit(prefetchRate), 1),
		logger:      opts.Logger,
		state:       StateInstalling,
	}

	w.policies = map[policy]func(*http.Request) (*http.Response, error){
		passthrough:  w.base.RoundTrip,
		networkFirst: w.fetchNetworkFirst,
		cacheFirst:   w.fetchCacheFirst,
	}

	return w, nil
}

// Store returns the worker's backing store.
func (w *Worker) Store() *Store { return w.store }

// RoundTrip implements [http.RoundTripper].
func (w *Worker) RoundTrip(req *http.Request) (*http.Response, error) {
	return w.policies[w.classify(req)](req)
}

// classify picks a policy from the request shape.
func (w *Worker) classify(req *http.Request) policy {
	// Caching a streaming handshake is meaningless
	if req.URL.Scheme == "ws" || req.URL.Scheme == "wss" {
		return passthrough
	}

	// Cross-origin requests are not intercepted
	if req.URL.Host != w.origin.Host {
		return passthrough
	}

	path := req.URL.Path
	if strings.HasPrefix(path, w.apiPrefix) || path == w.channelPath {
		return networkFirst
	}

	return cacheFirst
}

// fetchNetworkFirst always goes to the network and synthesizes a structured
// 503 response on transport failure rather than failing the request.
func (w *Worker) fetchNetworkFirst(req *http.Request) (*http.Response, error) {
	resp, err := w.base.RoundTrip(req)
	if err != nil {
		w.logger.Warnf("network unavailable for %s %s: %v", req.Method, req.URL, err)
		return synthesizeUnavailable(req), nil
	}
	return resp, nil
}

// fetchCacheFirst serves from cache when possible, fills the runtime
// partition from successful network responses, and falls back to the cached
// offline document when the network is down and nothing matches.
func (w *Worker) fetchCacheFirst(req *http.Request) (*http.Response, error) {
	key := req.URL.String()

	if entry, err := w.store.Match(req.Method, key); err == nil {
		return entryResponse(entry, req), nil
	}

	resp, err := w.base.RoundTrip(req)
	if err != nil {
		if fallback := w.offlineFallback(req); fallback != nil {
			w.logger.Warnf("serving offline fallback for %s", key)
			return fallback, nil
		}
		return nil, err
	}

	// Only success responses are admitted to the runtime cache
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, nil
	}

	return w.fillRuntime(req, resp)
}

// fillRuntime reads the single-read response body once and materializes two
// independent copies: one persisted in the runtime partition, one returned to
// the caller.
func (w *Worker) fillRuntime(req *http.Request, resp *http.Response) (*http.Response, error) {
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	entry := Entry{
		Method:    req.Method,
		URL:       req.URL.String(),
		Partition: w.store.RuntimeName(),
		Status:    resp.StatusCode,
		Header:    resp.Header.Clone(),
		Body:      append([]byte(nil), body...),
	}
	if err := w.store.Put(entry); err != nil {
		// A failed fill never fails the request
		w.logger.Warnf("failed to fill runtime cache for %s: %v", entry.URL, err)
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))
	return resp, nil
}

// offlineFallback returns the cached offline document, or nil when none is
// stored.
func (w *Worker) offlineFallback(req *http.Request) *http.Response {
	fallbackURL := w.origin.JoinPath(w.offlinePage).String()
	entry, err := w.store.Match(http.MethodGet, fallbackURL)
	if err != nil {
		return nil
	}
	return entryResponse(entry, req)
}

// entryResponse converts a stored entry back into an *http.Response.
func entryResponse(entry *Entry, req *http.Request) *http.Response {
	header := entry.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		StatusCode:    entry.Status,
		Status:        fmt.Sprintf("%d %s", entry.Status, http.StatusText(entry.Status)),
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(entry.Body)),
		ContentLength: int64(len(entry.Body)),
		Request:       req,
	}
}

// synthesizeUnavailable builds the structured 503 JSON response returned when
// an API request cannot reach the network.
func synthesizeUnavailable(req *http.Request) *http.Response {
	body := []byte(unavailableBody)
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode:    http.StatusServiceUnavailable,
		Status:        "503 Service Unavailable",
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}
