package cache

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/playsv/playsv/internal/shared"
)

// prefetchRate bounds CACHE_URLS bulk prefetches, in requests per second.
const prefetchRate = 5.0

// State is the worker lifecycle state.
type State int

const (
	StateInstalling State = iota
	StateWaiting
	StateActive
	StateControlling
)

func (s State) String() string {
	switch s {
	case StateInstalling:
		return "installing"
	case StateWaiting:
		return "waiting"
	case StateActive:
		return "active"
	case StateControlling:
		return "controlling"
	default:
		return ""
	}
}

// Control message types accepted from the page.
const (
	ControlSkipWaiting = "SKIP_WAITING"
	ControlCacheURLs   = "CACHE_URLS"
)

// ControlMessage is a message posted to the worker over its control channel.
type ControlMessage struct {
	Type string   `json:"type"`
	URLs []string `json:"urls,omitempty"`
}

// State returns the worker's current lifecycle state.
func (w *Worker) State() State {
	return w.state
}

// Install fetches every manifest path and stores the results in the precache
// partition. The install is all-or-nothing: if any manifest entry is
// unfetchable nothing is stored and the worker stays in [StateInstalling],
// so a partially cached shell never ships.
func (w *Worker) Install(ctx context.Context, manifest []string) error {
	entries := make([]Entry, 0, len(manifest))

	for _, path := range manifest {
		target := w.origin.JoinPath(path).String()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return fmt.Errorf("%w: bad manifest entry %s: %v", shared.ErrPrecacheIncomplete, path, err)
		}

		resp, err := w.base.RoundTrip(req)
		if err != nil {
			return fmt.Errorf("%w: failed to fetch %s: %v", shared.ErrPrecacheIncomplete, path, err)
		}

		body, readErr := readAndClose(resp)
		if readErr != nil {
			return fmt.Errorf("%w: failed to read %s: %v", shared.ErrPrecacheIncomplete, path, readErr)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("%w: %s returned %d", shared.ErrPrecacheIncomplete, path, resp.StatusCode)
		}

		entries = append(entries, Entry{
			Method: http.MethodGet,
			URL:    target,
			Status: resp.StatusCode,
			Header: resp.Header.Clone(),
			Body:   body,
		})
	}

	if err := w.store.InstallPrecache(entries); err != nil {
		return err
	}

	w.state = StateWaiting
	w.logger.Infof("precache installed: %d assets (%s)", len(entries), w.store.PrecacheName())
	return nil
}

// Activate evicts every partition other than the current precache and runtime
// partitions and takes control immediately rather than waiting for a reload.
func (w *Worker) Activate() error {
	if err := w.store.Activate(); err != nil {
		return err
	}

	w.state = StateControlling
	w.logger.Info("worker activated and controlling")
	return nil
}

// SkipWaiting promotes a waiting worker to active without a reload.
func (w *Worker) SkipWaiting() {
	if w.state == StateWaiting {
		w.state = StateActive
		w.logger.Info("skip-waiting: worker active")
	}
}

// HandleControl processes a control message from the page. Messages are
// acknowledged only by their side effects; unknown types are logged and
// dropped.
func (w *Worker) HandleControl(ctx context.Context, msg ControlMessage) {
	switch msg.Type {
	case ControlSkipWaiting:
		w.SkipWaiting()
	case ControlCacheURLs:
		w.PrefetchURLs(ctx, msg.URLs)
	default:
		w.logger.Warnf("unknown control message type: %s", msg.Type)
	}
}

// PrefetchURLs fetches the given paths and fills the runtime partition with
// any successful responses. Best-effort and rate limited; failures are logged
// and skipped.
func (w *Worker) PrefetchURLs(ctx context.Context, urls []string) {
	for _, path := range urls {
		if err := w.limiter.Wait(ctx); err != nil {
			w.logger.Warnf("prefetch cancelled: %v", err)
			return
		}

		target := w.origin.JoinPath(path).String()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			w.logger.Warnf("prefetch skipped %s: %v", path, err)
			continue
		}

		resp, err := w.base.RoundTrip(req)
		if err != nil {
			w.logger.Warnf("prefetch failed %s: %v", path, err)
			continue
		}

		body, err := readAndClose(resp)
		if err != nil {
			w.logger.Warnf("prefetch read failed %s: %v", path, err)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			w.logger.Warnf("prefetch skipped %s: status %d", path, resp.StatusCode)
			continue
		}

		entry := Entry{
			Method: http.MethodGet,
			URL:    target,
			Status: resp.StatusCode,
			Header: resp.Header.Clone(),
			Body:   body,
		}
		if err := w.store.Put(entry); err != nil {
			w.logger.Warnf("prefetch store failed %s: %v", path, err)
		}
	}
}

func readAndClose(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
