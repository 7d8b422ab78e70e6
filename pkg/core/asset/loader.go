package asset

import (
	"context"
	"sync"
	"time"

	"github.com/certifyme/certrender/pkg/observability"
)

// State is the load state of one URL.
type State int

const (
	StateUnknown State = iota // never requested
	StatePending
	StateReady
	StateFailed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

type entry struct {
	state State
	href  string
	err   error
	done  chan struct{}
}

// watcher serializes delivery against cancellation: once cancel returns,
// fn is never called again.
type watcher struct {
	mu   sync.Mutex
	dead bool
	fn   func(url string, state State)
}

// Loader loads assets in the background and implements [Source].
// It is safe for concurrent use.
type Loader struct {
	fetcher Fetcher
	ctx     context.Context
	cancel  context.CancelFunc

	mu       sync.Mutex
	entries  map[string]*entry
	watchers map[int]*watcher
	nextID   int
	closed   bool
}

// NewLoader creates a loader that fetches through f.
func NewLoader(f Fetcher) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		fetcher:  f,
		ctx:      ctx,
		cancel:   cancel,
		entries:  make(map[string]*entry),
		watchers: make(map[int]*watcher),
	}
}

// Image returns the embeddable href for url when it has loaded. An
// unrequested url starts loading and reports false.
func (l *Loader) Image(url string) (string, bool) {
	if url == "" {
		return "", false
	}
	e := l.request(url)
	l.mu.Lock()
	defer l.mu.Unlock()
	if e.state == StateReady {
		return e.href, true
	}
	return "", false
}

// Request starts loading every url that has not been requested yet.
func (l *Loader) Request(urls ...string) {
	for _, u := range urls {
		if u != "" {
			l.request(u)
		}
	}
}

// State reports the load state of url.
func (l *Loader) State(url string) State {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.entries[url]; ok {
		return e.state
	}
	return StateUnknown
}

// Err returns the error a failed load ended with.
func (l *Loader) Err(url string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.entries[url]; ok {
		return e.err
	}
	return nil
}

// Watch registers fn to be called whenever a load settles. The returned
// cancel detaches fn; after it returns fn is not called again. cancel must
// not be called from inside fn.
func (l *Loader) Watch(fn func(url string, state State)) (cancel func()) {
	w := &watcher{fn: fn}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return func() {}
	}
	id := l.nextID
	l.nextID++
	l.watchers[id] = w
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.watchers, id)
			l.mu.Unlock()

			w.mu.Lock()
			w.dead = true
			w.mu.Unlock()
		})
	}
}

// Wait requests urls and blocks until each has settled or ctx is done.
// Failed loads are not errors; only ctx cancellation is reported.
func (l *Loader) Wait(ctx context.Context, urls ...string) error {
	for _, u := range urls {
		if u == "" {
			continue
		}
		e := l.request(u)
		select {
		case <-e.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Close cancels in-flight loads and detaches every watcher. Loads that
// settle afterwards are discarded.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	ws := l.watchers
	l.watchers = map[int]*watcher{}
	l.mu.Unlock()

	for _, w := range ws {
		w.mu.Lock()
		w.dead = true
		w.mu.Unlock()
	}
	l.cancel()
}

func (l *Loader) request(url string) *entry {
	l.mu.Lock()
	if e, ok := l.entries[url]; ok {
		l.mu.Unlock()
		return e
	}
	e := &entry{state: StatePending, done: make(chan struct{})}
	l.entries[url] = e
	closed := l.closed
	l.mu.Unlock()

	if closed {
		l.settle(url, e, "", context.Canceled, false)
		return e
	}

	// data: URIs need no fetch. They settle before the caller returns, so
	// there is nothing to notify about.
	if hasPrefixFold(url, "data:") {
		if _, _, err := DecodeDataURI(url); err != nil {
			l.settle(url, e, "", err, false)
		} else {
			l.settle(url, e, url, nil, false)
		}
		return e
	}

	go l.load(url, e)
	return e
}

func (l *Loader) load(url string, e *entry) {
	ctx := l.ctx
	observability.Asset().OnAssetRequest(ctx, url)
	start := time.Now()

	data, contentType, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		observability.Asset().OnAssetFailed(ctx, url, err)
		l.settle(url, e, "", err, true)
		return
	}
	observability.Asset().OnAssetLoaded(ctx, url, len(data), time.Since(start))
	l.settle(url, e, DataURI(contentType, data), nil, true)
}

func (l *Loader) settle(url string, e *entry, href string, err error, notify bool) {
	l.mu.Lock()
	if err != nil {
		e.state, e.err = StateFailed, err
	} else {
		e.state, e.href = StateReady, href
	}
	close(e.done)
	var ws []*watcher
	if notify && !l.closed {
		ws = make([]*watcher, 0, len(l.watchers))
		for _, w := range l.watchers {
			ws = append(ws, w)
		}
	}
	state := e.state
	l.mu.Unlock()

	for _, w := range ws {
		w.mu.Lock()
		if !w.dead {
			w.fn(url, state)
		}
		w.mu.Unlock()
	}
}

// Ensure Loader implements Source.
var _ Source = (*Loader)(nil)
