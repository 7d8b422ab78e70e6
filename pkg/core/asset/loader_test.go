package asset

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// gatedFetcher blocks every fetch until release is closed.
type gatedFetcher struct {
	release chan struct{}
	mu      sync.Mutex
	calls   map[string]int
	fail    map[string]bool
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{release: make(chan struct{}), calls: map[string]int{}, fail: map[string]bool{}}
}

func (f *gatedFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	f.mu.Lock()
	f.calls[url]++
	fail := f.fail[url]
	f.mu.Unlock()

	select {
	case <-f.release:
	case <-ctx.Done():
		return nil, "", ctx.Err()
	}
	if fail {
		return nil, "", errors.New("boom")
	}
	return []byte("\x89PNG\r\n\x1a\n"), "image/png", nil
}

func (f *gatedFetcher) count(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func TestLoaderNonBlocking(t *testing.T) {
	f := newGatedFetcher()
	l := NewLoader(f)
	defer l.Close()

	const url = "https://cdn.example.com/logo.png"
	if _, ok := l.Image(url); ok {
		t.Fatal("image should not be ready before the fetch completes")
	}
	if l.State(url) != StatePending {
		t.Errorf("State = %v, want pending", l.State(url))
	}

	close(f.release)
	if err := l.Wait(context.Background(), url); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	href, ok := l.Image(url)
	if !ok {
		t.Fatal("image should be ready after Wait")
	}
	if !strings.HasPrefix(href, "data:image/png;base64,") {
		t.Errorf("href = %q, want png data URI", href)
	}
}

func TestLoaderSingleAttempt(t *testing.T) {
	f := newGatedFetcher()
	const url = "https://cdn.example.com/missing.png"
	f.fail[url] = true
	close(f.release)

	l := NewLoader(f)
	defer l.Close()

	for i := 0; i < 5; i++ {
		l.Image(url)
	}
	if err := l.Wait(context.Background(), url); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	l.Image(url)

	if l.State(url) != StateFailed {
		t.Errorf("State = %v, want failed", l.State(url))
	}
	if l.Err(url) == nil {
		t.Error("Err should report the failure")
	}
	if n := f.count(url); n != 1 {
		t.Errorf("fetch called %d times, want 1", n)
	}
	if _, ok := l.Image(url); ok {
		t.Error("failed image must render as absent")
	}
}

func TestLoaderWatch(t *testing.T) {
	f := newGatedFetcher()
	l := NewLoader(f)
	defer l.Close()

	got := make(chan State, 1)
	cancel := l.Watch(func(url string, s State) { got <- s })
	defer cancel()

	l.Request("https://cdn.example.com/a.png")
	close(f.release)

	select {
	case s := <-got:
		if s != StateReady {
			t.Errorf("notified state = %v, want ready", s)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher was not notified")
	}
}

func TestLoaderWatchCancel(t *testing.T) {
	f := newGatedFetcher()
	l := NewLoader(f)
	defer l.Close()

	var mu sync.Mutex
	calls := 0
	cancel := l.Watch(func(string, State) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	const url = "https://cdn.example.com/late.png"
	l.Request(url)
	cancel()
	cancel() // idempotent
	close(f.release)

	if err := l.Wait(context.Background(), url); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 0 {
		t.Errorf("cancelled watcher called %d times", calls)
	}
}

func TestLoaderClose(t *testing.T) {
	f := newGatedFetcher()
	l := NewLoader(f)

	called := make(chan struct{}, 1)
	l.Watch(func(string, State) { called <- struct{}{} })

	const url = "https://cdn.example.com/slow.png"
	l.Request(url)
	l.Close()

	if err := l.Wait(context.Background(), url); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if l.State(url) != StateFailed {
		t.Errorf("State after Close = %v, want failed", l.State(url))
	}

	select {
	case <-called:
		t.Error("watcher notified after Close")
	case <-time.After(50 * time.Millisecond):
	}

	if _, ok := l.Image("https://cdn.example.com/after-close.png"); ok {
		t.Error("closed loader must not produce images")
	}
	l.Close() // idempotent
}

func TestLoaderDataURI(t *testing.T) {
	l := NewLoader(FetcherFunc(func(context.Context, string) ([]byte, string, error) {
		t.Fatal("data URIs must not be fetched")
		return nil, "", nil
	}))
	defer l.Close()

	const uri = "data:image/png;base64,iVBORw0KGgo="
	href, ok := l.Image(uri)
	if !ok || href != uri {
		t.Errorf("Image(data) = %q, %v", href, ok)
	}

	if _, ok := l.Image("data:image/png;base64,!!!"); ok {
		t.Error("malformed data URI should fail")
	}
}

func TestLoaderWaitContext(t *testing.T) {
	f := newGatedFetcher()
	l := NewLoader(f)
	defer l.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "https://cdn.example.com/never.png"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait = %v, want deadline exceeded", err)
	}
}
