package asset

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/certifyme/certrender/pkg/buildinfo"
	"github.com/certifyme/certrender/pkg/cache"
	"github.com/certifyme/certrender/pkg/errors"
	"github.com/certifyme/certrender/pkg/observability"
)

// Fetcher retrieves the bytes behind a resolved URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (data []byte, contentType string, err error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) ([]byte, string, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	return f(ctx, url)
}

// MaxAssetSize bounds a single downloaded asset.
const MaxAssetSize = 10 << 20

// DefaultTimeout bounds a single download.
const DefaultTimeout = 15 * time.Second

// HTTPFetcher downloads assets over HTTP and optionally caches the bytes.
type HTTPFetcher struct {
	Client *http.Client
	Cache  cache.Cache
	Keyer  cache.Keyer
	TTL    time.Duration
}

// NewHTTPFetcher creates a fetcher with the given timeout and cache.
// A nil cache disables caching.
func NewHTTPFetcher(timeout time.Duration, c cache.Cache) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	return &HTTPFetcher{
		Client: &http.Client{Timeout: timeout},
		Cache:  c,
		Keyer:  cache.NewDefaultKeyer(),
		TTL:    cache.TTLAsset,
	}
}

type cachedAsset struct {
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// Fetch downloads url. data: URLs are decoded locally; blob: handles only
// exist inside the browser that created them and always fail here.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	switch {
	case hasPrefixFold(url, "data:"):
		return DecodeDataURI(url)
	case hasPrefixFold(url, "blob:"):
		return nil, "", errors.New(errors.ErrCodeUnsupported, "blob handle %q cannot be fetched outside the browser", url)
	}
	if err := errors.ValidateURL(url); err != nil {
		return nil, "", err
	}

	key := f.Keyer.AssetKey(url)
	if raw, hit, err := f.Cache.Get(ctx, key); err == nil && hit {
		var a cachedAsset
		if json.Unmarshal(raw, &a) == nil {
			observability.Cache().OnCacheHit(ctx, "asset")
			return a.Data, a.ContentType, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "asset")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", url)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := f.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		return nil, "", errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, "", errors.Wrap(errors.ErrCodeAssetNotFound, cache.ErrNotFound, "fetch %s", url)
	case resp.StatusCode >= 400:
		return nil, "", errors.Wrap(errors.ErrCodeNetwork, cache.ErrNetwork, "fetch %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxAssetSize+1))
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url)
	}
	if len(data) > MaxAssetSize {
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "asset %s exceeds %d bytes", url, MaxAssetSize)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || strings.HasPrefix(contentType, "application/octet-stream") {
		contentType = http.DetectContentType(data)
	}
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}

	if raw, err := json.Marshal(cachedAsset{ContentType: contentType, Data: data}); err == nil {
		if f.Cache.Set(ctx, key, raw, f.TTL) == nil {
			observability.Cache().OnCacheSet(ctx, "asset", len(raw))
		}
	}
	return data, contentType, nil
}

// DataURI encodes data as a base64 data URI.
func DataURI(contentType string, data []byte) string {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI decodes a data URI ("data:[<type>][;base64],<payload>").
func DecodeDataURI(uri string) ([]byte, string, error) {
	if !hasPrefixFold(uri, "data:") {
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "not a data URI")
	}
	meta, payload, ok := strings.Cut(uri[len("data:"):], ",")
	if !ok {
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "malformed data URI")
	}

	contentType := "text/plain"
	isBase64 := false
	for i, part := range strings.Split(meta, ";") {
		switch {
		case i == 0 && part != "":
			contentType = part
		case strings.EqualFold(part, "base64"):
			isBase64 = true
		}
	}

	if !isBase64 {
		if p, err := neturl.PathUnescape(payload); err == nil {
			payload = p
		}
		return []byte(payload), contentType, nil
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode data URI: %w", err)
	}
	return data, contentType, nil
}
