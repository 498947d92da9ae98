// Package media turns media objects into URLs the remote messaging API can
// download from.
package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oggyb/greenapi-notifier/internal/cache"
)

// MimeImage is the representation requested for notification images.
const MimeImage = "image/*"

var (
	// ErrEmptyMedia is returned when a media object carries neither a URL nor data.
	ErrEmptyMedia = errors.New("media: empty media object")
	// ErrUnsupportedMedia is returned when the media cannot be converted to the requested type.
	ErrUnsupportedMedia = errors.New("media: unsupported media type")
	// ErrTooLarge is returned when the media data exceeds the configured limit.
	ErrTooLarge = errors.New("media: object too large")
	// ErrNotFound is returned when a stored media object is missing or expired.
	ErrNotFound = errors.New("media: not found")
)

// Media is either a plain URL or an inline object with its MIME type.
type Media struct {
	URL      string `json:"url,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Data     []byte `json:"data,omitempty"`
}

// IsURL reports whether the media is already a fetchable URL.
func (m *Media) IsURL() bool {
	return m != nil && m.URL != ""
}

// Resolver converts media objects into fetchable URLs.
type Resolver interface {
	ConvertToURL(ctx context.Context, m *Media, mimeType string) (string, error)
}

// CacheResolver keeps media objects in the cache for ttl and serves them
// under {publicBaseURL}/media/{id}.
type CacheResolver struct {
	cache         cache.Cache
	publicBaseURL string
	ttl           time.Duration
	maxBytes      int
}

var _ Resolver = (*CacheResolver)(nil)

// NewCacheResolver creates a resolver. A zero ttl defaults to one hour and
// a zero maxBytes disables the size limit.
func NewCacheResolver(c cache.Cache, publicBaseURL string, ttl time.Duration, maxBytes int) *CacheResolver {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CacheResolver{
		cache:         c,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		ttl:           ttl,
		maxBytes:      maxBytes,
	}
}

// ConvertToURL returns m.URL unchanged for URL media. Inline objects must
// match mimeType by their sniffed content; they are stored and their public
// URL is returned.
func (r *CacheResolver) ConvertToURL(ctx context.Context, m *Media, mimeType string) (string, error) {
	if m == nil {
		return "", ErrEmptyMedia
	}
	if m.IsURL() {
		return m.URL, nil
	}
	if len(m.Data) == 0 {
		return "", ErrEmptyMedia
	}
	if r.maxBytes > 0 && len(m.Data) > r.maxBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, len(m.Data))
	}

	actual, err := contentType(m)
	if err != nil {
		return "", err
	}
	if !MatchMime(mimeType, actual) {
		return "", fmt.Errorf("%w: %s is not %s", ErrUnsupportedMedia, actual, mimeType)
	}

	stored, err := json.Marshal(Media{MimeType: actual, Data: m.Data})
	if err != nil {
		return "", fmt.Errorf("media: failed to encode object: %w", err)
	}

	id := uuid.NewString()
	if err := r.cache.Set(ctx, cache.MediaObjects.Key(id), string(stored), r.ttl); err != nil {
		return "", fmt.Errorf("media: failed to store object: %w", err)
	}

	return fmt.Sprintf("%s/media/%s", r.publicBaseURL, id), nil
}

// contentType sniffs the object's data. A declared MIME type must agree with
// the sniffed one.
func contentType(m *Media) (string, error) {
	sniffed := http.DetectContentType(m.Data)
	base, _, _ := mime.ParseMediaType(sniffed)
	if base == "" || base == "image/svg+xml" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMedia, sniffed)
	}
	if m.MimeType == "" {
		return base, nil
	}

	declared, _, err := mime.ParseMediaType(m.MimeType)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMedia, m.MimeType)
	}
	if declared != base {
		return "", fmt.Errorf("%w: declared %s but data is %s", ErrUnsupportedMedia, declared, base)
	}
	return base, nil
}

// Load returns a stored media object.
func (r *CacheResolver) Load(ctx context.Context, id string) (*Media, error) {
	raw, err := r.cache.Get(ctx, cache.MediaObjects.Key(id))
	if errors.Is(err, cache.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("media: failed to load %s: %w", id, err)
	}

	var m Media
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("media: failed to decode %s: %w", id, err)
	}
	return &m, nil
}

// MatchMime reports whether actual satisfies pattern. Patterns may be exact
// ("image/png"), a wildcard subtype ("image/*") or "*/*".
func MatchMime(pattern, actual string) bool {
	if pattern == "" || pattern == "*/*" {
		return true
	}
	mt, _, err := mime.ParseMediaType(actual)
	if err != nil {
		return false
	}
	if base, ok := strings.CutSuffix(pattern, "/*"); ok {
		return strings.HasPrefix(mt, base+"/")
	}
	return mt == pattern
}
