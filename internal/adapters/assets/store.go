// Package assets serves the static web bundle of the game client.
package assets

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/jellydator/ttlcache/v3"
	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports"
	"go.trai.ch/zerr"
)

//go:embed static
var static embed.FS

// EmbeddedFS returns the bundle compiled into the binary.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var (
	_ ports.Lifecycle       = (*Store)(nil)
	_ ports.HealthIndicator = (*Store)(nil)
)

// Store reads bundle files and caches them with their digests.
type Store struct {
	fsys  fs.FS
	ttl   time.Duration
	cache *ttlcache.Cache[string, *domain.Asset]

	mu      sync.Mutex
	running bool
}

// NewStore opens the bundle configured by settings: web.static-dir when set,
// the embedded bundle otherwise.
func NewStore(settings domain.WebSettings) (*Store, error) {
	fsys := EmbeddedFS()
	if settings.StaticDir != "" {
		fsys = os.DirFS(settings.StaticDir)
	}
	return NewStoreFS(fsys, settings.CacheTTL)
}

// NewStoreFS opens a bundle rooted at fsys. A ttl of zero disables caching.
func NewStoreFS(fsys fs.FS, ttl time.Duration) (*Store, error) {
	if _, err := fs.Stat(fsys, domain.IndexDocument); err != nil {
		return nil, zerr.Wrap(err, domain.ErrAssetBundleInvalid.Error())
	}

	s := &Store{fsys: fsys, ttl: ttl}
	if ttl > 0 {
		s.cache = ttlcache.New[string, *domain.Asset](
			ttlcache.WithTTL[string, *domain.Asset](ttl),
		)
	}
	return s, nil
}

// Name identifies the store in logs.
func (s *Store) Name() string {
	return "assets"
}

// Start runs the cache expiry loop.
func (s *Store) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return zerr.With(domain.ErrAlreadyStarted, "component", s.Name())
	}
	if s.cache != nil {
		go s.cache.Start()
	}
	s.running = true
	return nil
}

// Stop ends the cache expiry loop and drops cached entries.
func (s *Store) Stop(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	if s.cache != nil {
		s.cache.Stop()
		s.cache.DeleteAll()
	}
	s.running = false
	return nil
}

// Health reports DOWN if the index document disappeared.
func (s *Store) Health(_ context.Context) domain.Health {
	if _, err := fs.Stat(s.fsys, domain.IndexDocument); err != nil {
		return domain.Down(err)
	}
	details := map[string]any{"cache": s.ttl > 0}
	if s.cache != nil {
		details["cached"] = s.cache.Len()
	}
	return domain.Up(details)
}

// Get returns the asset for a request path. Directory paths resolve to their index document.
// Missing files yield domain.ErrAssetNotFound.
func (s *Store) Get(requestPath string) (*domain.Asset, error) {
	name, err := s.resolve(requestPath)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if item := s.cache.Get(name); item != nil {
			return item.Value(), nil
		}
	}

	asset, err := s.read(name)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(name, asset, ttlcache.DefaultTTL)
	}
	return asset, nil
}

// Invalidate drops the cached copy of name, which is relative to the bundle root.
func (s *Store) Invalidate(name string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(path.Clean(strings.TrimPrefix(name, "/")))
}

func (s *Store) resolve(requestPath string) (string, error) {
	name := path.Clean("/" + requestPath)[1:]
	if name == "" {
		return domain.IndexDocument, nil
	}
	if !fs.ValidPath(name) {
		return "", domain.ErrAssetNotFound
	}

	info, err := fs.Stat(s.fsys, name)
	if err != nil {
		return "", domain.ErrAssetNotFound
	}
	if info.IsDir() {
		return path.Join(name, domain.IndexDocument), nil
	}
	return name, nil
}

func (s *Store) read(name string) (*domain.Asset, error) {
	info, err := fs.Stat(s.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrAssetNotFound
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to stat asset"), "path", name)
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read asset"), "path", name)
	}

	return &domain.Asset{
		Name:        name,
		ContentType: contentType(name, data),
		ETag:        ETag(data),
		ModTime:     info.ModTime(),
		Data:        data,
	}, nil
}

// ETag returns the strong entity tag for data.
func ETag(data []byte) string {
	return `"` + strconv.FormatUint(xxhash.Sum64(data), 16) + `"`
}

func contentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}
