package store

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/drugbank/pkg/domain/types"
)

// Store is a versioned on-disk download cache. A URL is fetched at most once
// per cache path; later calls reuse the local file unless forced. A file is
// published into the cache only after the transfer completed, so a cache path
// never holds a partially written download.
type Store struct {
	root   string
	client *http.Client
}

// Option is a functional option for Store configuration
type Option func(*Store)

// WithRoot sets the cache root directory
func WithRoot(root string) Option {
	return func(s *Store) {
		s.root = root
	}
}

// WithHTTPClient replaces the HTTP client used for downloads
func WithHTTPClient(client *http.Client) Option {
	return func(s *Store) {
		s.client = client
	}
}

// New creates a download cache. The root is taken from WithRoot, then
// $DRUGBANK_HOME, then <user cache dir>/drugbank.
func New(opts ...Option) (*Store, error) {
	s := &Store{
		client: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.root == "" {
		s.root = os.Getenv("DRUGBANK_HOME")
	}
	if s.root == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve user cache directory")
		}
		s.root = filepath.Join(dir, types.AppName)
	}

	return s, nil
}

// Root returns the cache root directory
func (s *Store) Root() string {
	return s.root
}

type ensureConfig struct {
	username string
	password string
	force    bool
}

// EnsureOption is a functional option for a single Ensure call
type EnsureOption func(*ensureConfig)

// WithBasicAuth sets HTTP basic auth credentials for the download request
func WithBasicAuth(username, password string) EnsureOption {
	return func(c *ensureConfig) {
		c.username = username
		c.password = password
	}
}

// WithForce re-downloads even if the cache path already exists
func WithForce(force bool) EnsureOption {
	return func(c *ensureConfig) {
		c.force = force
	}
}

// Ensure returns the local path <root>/<segments...>/<name>, downloading url
// into it first unless the file is already present. No network I/O happens on
// a cache hit.
func (s *Store) Ensure(ctx context.Context, url, name string, segments []string, opts ...EnsureOption) (string, error) {
	cfg := &ensureConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	dir := filepath.Join(append([]string{s.root}, segments...)...)
	path := filepath.Join(dir, name)

	if !cfg.force {
		if _, err := os.Stat(path); err == nil {
			ctxlog.From(ctx).Debug("cache hit", "path", path)
			return path, nil
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", goerr.Wrap(err, "failed to create cache directory", goerr.V("dir", dir))
	}

	if err := s.download(ctx, url, path, cfg); err != nil {
		return "", err
	}

	return path, nil
}

// download streams url into dst. The body is written to a uuid-suffixed temp
// file next to dst and renamed on success, so dst appears atomically.
func (s *Store) download(ctx context.Context, url, dst string, cfg *ensureConfig) error {
	logger := ctxlog.From(ctx)
	logger.Info("downloading", "url", url, "dst", dst)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create download request", goerr.V("url", url))
	}
	if cfg.username != "" || cfg.password != "" {
		req.SetBasicAuth(cfg.username, cfg.password)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to download", goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return goerr.New("unexpected status code",
			goerr.V("status", resp.StatusCode),
			goerr.V("url", url),
		)
	}

	tmp := dst + "." + uuid.NewString() + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return goerr.Wrap(err, "failed to create temp file", goerr.V("path", tmp))
	}

	written, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return goerr.Wrap(err, "failed to write download", goerr.V("path", tmp), goerr.V("url", url))
	}

	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return goerr.Wrap(err, "failed to publish download", goerr.V("path", dst))
	}

	logger.Info("download complete", "bytes", written, "dst", dst)
	return nil
}
