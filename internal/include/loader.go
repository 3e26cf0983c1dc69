package include

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"uwscript/internal/source"
)

var (
	// ErrNotFound is returned when a call target does not exist.
	ErrNotFound = errors.New("script not found")
	// ErrFetch is returned when a URI target cannot be fetched.
	ErrFetch = errors.New("fetch failed")
)

// DefaultTimeout bounds one URI fetch.
const DefaultTimeout = 15 * time.Second

// DefaultMaxRemoteSize bounds the body of one URI fetch.
const DefaultMaxRemoteSize = 16 << 20

// Loader returns the raw bytes of a call target.
type Loader interface {
	Load(ctx context.Context, location string) ([]byte, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, location string) ([]byte, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, location string) ([]byte, error) {
	return f(ctx, location)
}

// FileLoader reads targets from the local filesystem.
type FileLoader struct{}

// Load implements Loader.
func (FileLoader) Load(_ context.Context, location string) ([]byte, error) {
	// #nosec G304 -- location comes from the script being parsed
	raw, err := os.ReadFile(location)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", location, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", location, err)
	}
	return raw, nil
}

// HTTPLoader fetches URI targets with a blocking GET.
type HTTPLoader struct {
	Client *http.Client
	// MaxSize: наибольший размер ответа в байтах, 0 значит DefaultMaxRemoteSize.
	MaxSize int64
}

// NewHTTPLoader creates a loader whose requests time out after timeout
// (DefaultTimeout when zero).
func NewHTTPLoader(timeout time.Duration) *HTTPLoader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPLoader{Client: &http.Client{Timeout: timeout}}
}

// Load implements Loader. Any non-2xx status is an error; there is no retry.
func (l *HTTPLoader) Load(ctx context.Context, location string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", location, ErrFetch, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", location, ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: %w: http %d", location, ErrFetch, resp.StatusCode)
	}
	limit := l.MaxSize
	if limit <= 0 {
		limit = DefaultMaxRemoteSize
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", location, ErrFetch, err)
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%s: %w: response is larger than %d bytes", location, ErrFetch, limit)
	}
	return b, nil
}

// Script is a loaded call target.
type Script struct {
	Target Target
	// Content is decoded text for scripts and raw bytes for binaries.
	Content []byte
	Flags   source.FileFlags
}

// Fetcher loads call targets: paths through Files, URIs through Web.
type Fetcher struct {
	Files Loader
	Web   Loader
}

// NewFetcher returns a Fetcher over the local filesystem and HTTP.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{Files: FileLoader{}, Web: NewHTTPLoader(timeout)}
}

// Fetch loads t and, unless it is a precompiled program, decodes it to
// UTF-8 with "\n" line endings.
func (f *Fetcher) Fetch(ctx context.Context, t Target) (Script, error) {
	loader, flags := f.Files, source.FileFlags(0)
	if t.Kind == KindURI {
		loader, flags = f.Web, source.FileRemote|source.FileVirtual
	}
	if loader == nil {
		return Script{}, fmt.Errorf("%s: %w", t.Location, ErrNotFound)
	}
	raw, err := loader.Load(ctx, t.Location)
	if err != nil {
		return Script{}, err
	}
	if t.IsBinary() {
		return Script{Target: t, Content: raw, Flags: flags}, nil
	}
	content, decFlags, err := source.Decode(raw)
	if err != nil {
		return Script{}, fmt.Errorf("%s: %w", t.Location, err)
	}
	return Script{Target: t, Content: content, Flags: flags | decFlags}, nil
}
