// Package resource loads specification documents addressed by URI.
//
// Accepted forms are file:, classpath:, http: and https: URIs, plus bare
// paths. A classpath resource is searched in the configured fs.FS first and
// then in each class path directory, in order. A bare path is looked up on
// the class path and, failing that, read from the file system as given.
package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/restoas"
	"github.com/erraggy/restoas/parser"
)

// DefaultMaxSize caps the number of bytes read from a single resource.
const DefaultMaxSize int64 = 10 << 20

// ErrNotFound reports a resource that does not exist at any location that
// was searched.
var ErrNotFound = errors.New("resource not found")

// Loader resolves resource URIs to their content.
type Loader struct {
	classPath  []string
	fsys       fs.FS
	httpClient *http.Client
	userAgent  string
	maxSize    int64
	logger     parser.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithClassPath appends directories searched for classpath: and bare
// resources.
func WithClassPath(dirs ...string) Option {
	return func(l *Loader) {
		l.classPath = append(l.classPath, dirs...)
	}
}

// WithFS sets a file system searched for classpath: and bare resources
// before the class path directories. Useful with embed.FS.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) {
		l.fsys = fsys
	}
}

// WithHTTPClient sets the client used for http: and https: resources.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		l.httpClient = c
	}
}

// WithUserAgent overrides the User-Agent header sent on HTTP requests.
func WithUserAgent(ua string) Option {
	return func(l *Loader) {
		l.userAgent = ua
	}
}

// WithMaxSize sets the maximum resource size in bytes.
func WithMaxSize(n int64) Option {
	return func(l *Loader) {
		if n > 0 {
			l.maxSize = n
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger parser.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New returns a Loader. Without options the class path is empty, so only
// file:, http(s): and bare file system paths resolve.
func New(opts ...Option) *Loader {
	l := &Loader{
		userAgent: restoas.UserAgent(),
		maxSize:   DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.httpClient == nil {
		l.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	l.logger = parser.LoggerOrNop(l.logger)
	return l
}

// Load returns the content of the resource named by uri. Cancelling ctx
// aborts HTTP transfers.
func (l *Loader) Load(ctx context.Context, uri string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scheme, rest := splitScheme(uri)
	l.logger.Debug("loading resource", "uri", uri, "scheme", scheme)

	switch scheme {
	case "http", "https":
		return l.loadHTTP(ctx, uri)
	case "file":
		return l.loadFile(filePath(uri, rest))
	case "classpath":
		return l.loadClassPath(rest)
	case "":
		data, err := l.loadClassPath(rest)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return l.loadFile(rest)
	}
	return nil, fmt.Errorf("unsupported resource scheme %q in %s", scheme, uri)
}

// splitScheme separates a URI scheme from the rest. Single letter schemes
// are treated as Windows drive letters and yield no scheme.
func splitScheme(uri string) (string, string) {
	i := strings.Index(uri, ":")
	if i <= 1 {
		return "", uri
	}
	scheme := uri[:i]
	for _, r := range scheme {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return "", uri
		}
	}
	return strings.ToLower(scheme), uri[i+1:]
}

// filePath converts file:/a, file:///a and file:rel into file system paths.
func filePath(uri, rest string) string {
	if u, err := url.Parse(uri); err == nil && u.Path != "" && (u.Host == "" || u.Host == "localhost") {
		return filepath.FromSlash(u.Path)
	}
	return filepath.FromSlash(rest)
}

func (l *Loader) loadFile(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return l.readLimited(f, name)
}

func (l *Loader) loadClassPath(name string) ([]byte, error) {
	name = strings.TrimLeft(path.Clean("/"+filepath.ToSlash(name)), "/")
	if name == "" || name == "." {
		return nil, fmt.Errorf("%w: empty class path resource name", ErrNotFound)
	}

	if l.fsys != nil {
		f, err := l.fsys.Open(name)
		if err == nil {
			defer func() {
				_ = f.Close()
			}()
			return l.readLimited(f, name)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	for _, dir := range l.classPath {
		candidate := filepath.Join(dir, filepath.FromSlash(name))
		data, err := l.loadFile(candidate)
		if err == nil {
			l.logger.Debug("resolved class path resource", "name", name, "dir", dir)
			return data, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w on class path: %s", ErrNotFound, name)
}

func (l *Loader) loadHTTP(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	resp, err := l.httpClient.Do(req) //nolint:gosec // URI comes from endpoint configuration
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, uri)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	return l.readLimited(resp.Body, uri)
}

func (l *Loader) readLimited(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if int64(len(data)) > l.maxSize {
		return nil, fmt.Errorf("%s exceeds the maximum resource size of %d bytes", name, l.maxSize)
	}
	return data, nil
}
