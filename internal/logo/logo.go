package logo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/soulful-academy/chakra-report/internal/metrics"
)

const (
	defaultFetchTimeout = 10 * time.Second
	maxLogoBytes        = 5 << 20
	logoFilePerm        = 0o644
)

var (
	createTempFn = os.CreateTemp
	renameFn     = os.Rename
)

// Cache downloads the brand logo to a local file the first time it is
// needed. At most one download is attempted per process; later calls return
// whatever is on disk.
type Cache struct {
	URL     string
	Path    string
	Timeout time.Duration
	Client  *http.Client

	group     singleflight.Group
	mu        sync.Mutex
	attempted bool
}

// NewCache creates a logo cache for url stored at path.
func NewCache(url, path string) *Cache {
	return &Cache{URL: url, Path: path, Timeout: defaultFetchTimeout}
}

// Ensure returns the local logo path, fetching it if needed. Any failure is
// logged and returns "".
func (c *Cache) Ensure(ctx context.Context) string {
	if c == nil || c.Path == "" {
		return ""
	}
	if fileExists(c.Path) {
		return c.Path
	}
	if c.URL == "" {
		return ""
	}

	v, _, _ := c.group.Do(c.Path, func() (interface{}, error) {
		c.mu.Lock()
		if c.attempted {
			c.mu.Unlock()
			if fileExists(c.Path) {
				return c.Path, nil
			}
			return "", nil
		}
		c.attempted = true
		c.mu.Unlock()

		if err := c.fetch(ctx); err != nil {
			metrics.RecordLogoFetch("failed")
			log.Warn().Err(err).Str("url", c.URL).Msg("Logo download failed, reports will render without it")
			return "", nil
		}
		metrics.RecordLogoFetch("fetched")
		log.Info().Str("path", c.Path).Msg("Logo cached")
		return c.Path, nil
	})

	path, _ := v.(string)
	return path
}

func (c *Cache) fetch(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch logo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch logo: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes+1))
	if err != nil {
		return fmt.Errorf("read logo: %w", err)
	}
	if len(data) == 0 {
		return errors.New("read logo: empty body")
	}
	if len(data) > maxLogoBytes {
		return fmt.Errorf("read logo: body exceeds %d bytes", maxLogoBytes)
	}

	return writeAtomic(c.Path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create logo directory: %w", err)
	}

	tmpFile, err := createTempFn(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Chmod(logoFilePerm); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := renameFn(tmpPath, path); err != nil {
		return fmt.Errorf("rename logo: %w", err)
	}
	cleanup = false
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
