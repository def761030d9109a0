// Package statsbomb reads StatsBomb open-data documents (matches, events,
// lineups) from the public GitHub mirror or from a local checkout.
package statsbomb

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zstd"
)

// DefaultBaseURL is the raw-content root of the StatsBomb open-data repository.
const DefaultBaseURL = "https://raw.githubusercontent.com/statsbomb/open-data/master/data"

// ErrNotFound is returned when a document does not exist at the source.
var ErrNotFound = errors.New("statsbomb document not found")

// Client fetches open-data documents over HTTP or from a directory.
type Client struct {
	baseURL string
	dataDir string
	http    *http.Client
}

// NewHTTPClient returns a client reading from baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// NewDirClient returns a client reading from the data/ directory of a local
// open-data checkout. Documents may be stored plain, .gz or .zst compressed.
func NewDirClient(dataDir string) *Client {
	return &Client{dataDir: dataDir}
}

// Source describes where documents come from, for logging.
func (c *Client) Source() string {
	if c.dataDir != "" {
		return c.dataDir
	}
	return c.baseURL
}

// get loads the document at path (relative to the data root) and decodes it into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	rc, err := c.open(ctx, path)
	if err != nil {
		return err
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) open(ctx context.Context, path string) (io.ReadCloser, error) {
	if c.dataDir != "" {
		return c.openFile(path)
	}
	return c.openURL(ctx, path)
}

func (c *Client) openURL(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, errors.Wrapf(ErrNotFound, "GET %s", path)
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode)
	}
	if resp.Header.Get("Content-Encoding") == "gzip" {
		return decompress(resp.Body, ".gz")
	}
	return resp.Body, nil
}

func (c *Client) openFile(path string) (io.ReadCloser, error) {
	base := filepath.Join(c.dataDir, filepath.FromSlash(path))
	for _, ext := range []string{"", ".gz", ".zst"} {
		f, err := os.Open(base + ext)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", base+ext, err)
		}
		return decompress(f, ext)
	}
	return nil, errors.Wrapf(ErrNotFound, "open %s", base)
}

// decompress wraps src according to ext; closing the result closes src.
func decompress(src io.ReadCloser, ext string) (io.ReadCloser, error) {
	switch ext {
	case ".gz":
		gz, err := gzip.NewReader(src)
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return &stackedReader{Reader: gz, closers: []io.Closer{gz, src}}, nil
	case ".zst":
		dec, err := zstd.NewReader(src)
		if err != nil {
			src.Close()
			return nil, fmt.Errorf("zstd: %w", err)
		}
		rc := dec.IOReadCloser()
		return &stackedReader{Reader: rc, closers: []io.Closer{rc, src}}, nil
	}
	return src, nil
}

type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (r *stackedReader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
