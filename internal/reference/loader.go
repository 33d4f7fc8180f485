package reference

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/andybalholm/brotli"
	"go.uber.org/zap"
)

// Loader acquires a reference database from a Brotli-compressed
// transport payload, either a local file or a URL. Loading is
// all-or-nothing: any fetch, decompression or deserialization failure
// surfaces as one error and no partial database is ever returned.
type Loader struct {
	client *http.Client
	logger *zap.Logger
}

// NewLoader returns a loader with a default HTTP client and no logging.
func NewLoader() *Loader {
	return &Loader{
		client: &http.Client{Timeout: 5 * time.Minute},
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger used for load progress.
func (l *Loader) SetLogger(logger *zap.Logger) {
	l.logger = logger
}

// SetHTTPClient overrides the HTTP client used by Fetch.
func (l *Loader) SetHTTPClient(c *http.Client) {
	l.client = c
}

// Load reads a compressed database file from disk.
func (l *Loader) Load(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load reference database: %w", err)
	}
	defer f.Close()

	return l.decode(f, path)
}

// Fetch downloads a compressed database over HTTP. There is no retry;
// callers that want one wrap Fetch themselves.
func (l *Loader) Fetch(ctx context.Context, url string) (*Database, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch reference database: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch reference database: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch reference database: %s returned %s", url, resp.Status)
	}

	return l.decode(resp.Body, url)
}

func (l *Loader) decode(r io.Reader, source string) (*Database, error) {
	start := time.Now()

	raw, err := io.ReadAll(brotli.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("decompress reference database: %w", err)
	}

	db, err := Decode(raw)
	if err != nil {
		return nil, err
	}

	l.logger.Info("loaded reference database",
		zap.String("source", source),
		zap.String("version", db.Version),
		zap.String("build", db.Build),
		zap.Int("snps", db.SNPCount),
		zap.Duration("elapsed", time.Since(start)))

	return db, nil
}

// Compress Brotli-compresses an encoded database for transport. It is
// the write side of the wire format, used when packaging databases.
func Compress(encoded []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	if _, err := w.Write(encoded); err != nil {
		return nil, fmt.Errorf("compress reference database: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress reference database: %w", err)
	}
	return buf.Bytes(), nil
}
