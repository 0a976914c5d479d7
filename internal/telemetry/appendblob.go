package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/appendblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// dateFolder lays logs out as YYYY/MM/DD/<name>.jsonl
const dateFolder = "%d/%02d/%02d"

type AppendBlobConfig struct {
	AccountName string
	AccountKey  string
	Container   string
	BlobName    string        // defaults to <date>/<hostname>.jsonl
	FlushEvery  time.Duration // default 2s
}

type appendBlock interface {
	AppendBlock(ctx context.Context, body io.ReadSeekCloser, o *appendblob.AppendBlockOptions) (appendblob.AppendBlockResponse, error)
}

// AppendBlobHandler is an slog.Handler that batches JSON lines into an Azure append blob.
type AppendBlobHandler struct {
	*sink
	attrs []slog.Attr
}

type sink struct {
	ab     appendBlock
	ch     chan []byte
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	ticker *time.Ticker

	mu     sync.RWMutex
	closed bool
}

func NewAppendBlobHandler(ctx context.Context, cfg AppendBlobConfig) (*AppendBlobHandler, error) {
	if cfg.AccountName == "" || cfg.AccountKey == "" || cfg.Container == "" {
		return nil, errors.New("log sink needs AZURE_STORAGE_ACCOUNT_NAME, AZURE_STORAGE_PRIMARY_ACCOUNT_KEY and LOG_CONTAINER")
	}
	if cfg.BlobName == "" {
		host, _ := os.Hostname()
		now := time.Now().UTC()
		cfg.BlobName = fmt.Sprintf(dateFolder, now.Year(), now.Month(), now.Day()) + "/" + host + ".jsonl"
	}

	cred, err := azblob.NewSharedKeyCredential(cfg.AccountName, cfg.AccountKey)
	if err != nil {
		return nil, err
	}
	// BlobName may include slashes; only the container is escaped.
	blobURL := "https://" + cfg.AccountName + ".blob.core.windows.net/" + url.PathEscape(cfg.Container) + "/" + cfg.BlobName
	ab, err := appendblob.NewClientWithSharedKeyCredential(blobURL, cred, nil)
	if err != nil {
		return nil, err
	}
	if _, err := ab.Create(ctx, nil); err != nil && !bloberror.HasCode(err, bloberror.BlobAlreadyExists) {
		return nil, fmt.Errorf("create log blob %s: %w", cfg.BlobName, err)
	}
	return newAppendBlobHandler(ctx, ab, cfg.FlushEvery), nil
}

func newAppendBlobHandler(ctx context.Context, ab appendBlock, flushEvery time.Duration) *AppendBlobHandler {
	if flushEvery <= 0 {
		flushEvery = 2 * time.Second
	}
	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s := &sink{
		ab:     ab,
		ch:     make(chan []byte, 1024),
		ctx:    ctx,
		cancel: cancel,
		ticker: time.NewTicker(flushEvery),
	}
	s.wg.Add(1)
	go s.loop()
	return &AppendBlobHandler{sink: s}
}

// Close flushes buffered lines and stops the writer. Records handled afterwards are dropped.
func (s *sink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.ch)
	s.mu.Unlock()

	s.wg.Wait()
	s.cancel()
	s.ticker.Stop()
	return nil
}

func (h *AppendBlobHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *AppendBlobHandler) Handle(_ context.Context, r slog.Record) error {
	line, err := encodeRecord(r, h.attrs)
	if err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return nil
	}
	h.ch <- line
	return nil
}

func (h *AppendBlobHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AppendBlobHandler{sink: h.sink, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

func (h *AppendBlobHandler) WithGroup(string) slog.Handler { return h }

func (s *sink) loop() {
	defer s.wg.Done()
	var buf []byte
	flush := func() {
		if len(buf) == 0 {
			return
		}
		_, _ = s.ab.AppendBlock(s.ctx, readSeekNopCloser{bytes.NewReader(buf)}, nil)
		buf = buf[:0]
	}
	for {
		select {
		case line, ok := <-s.ch:
			if !ok {
				flush()
				return
			}
			buf = append(buf, line...)
		case <-s.ticker.C:
			flush()
		}
	}
}

// encodeRecord renders one JSON line; groups are flattened one level deep.
func encodeRecord(r slog.Record, extra []slog.Attr) ([]byte, error) {
	ev := make(map[string]any, r.NumAttrs()+len(extra)+3)
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	ev["ts"] = ts.UTC().Format(time.RFC3339Nano)
	ev["level"] = r.Level.String()
	ev["msg"] = r.Message

	add := func(a slog.Attr) bool {
		a.Value = a.Value.Resolve()
		if a.Value.Kind() == slog.KindGroup {
			m := map[string]any{}
			for _, aa := range a.Value.Group() {
				aa.Value = aa.Value.Resolve()
				m[aa.Key] = attrValue(aa.Value)
			}
			ev[a.Key] = m
			return true
		}
		ev[a.Key] = attrValue(a.Value)
		return true
	}
	for _, a := range extra {
		add(a)
	}
	r.Attrs(add)

	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ev); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// errors marshal to {} otherwise
func attrValue(v slog.Value) any {
	if err, ok := v.Any().(error); ok {
		return err.Error()
	}
	return v.Any()
}

type readSeekNopCloser struct{ io.ReadSeeker }

func (r readSeekNopCloser) Close() error { return nil }
