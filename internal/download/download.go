// Package download fetches the agent binary (or any other asset) over
// HTTP to a destination path, streaming in bounded chunks and reporting
// progress to an observer after every chunk write. The chunk loop never
// buffers more than one chunk ahead of the disk write, which gives
// natural backpressure against slow storage.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/logger"
)

// DefaultChunkSize is the read/write granularity of the transfer loop.
const DefaultChunkSize = 32 * 1024

// HTTPClient is an interface that wraps the Do method, allowing for
// custom HTTP clients in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ProgressEvent is emitted after each chunk write. Total is 0 when the
// server did not declare a content length.
type ProgressEvent struct {
	Downloaded int64
	Total      int64
}

// Observer receives progress notifications. It is called from the
// download's execution context; implementations must tolerate that.
type Observer interface {
	Progress(ProgressEvent)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ProgressEvent)

// Progress calls f(e).
func (f ObserverFunc) Progress(e ProgressEvent) { f(e) }

// TaskState is the terminal state of one fetch.
type TaskState string

const (
	StateInProgress TaskState = "in_progress"
	StateCompleted  TaskState = "completed"
	StateFailed     TaskState = "failed"
)

// Result describes one fetch. A failed fetch still reports the bytes
// written before the failure; the partial destination file is left in
// place and the caller decides whether to keep or discard it.
type Result struct {
	TaskID      string
	URL         string
	Destination string
	Downloaded  int64
	Total       int64
	State       TaskState
}

// Config configures a Manager.
type Config struct {
	// Client performs the HTTP requests. Defaults to http.DefaultClient.
	Client HTTPClient
	// ChunkSize bounds each read/write. Defaults to DefaultChunkSize.
	ChunkSize int
	Logger    logger.Logger
}

// Manager performs streaming downloads. Concurrent fetches are
// independent; the Manager itself holds no mutable state.
type Manager struct {
	client    HTTPClient
	chunkSize int
	log       logger.Logger
}

// NewManager constructs a Manager.
func NewManager(cfg Config) *Manager {
	if cfg.Client == nil {
		cfg.Client = http.DefaultClient
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard
	}
	return &Manager{
		client:    cfg.Client,
		chunkSize: cfg.ChunkSize,
		log:       cfg.Logger,
	}
}

// Fetch downloads url to dest, creating parent directories as needed.
// A non-success HTTP status is a terminal error before any byte is
// written. Network and disk errors abort the transfer immediately; there
// is no automatic retry and no rollback of the partial file. obs may be
// nil. Cancellation via ctx is observed between chunks.
func (m *Manager) Fetch(ctx context.Context, url, dest string, obs Observer) (Result, error) {
	result := Result{
		TaskID:      uuid.NewString(),
		URL:         url,
		Destination: dest,
		State:       StateInProgress,
	}
	log := m.log.WithField("task_id", result.TaskID)
	log.Info("starting download", logger.Fields{"url": url, "dest": dest})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		result.State = StateFailed
		return result, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		result.State = StateFailed
		return result, &NetworkError{URL: url, Offset: 0, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result.State = StateFailed
		return result, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	// ContentLength is -1 when the server omits the header; report the
	// total as unknown (0) rather than guessing.
	if resp.ContentLength > 0 {
		result.Total = resp.ContentLength
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		result.State = StateFailed
		return result, &IOError{Path: dest, Offset: 0, Err: err}
	}

	file, err := os.Create(dest)
	if err != nil {
		result.State = StateFailed
		return result, &IOError{Path: dest, Offset: 0, Err: err}
	}
	defer file.Close()

	if err := m.copyChunks(ctx, file, resp.Body, &result, obs); err != nil {
		result.State = StateFailed
		return result, err
	}

	result.State = StateCompleted
	log.Info("download complete", logger.Fields{"bytes": result.Downloaded})
	return result, nil
}

// copyChunks streams resp body to file one bounded chunk at a time,
// waiting for each write to finish before the next read.
func (m *Manager) copyChunks(ctx context.Context, file *os.File, body io.Reader, result *Result, obs Observer) error {
	buf := make([]byte, m.chunkSize)
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("download of %s canceled at byte %d: %w", result.URL, result.Downloaded, ctx.Err())
		default:
		}

		n, readErr := body.Read(buf)
		if n > 0 {
			if _, writeErr := file.Write(buf[:n]); writeErr != nil {
				return &IOError{Path: result.Destination, Offset: result.Downloaded, Err: writeErr}
			}
			result.Downloaded += int64(n)
			if obs != nil {
				obs.Progress(ProgressEvent{Downloaded: result.Downloaded, Total: result.Total})
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return &NetworkError{URL: result.URL, Offset: result.Downloaded, Err: readErr}
		}
	}
}
