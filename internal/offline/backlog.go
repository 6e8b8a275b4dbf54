package offline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tally/internal/api"
	"tally/internal/logging"
)

// DefaultFilename is the backlog file name inside the data directory.
const DefaultFilename = "offline_backup.json"

// Commands a backlog request can carry.
const (
	CommandAdd    = "add"
	CommandUpdate = "update"
	CommandRemove = "remove"
	CommandCopy   = "copy"
)

// Request is one queued mutating command. Exactly one of the payload fields
// matching Command is set.
type Request struct {
	Command  string             `json:"command"`
	Period   string             `json:"period,omitempty"`
	Table    string             `json:"table,omitempty"`
	EntryID  int64              `json:"eid,omitempty"`
	Add      *api.AddRequest    `json:"add,omitempty"`
	Update   *api.UpdateRequest `json:"update,omitempty"`
	Copy     *api.CopyRequest   `json:"copy,omitempty"`
	QueuedAt time.Time          `json:"queued_at"`
}

// Backlog provides thread-safe access to the offline request queue. The file
// is created lazily on the first Push.
type Backlog struct {
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
	queue  []Request
}

// NewBacklog opens the backlog at path. An unreadable or corrupt file logs a
// warning and starts empty rather than blocking the CLI.
func NewBacklog(path string, logger *slog.Logger) *Backlog {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "offline")

	b := &Backlog{path: path, logger: logger}
	if err := b.load(); err != nil {
		logger.Warn("failed to load offline backlog",
			logging.Error(err),
			logging.String("path", path))
	}
	return b
}

// Push appends a request to the queue and persists it.
func (b *Backlog) Push(req Request) error {
	if req.Command == "" {
		return errors.New("backlog request requires a command")
	}
	if req.QueuedAt.IsZero() {
		req.QueuedAt = time.Now().UTC()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.queue = append(b.queue, req)
	if err := b.save(); err != nil {
		return fmt.Errorf("persist backlog: %w", err)
	}

	b.logger.Debug("queued offline request",
		logging.String(logging.FieldCommand, req.Command),
		logging.Int("pending", len(b.queue)))
	return nil
}

// Pending returns the number of queued requests.
func (b *Backlog) Pending() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.queue)
}

// Requests returns a copy of the queue in replay order.
func (b *Backlog) Requests() []Request {
	b.mu.RLock()
	defer b.mu.RUnlock()

	requests := make([]Request, len(b.queue))
	copy(requests, b.queue)
	return requests
}

// Replay applies queued requests in FIFO order. Requests that succeed are
// removed; the first failure stops the replay and keeps the failed request and
// everything behind it queued. The count of replayed requests is returned.
func (b *Backlog) Replay(ctx context.Context, apply func(context.Context, Request) error) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	replayed := 0
	for _, req := range b.queue {
		if err := apply(ctx, req); err != nil {
			b.queue = b.queue[replayed:]
			if saveErr := b.save(); saveErr != nil {
				b.logger.Warn("failed to persist backlog after partial replay",
					logging.Error(saveErr))
			}
			return replayed, fmt.Errorf("replay %q request: %w", req.Command, err)
		}
		replayed++
	}

	b.queue = nil
	if err := b.save(); err != nil {
		return replayed, fmt.Errorf("persist backlog: %w", err)
	}
	if replayed > 0 {
		b.logger.Info("replayed offline backlog", logging.Int("count", replayed))
	}
	return replayed, nil
}

// load reads the backlog file into memory.
func (b *Backlog) load() error {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read backlog file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var queue []Request
	if err := json.Unmarshal(data, &queue); err != nil {
		return fmt.Errorf("parse backlog file: %w", err)
	}
	b.queue = queue
	return nil
}

// save writes the backlog to disk atomically.
func (b *Backlog) save() error {
	queue := b.queue
	if queue == nil {
		queue = []Request{}
	}
	data, err := json.MarshalIndent(queue, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal backlog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("create backlog directory: %w", err)
	}

	tmpPath := b.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
