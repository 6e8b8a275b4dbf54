package release

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"tally/internal/logging"
)

const announceUserAgent = "tallydev"

// Announcer posts a short release notification to an ntfy-style push topic.
// An unconfigured topic turns every call into a no-op: the announcement is
// the only optional step of the pipeline.
type Announcer struct {
	topic  string
	client *http.Client
	logger *slog.Logger
}

// NewAnnouncer wires an announcer from the pipeline settings.
func NewAnnouncer(cfg *Config, logger *slog.Logger) *Announcer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Announcer{
		topic:  cfg.Announce.NtfyTopic,
		client: &http.Client{Timeout: cfg.AnnounceTimeout()},
		logger: logger.With(logging.String(logging.FieldComponent, "announce")),
	}
}

// Configured reports whether an announcement target is set.
func (a *Announcer) Configured() bool {
	return a.topic != ""
}

// Announce posts the release notification.
func (a *Announcer) Announce(ctx context.Context, project, tag string) error {
	if !a.Configured() {
		return nil
	}

	message := fmt.Sprintf("%s %s released", project, tag)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.topic, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("build announce request: %w", err)
	}
	req.Header.Set("User-Agent", announceUserAgent)
	req.Header.Set("X-Title", project+" release")
	req.Header.Set("X-Tags", "tada,"+project)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("send announcement: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("announcement rejected with status %d", resp.StatusCode)
	}
	a.logger.Info("release announced", logging.String(logging.FieldTag, tag))
	return nil
}
