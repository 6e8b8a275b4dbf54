package release

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"

	"tally/internal/errkit"
	"tally/internal/logging"
)

// IndexUploader pushes built artifacts to the package index over HTTP. Every
// artifact is sent as one multipart POST carrying the file and its sha256
// digest, authenticated with basic auth.
type IndexUploader struct {
	url      string
	username string
	password string
	client   *http.Client
	logger   *slog.Logger
}

// NewIndexUploader wires an uploader from the pipeline settings.
func NewIndexUploader(cfg *Config, logger *slog.Logger) *IndexUploader {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &IndexUploader{
		url:      cfg.Index.URL,
		username: cfg.Index.Username,
		password: cfg.Index.Password,
		client:   &http.Client{Timeout: cfg.IndexTimeout()},
		logger:   logger.With(logging.String(logging.FieldComponent, "index")),
	}
}

// Upload sends every artifact in order. The first failure aborts the
// remaining uploads.
func (u *IndexUploader) Upload(ctx context.Context, artifacts []Artifact) error {
	if u.username == "" || u.password == "" {
		return errkit.Wrap(errkit.ErrConfiguration, "index", "upload",
			fmt.Sprintf("credentials missing (set %s and %s)", EnvIndexUsername, EnvIndexPassword), nil)
	}

	for _, artifact := range artifacts {
		if err := u.uploadOne(ctx, artifact); err != nil {
			return err
		}
		u.logger.Info("artifact uploaded", logging.String("artifact", artifact.Name))
	}
	return nil
}

func (u *IndexUploader) uploadOne(ctx context.Context, artifact Artifact) error {
	file, err := os.Open(artifact.Path)
	if err != nil {
		return fmt.Errorf("open artifact %s: %w", artifact.Name, err)
	}
	defer file.Close()

	reader, writer := io.Pipe()
	form := multipart.NewWriter(writer)

	go func() {
		part, err := form.CreateFormFile("content", artifact.Name)
		if err != nil {
			writer.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			writer.CloseWithError(err)
			return
		}
		if err := form.WriteField("sha256_digest", artifact.SHA256); err != nil {
			writer.CloseWithError(err)
			return
		}
		writer.CloseWithError(form.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.url, reader)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.SetBasicAuth(u.username, u.password)

	resp, err := u.client.Do(req)
	if err != nil {
		return errkit.Wrap(errkit.ErrUnreachable, "index", "upload "+artifact.Name, "index unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errkit.Wrap(errkit.ErrExternalTool, "index", "upload "+artifact.Name,
			fmt.Sprintf("index returned status %d: %s", resp.StatusCode, string(body)), nil)
	}
	return nil
}
