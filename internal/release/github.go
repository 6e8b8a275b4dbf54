package release

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/google/go-github/v75/github"

	"tally/internal/errkit"
	"tally/internal/logging"
)

// GitHubPublisher creates the source-control release and attaches the built
// artifacts as assets.
type GitHubPublisher struct {
	owner  string
	repo   string
	client *github.Client
	logger *slog.Logger
}

// GitHubOption adjusts publisher construction, mainly for tests.
type GitHubOption func(*GitHubPublisher)

// WithEndpoint points the publisher at a different API endpoint. Both URLs
// must end in a slash.
func WithEndpoint(apiURL, uploadURL string) GitHubOption {
	return func(p *GitHubPublisher) {
		if parsed, err := url.Parse(apiURL); err == nil {
			p.client.BaseURL = parsed
		}
		if parsed, err := url.Parse(uploadURL); err == nil {
			p.client.UploadURL = parsed
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) GitHubOption {
	return func(p *GitHubPublisher) {
		p.client = github.NewClient(hc)
	}
}

// NewGitHubPublisher wires a publisher for the configured repository,
// authenticated by token.
func NewGitHubPublisher(cfg *Config, token string, logger *slog.Logger, opts ...GitHubOption) *GitHubPublisher {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &GitHubPublisher{
		owner:  cfg.Project.Owner,
		repo:   cfg.Project.Repo,
		client: github.NewClient(nil),
		logger: logger.With(logging.String(logging.FieldComponent, "github")),
	}
	for _, opt := range opts {
		opt(p)
	}
	if token != "" {
		p.client = p.client.WithAuthToken(token)
	}
	return p
}

// Publish creates the release for tag carrying notes as its body, uploads
// every artifact as a release asset, and returns the release URL. An empty
// notes body publishes an empty release body; that is not an error.
func (p *GitHubPublisher) Publish(ctx context.Context, tag, notes string, artifacts []Artifact) (string, error) {
	release := &github.RepositoryRelease{
		TagName:    github.Ptr(tag),
		Name:       github.Ptr(tag),
		Body:       github.Ptr(notes),
		Prerelease: github.Ptr(Prerelease(tag)),
	}

	created, _, err := p.client.Repositories.CreateRelease(ctx, p.owner, p.repo, release)
	if err != nil {
		return "", errkit.Wrap(errkit.ErrExternalTool, "github", "create release", "release creation failed", err)
	}
	p.logger.Info("release created",
		logging.String(logging.FieldTag, tag),
		logging.Int64("release_id", created.GetID()))

	for _, artifact := range artifacts {
		if err := p.uploadAsset(ctx, created.GetID(), artifact); err != nil {
			return "", err
		}
	}
	return created.GetHTMLURL(), nil
}

func (p *GitHubPublisher) uploadAsset(ctx context.Context, releaseID int64, artifact Artifact) error {
	file, err := os.Open(artifact.Path)
	if err != nil {
		return fmt.Errorf("open artifact %s: %w", artifact.Name, err)
	}
	defer file.Close()

	opts := &github.UploadOptions{Name: artifact.Name}
	_, _, err = p.client.Repositories.UploadReleaseAsset(ctx, p.owner, p.repo, releaseID, opts, file)
	if err != nil {
		return errkit.Wrap(errkit.ErrExternalTool, "github", "upload asset", artifact.Name, err)
	}
	p.logger.Info("asset uploaded", logging.String("artifact", artifact.Name))
	return nil
}
