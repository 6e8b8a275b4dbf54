package release

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tally/internal/errkit"
	"tally/internal/logging"
	"tally/internal/shell"
)

// NotesFilename is the transient release-notes file written into the dist
// directory for the release-creation step.
const NotesFilename = "release_notes.md"

// ReleaseCreator publishes the source-control release.
type ReleaseCreator interface {
	Publish(ctx context.Context, tag, notes string, artifacts []Artifact) (string, error)
}

// ArtifactUploader pushes artifacts to the package index.
type ArtifactUploader interface {
	Upload(ctx context.Context, artifacts []Artifact) error
}

// AnnounceSender sends the optional post-release notification.
type AnnounceSender interface {
	Announce(ctx context.Context, project, tag string) error
}

// ArtifactBuilder compiles and archives the distributable packages.
type ArtifactBuilder interface {
	Build(ctx context.Context, stamp Stamp) ([]Artifact, error)
}

// Publisher assembles and runs the release pipeline for one repository
// checkout.
type Publisher struct {
	cfg    *Config
	root   string
	runner shell.Runner
	logger *slog.Logger

	builder  ArtifactBuilder
	creator  ReleaseCreator
	uploader ArtifactUploader
	announce AnnounceSender

	// Tag overrides git tag resolution when set.
	Tag string
}

// PublisherOption adjusts collaborator wiring, mainly for tests.
type PublisherOption func(*Publisher)

// WithBuilder swaps the artifact builder.
func WithBuilder(b ArtifactBuilder) PublisherOption {
	return func(p *Publisher) { p.builder = b }
}

// WithReleaseCreator swaps the source-control release step.
func WithReleaseCreator(c ReleaseCreator) PublisherOption {
	return func(p *Publisher) { p.creator = c }
}

// WithUploader swaps the package index upload step.
func WithUploader(u ArtifactUploader) PublisherOption {
	return func(p *Publisher) { p.uploader = u }
}

// WithAnnouncer swaps the announcement step.
func WithAnnouncer(a AnnounceSender) PublisherOption {
	return func(p *Publisher) { p.announce = a }
}

// WithRunner swaps the process runner used for git and the build.
func WithRunner(r shell.Runner) PublisherOption {
	return func(p *Publisher) { p.runner = r }
}

// NewPublisher wires the production pipeline over the repository at root.
func NewPublisher(cfg *Config, root string, logger *slog.Logger, opts ...PublisherOption) *Publisher {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Publisher{
		cfg:      cfg,
		root:     root,
		runner:   shell.NewRunner(),
		logger:   logger,
		creator:  NewGitHubPublisher(cfg, cfg.GitHubToken, logger),
		uploader: NewIndexUploader(cfg, logger),
		announce: NewAnnouncer(cfg, logger),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.builder == nil {
		p.builder = NewBuilder(cfg, root, p.runner, logger)
	}
	return p
}

// Run executes the pipeline: verify the release tag, extract the changelog
// notes, build the archives, create the source-control release, upload to
// the package index, and announce. The announce step is optional; everything
// else is fail-fast.
func (p *Publisher) Run(ctx context.Context) error {
	var (
		info      GitInfo
		notes     string
		artifacts []Artifact
	)

	steps := []Step{
		{
			Name: "verify tag",
			Run: func(ctx context.Context) error {
				resolved, err := ResolveGit(ctx, p.runner, p.root)
				if err != nil {
					return err
				}
				if p.Tag != "" {
					resolved.Tag = p.Tag
				}
				if !MatchTag(resolved.Tag) {
					return errkit.Wrap(errkit.ErrValidation, "release", "verify tag",
						fmt.Sprintf("%q is not a release tag", resolved.Tag), nil)
				}
				info = resolved
				return nil
			},
		},
		{
			Name: "release notes",
			Run: func(ctx context.Context) error {
				extracted, err := ExtractNotesFile(filepath.Join(p.root, p.cfg.Project.Changelog))
				if err != nil {
					return err
				}
				// An empty body is published as-is; only the write can fail.
				notes = extracted
				return p.writeNotes(notes)
			},
		},
		{
			Name: "build",
			Run: func(ctx context.Context) error {
				built, err := p.builder.Build(ctx, Stamp{
					Version: TagVersion(info.Tag),
					Commit:  info.Commit,
					Date:    time.Now().UTC().Format(time.RFC3339),
				})
				if err != nil {
					return err
				}
				artifacts = built
				return nil
			},
		},
		{
			Name: "github release",
			Run: func(ctx context.Context) error {
				if p.cfg.GitHubToken == "" {
					return errkit.Wrap(errkit.ErrConfiguration, "release", "github release",
						"credentials missing (set "+EnvGitHubToken+")", nil)
				}
				url, err := p.creator.Publish(ctx, info.Tag, notes, artifacts)
				if err != nil {
					return err
				}
				p.logger.Info("release published",
					logging.String(logging.FieldTag, info.Tag),
					logging.String("url", url))
				return nil
			},
		},
		{
			Name: "index upload",
			Run: func(ctx context.Context) error {
				return p.uploader.Upload(ctx, artifacts)
			},
		},
		{
			Name:     "announce",
			Optional: true,
			Run: func(ctx context.Context) error {
				return p.announce.Announce(ctx, p.cfg.Project.Name, info.Tag)
			},
		},
	}

	return NewPipeline(p.logger, steps...).Run(ctx)
}

// Notes extracts the changelog body without running the pipeline.
func (p *Publisher) Notes() (string, error) {
	return ExtractNotesFile(filepath.Join(p.root, p.cfg.Project.Changelog))
}

func (p *Publisher) writeNotes(notes string) error {
	distDir := p.cfg.Project.DistDir
	if !filepath.IsAbs(distDir) {
		distDir = filepath.Join(p.root, distDir)
	}
	if err := os.MkdirAll(distDir, 0o755); err != nil {
		return fmt.Errorf("create dist directory: %w", err)
	}
	path := filepath.Join(distDir, NotesFilename)
	if err := os.WriteFile(path, []byte(notes), 0o644); err != nil {
		return fmt.Errorf("write notes file: %w", err)
	}
	return nil
}
