package release_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tally/internal/errkit"
	"tally/internal/release"
	"tally/internal/shell"
	"tally/internal/testsupport"
)

// gitRunner fakes git: it answers rev-parse with a fixed commit and describe
// with the configured tag, failing describe when no tag is set.
type gitRunner struct {
	commit string
	tag    string
}

func (r *gitRunner) Run(_ context.Context, cmd shell.Command, onOutput func(string)) error {
	if cmd.Binary != "git" {
		return errors.New("unexpected command " + cmd.String())
	}
	switch cmd.Args[0] {
	case "rev-parse":
		onOutput(r.commit)
		return nil
	case "describe":
		if r.tag == "" {
			return errors.New("fatal: no tag exactly matches")
		}
		onOutput(r.tag)
		return nil
	}
	return errors.New("unexpected git subcommand " + cmd.Args[0])
}

type fakeBuilder struct {
	calls     *[]string
	stamp     release.Stamp
	artifacts []release.Artifact
	err       error
}

func (b *fakeBuilder) Build(_ context.Context, stamp release.Stamp) ([]release.Artifact, error) {
	*b.calls = append(*b.calls, "build")
	b.stamp = stamp
	return b.artifacts, b.err
}

type fakeCreator struct {
	calls *[]string
	tag   string
	notes string
	err   error
}

func (c *fakeCreator) Publish(_ context.Context, tag, notes string, _ []release.Artifact) (string, error) {
	*c.calls = append(*c.calls, "create")
	c.tag = tag
	c.notes = notes
	if c.err != nil {
		return "", c.err
	}
	return "https://example.com/releases/" + tag, nil
}

type fakeUploader struct {
	calls *[]string
	count int
	err   error
}

func (u *fakeUploader) Upload(_ context.Context, artifacts []release.Artifact) error {
	*u.calls = append(*u.calls, "upload")
	u.count = len(artifacts)
	return u.err
}

type fakeAnnouncer struct {
	calls *[]string
	err   error
}

func (a *fakeAnnouncer) Announce(_ context.Context, _, _ string) error {
	*a.calls = append(*a.calls, "announce")
	return a.err
}

type publishFixture struct {
	root      string
	calls     []string
	builder   *fakeBuilder
	creator   *fakeCreator
	uploader  *fakeUploader
	announcer *fakeAnnouncer
	publisher *release.Publisher
}

func newPublishFixture(t *testing.T, changelog string, runner shell.Runner) *publishFixture {
	t.Helper()

	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "CHANGELOG.md"), changelog)

	cfg := release.Default()
	cfg.Project.Owner = "example"
	cfg.Project.Repo = "tally"
	cfg.Index.URL = "https://index.example.com/upload"
	cfg.GitHubToken = "gh-token"

	f := &publishFixture{root: root}
	f.builder = &fakeBuilder{calls: &f.calls, artifacts: []release.Artifact{
		{Name: "tally_1.2.0_linux_amd64.tar.gz"},
		{Name: release.ChecksumManifest},
	}}
	f.creator = &fakeCreator{calls: &f.calls}
	f.uploader = &fakeUploader{calls: &f.calls}
	f.announcer = &fakeAnnouncer{calls: &f.calls}

	f.publisher = release.NewPublisher(&cfg, root, nil,
		release.WithRunner(runner),
		release.WithBuilder(f.builder),
		release.WithReleaseCreator(f.creator),
		release.WithUploader(f.uploader),
		release.WithAnnouncer(f.announcer),
	)
	return f
}

func TestPublisherRunsStepsInOrder(t *testing.T) {
	f := newPublishFixture(t, sampleChangelog, &gitRunner{commit: "abc1234", tag: "v1.2.0"})

	if err := f.publisher.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"build", "create", "upload", "announce"}
	if len(f.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", f.calls, want)
	}
	for i, call := range want {
		if f.calls[i] != call {
			t.Fatalf("calls = %v, want %v", f.calls, want)
		}
	}

	if f.builder.stamp.Version != "1.2.0" {
		t.Fatalf("stamp version = %q, want 1.2.0", f.builder.stamp.Version)
	}
	if f.builder.stamp.Commit != "abc1234" {
		t.Fatalf("stamp commit = %q", f.builder.stamp.Commit)
	}
	if f.creator.tag != "v1.2.0" {
		t.Fatalf("release tag = %q", f.creator.tag)
	}
	if !strings.Contains(f.creator.notes, "added recurring entries") {
		t.Fatalf("release notes = %q", f.creator.notes)
	}
	if f.uploader.count != 2 {
		t.Fatalf("uploaded %d artifacts, want 2", f.uploader.count)
	}

	notes, err := os.ReadFile(filepath.Join(f.root, "dist", release.NotesFilename))
	if err != nil {
		t.Fatalf("notes file: %v", err)
	}
	if string(notes) != f.creator.notes {
		t.Fatal("notes file should match the published body")
	}
}

func TestPublisherRejectsNonReleaseTag(t *testing.T) {
	f := newPublishFixture(t, sampleChangelog, &gitRunner{commit: "abc1234", tag: "nightly"})

	err := f.publisher.Run(context.Background())
	if !errors.Is(err, errkit.ErrValidation) {
		t.Fatalf("error = %v, want validation error", err)
	}
	if len(f.calls) != 0 {
		t.Fatalf("no step should run past tag verification, got %v", f.calls)
	}
}

func TestPublisherTagOverrideWhenHeadUntagged(t *testing.T) {
	f := newPublishFixture(t, sampleChangelog, &gitRunner{commit: "abc1234"})
	f.publisher.Tag = "v2.0.0"

	if err := f.publisher.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if f.creator.tag != "v2.0.0" {
		t.Fatalf("release tag = %q, want override", f.creator.tag)
	}
}

func TestPublisherRequiresGitHubToken(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "CHANGELOG.md"), sampleChangelog)

	cfg := release.Default()
	cfg.Project.Owner = "example"
	cfg.Project.Repo = "tally"
	cfg.Index.URL = "https://index.example.com/upload"

	var calls []string
	publisher := release.NewPublisher(&cfg, root, nil,
		release.WithRunner(&gitRunner{commit: "abc1234", tag: "v1.0.0"}),
		release.WithBuilder(&fakeBuilder{calls: &calls}),
		release.WithReleaseCreator(&fakeCreator{calls: &calls}),
		release.WithUploader(&fakeUploader{calls: &calls}),
		release.WithAnnouncer(&fakeAnnouncer{calls: &calls}),
	)

	err := publisher.Run(context.Background())
	if !errors.Is(err, errkit.ErrConfiguration) {
		t.Fatalf("error = %v, want configuration error", err)
	}
	for _, call := range calls {
		if call == "upload" || call == "announce" {
			t.Fatalf("steps after the token check must not run, got %v", calls)
		}
	}
}

func TestPublisherEmptyNotesStillPublishes(t *testing.T) {
	f := newPublishFixture(t, "# Changelog\n\nnothing released yet\n",
		&gitRunner{commit: "abc1234", tag: "v0.1.0"})

	if err := f.publisher.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if f.creator.notes != "" {
		t.Fatalf("notes = %q, want empty body", f.creator.notes)
	}
}

func TestPublisherAnnounceFailureIsNotFatal(t *testing.T) {
	f := newPublishFixture(t, sampleChangelog, &gitRunner{commit: "abc1234", tag: "v1.2.0"})
	f.announcer.err = errors.New("topic unreachable")

	if err := f.publisher.Run(context.Background()); err != nil {
		t.Fatalf("announce failure must not fail the pipeline: %v", err)
	}
}

func TestPublisherUploadFailureIsFatal(t *testing.T) {
	f := newPublishFixture(t, sampleChangelog, &gitRunner{commit: "abc1234", tag: "v1.2.0"})
	f.uploader.err = errors.New("index rejected upload")

	if err := f.publisher.Run(context.Background()); err == nil {
		t.Fatal("expected pipeline failure")
	}
	for _, call := range f.calls {
		if call == "announce" {
			t.Fatal("announce must not run after a failed upload")
		}
	}
}

func TestPublisherNotes(t *testing.T) {
	f := newPublishFixture(t, sampleChangelog, &gitRunner{commit: "abc1234", tag: "v1.2.0"})

	notes, err := f.publisher.Notes()
	if err != nil {
		t.Fatalf("Notes: %v", err)
	}
	if !strings.Contains(notes, "added recurring entries") {
		t.Fatalf("notes = %q", notes)
	}
}
