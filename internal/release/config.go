package release

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_release.toml
var sampleConfig string

// DefaultConfigName is the pipeline settings file expected at the repository
// root.
const DefaultConfigName = "release.toml"

// Environment variables supplying the pipeline credentials. Tokens and
// passwords never live in release.toml.
const (
	EnvGitHubToken   = "GITHUB_TOKEN"
	EnvIndexUsername = "TALLY_INDEX_USERNAME"
	EnvIndexPassword = "TALLY_INDEX_PASSWORD"
)

// Project identifies what is being released and where its changelog lives.
type Project struct {
	Name      string `toml:"name"`
	Owner     string `toml:"owner"`
	Repo      string `toml:"repo"`
	Changelog string `toml:"changelog"`
	DistDir   string `toml:"dist_dir"`
}

// Build lists the compilation targets of the distributable packages.
type Build struct {
	Targets  []string `toml:"targets"`
	Packages []string `toml:"packages"`
}

// Index points at the package index upload endpoint. Credentials are read
// from the environment during Load.
type Index struct {
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`

	Username string `toml:"-"`
	Password string `toml:"-"`
}

// Announce configures the optional post-release push notification.
type Announce struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Config holds the pipeline settings from release.toml.
type Config struct {
	Project  Project  `toml:"project"`
	Build    Build    `toml:"build"`
	Index    Index    `toml:"index"`
	Announce Announce `toml:"announce"`

	GitHubToken string `toml:"-"`
}

// Default returns the pipeline settings applied before decoding release.toml.
func Default() Config {
	return Config{
		Project: Project{
			Name:      "tally",
			Changelog: "CHANGELOG.md",
			DistDir:   "dist",
		},
		Build: Build{
			Targets:  []string{"linux/amd64", "linux/arm64", "darwin/amd64", "darwin/arm64"},
			Packages: []string{"./cmd/tally", "./cmd/tallyd"},
		},
		Index: Index{
			TimeoutSeconds: 60,
		},
		Announce: Announce{
			TimeoutSeconds: 10,
		},
	}
}

// Load reads the pipeline settings from path, defaulting to release.toml in
// the working directory. The file must exist: the pipeline has no usable
// zero configuration.
func Load(path string) (*Config, string, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultConfigName
	}
	resolved, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolve release config path: %w", err)
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("release config %s does not exist (create one with `tallydev publish --init`)", resolved)
		}
		return nil, "", fmt.Errorf("open release config: %w", err)
	}
	defer file.Close()

	cfg := Default()
	decoder := toml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, "", fmt.Errorf("parse release config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, resolved, nil
}

func (c *Config) normalize() {
	c.Project.Name = strings.TrimSpace(c.Project.Name)
	c.Project.Owner = strings.TrimSpace(c.Project.Owner)
	c.Project.Repo = strings.TrimSpace(c.Project.Repo)
	c.Project.Changelog = strings.TrimSpace(c.Project.Changelog)
	if c.Project.Changelog == "" {
		c.Project.Changelog = "CHANGELOG.md"
	}
	c.Project.DistDir = strings.TrimSpace(c.Project.DistDir)
	if c.Project.DistDir == "" {
		c.Project.DistDir = "dist"
	}

	targets := c.Build.Targets[:0]
	for _, target := range c.Build.Targets {
		if trimmed := strings.TrimSpace(target); trimmed != "" {
			targets = append(targets, strings.ToLower(trimmed))
		}
	}
	c.Build.Targets = targets

	packages := c.Build.Packages[:0]
	for _, pkg := range c.Build.Packages {
		if trimmed := strings.TrimSpace(pkg); trimmed != "" {
			packages = append(packages, trimmed)
		}
	}
	c.Build.Packages = packages

	c.Index.URL = strings.TrimSpace(c.Index.URL)
	if c.Index.TimeoutSeconds <= 0 {
		c.Index.TimeoutSeconds = 60
	}
	if c.Announce.TimeoutSeconds <= 0 {
		c.Announce.TimeoutSeconds = 10
	}
	c.Announce.NtfyTopic = strings.TrimSpace(c.Announce.NtfyTopic)

	c.GitHubToken = strings.TrimSpace(os.Getenv(EnvGitHubToken))
	c.Index.Username = strings.TrimSpace(os.Getenv(EnvIndexUsername))
	c.Index.Password = os.Getenv(EnvIndexPassword)
}

// Validate checks that the settings describe a runnable pipeline. Credentials
// are checked later, by the steps that consume them, so commands that only
// read the changelog work without a token in the environment.
func (c *Config) Validate() error {
	if c.Project.Name == "" {
		return errors.New("project.name must be set")
	}
	if c.Project.Owner == "" {
		return errors.New("project.owner must be set")
	}
	if c.Project.Repo == "" {
		return errors.New("project.repo must be set")
	}
	if len(c.Build.Targets) == 0 {
		return errors.New("build.targets must list at least one os/arch pair")
	}
	for _, target := range c.Build.Targets {
		if _, _, err := splitTarget(target); err != nil {
			return err
		}
	}
	if len(c.Build.Packages) == 0 {
		return errors.New("build.packages must list at least one main package")
	}
	if c.Index.URL == "" {
		return errors.New("index.url must be set")
	}
	if !strings.HasPrefix(c.Index.URL, "http://") && !strings.HasPrefix(c.Index.URL, "https://") {
		return fmt.Errorf("index.url: unsupported scheme in %q", c.Index.URL)
	}
	return nil
}

// IndexTimeout returns the artifact upload timeout as a duration.
func (c *Config) IndexTimeout() time.Duration {
	return time.Duration(c.Index.TimeoutSeconds) * time.Second
}

// AnnounceTimeout returns the announcement request timeout as a duration.
func (c *Config) AnnounceTimeout() time.Duration {
	return time.Duration(c.Announce.TimeoutSeconds) * time.Second
}

func splitTarget(target string) (goos, goarch string, err error) {
	goos, goarch, found := strings.Cut(target, "/")
	if !found || goos == "" || goarch == "" {
		return "", "", fmt.Errorf("build.targets: %q is not an os/arch pair", target)
	}
	return goos, goarch, nil
}

// CreateSample writes a sample release.toml to the specified location.
func CreateSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("release config already exists at %s", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("check release config path: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample release config: %w", err)
	}
	return nil
}
