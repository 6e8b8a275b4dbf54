package release

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"tally/internal/logging"
	"tally/internal/shell"
)

// ChecksumManifest is the artifact listing the sha256 digest of every
// archive.
const ChecksumManifest = "checksums.txt"

// Artifact is one file the pipeline distributes.
type Artifact struct {
	Name   string
	Path   string
	SHA256 string
}

// Stamp carries the build identity baked into the binaries.
type Stamp struct {
	Version string
	Commit  string
	Date    string
}

// Builder compiles the configured packages for every target and archives
// each target's binaries into a tar.gz under the dist directory.
type Builder struct {
	cfg    *Config
	root   string
	runner shell.Runner
	logger *slog.Logger
}

// NewBuilder wires a builder over the repository root.
func NewBuilder(cfg *Config, root string, runner shell.Runner, logger *slog.Logger) *Builder {
	if runner == nil {
		runner = shell.NewRunner()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Builder{
		cfg:    cfg,
		root:   root,
		runner: runner,
		logger: logger.With(logging.String(logging.FieldComponent, "build")),
	}
}

// Build produces one archive per target plus the checksum manifest and
// returns the artifacts in upload order. A failing compile aborts the
// remaining targets.
func (b *Builder) Build(ctx context.Context, stamp Stamp) ([]Artifact, error) {
	distDir := b.distDir()
	if err := os.MkdirAll(distDir, 0o755); err != nil {
		return nil, fmt.Errorf("create dist directory: %w", err)
	}

	var artifacts []Artifact
	for _, target := range b.cfg.Build.Targets {
		goos, goarch, err := splitTarget(target)
		if err != nil {
			return nil, err
		}

		stageName := fmt.Sprintf("%s_%s_%s_%s", b.cfg.Project.Name, stamp.Version, goos, goarch)
		stageDir := filepath.Join(distDir, stageName)
		if err := os.RemoveAll(stageDir); err != nil {
			return nil, fmt.Errorf("clean stage directory: %w", err)
		}
		if err := os.MkdirAll(stageDir, 0o755); err != nil {
			return nil, fmt.Errorf("create stage directory: %w", err)
		}

		for _, pkg := range b.cfg.Build.Packages {
			if err := b.compile(ctx, pkg, goos, goarch, stageDir, stamp); err != nil {
				return nil, err
			}
		}

		archivePath := stageDir + ".tar.gz"
		if err := archiveDir(stageDir, archivePath); err != nil {
			return nil, fmt.Errorf("archive %s: %w", stageName, err)
		}
		if err := os.RemoveAll(stageDir); err != nil {
			return nil, fmt.Errorf("clean stage directory: %w", err)
		}

		digest, err := fileSHA256(archivePath)
		if err != nil {
			return nil, err
		}
		artifact := Artifact{
			Name:   filepath.Base(archivePath),
			Path:   archivePath,
			SHA256: digest,
		}
		artifacts = append(artifacts, artifact)
		b.logger.Info("built archive",
			logging.String("artifact", artifact.Name),
			logging.String("sha256", digest))
	}

	manifest, err := writeChecksums(artifacts, filepath.Join(distDir, ChecksumManifest))
	if err != nil {
		return nil, err
	}
	return append(artifacts, manifest), nil
}

func (b *Builder) distDir() string {
	if filepath.IsAbs(b.cfg.Project.DistDir) {
		return b.cfg.Project.DistDir
	}
	return filepath.Join(b.root, b.cfg.Project.DistDir)
}

func (b *Builder) compile(ctx context.Context, pkg, goos, goarch, stageDir string, stamp Stamp) error {
	binary := path.Base(strings.Trim(pkg, "/"))
	output := filepath.Join(stageDir, binary)
	if goos == "windows" {
		output += ".exe"
	}

	ldflags := strings.Join([]string{
		"-s", "-w",
		"-X", "tally/internal/version.Version=" + stamp.Version,
		"-X", "tally/internal/version.Commit=" + stamp.Commit,
		"-X", "tally/internal/version.Date=" + stamp.Date,
	}, " ")

	cmd := shell.Command{
		Binary: "go",
		Args:   []string{"build", "-trimpath", "-ldflags", ldflags, "-o", output, pkg},
		Dir:    b.root,
		Env: []string{
			"GOOS=" + goos,
			"GOARCH=" + goarch,
			"CGO_ENABLED=0",
		},
	}

	b.logger.Info("compiling",
		logging.String("package", pkg),
		logging.String("target", goos+"/"+goarch))
	return b.runner.Run(ctx, cmd, func(line string) {
		b.logger.Info(line)
	})
}

// archiveDir writes the files of srcDir into a gzipped tarball at dest. The
// archive holds the directory's base name as its single top-level entry.
func archiveDir(srcDir, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	prefix := filepath.Base(srcDir)
	err = filepath.Walk(srcDir, func(file string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		relative, err := filepath.Rel(srcDir, file)
		if err != nil {
			return err
		}
		name := prefix
		if relative != "." {
			name = path.Join(prefix, filepath.ToSlash(relative))
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = name
		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		in, err := os.Open(file)
		if err != nil {
			return err
		}
		defer in.Close()
		_, err = io.Copy(tw, in)
		return err
	})
	if err != nil {
		return err
	}

	if err := tw.Close(); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return out.Close()
}

func fileSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open artifact: %w", err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("hash artifact: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// writeChecksums renders the "digest  name" manifest and returns it as an
// artifact of its own.
func writeChecksums(artifacts []Artifact, path string) (Artifact, error) {
	var b strings.Builder
	for _, artifact := range artifacts {
		fmt.Fprintf(&b, "%s  %s\n", artifact.SHA256, artifact.Name)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return Artifact{}, fmt.Errorf("write checksum manifest: %w", err)
	}
	digest, err := fileSHA256(path)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Name:   filepath.Base(path),
		Path:   path,
		SHA256: digest,
	}, nil
}
