package release

import (
	"context"
	"strings"

	"tally/internal/errkit"
	"tally/internal/shell"
)

// GitInfo identifies the commit the pipeline is releasing.
type GitInfo struct {
	Tag    string
	Commit string
}

// ResolveGit reads the release tag and commit of HEAD in the repository at
// root. A HEAD without an exact tag match yields an empty Tag, not an error;
// the verify step decides what to do with that.
func ResolveGit(ctx context.Context, runner shell.Runner, root string) (GitInfo, error) {
	commit, err := gitOutput(ctx, runner, root, "rev-parse", "HEAD")
	if err != nil {
		return GitInfo{}, errkit.Wrap(errkit.ErrExternalTool, "release", "resolve commit", "git rev-parse failed", err)
	}

	tag, err := gitOutput(ctx, runner, root, "describe", "--tags", "--exact-match", "HEAD")
	if err != nil {
		// Exact-match describe fails when HEAD carries no tag.
		tag = ""
	}

	return GitInfo{Tag: tag, Commit: commit}, nil
}

func gitOutput(ctx context.Context, runner shell.Runner, root string, args ...string) (string, error) {
	var lines []string
	cmd := shell.Command{Binary: "git", Args: args, Dir: root}
	if err := runner.Run(ctx, cmd, func(line string) {
		lines = append(lines, line)
	}); err != nil {
		return "", err
	}
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed, nil
		}
	}
	return "", nil
}
