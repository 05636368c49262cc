// Package gitsource mirrors a remote git repository of card files into a
// local cache directory so the importer can walk it like any other
// directory.
package gitsource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// Sync clones the repository at url into localPath if it is not there
// yet, or pulls the latest changes if it is.
func Sync(ctx context.Context, url, localPath string) error {
	_, err := os.Stat(localPath)
	switch {
	case os.IsNotExist(err):
		slog.Info("cloning card source", "url", url, "path", localPath)
		_, err := git.PlainCloneContext(ctx, localPath, false, &git.CloneOptions{URL: url})
		if err != nil {
			return fmt.Errorf("failed to clone %s: %w", url, err)
		}
	case err == nil:
		slog.Info("pulling card source", "path", localPath)
		repo, err := git.PlainOpen(localPath)
		if err != nil {
			return fmt.Errorf("failed to open repo at %s: %w", localPath, err)
		}
		worktree, err := repo.Worktree()
		if err != nil {
			return fmt.Errorf("failed to get worktree at %s: %w", localPath, err)
		}
		err = worktree.PullContext(ctx, &git.PullOptions{RemoteName: "origin"})
		if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
			return fmt.Errorf("failed to pull %s: %w", localPath, err)
		}
	default:
		return fmt.Errorf("error checking path %s: %w", localPath, err)
	}
	return nil
}

// IsGitURL reports whether a source argument names a git remote rather
// than a local directory.
func IsGitURL(source string) bool {
	if _, err := os.Stat(source); err == nil {
		return false
	}
	return hasGitShape(source)
}

func hasGitShape(source string) bool {
	return strings.HasSuffix(source, ".git") ||
		strings.HasPrefix(source, "https://") ||
		strings.HasPrefix(source, "http://") ||
		strings.HasPrefix(source, "git@")
}
