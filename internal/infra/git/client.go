// Package git provides git operations.
package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/runoshun/jiractl/internal/domain"
)

// Ensure Client implements domain.BranchReader.
var _ domain.BranchReader = (*Client)(nil)

// Client reads repository state with go-git.
type Client struct {
	repo     *git.Repository
	repoRoot string // Working tree root (may be a linked worktree)
}

// NewClient opens the repository containing dir, searching parent directories.
// It handles both regular repositories and worktrees.
func NewClient(dir string) (*Client, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, domain.ErrNotGitRepository
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	return &Client{
		repo:     repo,
		repoRoot: wt.Filesystem.Root(),
	}, nil
}

// RepoRoot returns the working tree root directory.
func (c *Client) RepoRoot() string {
	return c.repoRoot
}

// CurrentBranch returns the short name of the checked out branch.
// On a branch without commits it still returns the branch HEAD points to.
func (c *Client) CurrentBranch() (string, error) {
	head, err := c.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return "", fmt.Errorf("read HEAD: %w", err)
	}
	if head.Type() == plumbing.SymbolicReference && head.Target().IsBranch() {
		return head.Target().Short(), nil
	}
	return "", errors.New("HEAD is detached")
}
