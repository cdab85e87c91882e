package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/jiractl/internal/domain"
)

// CurrentIssueOutput contains the issue key found in the current branch.
type CurrentIssueOutput struct {
	Branch string
	Key    domain.IssueKey
}

// CurrentIssue is the use case for detecting the issue being worked on
// from the checked out git branch.
type CurrentIssue struct {
	branches domain.BranchReader
}

// NewCurrentIssue creates a new CurrentIssue use case.
// branches may be nil outside a git repository.
func NewCurrentIssue(branches domain.BranchReader) *CurrentIssue {
	return &CurrentIssue{branches: branches}
}

// Execute reads the branch name and extracts the first issue key from it.
func (uc *CurrentIssue) Execute(_ context.Context) (*CurrentIssueOutput, error) {
	if uc.branches == nil {
		return nil, domain.ErrNotGitRepository
	}
	branch, err := uc.branches.CurrentBranch()
	if err != nil {
		return nil, fmt.Errorf("current branch: %w", err)
	}
	key, ok := domain.ExtractIssueKey(branch)
	if !ok {
		return nil, fmt.Errorf("%s: %w", branch, domain.ErrNoIssueInBranch)
	}
	return &CurrentIssueOutput{Branch: branch, Key: key}, nil
}
