package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/jiractl/internal/domain"
)

// ListCommentsInput contains the parameters for listing comments.
type ListCommentsInput struct {
	Key domain.IssueKey
}

// ListCommentsOutput contains the comments, oldest first.
type ListCommentsOutput struct {
	Comments []domain.Comment
}

// ListComments is the use case for listing the comments of an issue.
type ListComments struct {
	tracker domain.IssueTracker
}

// NewListComments creates a new ListComments use case.
func NewListComments(tracker domain.IssueTracker) *ListComments {
	return &ListComments{tracker: tracker}
}

// Execute lists comments.
func (uc *ListComments) Execute(ctx context.Context, in ListCommentsInput) (*ListCommentsOutput, error) {
	comments, err := uc.tracker.Comments(ctx, in.Key)
	if err != nil {
		return nil, fmt.Errorf("list comments of %s: %w", in.Key, err)
	}
	return &ListCommentsOutput{Comments: comments}, nil
}
