package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/usecase/shared"
)

// AddCommentInput contains the parameters for adding a comment.
type AddCommentInput struct {
	Key     domain.IssueKey
	Message string // Plain text (required)
}

// AddCommentOutput contains the result of adding a comment.
type AddCommentOutput struct {
	Comment *domain.Comment
}

// AddComment is the use case for commenting on an issue.
type AddComment struct {
	tracker domain.IssueTracker
	logger  domain.Logger
}

// NewAddComment creates a new AddComment use case.
func NewAddComment(tracker domain.IssueTracker, logger domain.Logger) *AddComment {
	return &AddComment{
		tracker: tracker,
		logger:  logger,
	}
}

// Execute converts the message to a document and posts it.
func (uc *AddComment) Execute(ctx context.Context, in AddCommentInput) (*AddCommentOutput, error) {
	message, err := shared.ValidateMessage(in.Message)
	if err != nil {
		return nil, err
	}

	comment, err := uc.tracker.AddComment(ctx, in.Key, domain.NewDocument(message))
	if err != nil {
		return nil, fmt.Errorf("add comment to %s: %w", in.Key, err)
	}

	uc.logger.Info(in.Key, "comment", fmt.Sprintf("added comment %s", comment.ID))
	return &AddCommentOutput{Comment: comment}, nil
}
