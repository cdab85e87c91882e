package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/jiractl/internal/domain"
)

// DeleteCommentInput contains the parameters for deleting a comment.
type DeleteCommentInput struct {
	Key       domain.IssueKey
	CommentID string
}

// DeleteCommentOutput contains the deleted comment.
type DeleteCommentOutput struct {
	Comment domain.Comment
}

// DeleteComment is the use case for removing a comment from an issue.
type DeleteComment struct {
	tracker domain.IssueTracker
	logger  domain.Logger
}

// NewDeleteComment creates a new DeleteComment use case.
func NewDeleteComment(tracker domain.IssueTracker, logger domain.Logger) *DeleteComment {
	return &DeleteComment{
		tracker: tracker,
		logger:  logger,
	}
}

// Execute deletes the comment. An id that is not among the issue's
// comments returns domain.ErrCommentNotFound without a delete request.
func (uc *DeleteComment) Execute(ctx context.Context, in DeleteCommentInput) (*DeleteCommentOutput, error) {
	id := strings.TrimSpace(in.CommentID)
	comments, err := uc.tracker.Comments(ctx, in.Key)
	if err != nil {
		return nil, fmt.Errorf("list comments of %s: %w", in.Key, err)
	}

	var target *domain.Comment
	for i := range comments {
		if comments[i].ID == id {
			target = &comments[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%s comment %q: %w", in.Key, id, domain.ErrCommentNotFound)
	}

	if err := uc.tracker.DeleteComment(ctx, in.Key, id); err != nil {
		return nil, fmt.Errorf("delete comment %s: %w", id, err)
	}

	uc.logger.Info(in.Key, "comment", fmt.Sprintf("deleted comment %s", id))
	return &DeleteCommentOutput{Comment: *target}, nil
}
