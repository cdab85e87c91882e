package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/usecase/shared"
)

// TransitionIssueInput contains the parameters for transitioning an issue.
type TransitionIssueInput struct {
	Key        domain.IssueKey
	Transition string // Transition id or name (or target status name)
	Resolution string // Optional resolution name
	Comment    string // Optional comment added with the transition
}

// TransitionIssueOutput contains the applied transition.
type TransitionIssueOutput struct {
	Transition domain.Transition
}

// TransitionIssue is the use case for moving one issue through its workflow.
type TransitionIssue struct {
	tracker domain.IssueTracker
	logger  domain.Logger
}

// NewTransitionIssue creates a new TransitionIssue use case.
func NewTransitionIssue(tracker domain.IssueTracker, logger domain.Logger) *TransitionIssue {
	return &TransitionIssue{
		tracker: tracker,
		logger:  logger,
	}
}

// Execute resolves the transition among the ones valid for the issue and applies it.
func (uc *TransitionIssue) Execute(ctx context.Context, in TransitionIssueInput) (*TransitionIssueOutput, error) {
	transitions, err := uc.tracker.Transitions(ctx, in.Key)
	if err != nil {
		return nil, fmt.Errorf("list transitions of %s: %w", in.Key, err)
	}
	if len(transitions) == 0 {
		return nil, fmt.Errorf("%s: %w", in.Key, domain.ErrNoTransitions)
	}
	transition, err := domain.FindTransition(transitions, in.Transition)
	if err != nil {
		return nil, err
	}

	req := domain.TransitionRequest{
		Key:          in.Key,
		TransitionID: transition.ID,
		Resolution:   strings.TrimSpace(in.Resolution),
	}
	if strings.TrimSpace(in.Comment) != "" {
		comment, err := shared.ValidateMessage(in.Comment)
		if err != nil {
			return nil, err
		}
		req.Comment = domain.NewDocument(comment)
	}

	if err := uc.tracker.Transition(ctx, req); err != nil {
		uc.logger.Error(in.Key, "transition", fmt.Sprintf("%s failed: %v", transition.Name, err))
		return nil, fmt.Errorf("transition %s: %w", in.Key, err)
	}

	msg := "transitioned via " + transition.Label()
	if req.Resolution != "" {
		msg += " (resolution " + req.Resolution + ")"
	}
	uc.logger.Info(in.Key, "transition", msg)
	return &TransitionIssueOutput{Transition: transition}, nil
}
