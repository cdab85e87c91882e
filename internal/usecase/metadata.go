package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/jiractl/internal/domain"
)

// ListResolutionsOutput contains the resolution values.
type ListResolutionsOutput struct {
	Resolutions []domain.Resolution
}

// ListResolutions is the use case for listing resolution values.
type ListResolutions struct {
	tracker domain.IssueTracker
}

// NewListResolutions creates a new ListResolutions use case.
func NewListResolutions(tracker domain.IssueTracker) *ListResolutions {
	return &ListResolutions{tracker: tracker}
}

// Execute lists resolutions.
func (uc *ListResolutions) Execute(ctx context.Context) (*ListResolutionsOutput, error) {
	resolutions, err := uc.tracker.Resolutions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resolutions: %w", err)
	}
	return &ListResolutionsOutput{Resolutions: resolutions}, nil
}

// ListPrioritiesOutput contains the priority values.
type ListPrioritiesOutput struct {
	Priorities []domain.Priority
}

// ListPriorities is the use case for listing priority values.
type ListPriorities struct {
	tracker domain.IssueTracker
}

// NewListPriorities creates a new ListPriorities use case.
func NewListPriorities(tracker domain.IssueTracker) *ListPriorities {
	return &ListPriorities{tracker: tracker}
}

// Execute lists priorities.
func (uc *ListPriorities) Execute(ctx context.Context) (*ListPrioritiesOutput, error) {
	priorities, err := uc.tracker.Priorities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list priorities: %w", err)
	}
	return &ListPrioritiesOutput{Priorities: priorities}, nil
}
