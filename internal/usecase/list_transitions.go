package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/jiractl/internal/domain"
)

// ListTransitionsInput contains the parameters for listing transitions.
// Set Key for one issue or Keys for the transitions shared by several.
type ListTransitionsInput struct {
	Key  domain.IssueKey
	Keys []domain.IssueKey
}

// ListTransitionsOutput contains the valid transitions.
type ListTransitionsOutput struct {
	Transitions []domain.Transition
}

// ListTransitions is the use case for listing the transitions of an issue.
type ListTransitions struct {
	tracker domain.IssueTracker
}

// NewListTransitions creates a new ListTransitions use case.
func NewListTransitions(tracker domain.IssueTracker) *ListTransitions {
	return &ListTransitions{tracker: tracker}
}

// Execute returns the transitions currently valid for the issue.
// An issue without any returns domain.ErrNoTransitions.
func (uc *ListTransitions) Execute(ctx context.Context, in ListTransitionsInput) (*ListTransitionsOutput, error) {
	keys := dedupeKeys(append([]domain.IssueKey{in.Key}, in.Keys...))
	switch len(keys) {
	case 0:
		return nil, domain.ErrNoIssuesSelected
	case 1:
		key := keys[0]
		transitions, err := uc.tracker.Transitions(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("list transitions of %s: %w", key, err)
		}
		if len(transitions) == 0 {
			return nil, fmt.Errorf("%s: %w", key, domain.ErrNoTransitions)
		}
		return &ListTransitionsOutput{Transitions: transitions}, nil
	}

	transitions, err := uc.tracker.BulkTransitions(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("list bulk transitions: %w", err)
	}
	if len(transitions) == 0 {
		return nil, fmt.Errorf("no transition shared by %s: %w", strings.Join(domain.KeyStrings(keys), ", "), domain.ErrNoTransitions)
	}
	return &ListTransitionsOutput{Transitions: transitions}, nil
}
