package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/runoshun/jiractl/internal/domain"
)

// DefaultBulkWait bounds how long a bulk transition is polled with Wait.
const DefaultBulkWait = 2 * time.Minute

// BulkTransitionInput contains the parameters for a bulk transition.
// Fields are ordered to minimize memory padding.
type BulkTransitionInput struct {
	Notify     *bool // Send notifications (defaults to [bulk] notify)
	Transition string
	Keys       []domain.IssueKey
	MaxWait    time.Duration // Polling bound with Wait (defaults to DefaultBulkWait)
	Wait       bool          // Poll the task until the server finishes it
	SkipDelay  bool          // Return right after submission; the caller schedules its own refresh
}

// BulkTransitionOutput contains the submitted task.
// Fields are ordered to minimize memory padding.
type BulkTransitionOutput struct {
	Task         *domain.BulkTask
	Transition   domain.Transition
	Keys         []domain.IssueKey
	Failed       []string      // Issues the finished task could not move (ids or keys, as Jira reports them)
	RefreshAfter time.Duration // Delay the caller should wait before refreshing
}

// Applied returns how many issues the finished task moved.
func (o *BulkTransitionOutput) Applied() int {
	return max(len(o.Keys)-len(o.Failed), 0)
}

// Result describes a finished task, e.g. "Done applied to 1 of 2 issues; failed: 10002".
func (o *BulkTransitionOutput) Result() string {
	if len(o.Failed) == 0 {
		return fmt.Sprintf("%s applied to %d issues", o.Transition.Label(), len(o.Keys))
	}
	return fmt.Sprintf("%s applied to %d of %d issues; failed: %s",
		o.Transition.Label(), o.Applied(), len(o.Keys), strings.Join(o.Failed, ", "))
}

// BulkTransition is the use case for moving several issues at once.
// Jira applies bulk transitions asynchronously, so after submission the use
// case either waits the configured refresh delay or polls the task queue.
type BulkTransition struct {
	tracker    domain.IssueTracker
	clock      domain.Clock
	logger     domain.Logger
	newBackOff func() backoff.BackOff
	bulk       domain.BulkConfig
}

// NewBulkTransition creates a new BulkTransition use case.
func NewBulkTransition(tracker domain.IssueTracker, clock domain.Clock, logger domain.Logger, bulk domain.BulkConfig) *BulkTransition {
	return &BulkTransition{
		tracker: tracker,
		clock:   clock,
		logger:  logger,
		bulk:    bulk,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 5 * time.Second
			return b
		},
	}
}

var errBulkPending = errors.New("bulk task still running")

// Execute submits the transition for every key.
func (uc *BulkTransition) Execute(ctx context.Context, in BulkTransitionInput) (*BulkTransitionOutput, error) {
	keys := dedupeKeys(in.Keys)
	if len(keys) == 0 {
		return nil, domain.ErrNoIssuesSelected
	}

	transitions, err := uc.tracker.BulkTransitions(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("list bulk transitions: %w", err)
	}
	if len(transitions) == 0 {
		return nil, fmt.Errorf("no transition shared by %s: %w", strings.Join(domain.KeyStrings(keys), ", "), domain.ErrNoTransitions)
	}
	transition, err := domain.FindTransition(transitions, in.Transition)
	if err != nil {
		return nil, err
	}

	notify := uc.bulk.Notify
	if in.Notify != nil {
		notify = *in.Notify
	}
	task, err := uc.tracker.BulkTransition(ctx, domain.BulkTransitionRequest{
		TransitionID: transition.ID,
		Keys:         keys,
		Notify:       notify,
	})
	if err != nil {
		return nil, fmt.Errorf("submit bulk transition: %w", err)
	}
	for _, key := range keys {
		uc.logger.Info(key, "bulk", fmt.Sprintf("submitted %s (task %s)", transition.Label(), task.ID))
	}

	out := &BulkTransitionOutput{
		Task:         task,
		Transition:   transition,
		Keys:         keys,
		RefreshAfter: uc.bulk.RefreshDelay,
	}

	switch {
	case in.Wait:
		final, err := uc.wait(ctx, task.ID, in.MaxWait)
		if err != nil {
			return out, err
		}
		out.Task = final
		out.RefreshAfter = 0
		if final.Status != domain.BulkComplete {
			return out, fmt.Errorf("task %s %s: %w", final.ID, strings.ToLower(string(final.Status)), domain.ErrBulkTransitionFailed)
		}
		if len(final.FailedKeys) > 0 {
			out.Failed = slices.Clone(final.FailedKeys)
			uc.logger.Warn("", "bulk", fmt.Sprintf("task %s failed for %s", final.ID, strings.Join(final.FailedKeys, ", ")))
			if out.Applied() == 0 {
				return out, fmt.Errorf("task %s moved none of %d issues (failed: %s): %w",
					final.ID, len(keys), strings.Join(final.FailedKeys, ", "), domain.ErrBulkTransitionFailed)
			}
		}
	case !in.SkipDelay && uc.bulk.RefreshDelay > 0:
		if err := uc.clock.Sleep(ctx, uc.bulk.RefreshDelay); err != nil {
			return out, err
		}
		out.RefreshAfter = 0
	}
	return out, nil
}

// wait polls the bulk queue until the task reaches a final status.
func (uc *BulkTransition) wait(ctx context.Context, taskID string, maxWait time.Duration) (*domain.BulkTask, error) {
	if maxWait <= 0 {
		maxWait = DefaultBulkWait
	}
	task, err := backoff.Retry(ctx, func() (*domain.BulkTask, error) {
		t, err := uc.tracker.BulkTask(ctx, taskID)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if !t.Status.IsFinal() {
			return nil, errBulkPending
		}
		return t, nil
	}, backoff.WithBackOff(uc.newBackOff()), backoff.WithMaxElapsedTime(maxWait))
	if err != nil {
		if errors.Is(err, errBulkPending) {
			return nil, fmt.Errorf("task %s not finished after %s: %w", taskID, maxWait, domain.ErrBulkTransitionFailed)
		}
		return nil, fmt.Errorf("poll bulk task %s: %w", taskID, err)
	}
	return task, nil
}

func dedupeKeys(keys []domain.IssueKey) []domain.IssueKey {
	out := make([]domain.IssueKey, 0, len(keys))
	for _, k := range keys {
		if k != "" && !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}
