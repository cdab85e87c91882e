package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/runoshun/jiractl/internal/domain"
)

// Assignee keywords accepted in place of an account id.
const (
	AssigneeMe   = "me"
	AssigneeNone = "none"
)

// UpdateIssueInput contains the parameters for updating an issue.
// Nil pointers leave the field unchanged.
// Fields are ordered to minimize memory padding.
type UpdateIssueInput struct {
	Summary      *string
	Description  *string
	Priority     *string
	Assignee     *string  // Account id, "me" or "none"
	Labels       []string // Replacement labels (with SetLabels)
	AddLabels    []string
	RemoveLabels []string
	Key          domain.IssueKey
	SetLabels    bool // Replace all labels with Labels (may be empty)
}

// UpdateIssueOutput contains the applied update.
type UpdateIssueOutput struct {
	Update domain.IssueUpdate
}

// UpdateIssue is the use case for editing issue fields.
type UpdateIssue struct {
	tracker domain.IssueTracker
	cache   domain.SummaryCache
	logger  domain.Logger
}

// NewUpdateIssue creates a new UpdateIssue use case.
func NewUpdateIssue(tracker domain.IssueTracker, cache domain.SummaryCache, logger domain.Logger) *UpdateIssue {
	return &UpdateIssue{
		tracker: tracker,
		cache:   cache,
		logger:  logger,
	}
}

// Execute builds the field changes and sends them.
func (uc *UpdateIssue) Execute(ctx context.Context, in UpdateIssueInput) (*UpdateIssueOutput, error) {
	var update domain.IssueUpdate

	if in.Summary != nil {
		summary := strings.TrimSpace(*in.Summary)
		if summary == "" {
			return nil, fmt.Errorf("summary: %w", domain.ErrEmptyMessage)
		}
		update.Summary = &summary
	}
	if in.Description != nil {
		update.Description = domain.NewDocument(*in.Description)
	}
	if in.Priority != nil {
		priority := strings.TrimSpace(*in.Priority)
		if priority != "" {
			update.Priority = &priority
		}
	}
	if in.Assignee != nil {
		id, err := uc.resolveAssignee(ctx, *in.Assignee)
		if err != nil {
			return nil, err
		}
		update.AssigneeID = &id
	}
	if in.SetLabels {
		update.SetLabels = true
		update.Labels = normalizeLabels(in.Labels)
	}
	update.AddLabels = normalizeLabels(in.AddLabels)
	update.RemoveLabels = normalizeLabels(in.RemoveLabels)

	if update.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}

	if err := uc.tracker.UpdateIssue(ctx, in.Key, update); err != nil {
		return nil, fmt.Errorf("update issue %s: %w", in.Key, err)
	}
	if update.Summary != nil && uc.cache != nil {
		if err := uc.cache.Put(in.Key, *update.Summary); err != nil {
			uc.logger.Warn(in.Key, "cache", fmt.Sprintf("cache summary: %v", err))
		}
	}

	uc.logger.Info(in.Key, "update", describeUpdate(update))
	return &UpdateIssueOutput{Update: update}, nil
}

// resolveAssignee maps the assignee keywords to an account id ("" unassigns).
func (uc *UpdateIssue) resolveAssignee(ctx context.Context, assignee string) (string, error) {
	assignee = strings.TrimSpace(assignee)
	switch strings.ToLower(assignee) {
	case "", AssigneeNone:
		return "", nil
	case AssigneeMe:
		me, err := uc.tracker.Myself(ctx)
		if err != nil {
			return "", fmt.Errorf("get current user: %w", err)
		}
		return me.AccountID, nil
	}
	return assignee, nil
}

// SplitLabels splits user input on commas and whitespace.
func SplitLabels(s string) []string {
	return normalizeLabels(strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	}))
}

// normalizeLabels trims labels and drops empty and duplicate ones.
// Jira labels cannot contain spaces, so inner whitespace is replaced with "_".
func normalizeLabels(labels []string) []string {
	var out []string
	for _, l := range labels {
		l = strings.Join(strings.Fields(l), "_")
		if l == "" || slices.Contains(out, l) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func describeUpdate(u domain.IssueUpdate) string {
	var parts []string
	if u.Summary != nil {
		parts = append(parts, fmt.Sprintf("summary=%q", *u.Summary))
	}
	if u.Description != nil {
		parts = append(parts, "description")
	}
	if u.Priority != nil {
		parts = append(parts, "priority="+*u.Priority)
	}
	if u.AssigneeID != nil {
		if *u.AssigneeID == "" {
			parts = append(parts, "assignee=none")
		} else {
			parts = append(parts, "assignee="+*u.AssigneeID)
		}
	}
	if u.SetLabels {
		parts = append(parts, "labels=["+strings.Join(u.Labels, ",")+"]")
	}
	for _, l := range u.AddLabels {
		parts = append(parts, "+"+l)
	}
	for _, l := range u.RemoveLabels {
		parts = append(parts, "-"+l)
	}
	return "updated " + strings.Join(parts, " ")
}
