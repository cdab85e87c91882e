package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/menu"
	"github.com/runoshun/jiractl/internal/usecase"
)

// loadIssues returns a command that runs the list query.
func (m *Model) loadIssues() tea.Cmd {
	jql := m.jql
	return func() tea.Msg {
		out, err := m.container.ListIssuesUseCase().Execute(context.Background(), usecase.ListIssuesInput{JQL: jql})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgIssuesLoaded{JQL: out.JQL, Issues: out.Issues}
	}
}

// loadDetail returns a command that fetches one issue with its activity.
func (m *Model) loadDetail(key domain.IssueKey) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ShowIssueUseCase().Execute(context.Background(), usecase.ShowIssueInput{Key: key})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgDetailLoaded{Detail: out}
	}
}

// openActionsMenu fetches the watch state the issue actions menu depends on.
func (m *Model) openActionsMenu(key domain.IssueKey) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ShowIssueUseCase().Execute(context.Background(), usecase.ShowIssueInput{Key: key})
		if err != nil {
			return MsgError{Err: err}
		}
		watching := out.Watchers != nil && out.Watchers.IsWatching
		mn, err := menu.IssueActionsMenu(out.Issue, watching)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgMenuReady{Menu: mn, Issue: out.Issue}
	}
}

// openTransitionMenu fetches transitions and resolutions.
func (m *Model) openTransitionMenu(issue *domain.Issue) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		transitions, err := m.container.ListTransitionsUseCase().Execute(ctx, usecase.ListTransitionsInput{Key: issue.Key})
		if err != nil {
			return MsgError{Err: err}
		}
		resolutions, err := m.container.ListResolutionsUseCase().Execute(ctx)
		if err != nil {
			return MsgError{Err: err}
		}
		mn, err := menu.TransitionMenu(issue, transitions.Transitions, resolutions.Resolutions)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgMenuReady{Menu: mn, Issue: issue}
	}
}

// openUpdateMenu fetches priorities and assignable users.
func (m *Model) openUpdateMenu(issue *domain.Issue) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		priorities, err := m.container.ListPrioritiesUseCase().Execute(ctx)
		if err != nil {
			return MsgError{Err: err}
		}
		var users []domain.User
		found, err := m.container.FindUsersUseCase().Execute(ctx, usecase.FindUsersInput{Key: issue.Key, Limit: 50})
		switch {
		case err == nil:
			users = found.Users
		case errors.Is(err, domain.ErrUserNotFound):
		default:
			return MsgError{Err: err}
		}
		mn, err := menu.UpdateMenu(issue, priorities.Priorities, users)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgMenuReady{Menu: mn, Issue: issue}
	}
}

// openWorklogMenu builds the worklog menu with the default comment.
func (m *Model) openWorklogMenu(issue *domain.Issue) tea.Cmd {
	return func() tea.Msg {
		mn, err := menu.WorklogMenu(issue, m.container.AddWorklogUseCase().DefaultComment(issue.Key))
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgMenuReady{Menu: mn, Issue: issue}
	}
}

// openBulkMenu fetches the transitions shared by keys.
func (m *Model) openBulkMenu(keys []domain.IssueKey) tea.Cmd {
	return func() tea.Msg {
		if len(keys) == 0 {
			return MsgError{Err: domain.ErrNoIssuesSelected}
		}
		out, err := m.container.ListTransitionsUseCase().Execute(context.Background(), usecase.ListTransitionsInput{Keys: keys})
		if err != nil {
			return MsgError{Err: err}
		}
		mn, err := menu.BulkMenu(keys, out.Transitions)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgMenuReady{Menu: mn, Keys: keys}
	}
}

// loadComments fetches comments to pick one for deletion.
func (m *Model) loadComments(key domain.IssueKey) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ListCommentsUseCase().Execute(context.Background(), usecase.ListCommentsInput{Key: key})
		if err != nil {
			return MsgError{Err: err}
		}
		if len(out.Comments) == 0 {
			return MsgError{Err: fmt.Errorf("%s has no comments: %w", key, domain.ErrCommentNotFound)}
		}
		return MsgCommentsLoaded{Key: key, Comments: out.Comments}
	}
}

// runSuffix executes a menu action with the collected arguments.
// Actions that only change the UI are handled by the caller.
func (m *Model) runSuffix(mn *menu.Menu, s menu.Suffix, issue *domain.Issue, keys []domain.IssueKey) tea.Cmd {
	args := mn.Args()
	switch s.Action {
	case menu.ActionTransition:
		return m.transitionIssue(usecase.TransitionIssueInput{
			Key:        issue.Key,
			Transition: s.Target,
			Resolution: args[menu.ArgResolution],
			Comment:    args[menu.ArgComment],
		})
	case menu.ActionBulkTransition:
		notify := mn.Switch(menu.ArgNotify)
		return m.bulkTransition(usecase.BulkTransitionInput{
			Keys:       keys,
			Transition: s.Target,
			Notify:     &notify,
			Wait:       mn.Switch(menu.ArgWait),
			SkipDelay:  true,
		})
	case menu.ActionUpdate:
		return m.updateIssue(updateInput(issue.Key, args))
	case menu.ActionWorklog:
		in, err := worklogInput(issue.Key, args)
		if err != nil {
			return errCmd(err)
		}
		return m.addWorklog(in)
	case menu.ActionWatch:
		return m.watchIssue(issue.Key, usecase.WatchAdd)
	case menu.ActionUnwatch:
		return m.watchIssue(issue.Key, usecase.WatchRemove)
	case menu.ActionDeleteComment:
		return m.loadComments(issue.Key)
	case menu.ActionRefresh:
		return m.loadIssues()
	case menu.ActionOpenTransitions:
		return m.openTransitionMenu(issue)
	case menu.ActionOpenUpdate:
		return m.openUpdateMenu(issue)
	case menu.ActionOpenWorklog:
		return m.openWorklogMenu(issue)
	case menu.ActionComment, menu.ActionDetail:
	}
	return nil
}

func (m *Model) transitionIssue(in usecase.TransitionIssueInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.TransitionIssueUseCase().Execute(context.Background(), in)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgActionDone{Key: in.Key, Info: fmt.Sprintf("%s: %s", in.Key, out.Transition.Label())}
	}
}

func (m *Model) bulkTransition(in usecase.BulkTransitionInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.BulkTransitionUseCase().Execute(context.Background(), in)
		if err != nil {
			return MsgError{Err: err}
		}
		info := fmt.Sprintf("%s submitted for %d issues", out.Transition.Label(), len(out.Keys))
		if in.Wait {
			info = out.Result()
		}
		return MsgBulkSubmitted{Info: info, Keys: out.Keys, RefreshAfter: out.RefreshAfter}
	}
}

func (m *Model) updateIssue(in usecase.UpdateIssueInput) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.container.UpdateIssueUseCase().Execute(context.Background(), in); err != nil {
			return MsgError{Err: err}
		}
		return MsgActionDone{Key: in.Key, Info: fmt.Sprintf("%s updated", in.Key)}
	}
}

func (m *Model) addWorklog(in usecase.AddWorklogInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.AddWorklogUseCase().Execute(context.Background(), in)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgActionDone{Key: in.Key, Info: fmt.Sprintf("logged %s on %s", domain.FormatWorklogDuration(out.Worklog.TimeSpentSeconds), in.Key)}
	}
}

func (m *Model) watchIssue(key domain.IssueKey, mode usecase.WatchMode) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.WatchIssueUseCase().Execute(context.Background(), usecase.WatchIssueInput{Key: key, Mode: mode})
		if err != nil {
			return MsgError{Err: err}
		}
		if out.Watching {
			return MsgActionDone{Key: key, Info: "watching " + string(key)}
		}
		return MsgActionDone{Key: key, Info: "stopped watching " + string(key)}
	}
}

func (m *Model) openInBrowser(key domain.IssueKey) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.OpenIssueUseCase().Execute(context.Background(), usecase.OpenIssueInput{Key: key})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgInfo{Info: "opened " + out.URL}
	}
}

func (m *Model) addComment(key domain.IssueKey, message string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.container.AddCommentUseCase().Execute(context.Background(), usecase.AddCommentInput{Key: key, Message: message}); err != nil {
			return MsgError{Err: err}
		}
		return MsgActionDone{Key: key, Info: "commented on " + string(key)}
	}
}

func (m *Model) deleteComment(key domain.IssueKey, commentID string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.container.DeleteCommentUseCase().Execute(context.Background(), usecase.DeleteCommentInput{Key: key, CommentID: commentID}); err != nil {
			return MsgError{Err: err}
		}
		return MsgActionDone{Key: key, Info: fmt.Sprintf("deleted comment %s on %s", commentID, key)}
	}
}

// refreshAfter schedules the list refresh after a bulk transition.
func refreshAfter(d time.Duration) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return MsgRefresh{} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return MsgRefresh{} })
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg { return MsgError{Err: err} }
}

// updateInput maps update menu arguments to the use case input.
func updateInput(key domain.IssueKey, args map[string]string) usecase.UpdateIssueInput {
	in := usecase.UpdateIssueInput{Key: key}
	if v, ok := args[menu.ArgSummary]; ok {
		in.Summary = &v
	}
	if v, ok := args[menu.ArgPriority]; ok {
		in.Priority = &v
	}
	if v, ok := args[menu.ArgAssignee]; ok {
		in.Assignee = &v
	}
	if v, ok := args[menu.ArgLabels]; ok {
		in.Labels = usecase.SplitLabels(v)
		in.SetLabels = true
	}
	in.AddLabels = usecase.SplitLabels(args[menu.ArgAddLabels])
	in.RemoveLabels = usecase.SplitLabels(args[menu.ArgRemoveLabels])
	return in
}

// worklogInput maps worklog menu arguments to the use case input.
// A cleared comment is sent as an empty comment rather than the default.
func worklogInput(key domain.IssueKey, args map[string]string) (usecase.AddWorklogInput, error) {
	comment := args[menu.ArgComment]
	in := usecase.AddWorklogInput{
		Key:       key,
		TimeSpent: args[menu.ArgTimeSpent],
		Comment:   &comment,
	}
	if v := strings.TrimSpace(args[menu.ArgStarted]); v != "" {
		started, err := domain.ParseWorklogStarted(v)
		if err != nil {
			return in, err
		}
		in.Started = started
	}
	return in, nil
}
