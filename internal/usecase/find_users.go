package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/runoshun/jiractl/internal/domain"
)

// FindUsersInput contains the parameters for searching assignable users.
type FindUsersInput struct {
	Key   domain.IssueKey
	Query string
	Limit int // 0 = no limit
}

// FindUsersOutput contains the matching users, best match first.
type FindUsersOutput struct {
	Users []domain.User
}

// FindUsers is the use case for searching users assignable to an issue.
type FindUsers struct {
	tracker domain.IssueTracker
}

// NewFindUsers creates a new FindUsers use case.
func NewFindUsers(tracker domain.IssueTracker) *FindUsers {
	return &FindUsers{tracker: tracker}
}

// Execute searches assignable users and ranks them by how well their display
// name matches the query. Users the server matched on another attribute
// (e.g. email) follow the ranked ones in server order.
// No users at all returns domain.ErrUserNotFound.
func (uc *FindUsers) Execute(ctx context.Context, in FindUsersInput) (*FindUsersOutput, error) {
	query := strings.TrimSpace(in.Query)
	users, err := uc.tracker.AssignableUsers(ctx, in.Key, query)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	if len(users) == 0 {
		if query == "" {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%q: %w", query, domain.ErrUserNotFound)
	}

	ranked := RankUsers(users, query)
	if in.Limit > 0 && len(ranked) > in.Limit {
		ranked = ranked[:in.Limit]
	}
	return &FindUsersOutput{Users: ranked}, nil
}

type userNames []domain.User

func (u userNames) String(i int) string { return u[i].DisplayName }
func (u userNames) Len() int            { return len(u) }

// RankUsers orders users by fuzzy match of their display name against query.
// Non-matching users are kept after the matches in their original order.
func RankUsers(users []domain.User, query string) []domain.User {
	if query == "" {
		return users
	}
	matches := fuzzy.FindFrom(query, userNames(users))
	out := make([]domain.User, 0, len(users))
	seen := make([]bool, len(users))
	for _, m := range matches {
		out = append(out, users[m.Index])
		seen[m.Index] = true
	}
	for i, u := range users {
		if !seen[i] {
			out = append(out, u)
		}
	}
	return out
}
