package menu

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/runoshun/jiractl/internal/domain"
)

// Argument names reported by Args.
const (
	ArgResolution   = "resolution"
	ArgComment      = "comment"
	ArgSummary      = "summary"
	ArgPriority     = "priority"
	ArgAssignee     = "assignee"
	ArgLabels       = "labels"
	ArgAddLabels    = "add-labels"
	ArgRemoveLabels = "remove-labels"
	ArgTimeSpent    = "time"
	ArgStarted      = "started"
	ArgNotify       = "notify"
	ArgWait         = "wait"
)

// Assignee choice values understood by the update use case.
const (
	AssigneeMe   = "me"
	AssigneeNone = "none"
)

// reservedKeys are handled by the menu view itself.
var reservedKeys = map[string]bool{"q": true}

// TransitionMenu lists the transitions of an issue as suffixes, with an
// optional resolution and comment.
func TransitionMenu(issue *domain.Issue, transitions []domain.Transition, resolutions []domain.Resolution) (*Menu, error) {
	if len(transitions) == 0 {
		return nil, fmt.Errorf("%s: %w", issue.Key, domain.ErrNoTransitions)
	}

	args := Group{Title: "Arguments"}
	if len(resolutions) > 0 {
		choices := make([]Choice, 0, len(resolutions))
		for _, r := range resolutions {
			choices = append(choices, Choice{Label: r.Name, Value: r.Name})
		}
		args.Infixes = append(args.Infixes, &Infix{Key: "-r", Name: ArgResolution, Label: "Resolution", Kind: KindChoice, Choices: choices})
	}
	args.Infixes = append(args.Infixes, &Infix{Key: "-c", Name: ArgComment, Label: "Comment", Kind: KindText})

	return New("Transition "+header(issue), args, transitionGroup("Transitions", ActionTransition, transitions))
}

// UpdateMenu edits the fields of an issue.
func UpdateMenu(issue *domain.Issue, priorities []domain.Priority, users []domain.User) (*Menu, error) {
	priorityChoices := make([]Choice, 0, len(priorities))
	for _, p := range priorities {
		priorityChoices = append(priorityChoices, Choice{Label: p.Name, Value: p.Name})
	}

	assigneeChoices := []Choice{
		{Label: "Me", Value: AssigneeMe},
		{Label: "Unassigned", Value: AssigneeNone},
	}
	for _, u := range users {
		if u.AccountID == "" {
			continue
		}
		assigneeChoices = append(assigneeChoices, Choice{Label: u.Name(), Value: u.AccountID})
	}

	fields := Group{
		Title: "Fields",
		Infixes: []*Infix{
			{Key: "-s", Name: ArgSummary, Label: "Summary", Kind: KindText},
			{Key: "-p", Name: ArgPriority, Label: withCurrent("Priority", issue.Priority), Kind: KindChoice, Choices: priorityChoices},
			{Key: "-a", Name: ArgAssignee, Label: withCurrent("Assignee", issue.Assignee.Name()), Kind: KindChoice, Choices: assigneeChoices},
		},
	}
	labels := Group{
		Title: "Labels",
		Infixes: []*Infix{
			{Key: "-l", Name: ArgLabels, Label: withCurrent("Replace labels", strings.Join(issue.Labels, ",")), Kind: KindText},
			{Key: "-+", Name: ArgAddLabels, Label: "Add labels", Kind: KindText},
			{Key: "--", Name: ArgRemoveLabels, Label: "Remove labels", Kind: KindText},
		},
	}
	actions := Group{
		Title:    "Update",
		Suffixes: []Suffix{{Key: "u", Label: "Update issue", Action: ActionUpdate}},
	}
	return New("Update "+header(issue), fields, labels, actions)
}

// WorklogMenu logs time on an issue. The comment starts as defaultComment.
func WorklogMenu(issue *domain.Issue, defaultComment string) (*Menu, error) {
	args := Group{
		Title: "Arguments",
		Infixes: []*Infix{
			{Key: "-t", Name: ArgTimeSpent, Label: "Time spent", Kind: KindText, Required: true},
			{Key: "-c", Name: ArgComment, Label: "Comment", Kind: KindText, Value: defaultComment},
			{Key: "-s", Name: ArgStarted, Label: "Started (YYYY-MM-DD HH:MM)", Kind: KindText},
		},
	}
	actions := Group{
		Title:    "Worklog",
		Suffixes: []Suffix{{Key: "w", Label: "Log work", Action: ActionWorklog}},
	}
	return New("Log work on "+header(issue), args, actions)
}

// IssueActionsMenu is the top-level menu for one issue.
func IssueActionsMenu(issue *domain.Issue, watching bool) (*Menu, error) {
	watch := Suffix{Key: "W", Label: "Watch", Action: ActionWatch}
	if watching {
		watch = Suffix{Key: "W", Label: "Stop watching", Action: ActionUnwatch}
	}
	edit := Group{
		Title: "Edit",
		Suffixes: []Suffix{
			{Key: "t", Label: "Transition…", Action: ActionOpenTransitions},
			{Key: "u", Label: "Update fields…", Action: ActionOpenUpdate},
			{Key: "w", Label: "Log work…", Action: ActionOpenWorklog},
		},
	}
	discuss := Group{
		Title: "Discuss",
		Suffixes: []Suffix{
			{Key: "c", Label: "Add comment", Action: ActionComment},
			{Key: "d", Label: "Delete comment", Action: ActionDeleteComment},
			watch,
		},
	}
	view := Group{
		Title: "View",
		Suffixes: []Suffix{
			{Key: "v", Label: "Show detail", Action: ActionDetail},
			{Key: "r", Label: "Refresh", Action: ActionRefresh},
		},
	}
	return New(header(issue), edit, discuss, view)
}

// BulkMenu applies one transition to several issues. Notify starts enabled.
func BulkMenu(keys []domain.IssueKey, transitions []domain.Transition) (*Menu, error) {
	if len(keys) == 0 {
		return nil, domain.ErrNoIssuesSelected
	}
	if len(transitions) == 0 {
		return nil, fmt.Errorf("no transition shared by the selected issues: %w", domain.ErrNoTransitions)
	}
	args := Group{
		Title: "Arguments",
		Infixes: []*Infix{
			{Key: "-n", Name: ArgNotify, Label: "Send notifications", Kind: KindSwitch, Value: "true"},
			{Key: "-w", Name: ArgWait, Label: "Wait for completion", Kind: KindSwitch},
		},
	}
	title := fmt.Sprintf("Transition %d issues (%s)", len(keys), strings.Join(domain.KeyStrings(keys), ", "))
	return New(title, args, transitionGroup("Transitions", ActionBulkTransition, transitions))
}

func transitionGroup(title string, action Action, transitions []domain.Transition) Group {
	labels := make([]string, len(transitions))
	for i, t := range transitions {
		labels[i] = t.Label()
	}
	keys := assignKeys(labels, reservedKeys)
	g := Group{Title: title}
	for i, t := range transitions {
		g.Suffixes = append(g.Suffixes, Suffix{Key: keys[i], Label: labels[i], Action: action, Target: t.ID})
	}
	return g
}

// assignKeys picks one unique single-character key per label: the first
// letter of the label not yet used, else a digit, else any free letter.
func assignKeys(labels []string, reserved map[string]bool) []string {
	taken := make(map[string]bool, len(reserved)+len(labels))
	for k := range reserved {
		taken[k] = true
	}
	fallback := []rune("123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

	keys := make([]string, len(labels))
	for i, label := range labels {
		for _, r := range strings.ToLower(label) {
			if !unicode.IsLetter(r) || r > unicode.MaxASCII {
				continue
			}
			if k := string(r); !taken[k] {
				keys[i] = k
				break
			}
		}
		if keys[i] == "" {
			for _, r := range fallback {
				if k := string(r); !taken[k] {
					keys[i] = k
					break
				}
			}
		}
		taken[keys[i]] = true
	}
	return keys
}

func header(issue *domain.Issue) string {
	return domain.CommentDraftHeader(issue.Key, issue.Summary)
}

func withCurrent(label, current string) string {
	if current == "" {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, current)
}
