package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/jiractl/internal/app"
	"github.com/runoshun/jiractl/internal/domain"
	"github.com/runoshun/jiractl/internal/menu"
	"github.com/runoshun/jiractl/internal/usecase"
)

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	err       error

	// Menu state
	menu       *menu.Menu
	menuIssue  *domain.Issue // Issue the open menu acts on
	detail     *usecase.ShowIssueOutput
	onChoice   func(value string) tea.Cmd
	statusLine *StatusLine

	// State (slices and maps)
	issues        []*domain.Issue
	menuKeys      []domain.IssueKey // Issues a bulk menu acts on
	marked        map[domain.IssueKey]bool
	choices       []menu.Choice
	matches       []choiceMatch
	jql           string
	shownJQL      string // Query the server actually ran
	info          string
	inputName     string // Menu argument edited in ModeInput
	choiceTitle   string
	commentHeader string
	commentKey    domain.IssueKey

	// Components (structs with pointers)
	keys           KeyMap
	styles         Styles
	help           help.Model
	issueList      list.Model
	detailViewport viewport.Model

	// Input state (large structs)
	textInput    textinput.Model
	choiceInput  textinput.Model
	commentInput textarea.Model

	// Numeric state (smaller types last)
	mode         Mode
	returnMode   Mode // Mode restored when an input or picker closes
	menuReturn   Mode // Mode restored when the menu closes
	width        int
	height       int
	choiceCursor int
	pendingDash  bool // "-" pressed in a menu, waiting for the argument key
	loading      bool
}

// New creates a new TUI Model with the given container.
// jql overrides the configured list query when not empty.
func New(c *app.Container, jql string) *Model {
	ti := textinput.New()
	ti.CharLimit = 500

	ci := textinput.New()
	ci.Placeholder = "Type to filter..."
	ci.CharLimit = 100

	ta := textarea.New()
	ta.Placeholder = "Write a comment..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0

	styles := DefaultStyles()
	m := &Model{
		container:    c,
		mode:         ModeNormal,
		jql:          jql,
		marked:       make(map[domain.IssueKey]bool),
		keys:         DefaultKeyMap(),
		styles:       styles,
		help:         newHelp(styles),
		textInput:    ti,
		choiceInput:  ci,
		commentInput: ta,
	}
	m.statusLine = NewStatusLine(0, &m.styles)

	delegate := newIssueDelegate(styles, m.isMarked, c.Clock.Now)
	issueList := list.New([]list.Item{}, delegate, 0, 0)
	issueList.SetShowTitle(false)
	issueList.SetShowStatusBar(false)
	issueList.SetShowHelp(false)
	issueList.SetShowPagination(false)
	issueList.SetFilteringEnabled(false)
	issueList.DisableQuitKeybindings()
	m.issueList = issueList
	return m
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	return m.loadIssues()
}

// SelectedIssue returns the currently selected issue, or nil if none.
func (m *Model) SelectedIssue() *domain.Issue {
	if m.issueList.SelectedItem() == nil {
		return nil
	}
	if ii, ok := m.issueList.SelectedItem().(issueItem); ok {
		return ii.issue
	}
	return nil
}

// MarkedKeys returns the marked issue keys in list order.
func (m *Model) MarkedKeys() []domain.IssueKey {
	keys := make([]domain.IssueKey, 0, len(m.marked))
	for _, issue := range m.issues {
		if m.marked[issue.Key] {
			keys = append(keys, issue.Key)
		}
	}
	return keys
}

func (m *Model) isMarked(key domain.IssueKey) bool {
	return m.marked[key]
}

// toggleMark flips the mark of the selected issue.
func (m *Model) toggleMark() {
	issue := m.SelectedIssue()
	if issue == nil {
		return
	}
	if m.marked[issue.Key] {
		delete(m.marked, issue.Key)
	} else {
		m.marked[issue.Key] = true
	}
}

// updateIssueList replaces the list items, keeping the cursor on the same
// issue when it is still present, and drops marks of vanished issues.
func (m *Model) updateIssueList() {
	var selected domain.IssueKey
	if issue := m.SelectedIssue(); issue != nil {
		selected = issue.Key
	}

	items := make([]list.Item, 0, len(m.issues))
	keys := make([]domain.IssueKey, 0, len(m.issues))
	for _, issue := range m.issues {
		items = append(items, issueItem{issue: issue})
		keys = append(keys, issue.Key)
	}
	m.issueList.SetItems(items)

	for key := range m.marked {
		if !slices.Contains(keys, key) {
			delete(m.marked, key)
		}
	}
	if i := slices.Index(keys, selected); i >= 0 {
		m.issueList.Select(i)
	}
}

// updateLayoutSizes resizes every component after a window change.
func (m *Model) updateLayoutSizes() {
	listWidth := m.width - 4
	if listWidth < 40 {
		listWidth = 40
	}
	// Header (2 lines) + footer (1 line) + app padding (2 lines)
	listHeight := m.height - 6
	if listHeight < 3 {
		listHeight = 3
	}
	m.issueList.SetSize(listWidth, listHeight)
	m.statusLine.SetWidth(listWidth)
	m.help.Width = listWidth
	m.textInput.Width = listWidth - 20
	m.choiceInput.Width = listWidth - 20
	m.commentInput.SetWidth(listWidth - 6)
	m.commentInput.SetHeight(max(5, listHeight/2))
	if m.mode == ModeDetail {
		m.initDetailViewport()
	}
}

// newHelp returns the key help styled like the rest of the UI.
func newHelp(styles Styles) help.Model {
	h := help.New()
	h.Styles.ShortKey = styles.HelpKey
	h.Styles.FullKey = styles.HelpKey
	h.Styles.ShortDesc = styles.HelpDesc
	h.Styles.FullDesc = styles.HelpDesc
	return h
}
