package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/runoshun/jiractl/internal/menu"
)

// choiceMatch is a choice visible under the current filter.
type choiceMatch struct {
	matched []int // Byte offsets of the label runes matching the filter
	index   int   // Index into Model.choices
}

// choiceSource adapts choices to fuzzy.Source.
type choiceSource []menu.Choice

func (c choiceSource) String(i int) string { return c[i].Label }
func (c choiceSource) Len() int            { return len(c) }

// openChoice shows the picker. onSelect runs with the chosen value.
func (m *Model) openChoice(title string, choices []menu.Choice, current string, onSelect func(value string) tea.Cmd) tea.Cmd {
	if m.mode != ModeChoice {
		m.returnMode = m.mode
	}
	m.mode = ModeChoice
	m.choiceTitle = title
	m.choices = choices
	m.onChoice = onSelect
	m.choiceCursor = 0
	m.choiceInput.Reset()
	m.filterChoices()
	for i, cm := range m.matches {
		if m.choices[cm.index].Value == current {
			m.choiceCursor = i
			break
		}
	}
	return m.choiceInput.Focus()
}

// filterChoices ranks choices by the filter text; an empty filter keeps
// the original order.
func (m *Model) filterChoices() {
	query := strings.TrimSpace(m.choiceInput.Value())
	m.matches = m.matches[:0]
	if query == "" {
		for i := range m.choices {
			m.matches = append(m.matches, choiceMatch{index: i})
		}
	} else {
		for _, r := range fuzzy.FindFrom(query, choiceSource(m.choices)) {
			m.matches = append(m.matches, choiceMatch{index: r.Index, matched: r.MatchedIndexes})
		}
	}
	if m.choiceCursor >= len(m.matches) {
		m.choiceCursor = max(0, len(m.matches)-1)
	}
}

// selectedChoice returns the choice under the cursor.
func (m *Model) selectedChoice() (menu.Choice, bool) {
	if m.choiceCursor < 0 || m.choiceCursor >= len(m.matches) {
		return menu.Choice{}, false
	}
	return m.choices[m.matches[m.choiceCursor].index], true
}

func (m *Model) closeChoice() {
	m.choiceInput.Blur()
	m.mode = m.returnMode
	m.choices = nil
	m.matches = nil
	m.onChoice = nil
}

func (m *Model) handleChoiceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeChoice()
		return m, nil
	case "up", "ctrl+p":
		if m.choiceCursor > 0 {
			m.choiceCursor--
		}
		return m, nil
	case "down", "ctrl+n", "tab":
		if m.choiceCursor < len(m.matches)-1 {
			m.choiceCursor++
		}
		return m, nil
	case "enter":
		choice, ok := m.selectedChoice()
		if !ok {
			return m, nil
		}
		onSelect := m.onChoice
		m.closeChoice()
		if onSelect == nil {
			return m, nil
		}
		return m, onSelect(choice.Value)
	}

	var cmd tea.Cmd
	m.choiceInput, cmd = m.choiceInput.Update(msg)
	m.filterChoices()
	return m, cmd
}

// viewChoice renders the picker with matched characters highlighted.
func (m *Model) viewChoice() string {
	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render(m.choiceTitle))
	b.WriteString("\n\n")
	b.WriteString(m.styles.InputPrompt.Render("> "))
	b.WriteString(m.choiceInput.View())
	b.WriteString("\n\n")

	if len(m.matches) == 0 {
		b.WriteString(m.styles.MenuUnset.Render("no match"))
		return m.styles.Dialog.Render(b.String())
	}

	// Keep the cursor inside a fixed window.
	const window = 10
	start := 0
	if m.choiceCursor >= window {
		start = m.choiceCursor - window + 1
	}
	end := min(len(m.matches), start+window)
	for i := start; i < end; i++ {
		cm := m.matches[i]
		label := highlight(m.choices[cm.index].Label, cm.matched, m.styles.ChoiceMatch)
		if i == m.choiceCursor {
			b.WriteString(m.styles.ChoiceSelected.Render("> ") + m.styles.ChoiceSelected.Render(label))
		} else {
			b.WriteString("  " + label)
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return m.styles.Dialog.Render(b.String())
}

// highlight styles the runes of s starting at the matched byte offsets.
func highlight(s string, matched []int, style lipgloss.Style) string {
	if len(matched) == 0 {
		return s
	}
	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}
	var b strings.Builder
	for i, r := range s {
		if set[i] {
			b.WriteString(style.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
