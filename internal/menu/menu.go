// Package menu models transient action menus: a title, infix arguments that
// collect values and keyed suffix actions that consume them.
package menu

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Menu errors.
var (
	ErrDuplicateKey    = errors.New("duplicate menu key")
	ErrUnknownArgument = errors.New("unknown menu argument")
	ErrInvalidChoice   = errors.New("invalid choice")
	ErrMissingArgument = errors.New("missing required argument")
)

// Kind is the type of an infix argument.
type Kind int

const (
	KindSwitch Kind = iota // Boolean flag, e.g. --notify
	KindChoice             // One of a fixed set of values
	KindText               // Free text
)

// Choice is one selectable value of a KindChoice infix.
type Choice struct {
	Label string // Shown to the user
	Value string // Reported by Args
}

// Infix is an argument set before a suffix runs.
// Fields are ordered to minimize memory padding.
type Infix struct {
	Key      string // Two-key sequence, e.g. "-r"
	Name     string // Argument name reported by Args
	Label    string
	Value    string // Current value; "true" for an enabled switch
	Choices  []Choice
	Kind     Kind
	Required bool
}

// IsSet reports whether the infix carries a value.
func (i *Infix) IsSet() bool {
	return i.Value != ""
}

// Display renders the current value for the menu view.
func (i *Infix) Display() string {
	switch i.Kind {
	case KindSwitch:
		if i.IsSet() {
			return "on"
		}
		return "off"
	case KindChoice:
		for _, c := range i.Choices {
			if c.Value == i.Value {
				return c.Label
			}
		}
	case KindText:
	}
	return i.Value
}

// Action identifies what a suffix does.
type Action string

// Suffix actions.
const (
	ActionTransition     Action = "transition"
	ActionBulkTransition Action = "bulk-transition"
	ActionUpdate         Action = "update"
	ActionWorklog        Action = "worklog"
	ActionComment        Action = "comment"
	ActionDeleteComment  Action = "delete-comment"
	ActionWatch          Action = "watch"
	ActionUnwatch        Action = "unwatch"
	ActionRefresh        Action = "refresh"
	ActionDetail         Action = "detail"

	// Actions that open a follow-up menu.
	ActionOpenTransitions Action = "open-transitions"
	ActionOpenUpdate      Action = "open-update"
	ActionOpenWorklog     Action = "open-worklog"
)

// Suffix is a keyed action.
type Suffix struct {
	Key    string
	Label  string
	Action Action
	Target string // Action target, e.g. a transition id
}

// Group is a titled column of infixes and suffixes.
type Group struct {
	Title    string
	Infixes  []*Infix
	Suffixes []Suffix
}

// Menu is a transient menu.
type Menu struct {
	Title  string
	Groups []Group
}

// New builds a menu and checks that every key is unique.
func New(title string, groups ...Group) (*Menu, error) {
	m := &Menu{Title: title, Groups: groups}
	seen := make(map[string]string)
	names := make(map[string]bool)
	for _, g := range groups {
		for _, in := range g.Infixes {
			if prev, ok := seen[in.Key]; ok {
				return nil, fmt.Errorf("%q used by %s and %s: %w", in.Key, prev, in.Label, ErrDuplicateKey)
			}
			if names[in.Name] {
				return nil, fmt.Errorf("argument %q defined twice: %w", in.Name, ErrDuplicateKey)
			}
			seen[in.Key] = in.Label
			names[in.Name] = true
		}
		for _, s := range g.Suffixes {
			if prev, ok := seen[s.Key]; ok {
				return nil, fmt.Errorf("%q used by %s and %s: %w", s.Key, prev, s.Label, ErrDuplicateKey)
			}
			seen[s.Key] = s.Label
		}
	}
	return m, nil
}

// Infixes returns every infix in display order.
func (m *Menu) Infixes() []*Infix {
	var out []*Infix
	for _, g := range m.Groups {
		out = append(out, g.Infixes...)
	}
	return out
}

// Suffixes returns every suffix in display order.
func (m *Menu) Suffixes() []Suffix {
	var out []Suffix
	for _, g := range m.Groups {
		out = append(out, g.Suffixes...)
	}
	return out
}

// Infix returns the infix bound to key ("-r"), or nil.
func (m *Menu) Infix(key string) *Infix {
	for _, in := range m.Infixes() {
		if in.Key == key {
			return in
		}
	}
	return nil
}

// Suffix returns the suffix bound to key, or false.
func (m *Menu) Suffix(key string) (Suffix, bool) {
	for _, s := range m.Suffixes() {
		if s.Key == key {
			return s, true
		}
	}
	return Suffix{}, false
}

func (m *Menu) byName(name string) (*Infix, error) {
	for _, in := range m.Infixes() {
		if in.Name == name {
			return in, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownArgument)
}

// Set assigns a value. A choice value may be given as its value or its
// label (case-insensitive); an empty value clears the argument.
func (m *Menu) Set(name, value string) error {
	in, err := m.byName(name)
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	switch in.Kind {
	case KindSwitch:
		if value != "" && value != "false" {
			value = "true"
		} else {
			value = ""
		}
	case KindChoice:
		if value == "" {
			break
		}
		c, ok := findChoice(in.Choices, value)
		if !ok {
			return fmt.Errorf("%s %q: %w", in.Label, value, ErrInvalidChoice)
		}
		value = c.Value
	case KindText:
	}
	in.Value = value
	return nil
}

func findChoice(choices []Choice, value string) (Choice, bool) {
	for _, c := range choices {
		if c.Value == value {
			return c, true
		}
	}
	for _, c := range choices {
		if strings.EqualFold(c.Label, value) || strings.EqualFold(c.Value, value) {
			return c, true
		}
	}
	return Choice{}, false
}

// Toggle flips a switch and returns its new state.
func (m *Menu) Toggle(name string) (bool, error) {
	in, err := m.byName(name)
	if err != nil {
		return false, err
	}
	if in.Kind != KindSwitch {
		return false, fmt.Errorf("%q is not a switch: %w", name, ErrUnknownArgument)
	}
	if in.IsSet() {
		in.Value = ""
	} else {
		in.Value = "true"
	}
	return in.IsSet(), nil
}

// Switch reports whether the named switch is on.
func (m *Menu) Switch(name string) bool {
	in, err := m.byName(name)
	if err != nil || in.Kind != KindSwitch {
		return false
	}
	return in.IsSet()
}

// Args returns the values of every set argument.
func (m *Menu) Args() map[string]string {
	args := make(map[string]string)
	for _, in := range m.Infixes() {
		if in.IsSet() {
			args[in.Name] = in.Value
		}
	}
	return args
}

// Validate reports required arguments that are not set.
func (m *Menu) Validate() error {
	var missing []string
	for _, in := range m.Infixes() {
		if in.Required && !in.IsSet() {
			missing = append(missing, in.Label)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%s: %w", strings.Join(missing, ", "), ErrMissingArgument)
	}
	return nil
}

// CommandLine renders the set arguments the way a shell command would take
// them, e.g. "--resolution=Done --notify".
func (m *Menu) CommandLine() string {
	var parts []string
	for _, in := range m.Infixes() {
		if !in.IsSet() {
			continue
		}
		if in.Kind == KindSwitch {
			parts = append(parts, "--"+in.Name)
			continue
		}
		v := in.Display()
		if strings.ContainsAny(v, " \t\"") {
			v = fmt.Sprintf("%q", v)
		}
		parts = append(parts, "--"+in.Name+"="+v)
	}
	return strings.Join(parts, " ")
}
