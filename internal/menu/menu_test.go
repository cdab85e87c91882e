package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMenu(t *testing.T) *Menu {
	t.Helper()
	m, err := New("Test",
		Group{
			Title: "Arguments",
			Infixes: []*Infix{
				{Key: "-n", Name: "notify", Label: "Notify", Kind: KindSwitch},
				{Key: "-r", Name: "resolution", Label: "Resolution", Kind: KindChoice, Choices: []Choice{
					{Label: "Done", Value: "1"},
					{Label: "Won't Do", Value: "2"},
				}},
				{Key: "-c", Name: "comment", Label: "Comment", Kind: KindText},
				{Key: "-t", Name: "time", Label: "Time", Kind: KindText, Required: true},
			},
		},
		Group{
			Title:    "Actions",
			Suffixes: []Suffix{{Key: "x", Label: "Execute", Action: ActionUpdate}},
		},
	)
	require.NoError(t, err)
	return m
}

func TestNew_DuplicateKeys(t *testing.T) {
	_, err := New("dup",
		Group{Suffixes: []Suffix{{Key: "a", Label: "One"}}},
		Group{Suffixes: []Suffix{{Key: "a", Label: "Two"}}},
	)
	require.ErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), "One")

	_, err = New("dup names", Group{Infixes: []*Infix{
		{Key: "-a", Name: "x"},
		{Key: "-b", Name: "x"},
	}})
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestMenu_SetAndArgs(t *testing.T) {
	m := newTestMenu(t)

	require.NoError(t, m.Set("resolution", "won't do"))
	require.NoError(t, m.Set("comment", "  shipped  "))
	require.NoError(t, m.Set("notify", "yes"))

	assert.Equal(t, map[string]string{
		"resolution": "2",
		"comment":    "shipped",
		"notify":     "true",
	}, m.Args())
	assert.True(t, m.Switch("notify"))
	assert.Equal(t, "Won't Do", m.Infix("-r").Display())
}

func TestMenu_Set_Errors(t *testing.T) {
	m := newTestMenu(t)

	require.ErrorIs(t, m.Set("resolution", "Duplicate"), ErrInvalidChoice)
	require.ErrorIs(t, m.Set("nope", "x"), ErrUnknownArgument)
}

func TestMenu_Set_Clears(t *testing.T) {
	m := newTestMenu(t)
	require.NoError(t, m.Set("resolution", "1"))
	require.NoError(t, m.Set("resolution", ""))
	require.NoError(t, m.Set("notify", "false"))

	assert.Empty(t, m.Args())
}

func TestMenu_Toggle(t *testing.T) {
	m := newTestMenu(t)

	on, err := m.Toggle("notify")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, "on", m.Infix("-n").Display())

	on, err = m.Toggle("notify")
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, "off", m.Infix("-n").Display())

	_, err = m.Toggle("comment")
	require.ErrorIs(t, err, ErrUnknownArgument)
	assert.False(t, m.Switch("comment"))
	assert.False(t, m.Switch("missing"))
}

func TestMenu_Lookup(t *testing.T) {
	m := newTestMenu(t)

	assert.Equal(t, "comment", m.Infix("-c").Name)
	assert.Nil(t, m.Infix("-z"))

	s, ok := m.Suffix("x")
	require.True(t, ok)
	assert.Equal(t, ActionUpdate, s.Action)
	_, ok = m.Suffix("y")
	assert.False(t, ok)

	assert.Len(t, m.Infixes(), 4)
	assert.Len(t, m.Suffixes(), 1)
}

func TestMenu_Validate(t *testing.T) {
	m := newTestMenu(t)

	err := m.Validate()
	require.ErrorIs(t, err, ErrMissingArgument)
	assert.Contains(t, err.Error(), "Time")

	require.NoError(t, m.Set("time", "1h"))
	require.NoError(t, m.Validate())
}

func TestMenu_CommandLine(t *testing.T) {
	m := newTestMenu(t)
	require.NoError(t, m.Set("notify", "true"))
	require.NoError(t, m.Set("resolution", "2"))
	require.NoError(t, m.Set("time", "1h"))

	assert.Equal(t, `--notify --resolution="Won't Do" --time=1h`, m.CommandLine())
}
