package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode_String(t *testing.T) {
	tests := []struct {
		want string
		mode Mode
	}{
		{"normal", ModeNormal},
		{"menu", ModeMenu},
		{"input", ModeInput},
		{"choice", ModeChoice},
		{"comment", ModeComment},
		{"detail", ModeDetail},
		{"help", ModeHelp},
		{"unknown", Mode(99)},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.String())
		})
	}
}

func TestMode_IsInputMode(t *testing.T) {
	assert.True(t, ModeInput.IsInputMode())
	assert.True(t, ModeChoice.IsInputMode())
	assert.True(t, ModeComment.IsInputMode())
	assert.False(t, ModeNormal.IsInputMode())
	assert.False(t, ModeMenu.IsInputMode())
	assert.False(t, ModeDetail.IsInputMode())
}
