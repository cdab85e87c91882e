package main

import (
	"testing"
)

func TestCanRunWithoutContainer(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{
			name: "no args opens the TUI",
			args: nil,
			want: false,
		},
		{
			name: "help flag",
			args: []string{"--help"},
			want: true,
		},
		{
			name: "subcommand help",
			args: []string{"transition", "-h"},
			want: true,
		},
		{
			name: "version flag",
			args: []string{"--version"},
			want: true,
		},
		{
			name: "help subcommand",
			args: []string{"help", "worklog"},
			want: true,
		},
		{
			name: "config template",
			args: []string{"config", "template"},
			want: true,
		},
		{
			name: "config show",
			args: []string{"config", "show"},
			want: false,
		},
		{
			name: "non-allowed command",
			args: []string{"list", "--jql", "project = ABC"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canRunWithoutContainer(tt.args); got != tt.want {
				t.Fatalf("canRunWithoutContainer(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}
