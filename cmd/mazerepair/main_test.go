package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/mazerepair/internal/app"
)

func TestRun(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name         string
		args         []string
		expectedExit int
		stdout       string
		stderr       string
	}{
		{
			name:         "version",
			args:         []string{"version"},
			expectedExit: 0,
			stdout:       "mazerepair version",
		},
		{
			name:         "check passes",
			args:         []string{"check", "--quiet"},
			expectedExit: 0,
			stdout:       "✓ " + app.CheckName,
		},
		{
			name:         "check fails for unknown profile",
			args:         []string{"check", "--quiet", "--profile", "staging"},
			expectedExit: 1,
			stdout:       "✗ " + app.CheckName,
		},
		{
			name:         "config with malformed override",
			args:         []string{"config", "--set", "server.port"},
			expectedExit: 1,
			stderr:       "invalid override",
		},
		{
			name:         "config prints settings",
			args:         []string{"config", "--set", "app.name=labyrinth"},
			expectedExit: 0,
			stdout:       "name: labyrinth",
		},
		{
			name:         "unknown command",
			args:         []string{"frobnicate"},
			expectedExit: 1,
			stderr:       "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			exitCode := run(tt.args, &stdout, &stderr)

			assert.Equal(t, tt.expectedExit, exitCode, "stderr: %s", stderr.String())
			if tt.stdout != "" {
				assert.Contains(t, stdout.String(), tt.stdout)
			}
			if tt.stderr != "" {
				assert.Contains(t, stderr.String(), tt.stderr)
			}
		})
	}
}
