package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCredFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "creds.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadCredentials(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantUser string
		wantPass string
		wantErr  bool
	}{
		{
			name:     "valid credentials",
			content:  `{"user": "scraper", "pass": "hunter2"}`,
			wantUser: "scraper",
			wantPass: "hunter2",
		},
		{
			name:    "malformed json",
			content: `{"user": "scraper", `,
			wantErr: true,
		},
		{
			name:    "missing user",
			content: `{"pass": "hunter2"}`,
			wantErr: true,
		},
		{
			name:    "missing pass",
			content: `{"user": "scraper"}`,
			wantErr: true,
		},
		{
			name:    "empty fields",
			content: `{"user": "", "pass": ""}`,
			wantErr: true,
		},
		{
			name:    "unknown field rejected",
			content: `{"user": "scraper", "pass": "hunter2", "token": "x"}`,
			wantErr: true,
		},
		{
			name:    "not an object",
			content: `["user", "pass"]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := LoadCredentials(writeCredFile(t, tt.content))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, creds.User)
			assert.Equal(t, tt.wantPass, creds.Pass)
		})
	}
}

func TestLoadCredentials_MissingFile(t *testing.T) {
	_, err := LoadCredentials(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
