package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	testCases := []struct {
		name         string
		env          map[string]string
		expected     GitHubConfig
		expectErrMsg string
	}{
		{
			name:     "defaults",
			expected: GitHubConfig{},
		},
		{
			name: "values from environment",
			env: map[string]string{
				"GITHUB_ACCESS_TOKEN":         "tok",
				"GITHUB_SECONDARY_LIMIT_WAIT": "90s",
			},
			expected: GitHubConfig{Token: "tok", SecondaryLimitWait: 90 * time.Second},
		},
		{
			name:         "invalid duration",
			env:          map[string]string{"GITHUB_SECONDARY_LIMIT_WAIT": "soon"},
			expectErrMsg: "invalid GITHUB_SECONDARY_LIMIT_WAIT",
		},
		{
			name:         "negative duration",
			env:          map[string]string{"GITHUB_SECONDARY_LIMIT_WAIT": "-1s"},
			expectErrMsg: "must not be negative",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("GITHUB_ACCESS_TOKEN", "")
			t.Setenv("GITHUB_SECONDARY_LIMIT_WAIT", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
			if tc.expectErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectErrMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cfg.GitHub)
		})
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	t.Setenv("GITHUB_ACCESS_TOKEN", "")
	t.Setenv("GITHUB_SECONDARY_LIMIT_WAIT", "")
	os.Unsetenv("GITHUB_ACCESS_TOKEN")
	os.Unsetenv("GITHUB_SECONDARY_LIMIT_WAIT")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("GITHUB_ACCESS_TOKEN=from-file\nGITHUB_SECONDARY_LIMIT_WAIT=1m\n"), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.GitHub.Token)
	assert.Equal(t, time.Minute, cfg.GitHub.SecondaryLimitWait)
}
