package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/voxrag/internal/adapters/driven/config/file"
	"github.com/custodia-labs/voxrag/internal/config"
	"github.com/custodia-labs/voxrag/internal/core/domain"
	"github.com/custodia-labs/voxrag/internal/core/ports/driven"
)

// Test helper functions in settings.go

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Very long key",
			input:    "sk-proj-1234567890abcdefghijklmnop",
			expected: "sk-p...mnop",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskAPIKey(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty input returns default",
			input:      "",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice within range",
			input:      "3",
			maxVal:     5,
			defaultVal: 1,
			expected:   3,
		},
		{
			name:       "Choice below minimum returns default",
			input:      "0",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Choice above maximum returns default",
			input:      "6",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Invalid input returns default",
			input:      "abc",
			maxVal:     5,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Negative number returns default",
			input:      "-1",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Whitespace returns default",
			input:      "   ",
			maxVal:     5,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Maximum value is valid",
			input:      "5",
			maxVal:     5,
			defaultVal: 1,
			expected:   5,
		},
		{
			name:       "Minimum value is valid",
			input:      "1",
			maxVal:     5,
			defaultVal: 3,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// useSettingsFile points the settings commands at a temp file.
func useSettingsFile(t *testing.T) *file.SettingsFile {
	t.Helper()
	store, err := file.NewSettingsFile(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	oldOpen := openSettingsStore
	openSettingsStore = func() (driven.SettingsStore, error) { return store, nil }
	t.Cleanup(func() { openSettingsStore = oldOpen })
	return store
}

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range settingsCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "show")
	assert.Contains(t, names, "init")
	assert.Contains(t, names, "llm")
}

func TestSettingsShow_MasksKeys(t *testing.T) {
	oldLoad := loadSettings
	defer func() { loadSettings = oldLoad }()
	loadSettings = func() (domain.Settings, error) {
		s := config.Defaults()
		s.LLM.APIKey = "sk-1234567890abcdef"
		s.STT.APIKey = "dg-secret-key-value"
		return s, nil
	}

	out, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[LLM]")
	assert.Contains(t, out, "sk-1...cdef")
	assert.NotContains(t, out, "sk-1234567890abcdef")
	assert.NotContains(t, out, "dg-secret-key-value")
	assert.Contains(t, out, "sales_docs (384 dimensions)")
	assert.Contains(t, out, "File: conversation.db")
}

func TestSettingsInit_WritesDefaults(t *testing.T) {
	store := useSettingsFile(t)

	out, err := execute(t, "settings", "init")
	require.NoError(t, err)
	assert.Contains(t, out, store.Path())

	var loaded domain.Settings
	found, err := store.Load(&loaded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, config.Defaults(), loaded)
}

func TestSettingsInit_RefusesOverwrite(t *testing.T) {
	useSettingsFile(t)

	_, err := execute(t, "settings", "init")
	require.NoError(t, err)

	_, err = execute(t, "settings", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "settings", "init", "--force")
	assert.NoError(t, err)
}

func TestSettingsLLM_SelectsProvider(t *testing.T) {
	store := useSettingsFile(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetIn(bytes.NewBufferString("3\n\nds-key-123456789\n"))
	rootCmd.SetArgs([]string{"settings", "llm"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "LLM set to")

	var loaded domain.Settings
	_, err := store.Load(&loaded)
	require.NoError(t, err)
	assert.Equal(t, domain.LLMProviderDeepSeek, loaded.LLM.Provider)
	assert.Equal(t, "ds-key-123456789", loaded.LLM.APIKey)
}

func TestSettingsLLM_RequiresKey(t *testing.T) {
	useSettingsFile(t)

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetIn(bytes.NewBufferString("2\n\n\n"))
	rootCmd.SetArgs([]string{"settings", "llm"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestKeyStatus(t *testing.T) {
	assert.Equal(t, "(not set)", keyStatus(""))
	assert.Equal(t, "****", keyStatus("short"))
}
